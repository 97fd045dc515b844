//go:build wireinject
// +build wireinject

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/yushu/bookadmin/internal/application/book"
	appborrow "github.com/yushu/bookadmin/internal/application/borrow"
	appcategory "github.com/yushu/bookadmin/internal/application/category"
	appstockrecord "github.com/yushu/bookadmin/internal/application/stockrecord"
	appuser "github.com/yushu/bookadmin/internal/application/user"
	"github.com/yushu/bookadmin/internal/domain/user"
	"github.com/yushu/bookadmin/internal/infrastructure/config"
	"github.com/yushu/bookadmin/internal/infrastructure/persistence/mysql"
	"github.com/yushu/bookadmin/internal/infrastructure/persistence/redis"
	"github.com/yushu/bookadmin/internal/interface/http/handler"
	"github.com/yushu/bookadmin/internal/interface/http/middleware"
	"github.com/yushu/bookadmin/pkg/jwt"
	"github.com/yushu/bookadmin/pkg/mq"
)

// wire.go 依赖注入配置
// 运行 `wire gen ./cmd/api` 生成 wire_gen.go
// main.go中的手动组装与此处的Provider集合保持一致

// App 应用程序依赖容器
type App struct {
	Engine *gin.Engine
	Config *config.Config
}

// infrastructureSet 基础设施Provider集合
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	redis.NewSessionStore,
	provideJWTManager,
	provideBorrowPublisher,
	provideStockPublisher,
)

// repositorySet 仓储Provider集合
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCategoryRepository,
	mysql.NewBorrowRepository,
	mysql.NewStockRecordRepository,
	mysql.NewTxManager,
	wire.Bind(new(appborrow.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appstockrecord.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域服务Provider集合
var domainSet = wire.NewSet(
	user.NewService,
)

// applicationSet 应用用例Provider集合
var applicationSet = wire.NewSet(
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewManageUsersUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appborrow.NewCreateBorrowUseCase,
	appborrow.NewReturnBorrowUseCase,
	appborrow.NewDeleteBorrowUseCase,
	appborrow.NewListBorrowsUseCase,
	appstockrecord.NewCreateStockRecordUseCase,
	appstockrecord.NewDeleteStockRecordUseCase,
	appstockrecord.NewListStockRecordsUseCase,
	appcategory.NewManageCategoriesUseCase,
)

// middlewareSet 中间件Provider集合
var middlewareSet = wire.NewSet(
	middleware.NewAuthMiddleware,
)

// handlerSet 处理器Provider集合
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewBorrowHandler,
	handler.NewStockRecordHandler,
	handler.NewCategoryHandler,
)

// provideJWTManager 创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideBorrowPublisher 借阅事件发布器
// MQ未启用时返回空实现
func provideBorrowPublisher(cfg *config.Config) (appborrow.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return appborrow.NoopPublisher{}, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideStockPublisher 入库事件发布器
func provideStockPublisher(cfg *config.Config) (appstockrecord.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return appstockrecord.NoopPublisher{}, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 创建Gin引擎并注册路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	borrowHandler *handler.BorrowHandler,
	stockRecordHandler *handler.StockRecordHandler,
	categoryHandler *handler.CategoryHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, userHandler, bookHandler, borrowHandler, stockRecordHandler, categoryHandler, authMiddleware)
	return r
}

// provideApp 组装应用
func provideApp(engine *gin.Engine, cfg *config.Config) *App {
	return &App{
		Engine: engine,
		Config: cfg,
	}
}

// InitializeApp 初始化应用（Wire入口）
func InitializeApp() (*App, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
		provideApp,
	)
	return nil, nil
}
