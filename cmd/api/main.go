package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/yushu/bookadmin/pkg/metrics"
	"github.com/yushu/bookadmin/pkg/mq"
	"github.com/yushu/bookadmin/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入(wire.go提供Wire版本,运行wire gen可生成等价代码)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化消息队列(可选)
	// MQ未启用时注入空实现,事件直接丢弃
	var borrowPublisher appborrow.EventPublisher = appborrow.NoopPublisher{}
	var stockPublisher appstockrecord.EventPublisher = appstockrecord.NoopPublisher{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer publisher.Close()
		borrowPublisher = publisher
		stockPublisher = publisher
	}

	// 6. 依赖注入（手动组装）
	// 依赖链:Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	borrowRepo := mysql.NewBorrowRepository(db)
	stockRecordRepo := mysql.NewStockRecordRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)

	// 应用层
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	manageUsersUseCase := appuser.NewManageUsersUseCase(userRepo, userService)

	createBookUseCase := appbook.NewCreateBookUseCase(bookRepo, categoryRepo)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookRepo, categoryRepo, txManager)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookRepo, borrowRepo, stockRecordRepo, txManager)
	listBooksUseCase := appbook.NewListBooksUseCase(bookRepo, categoryRepo)
	getBookUseCase := appbook.NewGetBookUseCase(bookRepo, categoryRepo)

	createBorrowUseCase := appborrow.NewCreateBorrowUseCase(borrowRepo, bookRepo, userRepo, txManager, borrowPublisher)
	returnBorrowUseCase := appborrow.NewReturnBorrowUseCase(borrowRepo, bookRepo, txManager, borrowPublisher)
	deleteBorrowUseCase := appborrow.NewDeleteBorrowUseCase(borrowRepo, bookRepo, txManager)
	listBorrowsUseCase := appborrow.NewListBorrowsUseCase(borrowRepo, bookRepo, userRepo)

	createStockRecordUseCase := appstockrecord.NewCreateStockRecordUseCase(stockRecordRepo, bookRepo, userRepo, txManager, stockPublisher)
	deleteStockRecordUseCase := appstockrecord.NewDeleteStockRecordUseCase(stockRecordRepo, bookRepo, txManager)
	listStockRecordsUseCase := appstockrecord.NewListStockRecordsUseCase(stockRecordRepo, bookRepo, userRepo)

	manageCategoriesUseCase := appcategory.NewManageCategoriesUseCase(categoryRepo)

	// 接口层
	userHandler := handler.NewUserHandler(loginUseCase, logoutUseCase, manageUsersUseCase, jwtManager)
	bookHandler := handler.NewBookHandler(createBookUseCase, updateBookUseCase, deleteBookUseCase, listBooksUseCase, getBookUseCase)
	borrowHandler := handler.NewBorrowHandler(createBorrowUseCase, returnBorrowUseCase, deleteBorrowUseCase, listBorrowsUseCase)
	stockRecordHandler := handler.NewStockRecordHandler(createStockRecordUseCase, deleteStockRecordUseCase, listStockRecordsUseCase)
	categoryHandler := handler.NewCategoryHandler(manageCategoriesUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 8. 注册路由
	registerRoutes(r, userHandler, bookHandler, borrowHandler, stockRecordHandler, categoryHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	borrowHandler *handler.BorrowHandler,
	stockRecordHandler *handler.StockRecordHandler,
	categoryHandler *handler.CategoryHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(生产环境建议禁用或加访问控制)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块(公开接口)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 需要登录的路由
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			// 图书模块(查询所有登录用户可用,写操作仅管理员)
			books := authorized.Group("/books")
			{
				books.GET("", bookHandler.ListBooks)
				books.GET("/:id", bookHandler.GetBook)
				books.POST("", authMiddleware.RequireAdmin(), bookHandler.CreateBook)
				books.PUT("/:id", authMiddleware.RequireAdmin(), bookHandler.UpdateBook)
				books.DELETE("/:id", authMiddleware.RequireAdmin(), bookHandler.DeleteBook)
			}

			// 分类模块
			categories := authorized.Group("/categories")
			{
				categories.GET("", categoryHandler.ListCategories)
				categories.POST("", authMiddleware.RequireAdmin(), categoryHandler.CreateCategory)
				categories.PUT("/:id", authMiddleware.RequireAdmin(), categoryHandler.UpdateCategory)
				categories.DELETE("/:id", authMiddleware.RequireAdmin(), categoryHandler.DeleteCategory)
			}

			// 借阅模块(借书/还书登录即可,删除记录仅管理员)
			borrows := authorized.Group("/borrows")
			{
				borrows.GET("", borrowHandler.ListBorrows)
				borrows.POST("", borrowHandler.CreateBorrow)
				borrows.PUT("/:id/return", borrowHandler.ReturnBorrow)
				borrows.DELETE("/:id", authMiddleware.RequireAdmin(), borrowHandler.DeleteBorrow)
			}

			// 入库模块(仅管理员)
			stockRecords := authorized.Group("/stock-records")
			stockRecords.Use(authMiddleware.RequireAdmin())
			{
				stockRecords.GET("", stockRecordHandler.ListStockRecords)
				stockRecords.POST("", stockRecordHandler.CreateStockRecord)
				stockRecords.DELETE("/:id", stockRecordHandler.DeleteStockRecord)
			}

			// 用户模块(仅管理员)
			users := authorized.Group("/users")
			users.Use(authMiddleware.RequireAdmin())
			{
				users.GET("", userHandler.ListUsers)
				users.POST("", userHandler.CreateUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}
		}
	}
}
