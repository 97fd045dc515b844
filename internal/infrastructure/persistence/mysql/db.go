package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yushu/bookadmin/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&BookModel{},
		&BorrowModel{},
		&StockRecordModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	NickName  string         `gorm:"size:50;comment:昵称"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role      string         `gorm:"type:varchar(10);not null;default:'user';comment:角色(admin/user)"`
	Status    string         `gorm:"type:varchar(10);not null;default:'on';comment:状态(on/off)"`
	Sex       string         `gorm:"type:varchar(10);comment:性别"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型
// 两级分类:level=1一级分类,level=2二级分类,parent_id指向上级
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:50;not null;comment:分类名称"`
	Level       int       `gorm:"type:tinyint;not null;default:1;comment:分类层级"`
	ParentLevel int       `gorm:"type:tinyint;default:0;comment:上级分类层级"`
	ParentID    uint      `gorm:"index;default:0;comment:上级分类ID"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 设计说明:
// 1. Stock是该图书当前可借数量,只能被AdjustStock的原子UPDATE写入
// 2. BookNo有唯一索引,防止重复
// 3. 添加搜索索引优化列表查询性能
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string         `gorm:"index:idx_search;size:100;comment:作者"`
	BookNo      string         `gorm:"uniqueIndex;size:32;not null;comment:图书编号"`
	Cover       string         `gorm:"size:500;comment:封面图片URL"`
	Description string         `gorm:"type:text;comment:图书描述"`
	Stock       int            `gorm:"not null;default:0;comment:可借库存"`
	CategoryID  uint           `gorm:"index;default:0;comment:分类ID"`
	PublishAt   time.Time      `gorm:"comment:出版时间"`
	CreatedAt   time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BorrowModel GORM借阅记录模型
// 设计说明:
// 1. Status使用int存储(1借出中 2已归还),便于索引
// 2. ReturnDate可空:借出中为NULL,归还时写入一次
// 3. 物理删除(无DeletedAt):删除借出中记录前应用层先补偿库存,
//    软删除会让库存对账多算一条
type BorrowModel struct {
	ID         uint       `gorm:"primaryKey"`
	BookID     uint       `gorm:"index;not null;comment:图书ID"`
	UserID     uint       `gorm:"index;not null;comment:借阅人ID"`
	Status     int        `gorm:"index;type:tinyint;not null;default:1;comment:状态(1借出中2已归还)"`
	BorrowDate time.Time  `gorm:"not null;comment:借出时间"`
	ReturnDate *time.Time `gorm:"comment:归还时间"`
	CreatedAt  time.Time  `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BorrowModel) TableName() string {
	return "borrows"
}

// StockRecordModel GORM入库记录模型
// 入库记录只增不改,删除为物理删除(删除前先扣回库存)
type StockRecordModel struct {
	ID             uint      `gorm:"primaryKey"`
	BookID         uint      `gorm:"index;not null;comment:图书ID"`
	AdminID        uint      `gorm:"index;not null;comment:操作管理员ID"`
	Quantity       int       `gorm:"not null;comment:入库数量"`
	SignatureImage string    `gorm:"type:text;comment:手写签名图片"`
	Remarks        string    `gorm:"type:text;comment:备注"`
	CreatedAt      time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (StockRecordModel) TableName() string {
	return "stock_records"
}
