package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookworm/internal/infrastructure/config"
	"github.com/xiebiao/bookworm/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 按配置自动迁移表结构、写入演示数据
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
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
	logger.L().Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("database connected")

	// 生产环境应使用版本化的迁移脚本
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// AutoMigrate 迁移全部表结构（测试中的SQLite使用同一份模型）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&CategoryModel{},
		&BookModel{},
		&DiscountModel{},
		&ReviewModel{},
		&OrderModel{},
		&OrderItemModel{},
		&RefreshTokenModel{},
	)
}

// =========================================
// 数据模型（GORM Model）
// =========================================
// 注意：Model只负责表结构映射，业务逻辑在domain实体中

// UserModel 用户表
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"type:varchar(50);not null;comment:名"`
	LastName  string    `gorm:"type:varchar(50);not null;comment:姓"`
	Email     string    `gorm:"type:varchar(70);uniqueIndex;not null;comment:邮箱(登录名)"`
	Password  string    `gorm:"type:varchar(255);not null;comment:bcrypt哈希"`
	Admin     bool      `gorm:"not null;default:false;comment:管理员"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

// AuthorModel 作者表
type AuthorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:author_name;type:varchar(255);not null;index;comment:作者名"`
	Bio  string `gorm:"column:author_bio;type:text;comment:简介"`
}

func (AuthorModel) TableName() string { return "authors" }

// CategoryModel 分类表
type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"column:category_name;type:varchar(120);not null;index;comment:分类名"`
	Description string `gorm:"column:category_desc;type:varchar(255);comment:描述"`
}

func (CategoryModel) TableName() string { return "categories" }

// BookModel 图书表
type BookModel struct {
	ID         uint            `gorm:"primaryKey"`
	Title      string          `gorm:"column:book_title;type:varchar(255);not null;comment:书名"`
	Summary    string          `gorm:"column:book_summary;type:text;comment:简介"`
	Price      decimal.Decimal `gorm:"column:book_price;type:decimal(5,2);not null;comment:原价"`
	CoverPhoto string          `gorm:"column:book_cover_photo;type:varchar(20);comment:封面"`
	CategoryID *uint           `gorm:"index;comment:分类ID"`
	AuthorID   *uint           `gorm:"index;comment:作者ID"`
	CreatedAt  time.Time       `gorm:"not null"`
}

func (BookModel) TableName() string { return "books" }

// DiscountModel 折扣表
// 日期统一存UTC零点，end为NULL表示长期有效
type DiscountModel struct {
	ID        uint            `gorm:"primaryKey"`
	BookID    uint            `gorm:"not null;index;comment:图书ID"`
	StartDate time.Time       `gorm:"column:discount_start_date;type:date;not null;comment:开始日期(含)"`
	EndDate   *time.Time      `gorm:"column:discount_end_date;type:date;comment:结束日期(不含)"`
	Price     decimal.Decimal `gorm:"column:discount_price;type:decimal(5,2);not null;comment:折后价"`
}

func (DiscountModel) TableName() string { return "discounts" }

// ReviewModel 评论表
type ReviewModel struct {
	ID         uint      `gorm:"primaryKey"`
	BookID     uint      `gorm:"not null;index;comment:图书ID"`
	Title      string    `gorm:"column:review_title;type:varchar(120);not null;comment:标题"`
	Details    string    `gorm:"column:review_details;type:text;comment:内容"`
	ReviewDate time.Time `gorm:"column:review_date;not null;comment:评论时间"`
	RatingStar int       `gorm:"column:rating_star;not null;comment:星级1-5"`
}

func (ReviewModel) TableName() string { return "reviews" }

// OrderModel 订单表
type OrderModel struct {
	ID        uint             `gorm:"primaryKey"`
	UserID    uint             `gorm:"not null;index;comment:用户ID"`
	OrderDate time.Time        `gorm:"column:order_date;not null;comment:下单时间"`
	Amount    decimal.Decimal  `gorm:"column:order_amount;type:decimal(8,2);not null;comment:订单总额"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细表
type OrderItemModel struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uint            `gorm:"not null;index;comment:订单ID"`
	BookID   uint            `gorm:"not null;index;comment:图书ID"`
	Quantity int             `gorm:"not null;comment:数量"`
	Price    decimal.Decimal `gorm:"type:decimal(5,2);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// RefreshTokenModel Refresh Token记录（只存哈希）
type RefreshTokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index;comment:用户ID"`
	JTI       string    `gorm:"column:jti;type:varchar(64);uniqueIndex;not null;comment:Token唯一标识"`
	TokenHash string    `gorm:"type:char(64);not null;comment:SHA-256"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Revoked   bool      `gorm:"not null;default:false;index"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }
