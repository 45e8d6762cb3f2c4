package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

// NewDB 创建数据库连接
// 1. 连接池参数来自配置
// 2. database.debug 为 true 时打印SQL，否则静默
// 3. database.auto_migrate 为 true 时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Database.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
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
	logger.Info("database connected", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.DBName,
	})

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}
	return db, nil
}

// AutoMigrate 自动迁移表结构
// 只会创建表、添加字段，生产环境的结构变更仍应走版本化脚本
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&CategoryModel{},
		&BookModel{},
		&BookCategoryModel{},
		&CartModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
		&CommentModel{},
		&ReviewLikeModel{},
		&WishlistModel{},
	)
}

// =========================================
// GORM 数据模型
// 领域实体不依赖GORM，Repository 负责两者之间的转换
// 软删除统一用可空的 deleted_at，每个查询自己写 deleted_at IS NULL
// =========================================

// UserModel 用户表
type UserModel struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Name         string     `gorm:"size:100;not null;comment:名称"`
	BirthDate    *time.Time `gorm:"type:date"`
	Gender       string     `gorm:"size:10"`
	Address      string     `gorm:"size:255"`
	PhoneNumber  string     `gorm:"size:30"`
	Role         string     `gorm:"size:20;not null;default:USER;comment:USER/ADMIN"`
	PasswordHash string     `gorm:"size:255;not null;comment:bcrypt"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time `gorm:"index"`
}

func (UserModel) TableName() string { return "users" }

// AuthorModel 作者表
type AuthorModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null"`
	Bio       string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AuthorModel) TableName() string { return "authors" }

// CategoryModel 分类表
type CategoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:100;not null"`
	Slug      string `gorm:"uniqueIndex;size:120;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CategoryModel) TableName() string { return "categories" }

// BookModel 图书表
// 1. 价格 decimal(12,2)，Go 侧用 decimal.Decimal 读写
// 2. isbn13 可空唯一，多个 NULL 不冲突
type BookModel struct {
	ID            uint            `gorm:"primaryKey"`
	Title         string          `gorm:"size:255;not null;index"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ISBN13        *string         `gorm:"column:isbn13;size:13;uniqueIndex"`
	Publisher     string          `gorm:"size:255"`
	PublishedDate *time.Time      `gorm:"type:date"`
	StockCnt      int             `gorm:"not null;default:0;comment:库存，不允许为负"`
	Status        string          `gorm:"size:20;not null;default:ACTIVE;index"`
	AuthorID      uint            `gorm:"not null;index"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

func (BookModel) TableName() string { return "books" }

// BookCategoryModel 图书-分类关联表，(book_id, category_id) 复合主键
type BookCategoryModel struct {
	BookID     uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time
}

func (BookCategoryModel) TableName() string { return "book_categories" }

// CartModel 购物车表
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"not null;index:idx_cart_user_book"`
	BookID    uint            `gorm:"not null;index:idx_cart_user_book"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:加入时的价格快照"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

func (CartModel) TableName() string { return "cart" }

// OrderModel 订单表
type OrderModel struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	Status      string          `gorm:"size:20;not null;default:PENDING;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:创建后不可修改"`
	PaidAt      *time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
	DeletedAt   *time.Time `gorm:"index"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细表，unit_price 是下单时的价格快照
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	BookID    uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

func (OrderItemModel) TableName() string { return "order_items" }

// ReviewModel 书评表
type ReviewModel struct {
	ID        uint   `gorm:"primaryKey"`
	BookID    uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Rating    int    `gorm:"not null"`
	Title     string `gorm:"size:255"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

func (ReviewModel) TableName() string { return "reviews" }

// CommentModel 评论表，parent_id 自关联形成树
type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	ReviewID  uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	ParentID  *uint  `gorm:"index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

func (CommentModel) TableName() string { return "comments" }

// ReviewLikeModel 点赞表，(user_id, review_id) 复合主键
type ReviewLikeModel struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	ReviewID  uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (ReviewLikeModel) TableName() string { return "review_likes" }

// WishlistModel 心愿单表
type WishlistModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index:idx_wishlist_user_book"`
	BookID    uint `gorm:"not null;index:idx_wishlist_user_book"`
	CreatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

func (WishlistModel) TableName() string { return "wishlists" }
