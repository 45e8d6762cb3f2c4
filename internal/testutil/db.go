// Package testutil 仓储、用例、handler 测试共用的 SQLite 内存库和数据构造
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
)

// NewDB 每个测试一个独立的内存库
// :memory: 库按连接隔离，连接数限制为1，所有查询共享同一个库
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

// UserFixture 直接写库的用户，密码用 MinCost 加密
func UserFixture(t testing.TB, db *gorm.DB, email, password, role string) *mysql.UserModel {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &mysql.UserModel{Email: email, Name: email, Role: role, PasswordHash: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// BookFixture 创建作者、分类和一本图书
func BookFixture(t testing.TB, db *gorm.DB, title, price string, stock int) *mysql.BookModel {
	t.Helper()

	a := &mysql.AuthorModel{Name: "Author of " + title}
	require.NoError(t, db.Create(a).Error)

	var c mysql.CategoryModel
	require.NoError(t, db.Where(mysql.CategoryModel{Slug: "fixture"}).
		Attrs(mysql.CategoryModel{Name: "Fixture"}).
		FirstOrCreate(&c).Error)

	b := &mysql.BookModel{
		Title:    title,
		Price:    decimal.RequireFromString(price),
		StockCnt: stock,
		Status:   "ACTIVE",
		AuthorID: a.ID,
	}
	require.NoError(t, db.Create(b).Error)
	require.NoError(t, db.Create(&mysql.BookCategoryModel{BookID: b.ID, CategoryID: c.ID}).Error)
	return b
}

// StockOf 读取当前库存
func StockOf(t testing.TB, db *gorm.DB, bookID uint) int {
	t.Helper()
	var b mysql.BookModel
	require.NoError(t, db.Select("stock_cnt").First(&b, bookID).Error)
	return b.StockCnt
}
