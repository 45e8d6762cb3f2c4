package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/category"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

// seedAdmin 创建管理员账号时使用的主体
var seedAdmin = &user.Principal{Role: user.RoleAdmin}

type seedUser struct {
	email    string
	password string
	name     string
	role     user.Role
}

var seedUsers = []seedUser{
	{email: "admin@example.com", password: "Admin123!", name: "Admin", role: user.RoleAdmin},
	{email: "user1@example.com", password: "User1123!", name: "User1", role: user.RoleUser},
}

// Seeder 初始数据，已存在的行跳过，可以重复执行
type Seeder struct {
	db         *gorm.DB
	users      user.Service
	userRepo   user.Repository
	authors    author.Service
	categories category.Service
	books      book.Service
}

// NewSeeder 基于数据库连接组装领域服务
func NewSeeder(db *gorm.DB, users user.Service) *Seeder {
	authorRepo := mysql.NewAuthorRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	return &Seeder{
		db:         db,
		users:      users,
		userRepo:   mysql.NewUserRepository(db),
		authors:    author.NewService(authorRepo),
		categories: category.NewService(categoryRepo),
		books:      book.NewService(mysql.NewBookRepository(db), authorRepo, categoryRepo),
	}
}

// Result 本次新建的行数
type Result struct {
	Users      int
	Categories int
	Authors    int
	Books      int
}

// Run 依次写入用户、分类、作者、图书
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	for _, su := range seedUsers {
		created, err := s.ensureUser(ctx, su)
		if err != nil {
			return res, err
		}
		if created {
			res.Users++
		}
	}

	categoryID, created, err := s.ensureCategory(ctx, "Tech", "tech")
	if err != nil {
		return res, err
	}
	if created {
		res.Categories++
	}

	authorID, created, err := s.ensureAuthor(ctx, "Seed Author")
	if err != nil {
		return res, err
	}
	if created {
		res.Authors++
	}

	created, err = s.ensureBook(ctx, book.CreateParams{
		Title:       "Seed Book",
		Description: "Seeded for local development",
		Price:       decimal.NewFromInt(15000),
		StockCnt:    50,
		AuthorID:    authorID,
		CategoryIDs: []uint{categoryID},
	})
	if err != nil {
		return res, err
	}
	if created {
		res.Books++
	}
	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, su seedUser) (bool, error) {
	_, err := s.userRepo.FindByEmail(ctx, su.email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return false, err
	}

	u, err := s.users.Register(ctx, seedAdmin, user.RegisterParams{
		Email:    su.email,
		Password: su.password,
		Name:     su.name,
		Role:     su.role,
	})
	if err != nil {
		return false, err
	}
	logger.Info("seeded user", map[string]interface{}{"id": u.ID, "email": u.Email, "role": u.Role})
	return true, nil
}

func (s *Seeder) ensureCategory(ctx context.Context, name, slug string) (uint, bool, error) {
	var existing mysql.CategoryModel
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	c, err := s.categories.Create(ctx, name, slug)
	if err != nil {
		return 0, false, err
	}
	logger.Info("seeded category", map[string]interface{}{"id": c.ID, "slug": c.Slug})
	return c.ID, true, nil
}

func (s *Seeder) ensureAuthor(ctx context.Context, name string) (uint, bool, error) {
	var existing mysql.AuthorModel
	err := s.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&existing).Error
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	a, err := s.authors.Create(ctx, name, "")
	if err != nil {
		return 0, false, err
	}
	logger.Info("seeded author", map[string]interface{}{"id": a.ID, "name": a.Name})
	return a.ID, true, nil
}

func (s *Seeder) ensureBook(ctx context.Context, params book.CreateParams) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&mysql.BookModel{}).Where("title = ?", params.Title).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	b, err := s.books.Create(ctx, params)
	if err != nil {
		return false, err
	}
	logger.Info("seeded book", map[string]interface{}{"id": b.ID, "title": b.Title})
	return true, nil
}
