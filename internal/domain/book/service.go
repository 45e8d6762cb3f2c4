package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/category"
	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// Service 图书领域服务
// 负责图书写入前的跨聚合校验：作者、分类必须存在
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Book, error)
	Get(ctx context.Context, id uint) (*Book, error)
	List(ctx context.Context, filter ListFilter, page pagination.Request) ([]*Book, int64, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Book, error)
}

type service struct {
	repo         Repository
	authorRepo   author.Repository
	categoryRepo category.Repository
}

// NewService 创建图书服务
func NewService(repo Repository, authorRepo author.Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, authorRepo: authorRepo, categoryRepo: categoryRepo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Book, error) {
	b, err := NewBook(params)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, b.AuthorID, b.CategoryIDs); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	// 重新读取，带出作者和分类摘要
	return s.repo.FindByID(ctx, b.ID)
}

func (s *service) Get(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Request) ([]*Book, int64, error) {
	return s.repo.List(ctx, filter, page)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Apply(params); err != nil {
		return nil, err
	}

	var authorID uint
	if params.AuthorID != nil {
		authorID = b.AuthorID
	}
	var categoryIDs []uint
	if params.CategoryIDs != nil {
		categoryIDs = b.CategoryIDs
	}
	if err := s.checkReferences(ctx, authorID, categoryIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// checkReferences authorID 为 0 或 categoryIDs 为空时跳过对应检查
func (s *service) checkReferences(ctx context.Context, authorID uint, categoryIDs []uint) error {
	if authorID != 0 {
		if _, err := s.authorRepo.FindByID(ctx, authorID); err != nil {
			if errors.Is(err, author.ErrAuthorNotFound) {
				return author.ErrAuthorNotFound.WithDetails(map[string]interface{}{"author_id": authorID})
			}
			return err
		}
	}

	if len(categoryIDs) == 0 {
		return nil
	}
	found, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}
	exists := make(map[uint]struct{}, len(found))
	for _, c := range found {
		exists[c.ID] = struct{}{}
	}
	for _, id := range categoryIDs {
		if _, ok := exists[id]; !ok {
			return category.ErrCategoryNotFound.WithDetails(map[string]interface{}{"category_id": id})
		}
	}
	return nil
}
