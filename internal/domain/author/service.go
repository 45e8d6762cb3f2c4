package author

import (
	"context"
)

// Service 作者领域服务
type Service interface {
	Create(ctx context.Context, name, bio string) (*Author, error)
	Get(ctx context.Context, id uint) (*Author, error)
	List(ctx context.Context) ([]*Author, error)
	Update(ctx context.Context, id uint, name, bio *string) (*Author, error)

	// Delete 有图书引用时返回 ErrAuthorInUse
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建作者服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, name, bio string) (*Author, error) {
	a, err := NewAuthor(name, bio)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Author, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uint, name, bio *string) (*Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Update(name, bio); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrAuthorInUse.WithDetails(map[string]interface{}{"author_id": id, "book_count": n})
	}
	return s.repo.Delete(ctx, id)
}
