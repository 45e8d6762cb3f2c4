package wishlist

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Service 心愿单领域服务
type Service interface {
	// Add 有效重复时返回 ErrAlreadyWished，需要在事务中调用
	Add(ctx context.Context, userID, bookID uint) (*Item, error)

	// ListAll 全部有效条目（管理员）
	ListAll(ctx context.Context, actor user.Principal) ([]*Item, error)

	ListByUser(ctx context.Context, userID uint) ([]*Item, error)

	// Remove 软删除，本人或管理员
	Remove(ctx context.Context, actor user.Principal, id uint) error
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建心愿单服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) Add(ctx context.Context, userID, bookID uint) (*Item, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsActive(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyWished.WithDetails(map[string]interface{}{"user_id": userID, "book_id": bookID})
	}

	item := NewItem(userID, bookID)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) ListAll(ctx context.Context, actor user.Principal) ([]*Item, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.List(ctx, nil)
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*Item, error) {
	return s.repo.List(ctx, &userID)
}

func (s *service) Remove(ctx context.Context, actor user.Principal, id uint) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActFor(item.UserID) {
		return apperrors.ErrForbidden
	}
	return s.repo.SoftDelete(ctx, id)
}
