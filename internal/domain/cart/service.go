package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Service 购物车领域服务
type Service interface {
	// Add 加入购物车，已有有效行时合并，merged 为 true
	// 查找与写入需要在同一事务中执行，由应用层负责开启
	Add(ctx context.Context, userID, bookID uint, quantity int) (item *Item, merged bool, err error)

	List(ctx context.Context, userID uint) ([]*Item, error)

	// UpdateQuantity 本人或管理员
	UpdateQuantity(ctx context.Context, actor user.Principal, id uint, quantity int) (*Item, error)

	// Remove 软删除，本人或管理员
	Remove(ctx context.Context, actor user.Principal, id uint) error
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建购物车服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) Add(ctx context.Context, userID, bookID uint, quantity int) (*Item, bool, error) {
	if quantity < 1 {
		return nil, false, ErrInvalidQuantity
	}
	b, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindActive(ctx, userID, bookID)
	switch {
	case err == nil:
		if err := existing.Merge(quantity, b.Price); err != nil {
			return nil, false, err
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, true, nil
	case !errors.Is(err, ErrItemNotFound):
		return nil, false, err
	}

	item, err := NewItem(userID, bookID, quantity, b.Price)
	if err != nil {
		return nil, false, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, false, err
	}
	return item, false, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]*Item, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdateQuantity(ctx context.Context, actor user.Principal, id uint, quantity int) (*Item, error) {
	item, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := item.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Remove(ctx context.Context, actor user.Principal, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *service) owned(ctx context.Context, actor user.Principal, id uint) (*Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(item.UserID) {
		return nil, apperrors.ErrForbidden
	}
	return item, nil
}
