package review

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Service 书评、评论、点赞领域服务
// 创建类方法接收已确定的 userID，修改和删除接收 actor 做归属判断
type Service interface {
	Create(ctx context.Context, userID uint, params CreateParams) (*Review, error)
	Get(ctx context.Context, id uint) (*Review, error)
	List(ctx context.Context, filter ListFilter) ([]*Review, error)
	Update(ctx context.Context, actor user.Principal, id uint, params UpdateParams) (*Review, error)
	Delete(ctx context.Context, actor user.Principal, id uint) error

	// AddComment parentID 非空时必须是同一书评下的有效评论
	AddComment(ctx context.Context, userID, reviewID uint, parentID *uint, content string) (*Comment, error)
	ListComments(ctx context.Context, reviewID uint) ([]*Comment, error)
	EditComment(ctx context.Context, actor user.Principal, id uint, content string) (*Comment, error)
	DeleteComment(ctx context.Context, actor user.Principal, id uint) error

	Like(ctx context.Context, userID, reviewID uint) (*Like, error)
	Unlike(ctx context.Context, userID, reviewID uint) error
}

type service struct {
	repo        Repository
	commentRepo CommentRepository
	likeRepo    LikeRepository
	bookRepo    book.Repository
}

// NewService 创建书评服务
func NewService(repo Repository, commentRepo CommentRepository, likeRepo LikeRepository, bookRepo book.Repository) Service {
	return &service{repo: repo, commentRepo: commentRepo, likeRepo: likeRepo, bookRepo: bookRepo}
}

func (s *service) Create(ctx context.Context, userID uint, params CreateParams) (*Review, error) {
	r, err := NewReview(userID, params)
	if err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.FindByID(ctx, params.BookID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Review, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor user.Principal, id uint, params UpdateParams) (*Review, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(r.UserID) {
		return nil, apperrors.ErrForbidden
	}
	if err := r.Apply(params); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, actor user.Principal, id uint) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActFor(r.UserID) {
		return apperrors.ErrForbidden
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *service) AddComment(ctx context.Context, userID, reviewID uint, parentID *uint, content string) (*Comment, error) {
	if _, err := s.repo.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}
	if parentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ReviewID != reviewID {
			return nil, ErrParentMismatch.WithDetails(map[string]interface{}{"parent_id": *parentID})
		}
	}

	c, err := NewComment(reviewID, userID, parentID, content)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListComments(ctx context.Context, reviewID uint) ([]*Comment, error) {
	if _, err := s.repo.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID)
}

func (s *service) EditComment(ctx context.Context, actor user.Principal, id uint, content string) (*Comment, error) {
	c, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(c.UserID) {
		return nil, apperrors.ErrForbidden
	}
	if err := c.Edit(content); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteComment(ctx context.Context, actor user.Principal, id uint) error {
	c, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActFor(c.UserID) {
		return apperrors.ErrForbidden
	}
	return s.commentRepo.SoftDelete(ctx, id)
}

func (s *service) Like(ctx context.Context, userID, reviewID uint) (*Like, error) {
	if _, err := s.repo.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}
	l := &Like{UserID: userID, ReviewID: reviewID, CreatedAt: time.Now()}
	if err := s.likeRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Unlike(ctx context.Context, userID, reviewID uint) error {
	if _, err := s.repo.FindByID(ctx, reviewID); err != nil {
		return err
	}
	return s.likeRepo.Delete(ctx, userID, reviewID)
}
