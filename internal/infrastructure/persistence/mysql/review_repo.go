package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/review"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// =========================================
// 书评
// =========================================

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:    rv.BookID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Title:     rv.Title,
		Content:   rv.Content,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "create review")
	}
	rv.ID = model.ID
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	db := conn(ctx, r.db)
	var model ReviewModel
	if err := db.Scopes(notDeleted("reviews")).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "find review")
	}
	reviews := []*review.Review{toReviewEntity(&model)}
	if err := loadLikeCounts(db, reviews); err != nil {
		return nil, err
	}
	return reviews[0], nil
}

func (r *reviewRepository) List(ctx context.Context, filter review.ListFilter) ([]*review.Review, error) {
	db := conn(ctx, r.db)
	query := db.Scopes(notDeleted("reviews"))
	if filter.BookID != nil {
		query = query.Where("book_id = ?", *filter.BookID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var models []ReviewModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "list reviews")
	}
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	if err := loadLikeCounts(db, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	result := conn(ctx, r.db).Model(&ReviewModel{}).
		Scopes(notDeleted("reviews")).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"rating":     rv.Rating,
			"title":      rv.Title,
			"content":    rv.Content,
			"updated_at": rv.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update review")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now()
	result := conn(ctx, r.db).Model(&ReviewModel{}).
		Scopes(notDeleted("reviews")).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": now, "updated_at": now})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete review")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

type likeCountRow struct {
	ReviewID uint
	Total    int64
}

// loadLikeCounts 一次 GROUP BY 带出点赞数
func loadLikeCounts(db *gorm.DB, reviews []*review.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	ids := make([]uint, len(reviews))
	for i, rv := range reviews {
		ids[i] = rv.ID
	}

	var rows []likeCountRow
	err := db.Model(&ReviewLikeModel{}).
		Select("review_id, COUNT(*) AS total").
		Where("review_id IN ?", ids).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return apperrors.Wrap(err, "count review likes")
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ReviewID] = row.Total
	}
	for _, rv := range reviews {
		rv.LikeCount = counts[rv.ID]
	}
	return nil
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:        m.ID,
		BookID:    m.BookID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// =========================================
// 评论
// =========================================

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) review.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *review.Comment) error {
	model := &CommentModel{
		ReviewID:  c.ReviewID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "create comment")
	}
	c.ID = model.ID
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*review.Comment, error) {
	var model CommentModel
	if err := conn(ctx, r.db).Scopes(notDeleted("comments")).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(err, "find comment")
	}
	return toCommentEntity(&model), nil
}

func (r *commentRepository) ListByReview(ctx context.Context, reviewID uint) ([]*review.Comment, error) {
	var models []CommentModel
	err := conn(ctx, r.db).Scopes(notDeleted("comments")).
		Where("review_id = ?", reviewID).
		Order("created_at ASC").Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "list comments")
	}
	comments := make([]*review.Comment, len(models))
	for i := range models {
		comments[i] = toCommentEntity(&models[i])
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, c *review.Comment) error {
	result := conn(ctx, r.db).Model(&CommentModel{}).
		Scopes(notDeleted("comments")).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{"content": c.Content, "updated_at": c.UpdatedAt})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update comment")
	}
	if result.RowsAffected == 0 {
		return review.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now()
	result := conn(ctx, r.db).Model(&CommentModel{}).
		Scopes(notDeleted("comments")).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": now, "updated_at": now})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete comment")
	}
	if result.RowsAffected == 0 {
		return review.ErrCommentNotFound
	}
	return nil
}

func toCommentEntity(m *CommentModel) *review.Comment {
	return &review.Comment{
		ID:        m.ID,
		ReviewID:  m.ReviewID,
		UserID:    m.UserID,
		ParentID:  m.ParentID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// =========================================
// 点赞
// =========================================

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建点赞仓储
func NewLikeRepository(db *gorm.DB) review.LikeRepository {
	return &likeRepository{db: db}
}

// Create 重复点赞由复合主键拦截
func (r *likeRepository) Create(ctx context.Context, l *review.Like) error {
	model := &ReviewLikeModel{UserID: l.UserID, ReviewID: l.ReviewID, CreatedAt: l.CreatedAt}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrAlreadyLiked.WithDetails(map[string]interface{}{"review_id": l.ReviewID})
		}
		return apperrors.Wrap(err, "create like")
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, reviewID uint) error {
	result := conn(ctx, r.db).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&ReviewLikeModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete like")
	}
	if result.RowsAffected == 0 {
		return review.ErrLikeNotFound
	}
	return nil
}
