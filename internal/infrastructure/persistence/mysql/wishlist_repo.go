package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/wishlist"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, item *wishlist.Item) error {
	model := &WishlistModel{UserID: item.UserID, BookID: item.BookID, CreatedAt: item.CreatedAt}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "create wishlist item")
	}
	item.ID = model.ID
	return nil
}

func (r *wishlistRepository) FindByID(ctx context.Context, id uint) (*wishlist.Item, error) {
	var model WishlistModel
	if err := conn(ctx, r.db).Scopes(notDeleted("wishlists")).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wishlist.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "find wishlist item")
	}
	return toWishlistEntity(&model), nil
}

func (r *wishlistRepository) ExistsActive(ctx context.Context, userID, bookID uint) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&WishlistModel{}).
		Scopes(notDeleted("wishlists")).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&n).Error
	if err != nil {
		return false, apperrors.Wrap(err, "check wishlist item")
	}
	return n > 0, nil
}

func (r *wishlistRepository) List(ctx context.Context, userID *uint) ([]*wishlist.Item, error) {
	query := conn(ctx, r.db).Scopes(notDeleted("wishlists"))
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var models []WishlistModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "list wishlist items")
	}
	items := make([]*wishlist.Item, len(models))
	for i := range models {
		items[i] = toWishlistEntity(&models[i])
	}
	return items, nil
}

func (r *wishlistRepository) SoftDelete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Model(&WishlistModel{}).
		Scopes(notDeleted("wishlists")).
		Where("id = ?", id).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete wishlist item")
	}
	if result.RowsAffected == 0 {
		return wishlist.ErrItemNotFound
	}
	return nil
}

func toWishlistEntity(m *WishlistModel) *wishlist.Item {
	return &wishlist.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		BookID:    m.BookID,
		CreatedAt: m.CreatedAt,
		DeletedAt: m.DeletedAt,
	}
}
