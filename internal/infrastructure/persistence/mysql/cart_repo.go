package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/cart"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, item *cart.Item) error {
	model := &CartModel{
		UserID:    item.UserID,
		BookID:    item.BookID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "create cart item")
	}
	item.ID = model.ID
	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id uint) (*cart.Item, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *cartRepository) FindActive(ctx context.Context, userID, bookID uint) (*cart.Item, error) {
	return r.first(conn(ctx, r.db).Where("user_id = ? AND book_id = ?", userID, bookID))
}

func (r *cartRepository) first(query *gorm.DB) (*cart.Item, error) {
	var model CartModel
	if err := query.Scopes(notDeleted("cart")).Order("id ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "find cart item")
	}
	return toCartEntity(&model), nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var models []CartModel
	err := conn(ctx, r.db).Scopes(notDeleted("cart")).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "list cart items")
	}
	items := make([]*cart.Item, len(models))
	for i := range models {
		items[i] = toCartEntity(&models[i])
	}
	return items, nil
}

func (r *cartRepository) Update(ctx context.Context, item *cart.Item) error {
	result := conn(ctx, r.db).Model(&CartModel{}).
		Scopes(notDeleted("cart")).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"updated_at": item.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update cart item")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *cartRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now()
	result := conn(ctx, r.db).Model(&CartModel{}).
		Scopes(notDeleted("cart")).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": now, "updated_at": now})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete cart item")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func toCartEntity(m *CartModel) *cart.Item {
	return &cart.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		BookID:    m.BookID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}
