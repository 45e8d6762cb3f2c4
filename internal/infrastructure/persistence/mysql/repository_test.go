package mysql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/internal/domain/category"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/review"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/testutil"
	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

func TestUserRepository_SoftDeleteHidesUser(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewUserRepository(db)

	u := user.NewUser("alice@example.com", "hash", "Alice", user.RoleUser)
	require.NoError(t, repo.Create(ctx, u))

	dup := user.NewUser("alice@example.com", "hash", "Alice 2", user.RoleUser)
	assert.ErrorIs(t, repo.Create(ctx, dup), user.ErrEmailDuplicate)

	require.NoError(t, repo.SoftDelete(ctx, u.ID))

	_, err := repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCategoryRepository_DuplicateAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewCategoryRepository(db)

	b := testutil.BookFixture(t, db, "Linked", "1", 1)
	var link mysql.BookCategoryModel
	require.NoError(t, db.Where("book_id = ?", b.ID).First(&link).Error)

	dup, err := category.NewCategory("Another", "fixture")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), category.ErrCategoryDuplicate)

	require.NoError(t, repo.Delete(ctx, link.CategoryID))
	var n int64
	require.NoError(t, db.Model(&mysql.BookCategoryModel{}).Where("category_id = ?", link.CategoryID).Count(&n).Error)
	assert.Zero(t, n)
	assert.ErrorIs(t, repo.Delete(ctx, link.CategoryID), category.ErrCategoryNotFound)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tx := mysql.NewTxManager(db)
	orders := mysql.NewOrderRepository(db)
	books := mysql.NewBookRepository(db)

	b := testutil.BookFixture(t, db, "Rollback", "10", 5)
	boom := errors.New("boom")

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		o, err := order.NewOrder(1, []order.Item{{BookID: b.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(10)}})
		require.NoError(t, err)
		require.NoError(t, orders.Create(ctx, o))
		require.NoError(t, books.DecreaseStock(ctx, b.ID, 2))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&mysql.OrderModel{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&mysql.OrderItemModel{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 5, testutil.StockOf(t, db, b.ID))
}

func TestOrderRepository_StatusUpdateKeepsTotal(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewOrderRepository(db)

	o, err := order.NewOrder(7, []order.Item{
		{BookID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10000")},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, o))

	o.TotalAmount = decimal.NewFromInt(1)
	from, err := o.TransitionTo(order.StatusPaid, o.CreatedAt)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, o, from))

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, got.Status)
	assert.Equal(t, "20000", got.TotalAmount.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, "10000", got.Items[0].UnitPrice.String())

	uid := uint(7)
	list, total, err := repo.List(ctx, order.ListFilter{UserID: &uid}, pagination.Parse("", "", "", order.ListOptions))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.SoftDelete(ctx, o.ID))
	_, err = repo.FindByID(ctx, o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrderRepository_StatusUpdateGuardsCurrentStatus(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewOrderRepository(db)

	o, err := order.NewOrder(7, []order.Item{
		{BookID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("5")},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, o))

	// 两个请求读到同一个 PENDING 订单
	first, err := repo.LockByID(ctx, o.ID)
	require.NoError(t, err)
	second, err := repo.LockByID(ctx, o.ID)
	require.NoError(t, err)

	from, err := first.TransitionTo(order.StatusCancelled, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, first, from))

	from, err = second.TransitionTo(order.StatusPaid, time.Now())
	require.NoError(t, err)
	err = repo.UpdateStatus(ctx, second, from)
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, got.Status)
	assert.Nil(t, got.PaidAt)

	_, err = repo.LockByID(ctx, 999)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestLikeRepository_Uniqueness(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	reviews := mysql.NewReviewRepository(db)
	likes := mysql.NewLikeRepository(db)

	rv, err := review.NewReview(1, review.CreateParams{BookID: 1, Rating: 5})
	require.NoError(t, err)
	require.NoError(t, reviews.Create(ctx, rv))

	like := &review.Like{UserID: 2, ReviewID: rv.ID}
	require.NoError(t, likes.Create(ctx, like))
	assert.ErrorIs(t, likes.Create(ctx, like), review.ErrAlreadyLiked)

	got, err := reviews.FindByID(ctx, rv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.LikeCount)

	require.NoError(t, likes.Delete(ctx, 2, rv.ID))
	assert.ErrorIs(t, likes.Delete(ctx, 2, rv.ID), review.ErrLikeNotFound)
}

func TestCommentRepository_SoftDeleteKeepsChildren(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	comments := mysql.NewCommentRepository(db)

	parent, err := review.NewComment(1, 1, nil, "parent")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, parent))
	child, err := review.NewComment(1, 2, &parent.ID, "child")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, child))

	require.NoError(t, comments.SoftDelete(ctx, parent.ID))

	list, err := comments.ListByReview(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, child.ID, list[0].ID)
	assert.Equal(t, parent.ID, *list[0].ParentID)
}
