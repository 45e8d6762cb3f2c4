package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/cart"
	"github.com/xiebiao/bookstore-api/internal/domain/review"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/domain/wishlist"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/testutil"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

type env struct {
	db       *gorm.DB
	cart     *CartUseCase
	wishlist *WishlistUseCase
	review   *ReviewUseCase
	reviews  review.Service
	alice    user.Principal
	bob      user.Principal
	admin    user.Principal
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	tx := mysql.NewTxManager(db)
	bookRepo := mysql.NewBookRepository(db)
	users := user.NewServiceWithCost(mysql.NewUserRepository(db), bcrypt.MinCost)
	reviews := review.NewService(
		mysql.NewReviewRepository(db),
		mysql.NewCommentRepository(db),
		mysql.NewLikeRepository(db),
		bookRepo,
	)

	alice := testutil.UserFixture(t, db, "alice@example.com", "secret123", "USER")
	bob := testutil.UserFixture(t, db, "bob@example.com", "secret123", "USER")
	admin := testutil.UserFixture(t, db, "admin@example.com", "secret123", "ADMIN")

	return &env{
		db:       db,
		cart:     NewCartUseCase(users, cart.NewService(mysql.NewCartRepository(db), bookRepo), tx),
		wishlist: NewWishlistUseCase(users, wishlist.NewService(mysql.NewWishlistRepository(db), bookRepo), tx),
		review:   NewReviewUseCase(users, reviews),
		reviews:  reviews,
		alice:    user.Principal{UserID: alice.ID, Role: user.RoleUser},
		bob:      user.Principal{UserID: bob.ID, Role: user.RoleUser},
		admin:    user.Principal{UserID: admin.ID, Role: user.RoleAdmin},
	}
}

func TestCart_AddMergesActiveRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b := testutil.BookFixture(t, e.db, "Merge", "15.00", 10)

	first, merged, err := e.cart.Add(ctx, e.alice, AddToCartRequest{BookID: b.ID, Quantity: 1})
	require.NoError(t, err)
	assert.False(t, merged)

	// 改价后再次加入，单价刷新为当前价格
	require.NoError(t, e.db.Model(&mysql.BookModel{}).Where("id = ?", b.ID).Update("price", "12.00").Error)

	second, merged, err := e.cart.Add(ctx, e.alice, AddToCartRequest{BookID: b.ID, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)
	assert.Equal(t, "12.00", second.UnitPrice.StringFixed(2))

	items, err := e.cart.List(ctx, e.alice, nil)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCart_AddAfterRemoveCreatesNewRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b := testutil.BookFixture(t, e.db, "Again", "1.00", 10)

	first, _, err := e.cart.Add(ctx, e.alice, AddToCartRequest{BookID: b.ID, Quantity: 1})
	require.NoError(t, err)
	carts := cart.NewService(mysql.NewCartRepository(e.db), mysql.NewBookRepository(e.db))
	require.NoError(t, carts.Remove(ctx, e.alice, first.ID))

	second, merged, err := e.cart.Add(ctx, e.alice, AddToCartRequest{BookID: b.ID, Quantity: 1})
	require.NoError(t, err)
	assert.False(t, merged)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCart_TargetUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b := testutil.BookFixture(t, e.db, "Target", "1.00", 10)

	bobID := e.bob.UserID
	_, _, err := e.cart.Add(ctx, e.alice, AddToCartRequest{UserID: &bobID, BookID: b.ID, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	item, _, err := e.cart.Add(ctx, e.admin, AddToCartRequest{UserID: &bobID, BookID: b.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, bobID, item.UserID)

	_, err = e.cart.List(ctx, e.alice, &bobID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = e.cart.Add(ctx, e.alice, AddToCartRequest{BookID: 999, Quantity: 1})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestWishlist_ActiveDuplicate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b := testutil.BookFixture(t, e.db, "Wish", "1.00", 1)

	item, err := e.wishlist.Add(ctx, e.alice, nil, b.ID)
	require.NoError(t, err)

	_, err = e.wishlist.Add(ctx, e.alice, nil, b.ID)
	assert.ErrorIs(t, err, wishlist.ErrAlreadyWished)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicate))

	// 其他用户不受影响
	_, err = e.wishlist.Add(ctx, e.bob, nil, b.ID)
	require.NoError(t, err)

	wishlists := wishlist.NewService(mysql.NewWishlistRepository(e.db), mysql.NewBookRepository(e.db))
	assert.ErrorIs(t, wishlists.Remove(ctx, e.bob, item.ID), apperrors.ErrForbidden)
	require.NoError(t, wishlists.Remove(ctx, e.alice, item.ID))

	_, err = e.wishlist.Add(ctx, e.alice, nil, b.ID)
	assert.NoError(t, err)
}

func TestReview_CommentsAndLikes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b := testutil.BookFixture(t, e.db, "Reviewed", "1.00", 1)

	rv, err := e.review.Create(ctx, e.alice, nil, review.CreateParams{BookID: b.ID, Rating: 5, Content: "great"})
	require.NoError(t, err)

	_, err = e.review.Create(ctx, e.alice, nil, review.CreateParams{BookID: b.ID, Rating: 6})
	assert.ErrorIs(t, err, review.ErrInvalidRating)

	root, err := e.review.Comment(ctx, e.bob, AddCommentRequest{ReviewID: rv.ID, Content: "agreed"})
	require.NoError(t, err)
	reply, err := e.review.Comment(ctx, e.alice, AddCommentRequest{ReviewID: rv.ID, ParentID: &root.ID, Content: "thanks"})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *reply.ParentID)

	aliceID := e.alice.UserID
	_, err = e.review.Comment(ctx, e.bob, AddCommentRequest{UserID: &aliceID, ReviewID: rv.ID, Content: "spoof"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = e.reviews.Like(ctx, e.bob.UserID, rv.ID)
	require.NoError(t, err)
	_, err = e.reviews.Like(ctx, e.bob.UserID, rv.ID)
	assert.ErrorIs(t, err, review.ErrAlreadyLiked)

	got, err := e.reviews.Get(ctx, rv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.LikeCount)

	require.NoError(t, e.reviews.Unlike(ctx, e.bob.UserID, rv.ID))
	assert.ErrorIs(t, e.reviews.Unlike(ctx, e.bob.UserID, rv.ID), review.ErrLikeNotFound)
}
