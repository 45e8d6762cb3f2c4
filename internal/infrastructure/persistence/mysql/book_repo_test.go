package mysql_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/category"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/testutil"
	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

func TestBookRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewBookRepository(db)
	catRepo := mysql.NewCategoryRepository(db)

	fixture := testutil.BookFixture(t, db, "seed", "1", 1)
	c2, err := category.NewCategory("Science", "science")
	require.NoError(t, err)
	require.NoError(t, catRepo.Create(ctx, c2))

	isbn := "9780134685991"
	b, err := book.NewBook(book.CreateParams{
		Title:       "Effective Go",
		Price:       decimal.RequireFromString("19.99"),
		ISBN13:      &isbn,
		StockCnt:    3,
		AuthorID:    fixture.AuthorID,
		CategoryIDs: []uint{c2.ID},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, b))
	require.NotZero(t, b.ID)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "19.99", got.Price.String())
	require.NotNil(t, got.Author)
	assert.Equal(t, fixture.AuthorID, got.Author.ID)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "science", got.Categories[0].Slug)

	// ISBN 唯一
	dup, err := book.NewBook(book.CreateParams{
		Title: "Copy", Price: decimal.NewFromInt(1), ISBN13: &isbn,
		AuthorID: fixture.AuthorID, CategoryIDs: []uint{c2.ID},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), book.ErrISBNDuplicate)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_ListFiltersAndPaging(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewBookRepository(db)

	testutil.BookFixture(t, db, "Go Programming", "30", 1)
	testutil.BookFixture(t, db, "Rust Programming", "45.50", 1)
	testutil.BookFixture(t, db, "Cooking", "10", 1)

	page := pagination.Parse("1", "10", "price,ASC", book.ListOptions)
	books, total, err := repo.List(ctx, book.ListFilter{Keyword: "programming"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, books, 2)
	assert.Equal(t, "Go Programming", books[0].Title)

	min := decimal.RequireFromString("20")
	max := decimal.RequireFromString("40")
	books, total, err = repo.List(ctx, book.ListFilter{MinPrice: &min, MaxPrice: &max}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Go Programming", books[0].Title)

	// 分页确定性：同样的参数两次返回同样的顺序
	small := pagination.Parse("2", "1", "stock_cnt,DESC", book.ListOptions)
	first, total, err := repo.List(ctx, book.ListFilter{}, small)
	require.NoError(t, err)
	second, _, err := repo.List(ctx, book.ListFilter{}, small)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, first, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	// 库存全部相同，按 id ASC 兜底，第二页是第二本
	assert.Equal(t, "Rust Programming", first[0].Title)
}

func TestBookRepository_ListByCategory(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewBookRepository(db)
	catRepo := mysql.NewCategoryRepository(db)

	b := testutil.BookFixture(t, db, "Tagged", "10", 1)
	testutil.BookFixture(t, db, "Other", "10", 1)

	c, err := category.NewCategory("Special", "special")
	require.NoError(t, err)
	require.NoError(t, catRepo.Create(ctx, c))
	require.NoError(t, db.Create(&mysql.BookCategoryModel{BookID: b.ID, CategoryID: c.ID}).Error)

	books, total, err := repo.List(ctx, book.ListFilter{CategoryID: &c.ID}, pagination.Parse("", "", "", book.ListOptions))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Tagged", books[0].Title)
	assert.Len(t, books[0].Categories, 2)
}

func TestBookRepository_DecreaseStock(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewBookRepository(db)

	b := testutil.BookFixture(t, db, "Limited", "10", 2)

	require.NoError(t, repo.DecreaseStock(ctx, b.ID, 2))
	assert.Equal(t, 0, testutil.StockOf(t, db, b.ID))

	err := repo.DecreaseStock(ctx, b.ID, 1)
	assert.ErrorIs(t, err, book.ErrInsufficientStock)
	assert.Equal(t, 0, testutil.StockOf(t, db, b.ID))

	assert.ErrorIs(t, repo.DecreaseStock(ctx, 9999, 1), book.ErrBookNotFound)
}

func TestBookRepository_DeleteRemovesLinks(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewBookRepository(db)

	b := testutil.BookFixture(t, db, "Gone", "10", 1)
	require.NoError(t, repo.Delete(ctx, b.ID))

	var links int64
	require.NoError(t, db.Model(&mysql.BookCategoryModel{}).Where("book_id = ?", b.ID).Count(&links).Error)
	assert.Zero(t, links)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), book.ErrBookNotFound)
}

func TestBookRepository_KeywordIsLiteral(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := mysql.NewBookRepository(db)

	testutil.BookFixture(t, db, "100% Go", "10", 1)
	testutil.BookFixture(t, db, "snake_case Style", "10", 1)
	testutil.BookFixture(t, db, "Wow! Patterns", "10", 1)
	testutil.BookFixture(t, db, "Plain Title", "10", 1)

	page := pagination.Parse("", "", "", book.ListOptions)
	cases := map[string]string{
		"%":    "100% Go",
		"_":    "snake_case Style",
		"!":    "Wow! Patterns",
		"0% g": "100% Go",
		"e_c":  "snake_case Style",
	}
	for kw, want := range cases {
		books, total, err := repo.List(ctx, book.ListFilter{Keyword: kw}, page)
		require.NoError(t, err, kw)
		assert.EqualValues(t, 1, total, kw)
		require.Len(t, books, 1, kw)
		assert.Equal(t, want, books[0].Title, kw)
	}
}
