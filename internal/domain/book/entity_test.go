package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateParams() CreateParams {
	return CreateParams{
		Title:       "Go in Action",
		Price:       decimal.RequireFromString("15000"),
		StockCnt:    5,
		AuthorID:    1,
		CategoryIDs: []uint{2, 1, 2},
	}
}

func TestNewBook_Defaults(t *testing.T) {
	b, err := NewBook(validCreateParams())
	require.NoError(t, err)

	assert.Equal(t, StatusActive, b.Status)
	assert.Equal(t, []uint{2, 1}, b.CategoryIDs)
	assert.Nil(t, b.ISBN13)
}

func TestNewBook_Validation(t *testing.T) {
	cases := []struct {
		name   string
		modify func(p *CreateParams)
		want   error
	}{
		{"empty title", func(p *CreateParams) { p.Title = " " }, ErrInvalidTitle},
		{"negative price", func(p *CreateParams) { p.Price = decimal.RequireFromString("-1") }, ErrInvalidPrice},
		{"three decimals", func(p *CreateParams) { p.Price = decimal.RequireFromString("1.005") }, ErrInvalidPrice},
		{"negative stock", func(p *CreateParams) { p.StockCnt = -1 }, ErrInvalidStock},
		{"no author", func(p *CreateParams) { p.AuthorID = 0 }, ErrAuthorRequired},
		{"no category", func(p *CreateParams) { p.CategoryIDs = nil }, ErrCategoryRequired},
		{"bad isbn", func(p *CreateParams) { s := "12345"; p.ISBN13 = &s }, ErrInvalidISBN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validCreateParams()
			tc.modify(&p)
			_, err := NewBook(p)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewBook_ISBNNormalized(t *testing.T) {
	p := validCreateParams()
	isbn := "978-0-13-468599-1"
	p.ISBN13 = &isbn

	b, err := NewBook(p)
	require.NoError(t, err)
	require.NotNil(t, b.ISBN13)
	assert.Equal(t, "9780134685991", *b.ISBN13)
}

func TestBook_ApplyPartial(t *testing.T) {
	b, err := NewBook(validCreateParams())
	require.NoError(t, err)

	price := decimal.RequireFromString("99.90")
	stock := 0
	require.NoError(t, b.Apply(UpdateParams{Price: &price, StockCnt: &stock}))

	assert.True(t, price.Equal(b.Price))
	assert.Equal(t, 0, b.StockCnt)
	assert.Equal(t, "Go in Action", b.Title)

	neg := -3
	assert.ErrorIs(t, b.Apply(UpdateParams{StockCnt: &neg}), ErrInvalidStock)
}
