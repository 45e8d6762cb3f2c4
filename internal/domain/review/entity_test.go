package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview_Rating(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		_, err := NewReview(1, CreateParams{BookID: 1, Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}

	r, err := NewReview(1, CreateParams{BookID: 1, Rating: 5, Title: " Great "})
	require.NoError(t, err)
	assert.Equal(t, "Great", r.Title)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestReview_ApplyPartial(t *testing.T) {
	r, err := NewReview(1, CreateParams{BookID: 1, Rating: 3, Title: "ok", Content: "fine"})
	require.NoError(t, err)

	rating := 4
	require.NoError(t, r.Apply(UpdateParams{Rating: &rating}))
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, "ok", r.Title)
	assert.Equal(t, "fine", r.Content)
}

func TestComment_Content(t *testing.T) {
	_, err := NewComment(1, 1, nil, "   ")
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = NewComment(1, 1, nil, strings.Repeat("x", 2001))
	assert.ErrorIs(t, err, ErrInvalidContent)

	parent := uint(3)
	c, err := NewComment(1, 1, &parent, "reply")
	require.NoError(t, err)
	assert.Equal(t, uint(3), *c.ParentID)
}
