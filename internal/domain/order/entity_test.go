package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(1, []Item{
		{BookID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10000")},
		{BookID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")},
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder_ComputesExactTotal(t *testing.T) {
	o := newTestOrder(t)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "20019.99", o.TotalAmount.String())
	assert.Nil(t, o.PaidAt)
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := NewOrder(1, nil)
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = NewOrder(1, []Item{{BookID: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestTransition_HappyPath(t *testing.T) {
	o := newTestOrder(t)
	total := o.TotalAmount
	now := time.Now()

	from, err := o.TransitionTo(StatusPaid, now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, from)
	require.NotNil(t, o.PaidAt)

	_, err = o.TransitionTo(StatusShipped, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = o.TransitionTo(StatusCompleted, now.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, o.Status)
	assert.True(t, total.Equal(o.TotalAmount))
}

func TestTransition_PaidAtSetOnce(t *testing.T) {
	o := newTestOrder(t)
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := o.TransitionTo(StatusPaid, first)
	require.NoError(t, err)
	_, err = o.TransitionTo(StatusPaid, first.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, o.Status)
	assert.True(t, o.PaidAt.Equal(first))
}

func TestTransition_CancelledIsTerminal(t *testing.T) {
	o := newTestOrder(t)
	_, err := o.TransitionTo(StatusCancelled, time.Now())
	require.NoError(t, err)

	for _, target := range AllStatuses {
		_, err := o.TransitionTo(target, time.Now())
		assert.ErrorIs(t, err, ErrOrderCancelled)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	}
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestTransition_NoCancelAfterShipped(t *testing.T) {
	o := newTestOrder(t)
	_, err := o.TransitionTo(StatusPaid, time.Now())
	require.NoError(t, err)
	_, err = o.TransitionTo(StatusShipped, time.Now())
	require.NoError(t, err)

	_, err = o.TransitionTo(StatusCancelled, time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, StatusShipped, o.Status)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("REFUNDED")
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "allowed")
}
