package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryItem_Reserve(t *testing.T) {
	item := InventoryItem{ID: 7, Stock: 5, Book: Book{ID: 70, Price: 12.5}}

	require.NoError(t, item.Reserve(3))
	assert.Equal(t, int32(2), item.Stock)

	err := item.Reserve(3)
	require.ErrorIs(t, err, ErrInsufficientStock)
	// A failed reservation leaves the snapshot untouched.
	assert.Equal(t, int32(2), item.Stock)

	require.ErrorIs(t, item.Reserve(0), ErrInvalidQuantity)

	item.Release(3)
	assert.Equal(t, int32(5), item.Stock)
}

func TestOrderLine_Validate(t *testing.T) {
	require.NoError(t, OrderLine{InventoryItemID: 1, Quantity: 1}.Validate())
	require.ErrorIs(t, OrderLine{InventoryItemID: 0, Quantity: 1}.Validate(), ErrInvalidItemID)
	require.ErrorIs(t, OrderLine{InventoryItemID: 1, Quantity: -2}.Validate(), ErrInvalidQuantity)
}

func TestNewOrder(t *testing.T) {
	now := time.Now()

	order, err := NewOrder(3, 42.5, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), order.UserID)
	assert.Equal(t, 42.5, order.TotalAmount)
	assert.Equal(t, now, order.OrderDate)

	_, err = NewOrder(0, 10, now)
	require.ErrorIs(t, err, ErrInvalidUserID)

	_, err = NewOrder(3, -1, now)
	require.ErrorIs(t, err, ErrInvalidTotalAmount)
}

func TestNewBooking_DeliveryDate(t *testing.T) {
	placedAt := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	item := InventoryItem{ID: 9, Stock: 3, DeliveryInDays: 4, Book: Book{ID: 90, Price: 8}}

	booking, err := NewBooking(5, item, 2, placedAt)
	require.NoError(t, err)
	assert.Equal(t, placedAt.AddDate(0, 0, 4), booking.DeliveryDate)
	assert.Equal(t, 16.0, booking.Subtotal())

	_, err = NewBooking(0, item, 2, placedAt)
	require.ErrorIs(t, err, ErrInvalidOrderID)

	_, err = NewBooking(5, item, 0, placedAt)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}
