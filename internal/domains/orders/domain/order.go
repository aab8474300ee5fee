package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidUserID      = errors.New("user id must be greater than zero")
	ErrInvalidTotalAmount = errors.New("total amount cannot be negative")
	ErrInvalidOrderID     = errors.New("order id must be greater than zero")
)

// Order is the local aggregate created at the end of a successful placement.
// It is immutable after creation except for deletion.
type Order struct {
	ID          int64
	UserID      int64
	TotalAmount float64
	OrderDate   time.Time
}

// NewOrder validates and constructs an Order. The identifier is assigned by
// the store on creation.
func NewOrder(userID int64, totalAmount float64, orderDate time.Time) (*Order, error) {
	order := &Order{
		UserID:      userID,
		TotalAmount: totalAmount,
		OrderDate:   orderDate,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return ErrInvalidUserID
	}
	if o.TotalAmount < 0 {
		return ErrInvalidTotalAmount
	}
	return nil
}

// Booking is one line item of an order. It carries the inventory item
// snapshot as fetched after the placement decrement, including the catalog
// price its subtotal was computed from.
type Booking struct {
	ID            int64
	OrderID       int64
	InventoryItem InventoryItem
	Quantity      int32
	DeliveryDate  time.Time
}

// NewBooking builds a booking for one order line. The delivery date is the
// placement date plus the snapshot's lead time.
func NewBooking(orderID int64, item InventoryItem, quantity int32, placedAt time.Time) (*Booking, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	if item.ID <= 0 {
		return nil, ErrInvalidItemID
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Booking{
		OrderID:       orderID,
		InventoryItem: item,
		Quantity:      quantity,
		DeliveryDate:  placedAt.AddDate(0, 0, int(item.DeliveryInDays)),
	}, nil
}

// Subtotal is the amount this booking contributed to its order's total.
func (b *Booking) Subtotal() float64 {
	return float64(b.Quantity) * b.InventoryItem.Book.Price
}
