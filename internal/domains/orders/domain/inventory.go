package domain

import "errors"

var (
	ErrInvalidItemID     = errors.New("inventory item id must be greater than zero")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Book is the catalog entry an inventory item refers to. Its price is the
// unit price used when computing booking subtotals.
type Book struct {
	ID    int64
	Title string
	Price float64
}

// InventoryItem is a point-in-time snapshot of remote inventory state. The
// coordinator mutates the snapshot's stock locally and writes it back; the
// remote service holds the authoritative copy.
type InventoryItem struct {
	ID             int64
	Stock          int32
	DeliveryInDays int32
	Book           Book
}

// Reserve decrements the snapshot's stock by quantity. It fails without
// mutating when the snapshot does not hold enough stock, keeping the
// stock >= 0 invariant on the local copy.
func (i *InventoryItem) Reserve(quantity int32) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Stock < quantity {
		return ErrInsufficientStock
	}
	i.Stock -= quantity
	return nil
}

// Release adds a previously reserved quantity back to the snapshot's stock.
func (i *InventoryItem) Release(quantity int32) {
	if quantity <= 0 {
		return
	}
	i.Stock += quantity
}

// OrderLine is one requested (inventory item, quantity) pair of a placement.
type OrderLine struct {
	InventoryItemID int64
	Quantity        int32
}

// Validate enforces line-level invariants.
func (l OrderLine) Validate() error {
	if l.InventoryItemID <= 0 {
		return ErrInvalidItemID
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
