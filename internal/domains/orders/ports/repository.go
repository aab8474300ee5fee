package ports

import (
	"context"
	"errors"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrBookingNotFound = errors.New("booking not found")

// OrderRepository persists order aggregates.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	DeleteByID(ctx context.Context, id int64) error
}

// BookingRepository persists order line items.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByOrder(ctx context.Context, orderID int64) ([]*domain.Booking, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Transactor scopes a group of local writes into one all-or-nothing unit.
// The boundary covers local persistence only; remote inventory and user
// directory calls are never part of it.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
