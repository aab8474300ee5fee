package ports

import (
	"context"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

// Service exposes the order coordination workflows to inbound adapters.
type Service interface {
	// PlaceOrder reserves stock for each line in request order, then
	// creates the order and its bookings. It returns the total amount.
	PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (float64, error)
	FindOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListBookingsForOrder(ctx context.Context, orderID int64) ([]*domain.Booking, error)
	// ListBookingsForUser returns one booking list per order owned by the
	// user, in the order the orders are listed.
	ListBookingsForUser(ctx context.Context, userID int64) ([][]*domain.Booking, error)
	// RemoveOrder restores stock for every booking, then deletes the
	// bookings and the order.
	RemoveOrder(ctx context.Context, orderID int64) error
	RemoveAllOrdersOfUser(ctx context.Context, userID int64) error
}
