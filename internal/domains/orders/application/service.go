package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

// Service coordinates the order workflows across the remote user directory,
// the remote inventory service, and the local order/booking store. It is the
// only component with cross-service knowledge.
//
// There is no distributed transaction: remote stock mutations are applied
// one at a time and are not rolled back when a later step fails. Only the
// grouped local writes run inside a store transaction.
type Service struct {
	users     ports.UserDirectory
	inventory ports.InventoryService
	orders    ports.OrderRepository
	bookings  ports.BookingRepository
	tx        ports.Transactor
	now       func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the coordinator with its dependencies.
func NewService(users ports.UserDirectory, inventory ports.InventoryService, orders ports.OrderRepository, bookings ports.BookingRepository, tx ports.Transactor, opts ...Option) *Service {
	s := &Service{
		users:     users,
		inventory: inventory,
		orders:    orders,
		bookings:  bookings,
		tx:        tx,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder runs the placement workflow:
//
//  1. resolve the user remotely
//  2. per line, in request order: fetch the inventory snapshot, reserve the
//     quantity on it, write it back, accumulate quantity * catalog price
//  3. create the order and, per line, a booking from a re-fetched snapshot,
//     all inside one local transaction
//
// An out-of-stock line aborts immediately; stock already decremented for
// earlier lines stays decremented. A local write failure rolls back the
// order and bookings but never the remote decrements.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (float64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: at least one order line is required", ErrInvalidInput)
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return 0, mapError(err)
		}
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, line := range lines {
		item, err := s.inventory.GetItem(ctx, line.InventoryItemID)
		if err != nil {
			return 0, err
		}
		if err := item.Reserve(line.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return 0, &OutOfStockError{ItemID: item.ID, Requested: line.Quantity, Available: item.Stock}
			}
			return 0, mapError(err)
		}
		if err := s.inventory.UpdateItem(ctx, item); err != nil {
			return 0, err
		}
		total += float64(line.Quantity) * item.Book.Price
	}

	placedAt := s.now()
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		order, err := domain.NewOrder(user.ID, total, placedAt)
		if err != nil {
			return mapError(err)
		}
		created, err := s.orders.Create(ctx, order)
		if err != nil {
			return err
		}
		for _, line := range lines {
			// Re-fetch so the stored snapshot reflects the decremented stock.
			item, err := s.inventory.GetItem(ctx, line.InventoryItemID)
			if err != nil {
				return err
			}
			booking, err := domain.NewBooking(created.ID, *item, line.Quantity, placedAt)
			if err != nil {
				return mapError(err)
			}
			if _, err := s.bookings.Create(ctx, booking); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, wrapLocal(err)
	}
	return total, nil
}

// FindOrder returns the order or ErrOrderNotFound.
func (s *Service) FindOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ports.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w for order id %d", ports.ErrOrderNotFound, orderID)
		}
		return nil, wrapLocal(err)
	}
	return order, nil
}

// ListBookingsForOrder resolves the order and returns its bookings in store
// order.
func (s *Service) ListBookingsForOrder(ctx context.Context, orderID int64) ([]*domain.Booking, error) {
	if _, err := s.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, wrapLocal(err)
	}
	return bookings, nil
}

// ListBookingsForUser resolves the user remotely and returns one booking
// list per order the user owns, in order-list order.
func (s *Service) ListBookingsForUser(ctx context.Context, userID int64) ([][]*domain.Booking, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, wrapLocal(err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no order placed for user id %d", ports.ErrOrderNotFound, userID)
	}
	result := make([][]*domain.Booking, 0, len(orders))
	for _, order := range orders {
		bookings, err := s.bookings.ListByOrder(ctx, order.ID)
		if err != nil {
			return nil, wrapLocal(err)
		}
		result = append(result, bookings)
	}
	return result, nil
}

// RemoveOrder runs the cancellation workflow: per booking, in listed order,
// add the booked quantity back onto the stored snapshot and write it to the
// inventory service; then delete all bookings and the order inside one local
// transaction.
//
// A remote write failure aborts with earlier restorations still applied and
// no local rows deleted. Retrying after such a failure restores those
// quantities a second time.
func (s *Service) RemoveOrder(ctx context.Context, orderID int64) error {
	if _, err := s.FindOrder(ctx, orderID); err != nil {
		return err
	}
	bookings, err := s.bookings.ListByOrder(ctx, orderID)
	if err != nil {
		return wrapLocal(err)
	}

	for _, booking := range bookings {
		item := booking.InventoryItem
		item.Release(booking.Quantity)
		if err := s.inventory.UpdateItem(ctx, &item); err != nil {
			return err
		}
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, booking := range bookings {
			if err := s.bookings.DeleteByID(ctx, booking.ID); err != nil {
				return err
			}
		}
		return s.orders.DeleteByID(ctx, orderID)
	})
	return wrapLocal(err)
}

// RemoveAllOrdersOfUser removes every order of the user sequentially. The
// first failure aborts the remaining removals; orders already removed stay
// removed.
func (s *Service) RemoveAllOrdersOfUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	orders, err := s.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return wrapLocal(err)
	}
	if len(orders) == 0 {
		return fmt.Errorf("%w: no order placed for user id %d", ports.ErrOrderNotFound, userID)
	}
	for _, order := range orders {
		if err := s.RemoveOrder(ctx, order.ID); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
