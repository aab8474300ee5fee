package memory

import (
	"context"
	"sync"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

// Store is the in-memory backing state shared by both repositories and the
// transactor. It preserves insertion order so listings behave like the
// relational adapter.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	orders     map[int64]*domain.Order
	orderIDs   []int64
	bookings   map[int64]*domain.Booking
	bookingIDs []int64
	orderSeq   int64
	bookingSeq int64
}

func NewStore() *Store {
	return &Store{
		orders:   map[int64]*domain.Order{},
		bookings: map[int64]*domain.Booking{},
	}
}

// Orders returns the order repository view of the store.
func (s *Store) Orders() *OrderRepository { return &OrderRepository{store: s} }

// Bookings returns the booking repository view of the store.
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{store: s} }

// Transactor returns the local transaction boundary over the store.
func (s *Store) Transactor() *Transactor { return &Transactor{store: s} }

type snapshot struct {
	orders     map[int64]*domain.Order
	orderIDs   []int64
	bookings   map[int64]*domain.Booking
	bookingIDs []int64
	orderSeq   int64
	bookingSeq int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		orders:     make(map[int64]*domain.Order, len(s.orders)),
		bookings:   make(map[int64]*domain.Booking, len(s.bookings)),
		orderIDs:   append([]int64(nil), s.orderIDs...),
		bookingIDs: append([]int64(nil), s.bookingIDs...),
		orderSeq:   s.orderSeq,
		bookingSeq: s.bookingSeq,
	}
	for id, order := range s.orders {
		snap.orders[id] = order
	}
	for id, booking := range s.bookings {
		snap.bookings[id] = booking
	}
	return snap
}

func removeID(ids []int64, id int64) []int64 {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = snap.orders
	s.orderIDs = snap.orderIDs
	s.bookings = snap.bookings
	s.bookingIDs = snap.bookingIDs
	s.orderSeq = snap.orderSeq
	s.bookingSeq = snap.bookingSeq
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository is the in-memory order persistence adapter.
type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *order
	s.orderSeq++
	clone.ID = s.orderSeq
	s.orders[clone.ID] = &clone
	s.orderIDs = append(s.orderIDs, clone.ID)
	result := clone
	return &result, nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *OrderRepository) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*domain.Order
	for _, id := range s.orderIDs {
		if order, ok := s.orders[id]; ok && order.UserID == userID {
			clone := *order
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *OrderRepository) DeleteByID(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return ports.ErrOrderNotFound
	}
	delete(s.orders, id)
	s.orderIDs = removeID(s.orderIDs, id)
	return nil
}

var _ ports.BookingRepository = (*BookingRepository)(nil)

// BookingRepository is the in-memory booking persistence adapter.
type BookingRepository struct {
	store *Store
}

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *booking
	s.bookingSeq++
	clone.ID = s.bookingSeq
	s.bookings[clone.ID] = &clone
	s.bookingIDs = append(s.bookingIDs, clone.ID)
	result := clone
	return &result, nil
}

func (r *BookingRepository) ListByOrder(_ context.Context, orderID int64) ([]*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*domain.Booking
	for _, id := range s.bookingIDs {
		if booking, ok := s.bookings[id]; ok && booking.OrderID == orderID {
			clone := *booking
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *BookingRepository) DeleteByID(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return ports.ErrBookingNotFound
	}
	delete(s.bookings, id)
	s.bookingIDs = removeID(s.bookingIDs, id)
	return nil
}

var _ ports.Transactor = (*Transactor)(nil)

// Transactor provides the local all-or-nothing boundary for the in-memory
// store by snapshotting state and restoring it when the callback fails.
// Transactions are serialized against each other, not against plain reads.
type Transactor struct {
	store *Store
}

func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
