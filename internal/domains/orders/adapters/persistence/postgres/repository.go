package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;index:idx_orders_user"`
	TotalAmount float64   `gorm:"column:total_amount"`
	OrderDate   time.Time `gorm:"column:order_date"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// bookingRecord flattens a booking and its inventory item snapshot into one
// row; snapshot columns are write-once at placement time.
type bookingRecord struct {
	ID              int64     `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID         int64     `gorm:"column:order_id;index:idx_bookings_order"`
	InventoryItemID int64     `gorm:"column:inventory_item_id"`
	ItemStock       int32     `gorm:"column:item_stock"`
	DeliveryInDays  int32     `gorm:"column:delivery_in_days"`
	BookID          int64     `gorm:"column:book_id"`
	BookTitle       string    `gorm:"column:book_title"`
	BookPrice       float64   `gorm:"column:book_price"`
	Quantity        int32     `gorm:"column:quantity"`
	DeliveryDate    time.Time `gorm:"column:delivery_date"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (bookingRecord) TableName() string { return "bookings" }

type txKey struct{}

// withTx stashes an open transaction handle so repositories called inside a
// Transactor callback join it.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository persists orders in PostgreSQL using GORM.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository wires a PostgreSQL-backed repository. Caller manages DB
// lifecycle and migrations.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order and returns it with the assigned id.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	if err := conn(ctx, r.db).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an order by identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByUser returns the user's orders in creation order.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// DeleteByID removes an order by identifier.
func (r *OrderRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := conn(ctx, r.db).Delete(&orderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

var _ ports.BookingRepository = (*BookingRepository)(nil)

// BookingRepository persists bookings in PostgreSQL using GORM.
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking and returns it with the assigned id.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	record := toBookingRecord(booking)
	if err := conn(ctx, r.db).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByOrder returns the order's bookings in creation order.
func (r *BookingRepository) ListByOrder(ctx context.Context, orderID int64) ([]*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []bookingRecord
	if err := conn(ctx, r.db).Where("order_id = ?", orderID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	bookings := make([]*domain.Booking, 0, len(records))
	for i := range records {
		bookings = append(bookings, records[i].toDomain())
	}
	return bookings, nil
}

// DeleteByID removes a booking by identifier.
func (r *BookingRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := conn(ctx, r.db).Delete(&bookingRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres booking repository not configured")
	}
	return nil
}

var _ ports.Transactor = (*Transactor)(nil)

// Transactor runs grouped local writes inside one database transaction.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// InTx begins a transaction, injects it into the context, and commits or
// rolls back depending on the callback's result.
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if t == nil || t.db == nil {
		return errors.New("postgres transactor not configured")
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		UserID:      r.UserID,
		TotalAmount: r.TotalAmount,
		OrderDate:   r.OrderDate,
	}
}

func toBookingRecord(booking *domain.Booking) bookingRecord {
	return bookingRecord{
		ID:              booking.ID,
		OrderID:         booking.OrderID,
		InventoryItemID: booking.InventoryItem.ID,
		ItemStock:       booking.InventoryItem.Stock,
		DeliveryInDays:  booking.InventoryItem.DeliveryInDays,
		BookID:          booking.InventoryItem.Book.ID,
		BookTitle:       booking.InventoryItem.Book.Title,
		BookPrice:       booking.InventoryItem.Book.Price,
		Quantity:        booking.Quantity,
		DeliveryDate:    booking.DeliveryDate,
	}
}

func (r bookingRecord) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:      r.ID,
		OrderID: r.OrderID,
		InventoryItem: domain.InventoryItem{
			ID:             r.InventoryItemID,
			Stock:          r.ItemStock,
			DeliveryInDays: r.DeliveryInDays,
			Book: domain.Book{
				ID:    r.BookID,
				Title: r.BookTitle,
				Price: r.BookPrice,
			},
		},
		Quantity:     r.Quantity,
		DeliveryDate: r.DeliveryDate,
	}
}
