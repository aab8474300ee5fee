package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the orders bounded context. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&bookingRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;index:idx_orders_user"`
	TotalAmount float64   `gorm:"column:total_amount"`
	OrderDate   time.Time `gorm:"column:order_date"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Booking schema mirrors the orders Postgres adapter; item columns hold the
// inventory snapshot captured at placement time.
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
