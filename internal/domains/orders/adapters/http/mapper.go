package orderhttp

import (
	"errors"
	"time"

	"github.com/bookhaven/order-service/internal/domains/orders/application"
	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
	sharederrors "github.com/bookhaven/order-service/internal/shared/errors"
)

// OrderLineRequest is one requested line of a placement call.
type OrderLineRequest struct {
	BookInventoryID int64 `json:"bookInventoryId" binding:"required"`
	Quantity        int32 `json:"quantity" binding:"required"`
}

// PlaceOrderResponse reports the computed order total.
type PlaceOrderResponse struct {
	TotalAmount float64 `json:"totalAmount"`
}

// OrderResponse is the transport view of an order.
type OrderResponse struct {
	OrderID     int64     `json:"orderId"`
	UserID      int64     `json:"userId"`
	TotalAmount float64   `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
}

// BookResponse is the transport view of a catalog entry.
type BookResponse struct {
	BookID int64   `json:"bookId"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
}

// ItemResponse is the transport view of the booked inventory snapshot.
type ItemResponse struct {
	BookInventoryID int64        `json:"bookInventoryId"`
	Stock           int32        `json:"stock"`
	DeliveryInDays  int32        `json:"deliveryInDays"`
	Book            BookResponse `json:"book"`
}

// BookingResponse is the transport view of a booking.
type BookingResponse struct {
	BookingID    int64        `json:"bookingId"`
	OrderID      int64        `json:"orderId"`
	Item         ItemResponse `json:"item"`
	Quantity     int32        `json:"quantity"`
	DeliveryDate time.Time    `json:"deliveryDate"`
}

func toOrderLines(requests []OrderLineRequest) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(requests))
	for _, req := range requests {
		lines = append(lines, domain.OrderLine{
			InventoryItemID: req.BookInventoryID,
			Quantity:        req.Quantity,
		})
	}
	return lines
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
	}
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID: booking.ID,
		OrderID:   booking.OrderID,
		Item: ItemResponse{
			BookInventoryID: booking.InventoryItem.ID,
			Stock:           booking.InventoryItem.Stock,
			DeliveryInDays:  booking.InventoryItem.DeliveryInDays,
			Book: BookResponse{
				BookID: booking.InventoryItem.Book.ID,
				Title:  booking.InventoryItem.Book.Title,
				Price:  booking.InventoryItem.Book.Price,
			},
		},
		Quantity:     booking.Quantity,
		DeliveryDate: booking.DeliveryDate,
	}
}

func toBookingListResponse(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, toBookingResponse(booking))
	}
	return result
}

// problemFromError maps coordinator error kinds onto problem details.
func problemFromError(err error) (sharederrors.ProblemDetail, bool) {
	var oos *application.OutOfStockError
	switch {
	case errors.As(err, &oos):
		return sharederrors.ErrUnprocessable.
			WithDetail(oos.Error()).
			WithExtension("bookInventoryId", oos.ItemID).
			WithExtension("requested", oos.Requested).
			WithExtension("available", oos.Available), true
	case errors.Is(err, ports.ErrOrderNotFound),
		errors.Is(err, ports.ErrUserNotFound),
		errors.Is(err, ports.ErrItemNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrRemoteUnavailable):
		return sharederrors.ErrBadGateway.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrLocalPersistence):
		return sharederrors.ErrInternal.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
