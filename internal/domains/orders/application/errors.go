package application

import (
	"errors"
	"fmt"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrOutOfStock signals a line requested more than the available stock.
	ErrOutOfStock = errors.New("out of stock")
	// ErrLocalPersistence wraps a failure of the local record store.
	ErrLocalPersistence = errors.New("local persistence failure")
)

// OutOfStockError carries the offending item and the requested versus
// available quantities so callers can decide how to react.
type OutOfStockError struct {
	ItemID    int64
	Requested int32
	Available int32
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: item %d has %d, requested %d", e.ItemID, e.Available, e.Requested)
}

func (e *OutOfStockError) Unwrap() error { return ErrOutOfStock }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidUserID) ||
		errors.Is(err, domain.ErrInvalidItemID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidTotalAmount) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// wrapLocal classifies an error coming out of a local-store operation.
// Workflow-level kinds (not-found, out-of-stock, remote failures) pass
// through untouched; anything else is a store failure.
func wrapLocal(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrOrderNotFound) ||
		errors.Is(err, ports.ErrBookingNotFound) ||
		errors.Is(err, ports.ErrUserNotFound) ||
		errors.Is(err, ports.ErrItemNotFound) ||
		errors.Is(err, ports.ErrRemoteUnavailable) ||
		errors.Is(err, ErrOutOfStock) ||
		errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrLocalPersistence, err)
}
