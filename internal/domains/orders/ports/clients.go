package ports

import (
	"context"
	"errors"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrRemoteUnavailable wraps a transport-level failure from either
	// remote collaborator.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)

// UserDirectory is the outbound port to the remote user service.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// InventoryService is the outbound port to the remote book inventory
// service. Each call is a single synchronous round trip; there is no retry,
// caching, or optimistic-concurrency token.
type InventoryService interface {
	GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error
}
