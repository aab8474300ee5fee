package inventory

import (
	"context"
	"errors"
	"fmt"

	inventoryclient "github.com/bookhaven/order-service/internal/clients/http/inventory"
	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

// Adapter implements the outbound inventory port over the HTTP client.
type Adapter struct {
	client *inventoryclient.Client
}

// NewAdapter wires an inventory HTTP client into the port.
func NewAdapter(client *inventoryclient.Client) *Adapter {
	return &Adapter{client: client}
}

// GetItem fetches an inventory snapshot and maps client errors onto the
// port's kinds.
func (a *Adapter) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	if a == nil || a.client == nil {
		return nil, errors.New("inventory adapter not configured")
	}
	item, err := a.client.GetItem(ctx, id)
	if err != nil {
		return nil, mapClientError(err, id)
	}
	return toDomain(item), nil
}

// UpdateItem writes a mutated snapshot back.
func (a *Adapter) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	if a == nil || a.client == nil {
		return errors.New("inventory adapter not configured")
	}
	if item == nil {
		return errors.New("inventory item is nil")
	}
	if err := a.client.UpdateItem(ctx, toPayload(item)); err != nil {
		return mapClientError(err, item.ID)
	}
	return nil
}

func mapClientError(err error, id int64) error {
	switch {
	case errors.Is(err, inventoryclient.ErrNotFound):
		return fmt.Errorf("%w: item %d", ports.ErrItemNotFound, id)
	case errors.Is(err, inventoryclient.ErrUnavailable):
		return fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	default:
		return err
	}
}

func toDomain(item *inventoryclient.Item) *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:             item.ID,
		Stock:          item.Stock,
		DeliveryInDays: item.DeliveryInDays,
		Book: domain.Book{
			ID:    item.Book.ID,
			Title: item.Book.Title,
			Price: item.Book.Price,
		},
	}
}

func toPayload(item *domain.InventoryItem) inventoryclient.Item {
	return inventoryclient.Item{
		ID:             item.ID,
		Stock:          item.Stock,
		DeliveryInDays: item.DeliveryInDays,
		Book: inventoryclient.Book{
			ID:    item.Book.ID,
			Title: item.Book.Title,
			Price: item.Book.Price,
		},
	}
}

var _ ports.InventoryService = (*Adapter)(nil)
