package directory

import (
	"context"
	"errors"
	"fmt"

	userclient "github.com/bookhaven/order-service/internal/clients/http/userdirectory"
	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

// Adapter implements the outbound user directory port over the HTTP client.
type Adapter struct {
	client *userclient.Client
}

// NewAdapter wires a user directory HTTP client into the port.
func NewAdapter(client *userclient.Client) *Adapter {
	return &Adapter{client: client}
}

// GetUser resolves a user and maps client errors onto the port's kinds.
func (a *Adapter) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if a == nil || a.client == nil {
		return nil, errors.New("user directory adapter not configured")
	}
	user, err := a.client.GetUser(ctx, id)
	if err != nil {
		return nil, mapClientError(err, id)
	}
	return toDomain(user), nil
}

func mapClientError(err error, id int64) error {
	switch {
	case errors.Is(err, userclient.ErrNotFound):
		return fmt.Errorf("%w: user %d", ports.ErrUserNotFound, id)
	case errors.Is(err, userclient.ErrUnavailable):
		return fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	default:
		return err
	}
}

func toDomain(user *userclient.User) *domain.User {
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
}

var _ ports.UserDirectory = (*Adapter)(nil)
