//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/bookhaven/order-service/test/pact"

	orderhttp "github.com/bookhaven/order-service/internal/domains/orders/adapters/http"
	ordersmemory "github.com/bookhaven/order-service/internal/domains/orders/adapters/memory"
	ordersapp "github.com/bookhaven/order-service/internal/domains/orders/application"
	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestOrderProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t, pacttest.StorefrontConsumer, pacttest.OrderServiceName))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedOrder(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.OrderServiceName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp hosts the order API on an in-memory store with stubbed
// remote services. reset swaps the backing store so seeded ids stay stable
// across provider states.
type contractProviderApp struct {
	store     *swappableStore
	inventory *stubInventory
	service   ports.Service
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := &swappableStore{current: ordersmemory.NewStore()}
	directory := &stubDirectory{}
	inventory := newStubInventory()

	service := ordersapp.NewService(
		directory,
		inventory,
		&ordersView{store: store},
		&bookingsView{store: store},
		&txView{store: store},
		ordersapp.WithClock(func() time.Time {
			return time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
		}),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	orderhttp.NewAPI(service).Register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		store:     store,
		inventory: inventory,
		service:   service,
		server:    server,
	}
}

func (a *contractProviderApp) reset() {
	a.store.swap(ordersmemory.NewStore())
	a.inventory.reset()
}

func (a *contractProviderApp) seedOrder(t testing.TB) {
	t.Helper()
	_, err := a.service.PlaceOrder(context.Background(), pacttest.ExistingUserID, []domain.OrderLine{
		{InventoryItemID: pacttest.ExistingItemID, Quantity: 2},
	})
	require.NoError(t, err)
}

// swappableStore delegates the repository ports to the current in-memory
// store and lets provider states start from a blank one.
type swappableStore struct {
	mu      sync.Mutex
	current *ordersmemory.Store
}

func (s *swappableStore) swap(store *ordersmemory.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = store
}

func (s *swappableStore) get() *ordersmemory.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

type ordersView struct {
	store *swappableStore
}

func (v *ordersView) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return v.store.get().Orders().Create(ctx, order)
}

func (v *ordersView) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return v.store.get().Orders().GetByID(ctx, id)
}

func (v *ordersView) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return v.store.get().Orders().ListByUser(ctx, userID)
}

func (v *ordersView) DeleteByID(ctx context.Context, id int64) error {
	return v.store.get().Orders().DeleteByID(ctx, id)
}

type bookingsView struct {
	store *swappableStore
}

func (v *bookingsView) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return v.store.get().Bookings().Create(ctx, booking)
}

func (v *bookingsView) ListByOrder(ctx context.Context, orderID int64) ([]*domain.Booking, error) {
	return v.store.get().Bookings().ListByOrder(ctx, orderID)
}

func (v *bookingsView) DeleteByID(ctx context.Context, id int64) error {
	return v.store.get().Bookings().DeleteByID(ctx, id)
}

type txView struct {
	store *swappableStore
}

func (v *txView) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return v.store.get().Transactor().InTx(ctx, fn)
}

type stubDirectory struct{}

func (d *stubDirectory) GetUser(_ context.Context, id int64) (*domain.User, error) {
	if id != pacttest.ExistingUserID {
		return nil, fmt.Errorf("%w: user %d", ports.ErrUserNotFound, id)
	}
	return &domain.User{ID: id, Username: "amrita", FirstName: "Amrita", LastName: "Rao"}, nil
}

type stubInventory struct {
	mu    sync.Mutex
	items map[int64]domain.InventoryItem
}

func newStubInventory() *stubInventory {
	s := &stubInventory{}
	s.reset()
	return s
}

func (s *stubInventory) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = map[int64]domain.InventoryItem{
		pacttest.ExistingItemID: {
			ID:             pacttest.ExistingItemID,
			Stock:          5,
			DeliveryInDays: 2,
			Book:           domain.Book{ID: 100, Title: "The Go Programming Language", Price: 10},
		},
	}
}

func (s *stubInventory) GetItem(_ context.Context, id int64) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %d", ports.ErrItemNotFound, id)
	}
	clone := item
	return &clone, nil
}

func (s *stubInventory) UpdateItem(_ context.Context, item *domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("%w: item %d", ports.ErrItemNotFound, item.ID)
	}
	s.items[item.ID] = *item
	return nil
}
