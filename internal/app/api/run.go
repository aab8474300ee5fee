package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	inventoryclient "github.com/bookhaven/order-service/internal/clients/http/inventory"
	userclient "github.com/bookhaven/order-service/internal/clients/http/userdirectory"
	externaldirectory "github.com/bookhaven/order-service/internal/domains/orders/adapters/external/directory"
	externalinventory "github.com/bookhaven/order-service/internal/domains/orders/adapters/external/inventory"
	orderhttp "github.com/bookhaven/order-service/internal/domains/orders/adapters/http"
	ordersmemory "github.com/bookhaven/order-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/bookhaven/order-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/bookhaven/order-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/bookhaven/order-service/internal/domains/orders/application"
	ordersports "github.com/bookhaven/order-service/internal/domains/orders/ports"
	"github.com/bookhaven/order-service/internal/platform/migrations"
	platformobservability "github.com/bookhaven/order-service/internal/platform/observability"
	platformpostgres "github.com/bookhaven/order-service/internal/platform/postgres"
)

type repositories struct {
	orders   ordersports.OrderRepository
	bookings ordersports.BookingRepository
	tx       ordersports.Transactor
}

// Run boots the order HTTP API with observability, repositories, and remote clients wired.
func Run(ctx context.Context) error {
	const serviceName = "order-service"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.RemoteTimeoutSeconds) * time.Second}
	directoryClient, err := userclient.New(cfg.UserServiceURL, httpClient)
	if err != nil {
		return fmt.Errorf("failed to build user directory client: %w", err)
	}
	bookClient, err := inventoryclient.New(cfg.BookServiceURL, httpClient)
	if err != nil {
		return fmt.Errorf("failed to build inventory client: %w", err)
	}

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	coreService := ordersapp.NewService(
		externaldirectory.NewAdapter(directoryClient),
		externalinventory.NewAdapter(bookClient),
		repos.orders,
		repos.bookings,
		repos.tx,
	)
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	orderhttp.NewAPI(orderService).Register(router)

	addr := ":" + cfg.Port
	logger.Info("order API listening",
		slog.String("addr", addr),
		slog.String("user_service", cfg.UserServiceURL),
		slog.String("book_service", cfg.BookServiceURL),
	)
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repositories")
		return memoryRepositories(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	logger.Info("order repositories configured with postgres")
	return repositories{
		orders:   orderspostgres.NewOrderRepository(db),
		bookings: orderspostgres.NewBookingRepository(db),
		tx:       orderspostgres.NewTransactor(db),
	}, func() { _ = sqlDB.Close() }
}

func memoryRepositories() repositories {
	store := ordersmemory.NewStore()
	return repositories{
		orders:   store.Orders(),
		bookings: store.Bookings(),
		tx:       store.Transactor(),
	}
}
