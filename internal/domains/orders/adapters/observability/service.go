package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/bookhaven/order-service/internal/domains/orders/application"
	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

const tracerName = "github.com/bookhaven/order-service/internal/domains/orders/adapters/observability/service"

// Service decorates the order coordinator with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core coordinator.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// PlaceOrder runs the placement workflow with instrumentation.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (float64, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.Int64("order.user_id", userID),
		attribute.Int("order.lines", len(lines)),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("user.id", userID), slog.Int("lines", len(lines)))
	total, err := s.inner.PlaceOrder(ctx, userID, lines)
	if err != nil {
		if errors.Is(err, application.ErrOutOfStock) {
			s.metrics.recordOutOfStock(ctx)
		}
		return 0, s.handleError(ctx, span, err, "failed to place order", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Float64("order.total_amount", total))
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed", slog.Int64("user.id", userID), slog.Float64("total", total))
	return total, nil
}

// FindOrder loads a single order.
func (s *Service) FindOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.FindOrder", attribute.Int64("order.id", orderID))
	defer span.End()

	order, err := s.inner.FindOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find order", slog.Int64("order.id", orderID))
	}
	return order, nil
}

// ListBookingsForOrder lists one order's bookings.
func (s *Service) ListBookingsForOrder(ctx context.Context, orderID int64) ([]*domain.Booking, error) {
	ctx, span := s.startSpan(ctx, "Service.ListBookingsForOrder", attribute.Int64("order.id", orderID))
	defer span.End()

	bookings, err := s.inner.ListBookingsForOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list bookings", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.Int("order.bookings.count", len(bookings)))
	return bookings, nil
}

// ListBookingsForUser lists bookings grouped per order for one user.
func (s *Service) ListBookingsForUser(ctx context.Context, userID int64) ([][]*domain.Booking, error) {
	ctx, span := s.startSpan(ctx, "Service.ListBookingsForUser", attribute.Int64("order.user_id", userID))
	defer span.End()

	perOrder, err := s.inner.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user bookings", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(perOrder)))
	return perOrder, nil
}

// RemoveOrder runs the cancellation workflow with instrumentation.
func (s *Service) RemoveOrder(ctx context.Context, orderID int64) error {
	ctx, span := s.startSpan(ctx, "Service.RemoveOrder", attribute.Int64("order.id", orderID))
	defer span.End()

	s.logInfo(ctx, "removing order", slog.Int64("order.id", orderID))
	if err := s.inner.RemoveOrder(ctx, orderID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove order", slog.Int64("order.id", orderID))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "order removed", slog.Int64("order.id", orderID))
	return nil
}

// RemoveAllOrdersOfUser removes every order of one user.
func (s *Service) RemoveAllOrdersOfUser(ctx context.Context, userID int64) error {
	ctx, span := s.startSpan(ctx, "Service.RemoveAllOrdersOfUser", attribute.Int64("order.user_id", userID))
	defer span.End()

	s.logInfo(ctx, "removing all user orders", slog.Int64("user.id", userID))
	if err := s.inner.RemoveAllOrdersOfUser(ctx, userID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove user orders", slog.Int64("user.id", userID))
	}
	s.logInfo(ctx, "user orders removed", slog.Int64("user.id", userID))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	ordersRemoved metric.Int64Counter
	outOfStock    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	ordersRemoved, _ := m.Int64Counter("orders.service.removed", metric.WithDescription("Number of orders removed"))
	outOfStock, _ := m.Int64Counter("orders.service.out_of_stock", metric.WithDescription("Number of placements rejected for missing stock"))
	return serviceMetrics{
		ordersPlaced:  ordersPlaced,
		ordersRemoved: ordersRemoved,
		outOfStock:    outOfStock,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	addCounter(ctx, m.ordersPlaced, 1)
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	addCounter(ctx, m.ordersRemoved, 1)
}

func (m serviceMetrics) recordOutOfStock(ctx context.Context) {
	addCounter(ctx, m.outOfStock, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
