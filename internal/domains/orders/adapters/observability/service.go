package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordertypes "github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/domains/orders/ports"
)

const tracerName = "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
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

// New wires a decorator around the core service.
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

// Checkout creates an order from the cart with instrumentation.
func (s *Service) Checkout(ctx context.Context, input ordertypes.CheckoutInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Checkout",
		attribute.String("order.customer_id", input.Actor.UserID),
		attribute.Int("order.line_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "checking out order", slog.String("customer.id", input.Actor.UserID), slog.Int("lines", len(input.Items)))
	result, err := s.inner.Checkout(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.String("customer.id", input.Actor.UserID))
	}
	s.metrics.recordCheckedOut(ctx)
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID), slog.String("order.number", result.OrderNumber), slog.Float64("order.total", result.TotalAmount))
	return result, nil
}

// GetByID loads a single order.
func (s *Service) GetByID(ctx context.Context, input ordertypes.OrderIdentifier) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("order.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", input.ID))
	}
	return result, nil
}

// Board lists the actor's orders under the selected filter.
func (s *Service) Board(ctx context.Context, input ordertypes.BoardInput) (*ordertypes.Board, error) {
	ctx, span := s.startSpan(ctx, "Service.Board",
		attribute.String("order.actor_id", input.Actor.UserID),
		attribute.String("order.filter", string(input.Filter)),
	)
	defer span.End()

	result, err := s.inner.Board(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to project order board", slog.String("actor.id", input.Actor.UserID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result.Orders)))
	return result, nil
}

// TransitionStatus applies a fulfillment transition with instrumentation.
func (s *Service) TransitionStatus(ctx context.Context, input ordertypes.TransitionStatusInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.TransitionStatus",
		attribute.String("order.id", input.OrderID),
		attribute.String("order.target_status", string(input.Target)),
		attribute.String("order.actor_role", string(input.Actor.Role)),
	)
	defer span.End()

	s.logInfo(ctx, "transitioning order status",
		slog.String("order.id", input.OrderID),
		slog.String("target", string(input.Target)),
		slog.String("actor.role", string(input.Actor.Role)))
	result, err := s.inner.TransitionStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "status transition rejected", slog.String("order.id", input.OrderID), slog.String("target", string(input.Target)))
	}
	s.metrics.recordStatusTransition(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// TransitionPayment applies a payment transition with instrumentation.
func (s *Service) TransitionPayment(ctx context.Context, input ordertypes.TransitionPaymentInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.TransitionPayment",
		attribute.String("order.id", input.OrderID),
		attribute.String("order.target_payment", string(input.Target)),
	)
	defer span.End()

	s.logInfo(ctx, "transitioning payment status", slog.String("order.id", input.OrderID), slog.String("target", string(input.Target)))
	result, err := s.inner.TransitionPayment(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "payment transition rejected", slog.String("order.id", input.OrderID), slog.String("target", string(input.Target)))
	}
	s.metrics.recordPaymentTransition(ctx, result.PaymentStatus)
	s.logInfo(ctx, "payment status updated", slog.String("order.id", result.ID), slog.String("payment_status", string(result.PaymentStatus)))
	return result, nil
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
	ordersCheckedOut   metric.Int64Counter
	statusTransitions  metric.Int64Counter
	paymentTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCheckedOut, _ := m.Int64Counter("orders.service.checked_out", metric.WithDescription("Number of orders created at checkout"))
	statusTransitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of accepted fulfillment transitions"))
	paymentTransitions, _ := m.Int64Counter("orders.service.payment_transitions", metric.WithDescription("Number of accepted payment transitions"))
	return serviceMetrics{
		ordersCheckedOut:   ordersCheckedOut,
		statusTransitions:  statusTransitions,
		paymentTransitions: paymentTransitions,
	}
}

func (m serviceMetrics) recordCheckedOut(ctx context.Context) {
	addCounter(ctx, m.ordersCheckedOut, 1)
}

func (m serviceMetrics) recordStatusTransition(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.statusTransitions, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordPaymentTransition(ctx context.Context, status domain.PaymentStatus) {
	addCounter(ctx, m.paymentTransitions, 1, attribute.String("order.payment_status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
