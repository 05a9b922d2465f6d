package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/subhub/subhub/internal/config"
	"github.com/subhub/subhub/internal/domain"
	"github.com/subhub/subhub/internal/email"
	"github.com/subhub/subhub/internal/observability"
	"github.com/subhub/subhub/internal/pkg/backoff"
	"github.com/subhub/subhub/internal/retries"
)

//go:generate mockgen -source internal/application/handler/handler.go -destination=internal/application/handler/handler_mock_test.go -package=handler

var (
	ErrBadJSON     = errors.New("bad json")
	ErrProcess     = errors.New("event processing failed")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

const (
	EventPaymentFailed    = "payment_failed"
	EventPaymentSucceeded = "payment_succeeded"
)

// PaymentEvent is the wire form of a gateway notification.
type PaymentEvent struct {
	EventType      string `json:"event_type"`
	OrderID        string `json:"order_uid"`
	SubscriptionID string `json:"subscription_uid"`
}

type Subscriptions interface {
	GetByID(ctx context.Context, id string) (*domain.Subscription, error)
	SetStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error
	Activate(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type Orders interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type Mailer interface {
	SendTemplate(ctx context.Context, name, to string, data email.Data) error
}

type brk interface {
	Allow() error
	Success()
	Failure()
}

type Handler struct {
	subs    Subscriptions
	orders  Orders
	store   retries.Store
	rules   *retries.Rules
	mailer  Mailer
	breaker brk
	metrics observability.Metrics
	logger  *zap.Logger

	backoffPolicy config.Backoff
	adminEmail    string
}

type Deps struct {
	Subscriptions Subscriptions
	Orders        Orders
	Retries       retries.Store
	Rules         *retries.Rules
	Mailer        Mailer
	Breaker       brk
	Metrics       observability.Metrics
	Logger        *zap.Logger
	Backoff       config.Backoff
	AdminEmail    string
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		subs:          d.Subscriptions,
		orders:        d.Orders,
		store:         d.Retries,
		rules:         d.Rules,
		mailer:        d.Mailer,
		breaker:       d.Breaker,
		metrics:       d.Metrics,
		logger:        d.Logger,
		backoffPolicy: d.Backoff,
		adminEmail:    d.AdminEmail,
	}
}

// Handle — called by the consumer to process a single message.
// The consumer commits the offset itself after successfully returning nil.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	if err := h.breaker.Allow(); err != nil {
		h.logger.Warn("circuit breaker is open",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	var ev PaymentEvent
	if err := json.Unmarshal(message.Value, &ev); err != nil {
		h.logger.Error("bad json format",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}
	if ev.OrderID == "" || (ev.EventType != EventPaymentFailed && ev.EventType != EventPaymentSucceeded) {
		h.logger.Error("malformed payment event",
			zap.String("event_type", ev.EventType),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}

	t0 := time.Now()
	err := backoff.Do(ctx, h.backoffPolicy, func() error {
		return h.process(ctx, ev)
	})
	h.metrics.ObserveKafka(float64(time.Since(t0).Microseconds())/1000.0, err == nil)

	if err != nil {
		h.logger.Error("event processing failed after retries",
			zap.String("order_uid", ev.OrderID),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return fmt.Errorf("%w: %v", ErrProcess, err)
	}

	h.breaker.Success()
	h.logger.Info("successfully processed payment event",
		zap.String("event_type", ev.EventType),
		zap.String("order_uid", ev.OrderID),
		zap.Int("partition", message.Partition),
		zap.Int64("offset", message.Offset),
	)
	return nil
}

func (h *Handler) process(ctx context.Context, ev PaymentEvent) error {
	switch ev.EventType {
	case EventPaymentFailed:
		return h.paymentFailed(ctx, ev)
	case EventPaymentSucceeded:
		return h.paymentSucceeded(ctx, ev)
	}
	return nil
}

// paymentFailed schedules the next attempt from the rule ladder, or gives up
// when the ladder is exhausted.
func (h *Handler) paymentFailed(ctx context.Context, ev PaymentEvent) error {
	// A failure after the scheduler dispatched a retry resolves that attempt;
	// close it before scheduling the next one.
	last, err := h.store.LastForOrder(ctx, ev.OrderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err == nil && last.Status == domain.RetryProcessing {
		last.Status = domain.RetryFailed
		if err := h.store.Save(ctx, last); err != nil {
			return err
		}
	}

	attempt, err := h.store.CountForOrder(ctx, ev.OrderID)
	if err != nil {
		return err
	}

	rule, ok := h.rules.RuleFor(attempt)
	if !ok {
		if err := h.orders.UpdateStatus(ctx, ev.OrderID, domain.OrderFailed); err != nil {
			return err
		}
		if ev.SubscriptionID != "" {
			if err := h.subs.Cancel(ctx, ev.SubscriptionID); err != nil {
				return err
			}
		}
		h.metrics.ObserveRetry("exhausted")
		h.logger.Warn("retry ladder exhausted",
			zap.String("order_uid", ev.OrderID),
			zap.Int("attempts", attempt),
		)
		return nil
	}

	rec := &domain.RetryRecord{
		ID:      uuid.NewString(),
		OrderID: ev.OrderID,
		Status:  domain.RetryPending,
		Date:    time.Now().Add(rule.RetryAfter),
		Rule:    rule,
	}
	if err := h.store.Save(ctx, rec); err != nil {
		return err
	}

	if rule.OrderStatus != "" {
		if err := h.orders.UpdateStatus(ctx, ev.OrderID, rule.OrderStatus); err != nil {
			return err
		}
	}
	if ev.SubscriptionID != "" && rule.SubscriptionStatus != "" {
		if err := h.subs.SetStatus(ctx, ev.SubscriptionID, rule.SubscriptionStatus); err != nil {
			return err
		}
	}

	h.sendRetryEmails(ctx, ev, rule)

	h.metrics.ObserveRetry("scheduled")
	h.logger.Info("payment retry scheduled",
		zap.String("retry_id", rec.ID),
		zap.String("order_uid", ev.OrderID),
		zap.Int("attempt", attempt),
		zap.Time("due", rec.Date),
	)
	return nil
}

// paymentSucceeded completes the open retry, if any, and brings the order and
// subscription back to normal. The record may still be pending (the customer
// paid before the sweep) or already dispatched by the scheduler.
func (h *Handler) paymentSucceeded(ctx context.Context, ev PaymentEvent) error {
	last, err := h.store.LastForOrder(ctx, ev.OrderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	recovered := false
	if err == nil && (last.Status == domain.RetryPending || last.Status == domain.RetryProcessing) {
		last.Status = domain.RetryComplete
		if err := h.store.Save(ctx, last); err != nil {
			return err
		}
		recovered = true
	}

	if err := h.orders.UpdateStatus(ctx, ev.OrderID, domain.OrderCompleted); err != nil {
		return err
	}
	if ev.SubscriptionID != "" {
		if err := h.subs.Activate(ctx, ev.SubscriptionID); err != nil {
			return err
		}
	}

	if recovered {
		h.metrics.ObserveRetry("recovered")
	}
	return nil
}

// ProcessRetry is called by the scheduler when a retry comes due. The record
// moves to processing and the order is put back in line for payment; the
// gateway answers later with a payment event that resolves the attempt.
func (h *Handler) ProcessRetry(ctx context.Context, rec *domain.RetryRecord) error {
	rec.Status = domain.RetryProcessing
	if err := h.store.Save(ctx, rec); err != nil {
		return err
	}
	if err := h.orders.UpdateStatus(ctx, rec.OrderID, domain.OrderPending); err != nil {
		return err
	}
	h.metrics.ObserveRetry("processed")
	h.logger.Info("payment retry dispatched",
		zap.String("retry_id", rec.ID),
		zap.String("order_uid", rec.OrderID),
	)
	return nil
}

// Email failures are logged, never propagated: a missed notification must not
// requeue the whole event.
func (h *Handler) sendRetryEmails(ctx context.Context, ev PaymentEvent, rule domain.RetryRule) {
	if h.mailer == nil || (rule.EmailTemplateCustomer == "" && rule.EmailTemplateAdmin == "") {
		return
	}

	order, err := h.orders.GetByID(ctx, ev.OrderID)
	if err != nil {
		h.logger.Warn("retry email skipped, order lookup failed",
			zap.String("order_uid", ev.OrderID),
			zap.Error(err),
		)
		return
	}

	// The retry templates reference the subscription, so without one there is
	// nothing to render.
	if ev.SubscriptionID == "" {
		return
	}
	sub, err := h.subs.GetByID(ctx, ev.SubscriptionID)
	if err != nil {
		h.logger.Warn("retry email skipped, subscription lookup failed",
			zap.String("subscription_uid", ev.SubscriptionID),
			zap.Error(err),
		)
		return
	}

	data := email.Data{Subscription: sub, Order: order}
	if rule.EmailTemplateCustomer != "" {
		if err := h.mailer.SendTemplate(ctx, rule.EmailTemplateCustomer, order.CustomerID, data); err != nil {
			h.logger.Warn("customer retry email failed", zap.Error(err))
		}
	}
	if rule.EmailTemplateAdmin != "" {
		data.Admin = true
		if err := h.mailer.SendTemplate(ctx, rule.EmailTemplateAdmin, h.adminEmail, data); err != nil {
			h.logger.Warn("admin retry email failed", zap.Error(err))
		}
	}
}
