package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nyssa-notify/internal/domain"
	"github.com/nyssa-notify/internal/metrics"
	"github.com/nyssa-notify/internal/pkg/id"
	"github.com/nyssa-notify/internal/pkg/validate"
	"go.uber.org/zap"
)

// FunctionName identifies the dispatcher in error records.
const FunctionName = "sendNotificationEvent"

// Outcome is the result of one dispatch pass.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

type NotificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	MarkSent(ctx context.Context, notificationID string, at time.Time) error
}

type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type ErrorStore interface {
	Put(ctx context.Context, e *domain.ErrorRecord) error
}

type PushSender interface {
	Send(ctx context.Context, token string, msg domain.PushMessage) error
}

// Service delivers a freshly created notification to its recipient's devices.
type Service interface {
	// Dispatch never returns an error: failures are logged and recorded in
	// the errors table so the triggering platform does not redeliver.
	Dispatch(ctx context.Context, ev domain.ChangeEvent) Outcome
}

type ServiceDeps struct {
	Notifications NotificationStore
	Users         UserStore
	Errors        ErrorStore
	Push          PushSender
	Logger        *zap.Logger
	Clock         func() time.Time
}

type service struct {
	notifications NotificationStore
	users         UserStore
	errs          ErrorStore
	push          PushSender
	log           *zap.Logger
	now           func() time.Time
}

func NewService(d ServiceDeps) Service {
	s := &service{
		notifications: d.Notifications,
		users:         d.Users,
		errs:          d.Errors,
		push:          d.Push,
		log:           d.Logger,
		now:           d.Clock,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Dispatch(ctx context.Context, ev domain.ChangeEvent) Outcome {
	outcome, err := s.safeRun(ctx, ev)
	if err != nil {
		s.log.Error("error sending notification", zap.String("eventId", ev.ID), zap.String("subject", ev.Subject), zap.Error(err))
		s.recordError(ctx, err, ev)
		outcome = OutcomeFailed
	}
	metrics.Dispatches.WithLabelValues(string(outcome)).Inc()
	return outcome
}

// safeRun converts a panic in a collaborator into an error so it is recorded
// like any other failure.
func (s *service) safeRun(ctx context.Context, ev domain.ChangeEvent) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.run(ctx, ev)
}

func (s *service) run(ctx context.Context, ev domain.ChangeEvent) (Outcome, error) {
	docID := ev.DocumentID()
	if docID == "" {
		s.log.Info("no document id found in the event", zap.String("eventId", ev.ID))
		return OutcomeSkipped, nil
	}
	log := s.log.With(zap.String("notificationId", docID))
	log.Debug("fetching notification")

	n, err := s.notifications.Get(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("notification document not found")
		return OutcomeSkipped, nil
	}
	if err != nil {
		return "", err
	}

	if err := validate.Struct(n.Deliverable()); err != nil {
		log.Info("missing required notification fields", zap.Error(err))
		return OutcomeSkipped, nil
	}

	u, err := s.users.Get(ctx, n.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("user document not found", zap.String("userId", n.UserID))
		return OutcomeSkipped, nil
	}
	if err != nil {
		return "", err
	}

	tokens := u.DeviceTokens()
	if len(tokens) == 0 {
		log.Info("push token not found for user", zap.String("userId", n.UserID))
		return OutcomeSkipped, nil
	}

	msg := ComposePush(n)
	for i, token := range tokens {
		device := "primary"
		if i > 0 {
			device = "ipad"
		}
		if err := s.push.Send(ctx, token, msg); err != nil {
			metrics.PushSends.WithLabelValues(metrics.OutcomeFailed).Inc()
			return "", fmt.Errorf("send to %s device: %w", device, err)
		}
		metrics.PushSends.WithLabelValues(metrics.OutcomeSuccess).Inc()
		log.Info("notification sent", zap.String("device", device))
	}

	if err := s.notifications.MarkSent(ctx, docID, s.now()); err != nil {
		return "", err
	}
	log.Info("notification status updated")
	return OutcomeSent, nil
}

// recordError appends an error record. It is best effort: a failure here is
// logged and swallowed.
func (s *service) recordError(ctx context.Context, cause error, ev domain.ChangeEvent) {
	rec := &domain.ErrorRecord{
		ID:           id.New(),
		FunctionName: FunctionName,
		Message:      cause.Error(),
		Event:        ev,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.errs.Put(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Error("error logging the error", zap.String("errorId", rec.ID), zap.Error(err))
		return
	}
	s.log.Info("error logged", zap.String("errorId", rec.ID))
}
