package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nyssa-notify/internal/domain"
	"github.com/nyssa-notify/internal/infrastructure/chatapi"
	"github.com/nyssa-notify/internal/pkg/id"
	"github.com/nyssa-notify/internal/pkg/validate"
	"go.uber.org/zap"
)

// Values stamped on every notification the relay writes.
const (
	DefaultPrompt    = "Describe the image"
	ChatCategory     = "chats"
	ChatSenderID     = "ai_1"
	ChatNotification = "Nyssa"
)

// ChatAPI is the hosted chat service.
type ChatAPI interface {
	Chat(ctx context.Context, req chatapi.Request) (*chatapi.Reply, error)
}

// NotificationStore persists notification records.
type NotificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type Service interface {
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error)
}

// ServiceDeps groups the collaborators of the relay. Clock and NewID default
// to time.Now and id.NewUpperUUID.
type ServiceDeps struct {
	ChatAPI         ChatAPI
	Notifications   NotificationStore
	DeeplinkBaseURL string
	Logger          *zap.Logger
	Clock           func() time.Time
	NewID           func() string
}

type service struct {
	chat         ChatAPI
	store        NotificationStore
	deeplinkBase string
	log          *zap.Logger
	now          func() time.Time
	newID        func() string
}

func NewService(d ServiceDeps) Service {
	s := &service{
		chat:         d.ChatAPI,
		store:        d.Notifications,
		deeplinkBase: strings.TrimRight(d.DeeplinkBaseURL, "/"),
		log:          d.Logger,
		now:          d.Clock,
		newID:        d.NewID,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = id.NewUpperUUID
	}
	return s
}

// Chat forwards the prompt to the chat service and stores the answer as a
// notification for the requesting user. Nothing is written unless the chat
// service answered successfully.
//
// Errors: domain.ErrBadRequest when userId or tenantId is missing,
// domain.ErrUpstream when the chat service reports no success, anything else
// as returned by the collaborators.
func (s *service) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	upstreamReq := chatapi.Request{
		Input:    req.Prompt,
		UserID:   req.UserID,
		ThreadID: req.ThreadID,
		Image:    req.ImageURL,
	}
	if upstreamReq.Input == "" {
		upstreamReq.Input = DefaultPrompt
	}
	s.log.Info("sending request to chat api",
		zap.String("userId", req.UserID),
		zap.String("threadId", req.ThreadID),
		zap.Bool("hasImage", req.ImageURL != ""),
	)

	reply, err := s.chat.Chat(ctx, upstreamReq)
	if err != nil {
		return nil, err
	}
	if reply == nil || !reply.Success {
		return nil, fmt.Errorf("chat api reported failure: %w", domain.ErrUpstream)
	}
	s.log.Info("received response from chat api", zap.String("threadId", reply.ThreadID))

	n := s.buildNotification(req, reply.Response)
	if err := s.store.Put(ctx, n); err != nil {
		return nil, err
	}
	s.log.Info("created notification", zap.String("notificationId", n.NotificationID))

	return &domain.ChatResult{
		Success:        true,
		ThreadID:       reply.ThreadID,
		Response:       reply.Response,
		NotificationID: n.NotificationID,
	}, nil
}

// buildNotification writes status "sent" up front. The dispatcher sets it
// again after the push actually goes out.
func (s *service) buildNotification(req domain.ChatRequest, message string) *domain.Notification {
	now := s.now().UTC()
	return &domain.Notification{
		NotificationID: s.newID(),
		Category:       ChatCategory,
		Type:           ChatNotification,
		CreatedBy:      ChatSenderID,
		From:           ChatSenderID,
		UserID:         req.UserID,
		TenantID:       req.TenantID,
		Message:        message,
		Deeplink:       s.deeplinkBase + "/" + req.GroupID,
		Status:         domain.NotificationStatusSent,
		DateCreated:    now,
		SentAt:         &now,
	}
}
