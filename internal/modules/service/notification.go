package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
	"go.uber.org/zap"
)

// Publisher is satisfied by *mq.Publisher.
type Publisher interface {
	PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error
}

type NotificationService interface {
	Enqueue(ctx context.Context, in EnqueueNotificationInput) (*model.Notification, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
}

// NotificationRoute names where queued notifications are announced.
type NotificationRoute struct {
	Exchange   string
	RoutingKey string
}

type notificationService struct {
	r         repo.NotificationRepo
	publisher Publisher
	route     NotificationRoute
	log       *zap.Logger
}

// NewNotificationService accepts a nil publisher; rows are then only stored.
func NewNotificationService(r repo.NotificationRepo, publisher Publisher, route NotificationRoute, log *zap.Logger) NotificationService {
	return &notificationService{r: r, publisher: publisher, route: route, log: log}
}

type EnqueueNotificationInput struct {
	UserID  uuid.UUID `json:"user_id"`
	Payload string    `json:"payload"`
}

type NotificationQueuedMQ struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
}

func (s *notificationService) Enqueue(ctx context.Context, in EnqueueNotificationInput) (*model.Notification, error) {
	if in.UserID == uuid.Nil {
		return nil, invalid("user id is required")
	}
	if strings.TrimSpace(in.Payload) == "" {
		return nil, invalid("payload is required")
	}

	n := &model.Notification{
		UserID:  in.UserID,
		Payload: in.Payload,
		Sent:    model.NotificationPending,
	}
	if err := s.r.Create(ctx, n); err != nil {
		return nil, storeErr("enqueue notification", err)
	}

	// the stored row is authoritative; a failed announce is only logged
	if s.publisher != nil {
		if err := s.publisher.PublishJSON(ctx, s.route.Exchange, s.route.RoutingKey, NotificationQueuedMQ{
			NotificationID: n.ID,
			UserID:         n.UserID,
		}); err != nil {
			s.log.Error("failed to publish queued notification", zap.Error(err), zap.String("notification_id", n.ID.String()))
		}
	}

	return n, nil
}

func (s *notificationService) ListPending(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	items, err := s.r.ListPending(ctx, userID, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list pending notifications", err)
	}
	return items, nil
}
