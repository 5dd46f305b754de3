package services

import (
	"context"
	"time"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

// defaultNotificationLimit caps the listing endpoint at the latest entries.
const defaultNotificationLimit = 10

// NotificationService exposes the durable notification record: listing for a
// user, read-flag flips, and deletion. Creation normally happens inside the
// dispatcher; CreateManual is the explicit endpoint-driven path.
type NotificationService struct {
	store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

type CreateNotificationInput struct {
	Recipient []string `json:"recipient"`
	Sender    string   `json:"sender"`
	ProjectID string   `json:"projectId"`
	TaskID    string   `json:"taskId"`
	Message   string   `json:"message"`
	Type      string   `json:"type"`
}

// CreateManual validates and stores a caller-supplied notification.
func (s *NotificationService) CreateManual(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	if len(input.Recipient) == 0 {
		return nil, errs.InvalidInput("recipient must be a non-empty array")
	}
	for _, id := range input.Recipient {
		if id == "" {
			return nil, errs.InvalidInput("recipient must not contain empty ids")
		}
	}
	if input.Message == "" {
		return nil, errs.InvalidInput("message is required")
	}
	if input.Type == "" {
		input.Type = string(models.NotificationGeneral)
	}
	if !models.ValidNotificationType(input.Type) {
		return nil, errs.InvalidInput("invalid notification type: " + input.Type)
	}

	notification := &models.Notification{
		Recipient: input.Recipient,
		Sender:    input.Sender,
		ProjectID: input.ProjectID,
		TaskID:    input.TaskID,
		Message:   input.Message,
		Type:      models.NotificationType(input.Type),
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.store.Insert(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListForUser returns the user's latest notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, errs.InvalidInput("userId is required")
	}
	return s.store.ListForUser(ctx, userID, defaultNotificationLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	return s.store.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return errs.InvalidInput("userId is required")
	}
	return s.store.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}

func (s *NotificationService) DeleteAllForUser(ctx context.Context, userID string) error {
	if userID == "" {
		return errs.InvalidInput("userId is required")
	}
	return s.store.DeleteAllForUser(ctx, userID)
}
