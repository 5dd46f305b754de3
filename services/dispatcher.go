package services

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Tariq-Monowar/timetree/logging"
	"github.com/Tariq-Monowar/timetree/models"
)

// NotificationEvent is the unit of fan-out a mutation produces. Task updates
// arrive as one event per recipient; a new assignment is a single event whose
// recipient list holds the assignee.
type NotificationEvent struct {
	Recipients []string
	Sender     string
	ProjectID  string
	TaskID     string
	Message    string
	Type       models.NotificationType
}

// PushPayload is the frame body sent over the real-time channel.
type PushPayload struct {
	Message   string                  `json:"message"`
	Sender    string                  `json:"sender,omitempty"`
	TaskID    string                  `json:"taskId,omitempty"`
	Type      models.NotificationType `json:"type"`
	ProjectID string                  `json:"projectId,omitempty"`
}

// NotificationDispatcher persists each event and pushes it to recipients who
// are currently connected. The whole path is best-effort: a storage or
// delivery failure is logged and swallowed, never surfaced to the mutation
// that produced the event, and nothing is retried. The durable record is what
// a disconnected client polls for later.
type NotificationDispatcher struct {
	store    NotificationStore
	realtime Realtime
	breaker  *gobreaker.CircuitBreaker
	now      func() time.Time
}

func NewNotificationDispatcher(store NotificationStore, realtime Realtime) *NotificationDispatcher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &NotificationDispatcher{
		store:    store,
		realtime: realtime,
		breaker:  breaker,
		now:      time.Now,
	}
}

// Dispatch persists and delivers the given events in order. Persistence runs
// through a circuit breaker so a struggling store is skipped instead of
// hammered; an event whose write was skipped is still offered to connected
// recipients.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, events []NotificationEvent) {
	for _, ev := range events {
		if len(ev.Recipients) == 0 {
			continue
		}

		notification := &models.Notification{
			Recipient: ev.Recipients,
			Sender:    ev.Sender,
			ProjectID: ev.ProjectID,
			TaskID:    ev.TaskID,
			Message:   ev.Message,
			Type:      ev.Type,
			Read:      false,
			CreatedAt: d.now(),
		}

		if _, err := d.breaker.Execute(func() (interface{}, error) {
			return nil, d.store.Insert(ctx, notification)
		}); err != nil {
			logging.Logger.Errorf("Failed to persist %s notification for %v: %v", ev.Type, ev.Recipients, err)
		}

		payload := PushPayload{
			Message:   ev.Message,
			Sender:    ev.Sender,
			TaskID:    ev.TaskID,
			Type:      ev.Type,
			ProjectID: ev.ProjectID,
		}
		for _, userID := range ev.Recipients {
			channelID, ok := d.realtime.Resolve(userID)
			if !ok {
				continue
			}
			if err := d.realtime.Push(channelID, "new-notification", payload); err != nil {
				logging.Logger.Warnf("Failed to push notification to user %s on channel %s: %v", userID, channelID, err)
			}
		}
	}
}
