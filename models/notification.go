package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTaskUpdate    NotificationType = "task-update"
	NotificationNewAssignment NotificationType = "new-assignment"
	NotificationProjectStatus NotificationType = "project-status"
	NotificationGeneral       NotificationType = "general"
)

func ValidNotificationType(s string) bool {
	switch NotificationType(s) {
	case NotificationTaskUpdate, NotificationNewAssignment, NotificationProjectStatus, NotificationGeneral:
		return true
	}
	return false
}

// Notification is the durable record of a delivered (or deliverable) event.
// Recipient is stored as an array: task-update fan-out writes one document per
// recipient, new-assignment writes a single document whose array holds the
// assignee. Project and task references are soft; the referenced documents may
// no longer exist.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Recipient []string           `bson:"recipient" json:"recipient"`
	Sender    string             `bson:"sender,omitempty" json:"sender,omitempty"`
	ProjectID string             `bson:"projectId,omitempty" json:"projectId,omitempty"`
	TaskID    string             `bson:"taskId,omitempty" json:"taskId,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
