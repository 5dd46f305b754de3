// Package services holds the mutation pipeline: authorization-gated task and
// project operations, the notification store and dispatcher, and membership
// bookkeeping. Handlers stay thin wrappers over this package.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Tariq-Monowar/timetree/models"
)

// ProjectStore is the persistence surface the project and membership logic
// needs. The Mongo implementation lives in the repositories package.
type ProjectStore interface {
	Insert(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	UpdateByID(ctx context.Context, id string, set bson.M) (*models.Project, error)
	DeleteByID(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID, userID string, role models.Role) error
	SetMemberRole(ctx context.Context, projectID, userID string, role models.Role) error
	RemoveMembers(ctx context.Context, projectID string, userIDs []string) error
}

type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindByProject(ctx context.Context, projectID string) ([]models.Task, error)
	UpdateByID(ctx context.Context, id string, set bson.M) (*models.Task, error)
	DeleteByID(ctx context.Context, id string) error
}

type NotificationStore interface {
	Insert(ctx context.Context, notification *models.Notification) error
	ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Realtime is the presence-plus-push surface the dispatcher consumes. The
// WebSocket hub implements it.
type Realtime interface {
	Resolve(userID string) (string, bool)
	Push(channelID, event string, payload interface{}) error
}
