package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectPending   ProjectStatus = "pending"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
)

// Member is one membership entry on a project. A project holds at most one
// entry per user; the creator is inserted as admin at creation time.
type Member struct {
	UserID string `bson:"userId" json:"userId"`
	Role   Role   `bson:"role" json:"role"`
}

type Timeline struct {
	Start time.Time `bson:"start,omitempty" json:"start,omitempty"`
	End   time.Time `bson:"end,omitempty" json:"end,omitempty"`
}

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Users       []Member           `bson:"users" json:"users"`
	Timeline    *Timeline          `bson:"timeline,omitempty" json:"timeline,omitempty"`
	Status      ProjectStatus      `bson:"status" json:"status"`
	Priority    ProjectPriority    `bson:"priority" json:"priority"`
	Currency    string             `bson:"currency,omitempty" json:"currency,omitempty"`
	Amount      float64            `bson:"amount" json:"amount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoleOf scans the membership list for userID.
func (p *Project) RoleOf(userID string) (Role, bool) {
	for _, m := range p.Users {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// MembersWithRole returns the user ids of members holding any of the given roles.
func (p *Project) MembersWithRole(roles ...Role) []string {
	var ids []string
	for _, m := range p.Users {
		for _, r := range roles {
			if m.Role == r {
				ids = append(ids, m.UserID)
				break
			}
		}
	}
	return ids
}
