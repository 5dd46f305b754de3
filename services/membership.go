package services

import (
	"context"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

// MembershipStore answers role questions and mutates a project's membership
// list. Every lookup reads the current project document; caching a role here
// would let a demoted or removed member keep acting on stale authority.
type MembershipStore struct {
	projects ProjectStore
}

func NewMembershipStore(projects ProjectStore) *MembershipStore {
	return &MembershipStore{projects: projects}
}

// RoleOf returns userID's role within the project, or false if the user is
// not a member. A missing project is a NotFound error, not a missing role.
func (m *MembershipStore) RoleOf(ctx context.Context, projectID, userID string) (models.Role, bool, error) {
	project, err := m.projects.FindByID(ctx, projectID)
	if err != nil {
		return "", false, err
	}
	role, ok := project.RoleOf(userID)
	return role, ok, nil
}

// AddMember validates the role string before touching the store; an unknown
// role is rejected, never coerced.
func (m *MembershipStore) AddMember(ctx context.Context, projectID, userID string, role string) error {
	if userID == "" {
		return errs.InvalidInput("userId is required")
	}
	if !models.ValidRole(role) {
		return errs.InvalidInput("invalid role specified: " + role)
	}
	return m.projects.AddMember(ctx, projectID, userID, models.Role(role))
}

func (m *MembershipStore) SetRole(ctx context.Context, projectID, userID string, role string) error {
	if userID == "" {
		return errs.InvalidInput("userId is required")
	}
	if !models.ValidRole(role) {
		return errs.InvalidInput("invalid role specified: " + role)
	}
	return m.projects.SetMemberRole(ctx, projectID, userID, models.Role(role))
}

func (m *MembershipStore) RemoveMembers(ctx context.Context, projectID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return errs.InvalidInput("userIds must be a non-empty array")
	}
	for _, id := range userIDs {
		if id == "" {
			return errs.InvalidInput("userIds must not contain empty ids")
		}
	}
	return m.projects.RemoveMembers(ctx, projectID, userIDs)
}
