package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

// ProjectService manages project lifecycle and membership. Authorization goes
// through the capability table against a fresh role lookup on every call.
type ProjectService struct {
	projects   ProjectStore
	membership *MembershipStore
	now        func() time.Time
}

func NewProjectService(projects ProjectStore, membership *MembershipStore) *ProjectService {
	return &ProjectService{
		projects:   projects,
		membership: membership,
		now:        time.Now,
	}
}

type CreateProjectInput struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Timeline    *models.Timeline        `json:"timeline"`
	Priority    models.ProjectPriority  `json:"priority"`
	Currency    string                  `json:"currency"`
	Amount      float64                 `json:"amount"`
}

// CreateProject inserts a project with the creator as its admin. That entry is
// what later authorizes every mutation, so it is written atomically with the
// project document itself.
func (s *ProjectService) CreateProject(ctx context.Context, actor string, input CreateProjectInput) (*models.Project, error) {
	if input.Title == "" {
		return nil, errs.InvalidInput("title is required")
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	switch input.Priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return nil, errs.InvalidInput("invalid priority: " + string(input.Priority))
	}

	now := s.now()
	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Users:       []models.Member{{UserID: actor, Role: models.RoleAdmin}},
		Timeline:    input.Timeline,
		Status:      models.ProjectActive,
		Priority:    input.Priority,
		Currency:    input.Currency,
		Amount:      input.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	return s.projects.FindByID(ctx, projectID)
}

func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.FindAll(ctx)
}

// ProjectPatch is a partial update to a project's own fields. Membership is
// mutated through the dedicated operations, never through a patch.
type ProjectPatch struct {
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Timeline    *models.Timeline        `json:"timeline,omitempty"`
	Status      *models.ProjectStatus   `json:"status,omitempty"`
	Priority    *models.ProjectPriority `json:"priority,omitempty"`
	Currency    *string                 `json:"currency,omitempty"`
	Amount      *float64                `json:"amount,omitempty"`
}

func (p ProjectPatch) setDocument() bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Timeline != nil {
		set["timeline"] = *p.Timeline
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Currency != nil {
		set["currency"] = *p.Currency
	}
	if p.Amount != nil {
		set["amount"] = *p.Amount
	}
	return set
}

// UpdateProject applies a patch to the project document. Admin/manager only.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID, actor string, patch ProjectPatch) (*models.Project, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, errs.InvalidInput("title must not be empty")
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.ProjectActive, models.ProjectPending, models.ProjectCompleted, models.ProjectArchived:
		default:
			return nil, errs.InvalidInput("invalid status: " + string(*patch.Status))
		}
	}
	if patch.Priority != nil {
		switch *patch.Priority {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		default:
			return nil, errs.InvalidInput("invalid priority: " + string(*patch.Priority))
		}
	}

	set := patch.setDocument()
	if len(set) == 0 {
		return nil, errs.InvalidInput("update must contain at least one field")
	}

	if err := s.requireProjectRole(ctx, projectID, actor, models.ActionEditProject,
		"only admins and managers can update projects"); err != nil {
		return nil, err
	}

	set["updatedAt"] = s.now()
	return s.projects.UpdateByID(ctx, projectID, set)
}

// DeleteProject removes the project document. Admin/manager only. Tasks and
// notifications referencing it stay behind as soft references.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, actor string) error {
	if err := s.requireProjectRole(ctx, projectID, actor, models.ActionEditProject,
		"only admins and managers can delete projects"); err != nil {
		return err
	}
	return s.projects.DeleteByID(ctx, projectID)
}

// AddUserToProject adds a member with the given role. The role string is
// validated before any store access; duplicates surface as Conflict.
func (s *ProjectService) AddUserToProject(ctx context.Context, projectID, actor, userID, role string) error {
	if userID == "" {
		return errs.InvalidInput("userId is required")
	}
	if !models.ValidRole(role) {
		return errs.InvalidInput("invalid role specified: " + role)
	}
	if err := s.requireProjectRole(ctx, projectID, actor, models.ActionManageMembers,
		"only admins and managers can manage project members"); err != nil {
		return err
	}
	return s.membership.AddMember(ctx, projectID, userID, role)
}

// UpdateUserRole changes an existing member's role. Admin/manager only.
func (s *ProjectService) UpdateUserRole(ctx context.Context, projectID, actor, userID, newRole string) error {
	if userID == "" {
		return errs.InvalidInput("userId is required")
	}
	if !models.ValidRole(newRole) {
		return errs.InvalidInput("invalid role specified: " + newRole)
	}
	if err := s.requireProjectRole(ctx, projectID, actor, models.ActionManageMembers,
		"only admins and managers can manage project members"); err != nil {
		return err
	}
	return s.membership.SetRole(ctx, projectID, userID, newRole)
}

// RemoveUsersFromProject drops the listed members. The creator's admin entry
// enjoys no special protection here: an explicit removal is allowed once the
// guard passes.
func (s *ProjectService) RemoveUsersFromProject(ctx context.Context, projectID, actor string, userIDs []string) error {
	if len(userIDs) == 0 {
		return errs.InvalidInput("userIds must be a non-empty array")
	}
	for _, id := range userIDs {
		if id == "" {
			return errs.InvalidInput("userIds must not contain empty ids")
		}
	}
	if err := s.requireProjectRole(ctx, projectID, actor, models.ActionManageMembers,
		"only admins and managers can remove users"); err != nil {
		return err
	}
	return s.membership.RemoveMembers(ctx, projectID, userIDs)
}

// requireProjectRole checks the actor's current role against the capability
// table, reading membership fresh so revocations take effect immediately.
func (s *ProjectService) requireProjectRole(ctx context.Context, projectID, actor string, action models.Action, denied string) error {
	role, ok, err := s.membership.RoleOf(ctx, projectID, actor)
	if err != nil {
		return err
	}
	if !ok || !models.Permits(role, action) {
		return errs.Unauthorized(denied)
	}
	return nil
}
