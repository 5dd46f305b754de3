package services

import (
	"context"
	"testing"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

func newProjectEnv(t *testing.T) (*ProjectService, *fakeProjectStore, string) {
	t.Helper()

	store := newFakeProjectStore()
	service := NewProjectService(store, NewMembershipStore(store))

	project, err := service.CreateProject(context.Background(), "creator", CreateProjectInput{Title: "alpha"})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return service, store, project.ID.Hex()
}

func TestCreateProject_CreatorBecomesAdmin(t *testing.T) {
	store := newFakeProjectStore()
	service := NewProjectService(store, NewMembershipStore(store))

	project, err := service.CreateProject(context.Background(), "creator", CreateProjectInput{Title: "alpha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	role, ok := project.RoleOf("creator")
	if !ok || role != models.RoleAdmin {
		t.Errorf("creator must be inserted as admin, got (%s, %v)", role, ok)
	}
	if project.Status != models.ProjectActive {
		t.Errorf("expected default status active, got %s", project.Status)
	}
	if project.Priority != models.PriorityMedium {
		t.Errorf("expected default priority medium, got %s", project.Priority)
	}
}

func TestCreateProject_RequiresTitle(t *testing.T) {
	store := newFakeProjectStore()
	service := NewProjectService(store, NewMembershipStore(store))

	if _, err := service.CreateProject(context.Background(), "creator", CreateProjectInput{}); !errs.Is(err, errs.CodeInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestAddUserToProject(t *testing.T) {
	service, store, projectID := newProjectEnv(t)

	// Invalid role is rejected before any store access.
	before := store.findCalls
	err := service.AddUserToProject(context.Background(), projectID, "creator", "u2", "owner")
	if !errs.Is(err, errs.CodeInvalidInput) {
		t.Fatalf("expected InvalidInput for bad role, got %v", err)
	}
	if store.findCalls != before {
		t.Errorf("validation failures must not touch the store")
	}

	if err := service.AddUserToProject(context.Background(), projectID, "creator", "u2", "developer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second add of the same user conflicts and leaves membership unchanged.
	err = service.AddUserToProject(context.Background(), projectID, "creator", "u2", "developer")
	if !errs.Is(err, errs.CodeConflict) {
		t.Fatalf("expected Conflict on duplicate add, got %v", err)
	}
	project, _ := store.FindByID(context.Background(), projectID)
	if len(project.Users) != 2 {
		t.Errorf("membership count changed on conflicting add: %d", len(project.Users))
	}
}

func TestAddUserToProject_DeveloperActorRejected(t *testing.T) {
	service, _, projectID := newProjectEnv(t)

	if err := service.AddUserToProject(context.Background(), projectID, "creator", "dev", "developer"); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	err := service.AddUserToProject(context.Background(), projectID, "dev", "u3", "developer")
	if !errs.Is(err, errs.CodeUnauthorized) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	service, store, projectID := newProjectEnv(t)

	if err := service.AddUserToProject(context.Background(), projectID, "creator", "u2", "developer"); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	if err := service.UpdateUserRole(context.Background(), projectID, "creator", "u2", "manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	project, _ := store.FindByID(context.Background(), projectID)
	if role, _ := project.RoleOf("u2"); role != models.RoleManager {
		t.Errorf("expected manager, got %s", role)
	}

	// Unknown member.
	if err := service.UpdateUserRole(context.Background(), projectID, "creator", "ghost", "manager"); !errs.Is(err, errs.CodeNotFound) {
		t.Errorf("expected NotFound for non-member, got %v", err)
	}
	// Bad role never reaches the store.
	if err := service.UpdateUserRole(context.Background(), projectID, "creator", "u2", "root"); !errs.Is(err, errs.CodeInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestRemoveUsersFromProject(t *testing.T) {
	service, store, projectID := newProjectEnv(t)

	if err := service.AddUserToProject(context.Background(), projectID, "creator", "u2", "developer"); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	// Empty list fails before any store access.
	if err := service.RemoveUsersFromProject(context.Background(), projectID, "creator", nil); !errs.Is(err, errs.CodeInvalidInput) {
		t.Fatalf("expected InvalidInput for empty list, got %v", err)
	}
	if err := service.RemoveUsersFromProject(context.Background(), projectID, "creator", []string{"u2", ""}); !errs.Is(err, errs.CodeInvalidInput) {
		t.Fatalf("expected InvalidInput for blank id, got %v", err)
	}

	if err := service.RemoveUsersFromProject(context.Background(), projectID, "creator", []string{"u2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	project, _ := store.FindByID(context.Background(), projectID)
	if _, ok := project.RoleOf("u2"); ok {
		t.Errorf("u2 should have been removed")
	}
}

func TestUpdateProject(t *testing.T) {
	service, _, projectID := newProjectEnv(t)

	status := models.ProjectCompleted
	project, err := service.UpdateProject(context.Background(), projectID, "creator", ProjectPatch{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.Status != models.ProjectCompleted {
		t.Errorf("expected completed, got %s", project.Status)
	}

	bad := models.ProjectStatus("paused")
	if _, err := service.UpdateProject(context.Background(), projectID, "creator", ProjectPatch{Status: &bad}); !errs.Is(err, errs.CodeInvalidInput) {
		t.Errorf("expected InvalidInput for unknown status, got %v", err)
	}
	if _, err := service.UpdateProject(context.Background(), projectID, "creator", ProjectPatch{}); !errs.Is(err, errs.CodeInvalidInput) {
		t.Errorf("expected InvalidInput for empty patch, got %v", err)
	}
}

func TestUpdateProject_NonAdminRejected(t *testing.T) {
	service, _, projectID := newProjectEnv(t)

	if err := service.AddUserToProject(context.Background(), projectID, "creator", "dev", "developer"); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	title := "renamed"
	if _, err := service.UpdateProject(context.Background(), projectID, "dev", ProjectPatch{Title: &title}); !errs.Is(err, errs.CodeUnauthorized) {
		t.Errorf("expected Unauthorized for developer, got %v", err)
	}
	if _, err := service.UpdateProject(context.Background(), projectID, "stranger", ProjectPatch{Title: &title}); !errs.Is(err, errs.CodeUnauthorized) {
		t.Errorf("expected Unauthorized for non-member, got %v", err)
	}
}

func TestDeleteProject(t *testing.T) {
	service, store, projectID := newProjectEnv(t)

	if err := service.DeleteProject(context.Background(), projectID, "stranger"); !errs.Is(err, errs.CodeUnauthorized) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	if err := service.DeleteProject(context.Background(), projectID, "creator"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.FindByID(context.Background(), projectID); !errs.Is(err, errs.CodeNotFound) {
		t.Errorf("project should be gone, got %v", err)
	}
}
