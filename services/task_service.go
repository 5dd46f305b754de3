package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

// TaskService runs every task mutation through the same three stages, in
// order: authorization against current membership, the task write, then
// notification emission. A failed guard check leaves no trace; a failed
// notification never undoes a committed task write.
type TaskService struct {
	tasks      TaskStore
	projects   ProjectStore
	dispatcher *NotificationDispatcher

	// now is swappable for tests.
	now func() time.Time
}

func NewTaskService(tasks TaskStore, projects ProjectStore, dispatcher *NotificationDispatcher) *TaskService {
	return &TaskService{
		tasks:      tasks,
		projects:   projects,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

type CreateTaskInput struct {
	TaskName    string              `json:"taskName"`
	Description string              `json:"description"`
	AssignedTo  string              `json:"assignedTo"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
}

// CreateTask creates a task in the project and notifies the assignee. Only
// project admins and managers may create tasks.
func (s *TaskService) CreateTask(ctx context.Context, projectID, actor string, input CreateTaskInput) (*models.Task, error) {
	if input.TaskName == "" {
		return nil, errs.InvalidInput("taskName is required")
	}
	if input.AssignedTo == "" {
		return nil, errs.InvalidInput("assignedTo is required")
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(string(input.Priority)) {
		return nil, errs.InvalidInput("invalid priority: " + string(input.Priority))
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	role, ok := project.RoleOf(actor)
	if !ok || !models.Permits(role, models.ActionCreateTask) {
		return nil, errs.Unauthorized("only project admins and managers can create tasks")
	}

	now := s.now()
	task := &models.Task{
		TaskName:    input.TaskName,
		Description: input.Description,
		ProjectID:   projectID,
		AssignedBy:  actor,
		AssignedTo:  input.AssignedTo,
		Priority:    input.Priority,
		Status:      models.StatusPending,
		DueDate:     input.DueDate,
		AssignedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, []NotificationEvent{{
		Recipients: []string{input.AssignedTo},
		Sender:     actor,
		ProjectID:  projectID,
		TaskID:     task.ID.Hex(),
		Message:    fmt.Sprintf("You have been assigned a new task: %q", input.TaskName),
		Type:       models.NotificationNewAssignment,
	}})

	return task, nil
}

// UpdateTask applies a partial update. Admins and managers may change any
// field; the assignee may only change the status; everyone else is rejected.
// On success every admin and manager of the project except the actor gets a
// task-update notification.
func (s *TaskService) UpdateTask(ctx context.Context, projectID, taskID, actor string, patch models.TaskPatch) (*models.Task, error) {
	if len(patch.Fields()) == 0 {
		return nil, errs.InvalidInput("update must contain at least one field")
	}
	if patch.Status != nil && !models.ValidTaskStatus(string(*patch.Status)) {
		return nil, errs.InvalidInput("invalid status: " + string(*patch.Status))
	}
	if patch.Priority != nil && !models.ValidTaskPriority(string(*patch.Priority)) {
		return nil, errs.InvalidInput("invalid priority: " + string(*patch.Priority))
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	role, ok := project.RoleOf(actor)
	if !ok {
		return nil, errs.Unauthorized("you must be a member of the project to update tasks")
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != projectID {
		return nil, errs.NotFound("task not found in this project")
	}

	switch {
	case models.Permits(role, models.ActionUpdateTaskFields):
		// any field
	case task.AssignedTo == actor && patch.StatusOnly():
		// assignee, status only
	case task.AssignedTo == actor:
		return nil, errs.Unauthorized("you can only update the task status")
	default:
		return nil, errs.Unauthorized("only admins, managers, or the assigned user can update tasks")
	}

	set := patch.SetDocument()
	if patch.Status != nil && *patch.Status == models.StatusCompleted && task.Status != models.StatusCompleted {
		set["completedAt"] = s.now()
	}

	updated, err := s.tasks.UpdateByID(ctx, taskID, set)
	if err != nil {
		return nil, err
	}

	var events []NotificationEvent
	for _, userID := range project.MembersWithRole(models.RoleAdmin, models.RoleManager) {
		if userID == actor {
			continue
		}
		events = append(events, NotificationEvent{
			Recipients: []string{userID},
			Sender:     actor,
			ProjectID:  projectID,
			TaskID:     updated.ID.Hex(),
			Message:    fmt.Sprintf("Task %q has been updated by %s", updated.TaskName, actor),
			Type:       models.NotificationTaskUpdate,
		})
	}
	s.dispatcher.Dispatch(ctx, events)

	return updated, nil
}

// DeleteTask removes a task. Admin/manager only; deletion emits no
// notifications.
func (s *TaskService) DeleteTask(ctx context.Context, projectID, taskID, actor string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	role, ok := project.RoleOf(actor)
	if !ok || !models.Permits(role, models.ActionDeleteTask) {
		return errs.Unauthorized("only project admins and managers can delete tasks")
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.ProjectID != projectID {
		return errs.NotFound("task not found in this project")
	}

	return s.tasks.DeleteByID(ctx, taskID)
}

// CompleteTask marks the task completed. The actor must be a member of the
// task's project and its assignee; any other role is insufficient here.
// completedAt only ever moves forward, so re-completing keeps the audit
// marker monotonic.
func (s *TaskService) CompleteTask(ctx context.Context, taskID, actor string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, ok := project.RoleOf(actor); !ok {
		return nil, errs.Unauthorized("you must be part of the project")
	}
	if task.AssignedTo != actor {
		return nil, errs.Unauthorized("you can only complete tasks assigned to you")
	}

	set := bson.M{"status": models.StatusCompleted}
	now := s.now()
	if task.CompletedAt == nil || now.After(*task.CompletedAt) {
		set["completedAt"] = now
	}
	return s.tasks.UpdateByID(ctx, taskID, set)
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID string) (*models.Task, error) {
	return s.tasks.FindByID(ctx, taskID)
}

// GetTasksByProject lists the project's tasks for a member.
func (s *TaskService) GetTasksByProject(ctx context.Context, projectID, actor string) ([]models.Task, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, ok := project.RoleOf(actor); !ok {
		return nil, errs.Unauthorized("you must be part of the project")
	}
	return s.tasks.FindByProject(ctx, projectID)
}
