package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

type fakeProjectStore struct {
	projects  map[string]*models.Project
	findCalls int
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[string]*models.Project)}
}

func (f *fakeProjectStore) Insert(_ context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	clone := *project
	f.projects[project.ID.Hex()] = &clone
	return nil
}

func (f *fakeProjectStore) FindByID(_ context.Context, id string) (*models.Project, error) {
	f.findCalls++
	project, ok := f.projects[id]
	if !ok {
		return nil, errs.NotFound("project not found")
	}
	clone := *project
	clone.Users = append([]models.Member(nil), project.Users...)
	return &clone, nil
}

func (f *fakeProjectStore) FindAll(_ context.Context) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjectStore) UpdateByID(_ context.Context, id string, set bson.M) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, errs.NotFound("project not found")
	}
	if title, ok := set["title"].(string); ok {
		project.Title = title
	}
	if status, ok := set["status"].(models.ProjectStatus); ok {
		project.Status = status
	}
	if priority, ok := set["priority"].(models.ProjectPriority); ok {
		project.Priority = priority
	}
	clone := *project
	return &clone, nil
}

func (f *fakeProjectStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return errs.NotFound("project not found")
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) AddMember(_ context.Context, projectID, userID string, role models.Role) error {
	project, ok := f.projects[projectID]
	if !ok {
		return errs.NotFound("project not found")
	}
	if _, member := project.RoleOf(userID); member {
		return errs.Conflict("user is already a member of this project")
	}
	project.Users = append(project.Users, models.Member{UserID: userID, Role: role})
	return nil
}

func (f *fakeProjectStore) SetMemberRole(_ context.Context, projectID, userID string, role models.Role) error {
	project, ok := f.projects[projectID]
	if !ok {
		return errs.NotFound("project not found")
	}
	for i, m := range project.Users {
		if m.UserID == userID {
			project.Users[i].Role = role
			return nil
		}
	}
	return errs.NotFound("user is not a member of this project")
}

func (f *fakeProjectStore) RemoveMembers(_ context.Context, projectID string, userIDs []string) error {
	project, ok := f.projects[projectID]
	if !ok {
		return errs.NotFound("project not found")
	}
	removed := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		removed[id] = true
	}
	var kept []models.Member
	for _, m := range project.Users {
		if !removed[m.UserID] {
			kept = append(kept, m)
		}
	}
	project.Users = kept
	return nil
}

type fakeTaskStore struct {
	tasks map[string]*models.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]*models.Task)}
}

func (f *fakeTaskStore) Insert(_ context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	clone := *task
	f.tasks[task.ID.Hex()] = &clone
	return nil
}

func (f *fakeTaskStore) FindByID(_ context.Context, id string) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, errs.NotFound("task not found")
	}
	clone := *task
	return &clone, nil
}

func (f *fakeTaskStore) FindByProject(_ context.Context, projectID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) UpdateByID(_ context.Context, id string, set bson.M) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, errs.NotFound("task not found")
	}
	for key, value := range set {
		switch key {
		case "taskName":
			task.TaskName = value.(string)
		case "description":
			task.Description = value.(string)
		case "assignedTo":
			task.AssignedTo = value.(string)
		case "priority":
			task.Priority = value.(models.TaskPriority)
		case "status":
			task.Status = value.(models.TaskStatus)
		case "dueDate":
			due := value.(time.Time)
			task.DueDate = &due
		case "completedAt":
			at := value.(time.Time)
			task.CompletedAt = &at
		case "updatedAt":
			task.UpdatedAt = value.(time.Time)
		}
	}
	clone := *task
	return &clone, nil
}

func (f *fakeTaskStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return errs.NotFound("task not found")
	}
	delete(f.tasks, id)
	return nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
	insertErr     error
}

func (f *fakeNotificationStore) Insert(_ context.Context, notification *models.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	clone := *notification
	clone.Recipient = append([]string(nil), notification.Recipient...)
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationStore) ListForUser(_ context.Context, userID string, limit int64) ([]models.Notification, error) {
	type indexed struct {
		n   *models.Notification
		seq int
	}
	var matched []indexed
	for i, n := range f.notifications {
		for _, r := range n.Recipient {
			if r == userID {
				matched = append(matched, indexed{n, i})
				break
			}
		}
	}
	// Newest first, insertion order on equal timestamps.
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].n.CreatedAt.Equal(matched[j].n.CreatedAt) {
			return matched[i].n.CreatedAt.After(matched[j].n.CreatedAt)
		}
		return matched[i].seq < matched[j].seq
	})

	var out []models.Notification
	for _, m := range matched {
		if int64(len(out)) == limit {
			break
		}
		out = append(out, *m.n)
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id string) (*models.Notification, error) {
	for _, n := range f.notifications {
		if n.ID.Hex() == id {
			n.Read = true
			clone := *n
			return &clone, nil
		}
	}
	return nil, errs.NotFound("notification not found")
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range f.notifications {
		for _, r := range n.Recipient {
			if r == userID {
				n.Read = true
				break
			}
		}
	}
	return nil
}

func (f *fakeNotificationStore) DeleteByID(_ context.Context, id string) error {
	for i, n := range f.notifications {
		if n.ID.Hex() == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("notification not found")
}

func (f *fakeNotificationStore) DeleteAllForUser(_ context.Context, userID string) error {
	var kept []*models.Notification
	for _, n := range f.notifications {
		addressed := false
		for _, r := range n.Recipient {
			if r == userID {
				addressed = true
				break
			}
		}
		if !addressed {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationStore) forRecipient(userID string) []*models.Notification {
	var out []*models.Notification
	for _, n := range f.notifications {
		for _, r := range n.Recipient {
			if r == userID {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

type push struct {
	channelID string
	event     string
	payload   interface{}
}

type fakeRealtime struct {
	channels map[string]string
	pushes   []push
	pushErr  error
}

func newFakeRealtime() *fakeRealtime {
	return &fakeRealtime{channels: make(map[string]string)}
}

func (f *fakeRealtime) Resolve(userID string) (string, bool) {
	channelID, ok := f.channels[userID]
	return channelID, ok
}

func (f *fakeRealtime) Push(channelID, event string, payload interface{}) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushes = append(f.pushes, push{channelID, event, payload})
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return errs.Conflict("a user with this email already exists")
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	f.users[user.ID.Hex()] = &clone
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errs.NotFound("user not found")
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.NotFound("user not found")
	}
	clone := *u
	return &clone, nil
}
