package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOnHold     TaskStatus = "on-hold"
	StatusArchived   TaskStatus = "archived"
)

func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold, StatusArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

func ValidTaskPriority(s string) bool {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskName    string             `bson:"taskName" json:"taskName"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ProjectID   string             `bson:"projectId" json:"projectId"`
	AssignedBy  string             `bson:"assignedBy" json:"assignedBy"`
	AssignedTo  string             `bson:"assignedTo" json:"assignedTo"`
	Priority    TaskPriority       `bson:"priority" json:"priority"`
	Status      TaskStatus         `bson:"status" json:"status"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	AssignedAt  time.Time          `bson:"assignedAt" json:"assignedAt"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsOverdue reports whether the task's due date has passed without completion.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && now.After(*t.DueDate) && t.Status != StatusCompleted
}

// TaskPatch is a partial update to a task. Nil fields are left untouched.
// The assignee may only carry Status; admins and managers may carry any field.
type TaskPatch struct {
	TaskName    *string       `json:"taskName,omitempty"`
	Description *string       `json:"description,omitempty"`
	AssignedTo  *string       `json:"assignedTo,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
}

// Fields lists the names of the fields present in the patch.
func (p TaskPatch) Fields() []string {
	var fields []string
	if p.TaskName != nil {
		fields = append(fields, "taskName")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.AssignedTo != nil {
		fields = append(fields, "assignedTo")
	}
	if p.Priority != nil {
		fields = append(fields, "priority")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.DueDate != nil {
		fields = append(fields, "dueDate")
	}
	return fields
}

// StatusOnly reports whether the patch touches nothing beyond the status field.
func (p TaskPatch) StatusOnly() bool {
	return p.TaskName == nil && p.Description == nil && p.AssignedTo == nil &&
		p.Priority == nil && p.DueDate == nil
}

// SetDocument builds the $set document for the fields present in the patch.
func (p TaskPatch) SetDocument() bson.M {
	set := bson.M{}
	if p.TaskName != nil {
		set["taskName"] = *p.TaskName
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.AssignedTo != nil {
		set["assignedTo"] = *p.AssignedTo
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.DueDate != nil {
		set["dueDate"] = *p.DueDate
	}
	return set
}
