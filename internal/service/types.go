// Package service defines the backend-agnostic interface for project, task and report operations.
package service

import (
	"bytes"
	"encoding/json"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists every status the backend accepts, in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ReportStatus is the generation state of a report.
// The backend may report values beyond the two named here.
type ReportStatus string

const (
	ReportPending ReportStatus = "pending"
	ReportReady   ReportStatus = "ready"
)

// Project represents a project owned by a user.
type Project struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Task represents a single task within a project.
type Task struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Report represents a generated project report.
type Report struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"project_id"`
	Status    ReportStatus    `json:"status"`
	Type      string          `json:"report_type,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// NewProject is the request body for creating a project.
type NewProject struct {
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`
}

// NewTask is the request body for creating a task.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  *int64 `json:"assignee_id"`
}

// Page selects a window of a list endpoint.
// A zero Limit means the operation's default page size.
type Page struct {
	Limit  int
	Offset int
}

// Collection is a decoded list response.
// The backend answers either with a bare array or with an {"items": [...]}
// envelope; any other shape decodes to an empty collection.
type Collection[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*c = Collection[T]{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*c = ensure(items)
	case '{':
		var envelope struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		items := bytes.TrimSpace(envelope.Items)
		if len(items) == 0 || items[0] != '[' {
			*c = Collection[T]{}
			return nil
		}
		var list []T
		if err := json.Unmarshal(items, &list); err != nil {
			return err
		}
		*c = ensure(list)
	default:
		*c = Collection[T]{}
	}
	return nil
}

func ensure[T any](items []T) Collection[T] {
	if items == nil {
		return Collection[T]{}
	}
	return Collection[T](items)
}
