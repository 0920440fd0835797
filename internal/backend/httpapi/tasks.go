package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"taskboard/internal/service"
)

// TasksClient maps task operations onto the API.
type TasksClient struct {
	c *Client
}

// ListTasks returns the tasks of a project.
func (t *TasksClient) ListTasks(ctx context.Context, projectID int64, page service.Page) (service.Collection[service.Task], error) {
	var out service.Collection[service.Task]
	path := fmt.Sprintf("/tasks/project/%d", projectID)
	if err := t.c.Do(ctx, http.MethodGet, path, pageQuery(page, DefaultTasksLimit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task in a project.
func (t *TasksClient) CreateTask(ctx context.Context, projectID int64, nt service.NewTask) (service.Task, error) {
	var out service.Task
	path := fmt.Sprintf("/tasks/project/%d", projectID)
	if err := t.c.Do(ctx, http.MethodPost, path, nil, nt, &out); err != nil {
		return service.Task{}, err
	}
	return out, nil
}

// UpdateTaskStatus patches the status of a task.
func (t *TasksClient) UpdateTaskStatus(ctx context.Context, taskID int64, status service.TaskStatus) (service.Task, error) {
	var out service.Task
	body := struct {
		Status service.TaskStatus `json:"status"`
	}{Status: status}
	path := fmt.Sprintf("/tasks/%d/status", taskID)
	if err := t.c.Do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return service.Task{}, err
	}
	return out, nil
}
