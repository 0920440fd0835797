package service

import "context"

// Projects covers the project endpoints.
type Projects interface {
	// ListProjects returns the projects of an owner.
	// A zero page limit requests 20 items.
	ListProjects(ctx context.Context, ownerID int64, page Page) (Collection[Project], error)

	// CreateProject creates a project and returns the server's record.
	CreateProject(ctx context.Context, p NewProject) (Project, error)
}

// Tasks covers the task endpoints.
type Tasks interface {
	// ListTasks returns the tasks of a project.
	// A zero page limit requests 50 items.
	ListTasks(ctx context.Context, projectID int64, page Page) (Collection[Task], error)

	// CreateTask creates a task in a project and returns the server's record.
	CreateTask(ctx context.Context, projectID int64, t NewTask) (Task, error)

	// UpdateTaskStatus patches the status of a task and returns the full updated record.
	UpdateTaskStatus(ctx context.Context, taskID int64, status TaskStatus) (Task, error)
}

// Reports covers the report endpoints.
type Reports interface {
	// CreateDailySummary requests a daily summary report for a project.
	// The returned report may still be pending.
	CreateDailySummary(ctx context.Context, projectID int64) (Report, error)

	// GetReport returns the current state of a report.
	GetReport(ctx context.Context, reportID int64) (Report, error)
}

// Service is the full backend surface.
// Every backend call goes through this interface; commands and stores
// never build HTTP requests themselves.
type Service interface {
	Projects
	Tasks
	Reports
}
