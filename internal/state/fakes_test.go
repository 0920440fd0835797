package state

import (
	"context"
	"sync"

	"taskboard/internal/service"
)

// fakeProjects is a service.Projects with scripted results.
type fakeProjects struct {
	mu         sync.Mutex
	listCalls  []listProjectsCall
	created    []service.NewProject
	list       func(ctx context.Context) (service.Collection[service.Project], error)
	createFunc func(ctx context.Context, in service.NewProject) (service.Project, error)
}

type listProjectsCall struct {
	OwnerID int64
	Page    service.Page
}

func (f *fakeProjects) ListProjects(ctx context.Context, ownerID int64, page service.Page) (service.Collection[service.Project], error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, listProjectsCall{OwnerID: ownerID, Page: page})
	f.mu.Unlock()
	if f.list == nil {
		return service.Collection[service.Project]{}, nil
	}
	return f.list(ctx)
}

func (f *fakeProjects) CreateProject(ctx context.Context, in service.NewProject) (service.Project, error) {
	f.mu.Lock()
	f.created = append(f.created, in)
	f.mu.Unlock()
	if f.createFunc == nil {
		return service.Project{ID: 1, OwnerID: in.OwnerID, Name: in.Name}, nil
	}
	return f.createFunc(ctx, in)
}

func (f *fakeProjects) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls) + len(f.created)
}

// fakeTasks is a service.Tasks with scripted results.
type fakeTasks struct {
	mu        sync.Mutex
	listPages []service.Page
	list      func(ctx context.Context, projectID int64) (service.Collection[service.Task], error)
	create    func(ctx context.Context, projectID int64, in service.NewTask) (service.Task, error)
	update    func(ctx context.Context, taskID int64, status service.TaskStatus) (service.Task, error)
}

func (f *fakeTasks) ListTasks(ctx context.Context, projectID int64, page service.Page) (service.Collection[service.Task], error) {
	f.mu.Lock()
	f.listPages = append(f.listPages, page)
	f.mu.Unlock()
	if f.list == nil {
		return service.Collection[service.Task]{}, nil
	}
	return f.list(ctx, projectID)
}

func (f *fakeTasks) CreateTask(ctx context.Context, projectID int64, in service.NewTask) (service.Task, error) {
	return f.create(ctx, projectID, in)
}

func (f *fakeTasks) UpdateTaskStatus(ctx context.Context, taskID int64, status service.TaskStatus) (service.Task, error) {
	return f.update(ctx, taskID, status)
}

// fakeReports is a service.Reports with scripted results and call counters.
type fakeReports struct {
	mu       sync.Mutex
	creates  int
	gets     int
	createFn func(ctx context.Context, projectID int64) (service.Report, error)
	getFn    func(ctx context.Context, reportID int64, call int) (service.Report, error)
}

func (f *fakeReports) CreateDailySummary(ctx context.Context, projectID int64) (service.Report, error) {
	f.mu.Lock()
	f.creates++
	f.mu.Unlock()
	return f.createFn(ctx, projectID)
}

func (f *fakeReports) GetReport(ctx context.Context, reportID int64) (service.Report, error) {
	f.mu.Lock()
	f.gets++
	call := f.gets
	f.mu.Unlock()
	return f.getFn(ctx, reportID, call)
}

func (f *fakeReports) counts() (creates, gets int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates, f.gets
}
