// Package testutil provides testing utilities.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/backend/httpapi"
	"taskboard/internal/service"
)

// Route names accepted by FakeBackend.Fail.
const (
	RouteListProjects  = "list-projects"
	RouteCreateProject = "create-project"
	RouteListTasks     = "list-tasks"
	RouteCreateTask    = "create-task"
	RouteUpdateStatus  = "update-status"
	RouteCreateReport  = "create-report"
	RouteGetReport     = "get-report"
)

// FixedTime is the timestamp given to every record the fake creates.
var FixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// Request is one request received by FakeBackend.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string

	// Authorization is the request's Authorization header.
	Authorization string
}

type failure struct {
	status int
	body   string
}

// FakeBackend is an in-memory implementation of the HTTP API served by httptest.
type FakeBackend struct {
	srv *httptest.Server

	mu       sync.Mutex
	projects []service.Project
	tasks    []service.Task
	reports  map[int64]*fakeReport
	nextID   int64
	requests []Request
	failures map[string]failure

	// PendingPolls is how many report fetches answer "pending" before the
	// report turns ready. A negative value keeps it pending forever.
	PendingPolls int

	// Envelope wraps list responses in {"items": [...]}.
	Envelope bool
}

type fakeReport struct {
	report service.Report
	polls  int
}

// NewFakeBackend starts a fake API server that is closed when the test ends.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		reports:  make(map[int64]*fakeReport),
		failures: make(map[string]failure),
		nextID:   100,
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", f.fail(RouteListProjects, f.listProjects))
		r.Post("/projects", f.fail(RouteCreateProject, f.createProject))
		r.Get("/tasks/project/{projectID}", f.fail(RouteListTasks, f.listTasks))
		r.Post("/tasks/project/{projectID}", f.fail(RouteCreateTask, f.createTask))
		r.Patch("/tasks/{taskID}/status", f.fail(RouteUpdateStatus, f.updateStatus))
		r.Post("/reports/project/{projectID}/daily-summary", f.fail(RouteCreateReport, f.createReport))
		r.Get("/reports/{reportID}", f.fail(RouteGetReport, f.getReport))
	})

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the API base URL, including the /api prefix.
func (f *FakeBackend) URL() string {
	return f.srv.URL + "/api"
}

// Origin returns the server origin without a path.
func (f *FakeBackend) Origin() string {
	return f.srv.URL
}

// Service returns an HTTP backend pointed at the fake.
func (f *FakeBackend) Service() *httpapi.Backend {
	return httpapi.NewWithHTTPClient(f.URL(), f.srv.Client())
}

// AddProject stores a project and returns it.
func (f *FakeBackend) AddProject(ownerID int64, name string) service.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := service.Project{ID: f.id(), OwnerID: ownerID, Name: name, CreatedAt: &FixedTime}
	f.projects = append(f.projects, p)
	return p
}

// AddTask stores a task and returns it.
func (f *FakeBackend) AddTask(projectID int64, title string, status service.TaskStatus) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: f.id(), ProjectID: projectID, Title: title, Status: status, CreatedAt: &FixedTime, UpdatedAt: &FixedTime}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns the stored tasks of a project.
func (f *FakeBackend) Tasks(projectID int64) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []service.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// Fail makes a route answer with status and body until cleared with status 0.
func (f *FakeBackend) Fail(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status == 0 {
		delete(f.failures, route)
		return
	}
	f.failures[route] = failure{status: status, body: body}
}

// Requests returns the requests received so far.
func (f *FakeBackend) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

// Count returns how many requests matched method and path.
func (f *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeBackend) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		f.mu.Lock()
		f.requests = append(f.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(bytes.TrimSpace(body)),

			Authorization: r.Header.Get("Authorization"),
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) fail(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		fl, ok := f.failures[route]
		f.mu.Unlock()
		if ok {
			w.WriteHeader(fl.status)
			_, _ = w.Write([]byte(fl.body))
			return
		}
		h(w, r)
	}
}

func (f *FakeBackend) listProjects(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "owner_id must be an integer")
		return
	}

	f.mu.Lock()
	var out []service.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	f.mu.Unlock()

	f.writeList(w, paginate(out, r))
}

func (f *FakeBackend) createProject(w http.ResponseWriter, r *http.Request) {
	var in service.NewProject
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "name is required")
		return
	}
	writeJSON(w, http.StatusCreated, f.AddProject(in.OwnerID, in.Name))
}

func (f *FakeBackend) listTasks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	f.writeList(w, paginate(f.Tasks(projectID), r))
}

func (f *FakeBackend) createTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	var in service.NewTask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "title is required")
		return
	}

	f.mu.Lock()
	t := service.Task{
		ID:          f.id(),
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		Status:      service.TaskTodo,
		CreatedAt:   &FixedTime,
		UpdatedAt:   &FixedTime,
	}
	f.tasks = append(f.tasks, t)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, t)
}

func (f *FakeBackend) updateStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskID")
	if !ok {
		return
	}
	var in struct {
		Status service.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !in.Status.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid status")
		return
	}

	f.mu.Lock()
	i := slices.IndexFunc(f.tasks, func(t service.Task) bool { return t.ID == taskID })
	if i == -1 {
		f.mu.Unlock()
		writeError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}
	f.tasks[i].Status = in.Status
	t := f.tasks[i]
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, t)
}

func (f *FakeBackend) createReport(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	f.mu.Lock()
	rep := service.Report{
		ID:        f.id(),
		ProjectID: projectID,
		Status:    service.ReportPending,
		Type:      "daily_summary",
		CreatedAt: &FixedTime,
		UpdatedAt: &FixedTime,
	}
	if f.PendingPolls == 0 {
		rep.Status = service.ReportReady
		rep.Content = f.summary(projectID)
	}
	f.reports[rep.ID] = &fakeReport{report: rep}
	f.mu.Unlock()

	writeJSON(w, http.StatusAccepted, rep)
}

func (f *FakeBackend) getReport(w http.ResponseWriter, r *http.Request) {
	reportID, ok := pathID(w, r, "reportID")
	if !ok {
		return
	}

	f.mu.Lock()
	fr, found := f.reports[reportID]
	if !found {
		f.mu.Unlock()
		writeError(w, http.StatusNotFound, "not_found", "report not found")
		return
	}
	fr.polls++
	if fr.report.Status == service.ReportPending && f.PendingPolls >= 0 && fr.polls > f.PendingPolls {
		fr.report.Status = service.ReportReady
		fr.report.Content = f.summary(fr.report.ProjectID)
	}
	rep := fr.report
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, rep)
}

// summary counts a project's tasks per status. Callers hold f.mu.
func (f *FakeBackend) summary(projectID int64) json.RawMessage {
	counts := map[service.TaskStatus]int{}
	total := 0
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			counts[t.Status]++
			total++
		}
	}
	data, _ := json.Marshal(map[string]any{
		"total_tasks": total,
		"by_status":   counts,
	})
	return data
}

func (f *FakeBackend) writeList(w http.ResponseWriter, items any) {
	if f.Envelope {
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func paginate[T any](items []T, r *http.Request) []T {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = len(items)
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	offset = max(offset, 0)
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", name+" must be an integer")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, typ, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"type": typ, "message": msg},
	})
}
