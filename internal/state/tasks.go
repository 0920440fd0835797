package state

import (
	"context"
	"slices"
	"sync"
	"time"

	"taskboard/internal/backend/httpapi"
	"taskboard/internal/service"
)

const (
	// TasksFetchLimit is the page size used when loading a project's tasks.
	TasksFetchLimit = 100

	// ReportPollAttempts is how many times a pending report is fetched before giving up.
	ReportPollAttempts = 10

	// ReportPollDelay is the wait between two report fetches.
	ReportPollDelay = time.Second
)

// TaskInput holds the user-supplied fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	AssigneeID  *int64
}

// TasksSnapshot is a copy of the tasks store state.
// Tasks and the report have independent loading flags and errors.
// The Failed flags report whether the last action on that side failed,
// which is still true when the backend gave an empty error message.
type TasksSnapshot struct {
	Tasks        []service.Task
	TasksLoading bool
	TasksErr     string
	TasksFailed  bool

	Report        *service.Report
	ReportLoading bool
	ReportErr     string
	ReportFailed  bool
}

// TasksStore holds the tasks of a project and the most recent report.
type TasksStore struct {
	tasks   service.Tasks
	reports service.Reports
	opt     options

	pollDelay time.Duration

	mu           sync.Mutex
	taskList     []service.Task
	tasksLoading bool
	tasksErr     string
	tasksFailed  bool

	report        *service.Report
	reportLoading bool
	reportErr     string
	reportFailed  bool

	// reportSeq identifies the report sequence allowed to write report state.
	// loadingSeq is the generation that owns reportLoading.
	reportSeq  uint64
	loadingSeq uint64
	cancelPoll context.CancelFunc
}

// NewTasksStore creates an empty store.
func NewTasksStore(tasks service.Tasks, reports service.Reports, opts ...Option) *TasksStore {
	return &TasksStore{
		tasks:     tasks,
		reports:   reports,
		opt:       buildOptions(opts),
		pollDelay: ReportPollDelay,
		taskList:  []service.Task{},
	}
}

// Snapshot returns a copy of the current state.
func (s *TasksStore) Snapshot() TasksSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := TasksSnapshot{
		Tasks:         slices.Clone(s.taskList),
		TasksLoading:  s.tasksLoading,
		TasksErr:      s.tasksErr,
		TasksFailed:   s.tasksFailed,
		ReportLoading: s.reportLoading,
		ReportErr:     s.reportErr,
		ReportFailed:  s.reportFailed,
	}
	if s.report != nil {
		r := *s.report
		snap.Report = &r
	}
	return snap
}

// FetchTasks replaces the task list with the project's tasks.
func (s *TasksStore) FetchTasks(ctx context.Context, projectID int64) {
	s.mu.Lock()
	s.tasksLoading = true
	s.tasksErr = ""
	s.tasksFailed = false
	s.mu.Unlock()
	s.opt.changed()

	items, err := s.tasks.ListTasks(ctx, projectID, service.Page{Limit: TasksFetchLimit})

	s.mu.Lock()
	if err != nil {
		s.tasksErr = httpapi.ErrorMessage(err)
		s.tasksFailed = true
		s.taskList = []service.Task{}
		s.opt.log.Debug("fetch tasks failed", "project_id", projectID, "error", s.tasksErr)
	} else {
		s.taskList = slices.Clone([]service.Task(items))
		if s.taskList == nil {
			s.taskList = []service.Task{}
		}
		s.opt.log.Debug("fetched tasks", "project_id", projectID, "count", len(items))
	}
	s.tasksLoading = false
	s.mu.Unlock()
	s.opt.changed()
}

// CreateTask creates a task and puts it first in the list.
// It returns the created task, or nil on failure.
func (s *TasksStore) CreateTask(ctx context.Context, projectID int64, in TaskInput) *service.Task {
	task, err := s.tasks.CreateTask(ctx, projectID, service.NewTask{
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
	})

	s.mu.Lock()
	if err != nil {
		s.tasksErr = httpapi.ErrorMessage(err)
		s.tasksFailed = true
		s.mu.Unlock()
		s.opt.changed()
		return nil
	}
	s.taskList = slices.Insert(s.taskList, 0, task)
	s.tasksFailed = false
	s.mu.Unlock()
	s.opt.changed()
	return &task
}

// UpdateTaskStatus changes a task's status and replaces the task in the list
// with the server's version. A task that is not in the list is left out.
// It returns the updated task, or nil on failure.
func (s *TasksStore) UpdateTaskStatus(ctx context.Context, taskID int64, status service.TaskStatus) *service.Task {
	task, err := s.tasks.UpdateTaskStatus(ctx, taskID, status)

	s.mu.Lock()
	if err != nil {
		s.tasksErr = httpapi.ErrorMessage(err)
		s.tasksFailed = true
		s.mu.Unlock()
		s.opt.changed()
		return nil
	}
	s.tasksFailed = false
	i := slices.IndexFunc(s.taskList, func(t service.Task) bool { return t.ID == taskID })
	if i == -1 {
		s.mu.Unlock()
		s.opt.log.Debug("updated task not in list", "task_id", taskID)
		return &task
	}
	s.taskList[i] = task
	s.mu.Unlock()
	s.opt.changed()
	return &task
}

// GenerateReportForProject requests a daily summary and, while it is pending,
// polls it until it is ready or the attempts run out.
//
// A later GenerateReportForProject or ClearReport cancels the sequence; a
// cancelled sequence makes no further changes to report state.
func (s *TasksStore) GenerateReportForProject(ctx context.Context, projectID int64) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancelPoll != nil {
		s.cancelPoll()
	}
	s.reportSeq++
	seq := s.reportSeq
	s.loadingSeq = seq
	s.cancelPoll = cancel
	s.reportLoading = true
	s.reportErr = ""
	s.reportFailed = false
	s.mu.Unlock()
	s.opt.changed()

	defer func() {
		s.mu.Lock()
		if s.loadingSeq == seq {
			s.reportLoading = false
		}
		if s.reportSeq == seq {
			s.cancelPoll = nil
		}
		s.mu.Unlock()
		s.opt.changed()
	}()

	report, err := s.reports.CreateDailySummary(ctx, projectID)
	if err != nil {
		s.failReport(seq, err)
		return
	}
	if !s.storeReport(seq, report) {
		return
	}
	if report.Status != service.ReportPending {
		return
	}

	if err := s.pollReport(ctx, seq, report.ID); err != nil {
		s.failReport(seq, err)
	}
}

// pollReport fetches the report until it is ready, writing every snapshot to the store.
// Exhausting the attempts sets MsgReportStillPending and is not an error.
func (s *TasksStore) pollReport(ctx context.Context, seq uint64, reportID int64) error {
	for attempt := 0; attempt < ReportPollAttempts; attempt++ {
		report, err := s.reports.GetReport(ctx, reportID)
		if err != nil {
			return err
		}
		if !s.storeReport(seq, report) {
			return nil
		}
		s.opt.log.Debug("polled report", "report_id", reportID, "attempt", attempt+1, "status", report.Status)

		if report.Status == service.ReportReady {
			return nil
		}
		if attempt == ReportPollAttempts-1 {
			break
		}

		timer := time.NewTimer(s.pollDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	s.mu.Lock()
	if s.reportSeq == seq {
		s.reportErr = MsgReportStillPending
		s.reportFailed = true
	}
	s.mu.Unlock()
	s.opt.log.Debug("report still pending", "report_id", reportID, "attempts", ReportPollAttempts)
	s.opt.changed()
	return nil
}

// storeReport replaces the current report if seq is still the active sequence.
func (s *TasksStore) storeReport(seq uint64, report service.Report) bool {
	s.mu.Lock()
	if s.reportSeq != seq {
		s.mu.Unlock()
		return false
	}
	s.report = &report
	s.mu.Unlock()
	s.opt.changed()
	return true
}

func (s *TasksStore) failReport(seq uint64, err error) {
	s.mu.Lock()
	if s.reportSeq != seq {
		s.mu.Unlock()
		return
	}
	s.reportErr = httpapi.ErrorMessage(err)
	s.reportFailed = true
	s.mu.Unlock()
	s.opt.log.Debug("report failed", "error", err)
	s.opt.changed()
}

// ClearReport drops the current report and its error and stops any poll in progress.
// The report loading flag is left to the generation that set it.
func (s *TasksStore) ClearReport() {
	s.mu.Lock()
	if s.cancelPoll != nil {
		s.cancelPoll()
		s.cancelPoll = nil
	}
	s.reportSeq++
	s.report = nil
	s.reportErr = ""
	s.reportFailed = false
	s.mu.Unlock()
	s.opt.changed()
}
