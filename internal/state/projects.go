package state

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"taskboard/internal/backend/httpapi"
	"taskboard/internal/service"
)

// ProjectsFetchLimit is the page size used when loading an owner's projects.
const ProjectsFetchLimit = 50

// ProjectsSnapshot is a copy of the projects store state.
type ProjectsSnapshot struct {
	OwnerID  string
	Projects []service.Project
	Loading  bool
	Err      string

	// Failed reports whether the last action failed. Err may be empty
	// when the backend answered with an empty error body.
	Failed bool
}

// ProjectsStore holds the selected owner and their projects.
type ProjectsStore struct {
	api service.Projects
	opt options

	mu       sync.Mutex
	ownerID  string
	projects []service.Project
	loading  bool
	err      string
	failed   bool
}

// NewProjectsStore creates an empty store backed by api.
func NewProjectsStore(api service.Projects, opts ...Option) *ProjectsStore {
	return &ProjectsStore{
		api:      api,
		opt:      buildOptions(opts),
		projects: []service.Project{},
	}
}

// Snapshot returns a copy of the current state.
func (s *ProjectsStore) Snapshot() ProjectsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ProjectsSnapshot{
		OwnerID:  s.ownerID,
		Projects: slices.Clone(s.projects),
		Loading:  s.loading,
		Err:      s.err,
		Failed:   s.failed,
	}
}

// SetOwner selects the owner whose projects are fetched and created.
func (s *ProjectsStore) SetOwner(id string) {
	s.mu.Lock()
	s.ownerID = id
	s.mu.Unlock()
	s.opt.changed()
}

// FetchProjects replaces the project list with the owner's projects.
// Without an owner it sets an error and makes no request.
func (s *ProjectsStore) FetchProjects(ctx context.Context) {
	s.mu.Lock()
	owner := s.ownerID
	if owner == "" {
		s.err = MsgOwnerRequired
		s.failed = true
		s.mu.Unlock()
		s.opt.changed()
		return
	}
	ownerID, ok := parseOwnerID(owner)
	if !ok {
		s.err = MsgOwnerNotNumeric
		s.failed = true
		s.mu.Unlock()
		s.opt.changed()
		return
	}
	s.loading = true
	s.err = ""
	s.failed = false
	s.mu.Unlock()
	s.opt.changed()

	items, err := s.api.ListProjects(ctx, ownerID, service.Page{Limit: ProjectsFetchLimit})

	s.mu.Lock()
	if err != nil {
		s.err = httpapi.ErrorMessage(err)
		s.failed = true
		s.projects = []service.Project{}
		s.opt.log.Debug("fetch projects failed", "owner_id", ownerID, "error", s.err)
	} else {
		s.projects = slices.Clone([]service.Project(items))
		if s.projects == nil {
			s.projects = []service.Project{}
		}
		s.opt.log.Debug("fetched projects", "owner_id", ownerID, "count", len(items))
	}
	s.loading = false
	s.mu.Unlock()
	s.opt.changed()
}

// CreateProject creates a project for the current owner and puts it first in the list.
// It returns the created project, or nil when the request was not made or failed.
func (s *ProjectsStore) CreateProject(ctx context.Context, name string) *service.Project {
	s.mu.Lock()
	owner := s.ownerID
	if owner == "" {
		s.err = MsgOwnerRequiredToCreate
		s.failed = true
		s.mu.Unlock()
		s.opt.changed()
		return nil
	}
	ownerID, ok := parseOwnerID(owner)
	if !ok {
		s.err = MsgOwnerNotNumeric
		s.failed = true
		s.mu.Unlock()
		s.opt.changed()
		return nil
	}
	s.mu.Unlock()

	project, err := s.api.CreateProject(ctx, service.NewProject{OwnerID: ownerID, Name: name})

	s.mu.Lock()
	if err != nil {
		s.err = httpapi.ErrorMessage(err)
		s.failed = true
		s.mu.Unlock()
		s.opt.log.Debug("create project failed", "owner_id", ownerID, "error", err)
		s.opt.changed()
		return nil
	}
	s.projects = slices.Insert(s.projects, 0, project)
	s.failed = false
	s.mu.Unlock()
	s.opt.log.Debug("created project", "project_id", project.ID)
	s.opt.changed()
	return &project
}

func parseOwnerID(owner string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(owner), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
