package state

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"taskboard/internal/service"
)

func TestProjectsStore_InitialState(t *testing.T) {
	s := NewProjectsStore(&fakeProjects{})
	snap := s.Snapshot()

	assert.Equal(t, "", snap.OwnerID)
	assert.NotNil(t, snap.Projects)
	assert.Empty(t, snap.Projects)
	assert.False(t, snap.Loading)
	assert.Equal(t, "", snap.Err)
}

func TestProjectsStore_FetchWithoutOwner(t *testing.T) {
	api := &fakeProjects{}
	s := NewProjectsStore(api)

	s.FetchProjects(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, MsgOwnerRequired, snap.Err)
	assert.False(t, snap.Loading)
	assert.Zero(t, api.calls(), "no request without an owner")
}

func TestProjectsStore_FetchNonNumericOwner(t *testing.T) {
	api := &fakeProjects{}
	s := NewProjectsStore(api)
	s.SetOwner("abc")

	s.FetchProjects(context.Background())

	assert.Equal(t, MsgOwnerNotNumeric, s.Snapshot().Err)
	assert.Zero(t, api.calls())
}

func TestProjectsStore_FetchReplacesList(t *testing.T) {
	api := &fakeProjects{
		list: func(context.Context) (service.Collection[service.Project], error) {
			return service.Collection[service.Project]{
				{ID: 1, OwnerID: 7, Name: "Alpha"},
				{ID: 2, OwnerID: 7, Name: "Beta"},
			}, nil
		},
	}
	s := NewProjectsStore(api)
	s.SetOwner("7")

	s.FetchProjects(context.Background())

	snap := s.Snapshot()
	require.Len(t, snap.Projects, 2)
	assert.Equal(t, "Alpha", snap.Projects[0].Name)
	assert.False(t, snap.Loading)
	assert.Equal(t, "", snap.Err)
	require.Len(t, api.listCalls, 1)
	assert.Equal(t, int64(7), api.listCalls[0].OwnerID)
	assert.Equal(t, ProjectsFetchLimit, api.listCalls[0].Page.Limit)
	assert.Equal(t, 0, api.listCalls[0].Page.Offset)
}

func TestProjectsStore_LoadingDuringFetch(t *testing.T) {
	var during ProjectsSnapshot
	var s *ProjectsStore
	api := &fakeProjects{
		list: func(context.Context) (service.Collection[service.Project], error) {
			during = s.Snapshot()
			return service.Collection[service.Project]{}, nil
		},
	}
	s = NewProjectsStore(api)
	s.SetOwner("1")

	s.FetchProjects(context.Background())

	assert.True(t, during.Loading)
	assert.False(t, s.Snapshot().Loading)
}

func TestProjectsStore_FetchFailureEmptiesList(t *testing.T) {
	fail := false
	api := &fakeProjects{
		list: func(context.Context) (service.Collection[service.Project], error) {
			if fail {
				return nil, &googleapi.Error{Code: http.StatusBadRequest, Body: `{"error":{"message":"bad owner"}}`}
			}
			return service.Collection[service.Project]{{ID: 1, Name: "Alpha"}}, nil
		},
	}
	s := NewProjectsStore(api)
	s.SetOwner("1")
	s.FetchProjects(context.Background())
	require.Len(t, s.Snapshot().Projects, 1)

	fail = true
	s.FetchProjects(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, "bad owner", snap.Err)
	assert.True(t, snap.Failed)
	assert.NotNil(t, snap.Projects)
	assert.Empty(t, snap.Projects)
	assert.False(t, snap.Loading)
}

func TestProjectsStore_FetchClearsPreviousError(t *testing.T) {
	s := NewProjectsStore(&fakeProjects{})
	s.FetchProjects(context.Background())
	require.Equal(t, MsgOwnerRequired, s.Snapshot().Err)
	require.True(t, s.Snapshot().Failed)

	s.SetOwner("1")
	s.FetchProjects(context.Background())

	assert.Equal(t, "", s.Snapshot().Err)
	assert.False(t, s.Snapshot().Failed)
}

func TestProjectsStore_CreateWithoutOwner(t *testing.T) {
	api := &fakeProjects{}
	s := NewProjectsStore(api)

	got := s.CreateProject(context.Background(), "New")

	assert.Nil(t, got)
	assert.Equal(t, MsgOwnerRequiredToCreate, s.Snapshot().Err)
	assert.Zero(t, api.calls())
}

func TestProjectsStore_CreatePrepends(t *testing.T) {
	api := &fakeProjects{
		list: func(context.Context) (service.Collection[service.Project], error) {
			return service.Collection[service.Project]{{ID: 1, Name: "Old"}}, nil
		},
		createFunc: func(_ context.Context, in service.NewProject) (service.Project, error) {
			return service.Project{ID: 9, OwnerID: in.OwnerID, Name: in.Name}, nil
		},
	}
	s := NewProjectsStore(api)
	s.SetOwner("3")
	s.FetchProjects(context.Background())

	got := s.CreateProject(context.Background(), "Fresh")

	require.NotNil(t, got)
	assert.Equal(t, int64(9), got.ID)
	require.Len(t, api.created, 1)
	assert.Equal(t, service.NewProject{OwnerID: 3, Name: "Fresh"}, api.created[0])

	snap := s.Snapshot()
	require.Len(t, snap.Projects, 2)
	assert.Equal(t, "Fresh", snap.Projects[0].Name)
	assert.Equal(t, "Old", snap.Projects[1].Name)
}

func TestProjectsStore_CreateFailureKeepsList(t *testing.T) {
	api := &fakeProjects{
		list: func(context.Context) (service.Collection[service.Project], error) {
			return service.Collection[service.Project]{{ID: 1, Name: "Old"}}, nil
		},
		createFunc: func(context.Context, service.NewProject) (service.Project, error) {
			return service.Project{}, &googleapi.Error{Code: http.StatusConflict, Body: `{"error":{"type":"duplicate"}}`}
		},
	}
	s := NewProjectsStore(api)
	s.SetOwner("3")
	s.FetchProjects(context.Background())

	got := s.CreateProject(context.Background(), "Old")

	assert.Nil(t, got)
	snap := s.Snapshot()
	assert.Equal(t, "duplicate", snap.Err)
	assert.Len(t, snap.Projects, 1)
}

func TestProjectsStore_SnapshotIsCopy(t *testing.T) {
	api := &fakeProjects{
		list: func(context.Context) (service.Collection[service.Project], error) {
			return service.Collection[service.Project]{{ID: 1, Name: "Alpha"}}, nil
		},
	}
	s := NewProjectsStore(api)
	s.SetOwner("1")
	s.FetchProjects(context.Background())

	snap := s.Snapshot()
	snap.Projects[0].Name = "changed"

	assert.Equal(t, "Alpha", s.Snapshot().Projects[0].Name)
}

func TestProjectsStore_OnChange(t *testing.T) {
	changes := 0
	s := NewProjectsStore(&fakeProjects{}, WithOnChange(func() { changes++ }))

	s.SetOwner("1")
	s.FetchProjects(context.Background())

	// owner set, loading on, loading off
	assert.Equal(t, 3, changes)
}

func TestProjectsStore_EmptyErrorBodyStillFails(t *testing.T) {
	api := &fakeProjects{
		list: func(context.Context) (service.Collection[service.Project], error) {
			return nil, &googleapi.Error{Code: http.StatusInternalServerError}
		},
		createFunc: func(context.Context, service.NewProject) (service.Project, error) {
			return service.Project{}, &googleapi.Error{Code: http.StatusServiceUnavailable}
		},
	}
	s := NewProjectsStore(api)
	s.SetOwner("1")

	s.FetchProjects(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, "", snap.Err)
	assert.True(t, snap.Failed)
	assert.Empty(t, snap.Projects)

	assert.Nil(t, s.CreateProject(context.Background(), "New"))
	assert.True(t, s.Snapshot().Failed)
}
