package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-backend/internal/dtos"
	"tracker-backend/internal/models"
)

// fakeBackend is a scripted stand-in for the tracker API. It records every
// status patch and can be told to fail the next one.
type fakeBackend struct {
	mu            sync.Mutex
	apps          []models.Application
	cols          []models.ColumnConfig
	patches       []dtos.StatusPatchRequest
	creates       []dtos.CreateApplicationRequest
	failPatchWith int // HTTP status; 0 means succeed

	// onPatch runs inside the PATCH handler, before the response is
	// written. Used to observe client state mid-flight.
	onPatch func()
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/board/applications":
			json.NewEncoder(w).Encode(f.apps)

		case r.Method == http.MethodGet && r.URL.Path == "/board/applications/statuses":
			seen := map[string]bool{}
			statuses := []string{}
			for _, a := range f.apps {
				if !seen[a.Status] {
					seen[a.Status] = true
					statuses = append(statuses, a.Status)
				}
			}
			json.NewEncoder(w).Encode(statuses)

		case r.Method == http.MethodGet && r.URL.Path == "/api/user/profile":
			json.NewEncoder(w).Encode(models.User{
				ID:            "u1",
				TrackerConfig: models.TrackerConfig{Columns: f.cols},
			})

		case r.Method == http.MethodPost && r.URL.Path == "/board/applications":
			var req dtos.CreateApplicationRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.creates = append(f.creates, req)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Application{ID: "new", Status: req.Status})

		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/board/applications/"):
			var req dtos.StatusPatchRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.patches = append(f.patches, req)
			if f.onPatch != nil {
				f.onPatch()
			}
			if f.failPatchWith != 0 {
				w.WriteHeader(f.failPatchWith)
				json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
				return
			}
			id := strings.TrimPrefix(r.URL.Path, "/board/applications/")
			for i := range f.apps {
				if f.apps[i].ID == id {
					f.apps[i].Status = req.Status
					json.NewEncoder(w).Encode(f.apps[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "application not found"})

		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "no route"})
		}
	})
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newFixture(t *testing.T) (*fakeBackend, *Cache, *TransitionRouter, *recordingNotifier) {
	t.Helper()
	backend := &fakeBackend{
		apps: []models.Application{
			{ID: "a1", CompanyName: "Acme", RoleName: "Engineer", Status: "Applied"},
			{ID: "a2", CompanyName: "Globex", RoleName: "SRE", Status: "Interview"},
		},
		cols: []models.ColumnConfig{
			{ID: "c1", Title: "Applied", Color: "blue"},
			{ID: "c2", Title: "Interview", Color: "amber"},
		},
	}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api := New(srv.URL, StaticToken("test-token"))
	cache := NewCache(api)
	notifier := &recordingNotifier{}
	router := NewTransitionRouter(api, cache, notifier)
	return backend, cache, router, notifier
}

func cachedStatus(t *testing.T, cache *Cache, id string) string {
	t.Helper()
	apps, err := cache.Applications(context.Background())
	require.NoError(t, err)
	for _, a := range apps {
		if a.ID == id {
			return a.Status
		}
	}
	t.Fatalf("application %s not in cache", id)
	return ""
}

func TestResolveDropTarget(t *testing.T) {
	apps := []models.Application{
		{ID: "a1", Status: "Applied"},
		{ID: "a2", Status: "Interview"},
	}
	cols := []models.ColumnConfig{
		{ID: "c1", Title: "Applied", Color: "blue"},
		{ID: "c2", Title: "Interview", Color: "amber"},
	}

	tests := []struct {
		name   string
		ev     DragEvent
		want   string
		wantOK bool
	}{
		{
			name:   "explicit status tag wins",
			ev:     DragEvent{DraggedID: "a1", DropTargetID: "a2", DropTargetStatus: "Offer"},
			want:   "Offer",
			wantOK: true,
		},
		{
			name:   "drop onto another application adopts its status",
			ev:     DragEvent{DraggedID: "a1", DropTargetID: "a2"},
			want:   "Interview",
			wantOK: true,
		},
		{
			name:   "drop onto a column by title, case-insensitive",
			ev:     DragEvent{DraggedID: "a1", DropTargetID: "INTERVIEW"},
			want:   "Interview",
			wantOK: true,
		},
		{
			name:   "unresolvable target",
			ev:     DragEvent{DraggedID: "a1", DropTargetID: "nonsense"},
			wantOK: false,
		},
		{
			name:   "no target at all",
			ev:     DragEvent{DraggedID: "a1"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDropTarget(tt.ev, apps, cols)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDragEndNoOpIssuesNoMutation(t *testing.T) {
	backend, cache, router, notifier := newFixture(t)
	ctx := context.Background()

	// Drop back onto the current column.
	err := router.HandleDragEnd(ctx, DragEvent{DraggedID: "a1", DropTargetID: "Applied"})
	require.NoError(t, err)

	assert.Empty(t, backend.patches)
	assert.Empty(t, notifier.successes)
	assert.Empty(t, notifier.errors)
	assert.Equal(t, "Applied", cachedStatus(t, cache, "a1"))
}

func TestDragEndUnresolvableAbortsSilently(t *testing.T) {
	backend, _, router, notifier := newFixture(t)

	err := router.HandleDragEnd(context.Background(), DragEvent{DraggedID: "a1", DropTargetID: "bogus"})
	require.NoError(t, err)
	assert.Empty(t, backend.patches)
	assert.Empty(t, notifier.errors)
}

func TestDragEndOptimisticThenReconcile(t *testing.T) {
	backend, cache, router, notifier := newFixture(t)
	ctx := context.Background()

	// Observe the cache from inside the PATCH handler: the optimistic
	// rewrite must land before any network response.
	var midFlight string
	backend.onPatch = func() {
		apps, _ := cache.Applications(context.Background())
		for _, a := range apps {
			if a.ID == "a1" {
				midFlight = a.Status
			}
		}
	}

	err := router.HandleDragEnd(ctx, DragEvent{DraggedID: "a1", DropTargetID: "Interview"})
	require.NoError(t, err)

	assert.Equal(t, "Interview", midFlight)
	require.Len(t, backend.patches, 1)
	assert.Equal(t, "Interview", backend.patches[0].Status)
	assert.Equal(t, "Interview", cachedStatus(t, cache, "a1"))
	assert.Equal(t, []string{"Status updated!"}, notifier.successes)
}

func TestDragEndFailureRevertsToServerTruth(t *testing.T) {
	backend, cache, router, notifier := newFixture(t)
	backend.failPatchWith = http.StatusInternalServerError

	err := router.HandleDragEnd(context.Background(), DragEvent{DraggedID: "a1", DropTargetID: "Interview"})
	require.Error(t, err)

	require.Len(t, backend.patches, 1)
	// The refetch discarded the optimistic patch.
	assert.Equal(t, "Applied", cachedStatus(t, cache, "a1"))
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "try again")
	assert.Empty(t, notifier.successes)
}

func TestDragEndUnauthorizedNotification(t *testing.T) {
	backend, cache, router, notifier := newFixture(t)
	backend.failPatchWith = http.StatusForbidden

	err := router.HandleDragEnd(context.Background(), DragEvent{DraggedID: "a1", DropTargetID: "Interview"})
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, "Applied", cachedStatus(t, cache, "a1"))
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "not authorized")
}

func TestInlineEditComparesRawStrings(t *testing.T) {
	backend, _, router, _ := newFixture(t)
	ctx := context.Background()

	// Identical raw value: no mutation.
	require.NoError(t, router.HandleInlineEdit(ctx, "a1", " Applied "))
	assert.Empty(t, backend.patches)

	// Casing change IS a mutation for inline edits.
	require.NoError(t, router.HandleInlineEdit(ctx, "a1", "applied"))
	require.Len(t, backend.patches, 1)
	assert.Equal(t, "applied", backend.patches[0].Status)
}

func TestInlineEditEmptyAborts(t *testing.T) {
	backend, _, router, _ := newFixture(t)
	require.NoError(t, router.HandleInlineEdit(context.Background(), "a1", "   "))
	assert.Empty(t, backend.patches)
}

func TestSuggestStatusesDedup(t *testing.T) {
	backend, _, router, _ := newFixture(t)
	backend.apps = append(backend.apps, models.Application{ID: "a3", Status: "interview"},
		models.Application{ID: "a4", Status: "Ghosted"})

	got, err := router.SuggestStatuses(context.Background())
	require.NoError(t, err)
	// Column casing is canonical; "interview" collapses into "Interview".
	assert.Equal(t, []string{"Applied", "Interview", "Ghosted"}, got)
}

func TestMissingTokenIsHardFailure(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api := New(srv.URL, StaticToken(""))
	_, err := api.ListApplications(context.Background(), "", 1, 100)
	assert.ErrorIs(t, err, ErrNoToken)
	// The sentinel is not wrapped in itself when the source already returns it.
	assert.Equal(t, ErrNoToken.Error(), err.Error())
}

type failingTokenSource struct{}

func (failingTokenSource) Token(ctx context.Context) (string, error) {
	return "", errors.New("keychain locked")
}

func TestTokenSourceErrorWrappedOnce(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api := New(srv.URL, failingTokenSource{})
	_, err := api.ListApplications(context.Background(), "", 1, 100)
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, "no authentication token available: keychain locked", err.Error())
}

func TestLegacyStatusCodesOnlyRewriteCreates(t *testing.T) {
	backend := &fakeBackend{
		apps: []models.Application{{ID: "a1", Status: "Applied"}},
	}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api := New(srv.URL, StaticToken("tok"), WithLegacyStatusCodes())
	ctx := context.Background()

	_, err := api.CreateApplication(ctx, &dtos.CreateApplicationRequest{
		CompanyName:       "Acme",
		RoleName:          "Engineer",
		DateOfApplication: "2026-08-01",
		Status:            "online assessment",
	})
	require.NoError(t, err)
	require.Len(t, backend.creates, 1)
	assert.Equal(t, "ONLINE_ASSESSMENT", backend.creates[0].Status)

	// Status patches carry the resolved title verbatim.
	_, err = api.PatchStatus(ctx, "a1", "Online assessment")
	require.NoError(t, err)
	require.Len(t, backend.patches, 1)
	assert.Equal(t, "Online assessment", backend.patches[0].Status)
}
