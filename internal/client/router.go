package client

import (
	"context"
	"errors"
	"strings"

	"tracker-backend/internal/board"
	"tracker-backend/internal/models"
)

// Notifier receives the user-facing outcome of a transition. The UI's toast
// layer implements it.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

// DragEvent is the abstract drag gesture: no coupling to any drag-and-drop
// library. DropTargetStatus is set when the drop target explicitly carries a
// status tag; otherwise the target is identified only by DropTargetID.
type DragEvent struct {
	DraggedID        string
	DropTargetID     string
	DropTargetStatus string
}

// TransitionRouter turns gestures into status transitions: resolve the
// target, guard no-ops, patch the cache optimistically, issue exactly one
// status mutation, then reconcile the cache against server truth.
type TransitionRouter struct {
	client *Client
	cache  *Cache
	notify Notifier
}

func NewTransitionRouter(c *Client, cache *Cache, n Notifier) *TransitionRouter {
	if n == nil {
		n = noopNotifier{}
	}
	return &TransitionRouter{client: c, cache: cache, notify: n}
}

// ResolveDropTarget finds the status a drop resolves to:
// an explicit status tag wins; a drop onto another application adopts that
// application's status; a target id matching a configured column title
// (case-insensitively) adopts the title. Anything else does not resolve.
func ResolveDropTarget(ev DragEvent, apps []models.Application, cols []models.ColumnConfig) (string, bool) {
	if ev.DropTargetStatus != "" {
		return ev.DropTargetStatus, true
	}
	if ev.DropTargetID == "" {
		return "", false
	}
	for _, app := range apps {
		if app.ID == ev.DropTargetID {
			return app.Status, true
		}
	}
	for _, col := range cols {
		if board.Same(ev.DropTargetID, col.Title) {
			return col.Title, true
		}
	}
	return "", false
}

// HandleDragEnd routes a drag-end gesture. An unresolvable drop target or a
// no-op drop aborts silently: the gesture did not name a valid transition,
// so there is nothing to mutate and nothing to report.
func (r *TransitionRouter) HandleDragEnd(ctx context.Context, ev DragEvent) error {
	if ev.DraggedID == "" {
		return nil
	}
	apps, err := r.cache.Applications(ctx)
	if err != nil {
		return err
	}
	cols, err := r.cache.Columns(ctx)
	if err != nil {
		return err
	}

	var dragged *models.Application
	for i := range apps {
		if apps[i].ID == ev.DraggedID {
			dragged = &apps[i]
			break
		}
	}
	if dragged == nil {
		return nil
	}

	target, ok := ResolveDropTarget(ev, apps, cols)
	if !ok {
		return nil
	}
	if dragged.Status == target {
		return nil
	}

	return r.transition(ctx, dragged.ID, target)
}

// HandleInlineEdit routes a typed status change. The target is the trimmed
// free-text value; the no-op guard compares the raw strings, so changing
// only the casing IS a mutation here.
func (r *TransitionRouter) HandleInlineEdit(ctx context.Context, id, raw string) error {
	target := strings.TrimSpace(raw)
	if target == "" {
		return nil
	}
	apps, err := r.cache.Applications(ctx)
	if err != nil {
		return err
	}
	for _, app := range apps {
		if app.ID == id {
			if app.Status == target {
				return nil
			}
			return r.transition(ctx, id, target)
		}
	}
	return nil
}

func (r *TransitionRouter) transition(ctx context.Context, id, target string) error {
	// Optimistic: the board reflects the move before the request settles.
	r.cache.PatchStatus(id, target)

	_, err := r.client.PatchStatus(ctx, id, target)

	// Either way the snapshot is stale: on success the server holds the new
	// status, on failure the optimistic patch must be discarded.
	r.cache.Invalidate()
	refreshErr := r.cache.Refresh(ctx)

	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			r.notify.Error("You are not authorized to update this application")
		} else {
			r.notify.Error("Failed to update status. Please try again.")
		}
		return err
	}
	r.notify.Success("Status updated!")
	return refreshErr
}

// SuggestStatuses is the inline-edit autocomplete list: configured column
// titles plus every distinct stored status, deduplicated case-insensitively
// with the column casing as canonical.
func (r *TransitionRouter) SuggestStatuses(ctx context.Context) ([]string, error) {
	cols, err := r.cache.Columns(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := r.cache.Statuses(ctx)
	if err != nil {
		return nil, err
	}
	return board.Suggestions(cols, statuses), nil
}
