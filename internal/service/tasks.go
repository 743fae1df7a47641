package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/and161185/taskkeep/internal/errs"
	"github.com/and161185/taskkeep/internal/model"
	"github.com/and161185/taskkeep/internal/repository"
)

// Default pagination window, matching the HTTP defaults.
const (
	defaultPage = 1
	defaultSize = 10
)

// TaskService enforces per-owner visibility and valid lifecycle transitions.
// Task ids are accepted as strings; a syntactically malformed id behaves
// exactly like a missing one.
type TaskService interface {
	// Create stores a new active, incomplete task.
	Create(ctx context.Context, owner uuid.UUID, title string, description *string) (*model.Task, error)
	// List returns one page of active tasks, newest first, plus the total
	// active count.
	List(ctx context.Context, owner uuid.UUID, page, size int64) (*model.TaskPage, error)
	// Get returns a single active task.
	Get(ctx context.Context, owner uuid.UUID, id string) (*model.Task, error)
	// Update applies a partial update; nil fields stay unchanged.
	Update(ctx context.Context, owner uuid.UUID, id string, upd model.TaskUpdate) (*model.Task, error)
	// Delete soft-deletes a task; the tombstone is terminal.
	Delete(ctx context.Context, owner uuid.UUID, id string) error
	// SetCompleted toggles completion and returns the post-transition task.
	SetCompleted(ctx context.Context, owner uuid.UUID, id string, completed bool) (*model.Task, error)
}

type TaskServiceImpl struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewTaskService constructs TaskService over a task repository.
func NewTaskService(repo repository.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// parseID maps a malformed id to ErrNotFound so callers cannot distinguish
// malformed from merely absent.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.ErrNotFound
	}
	return oid, nil
}

// Create stores a new task with both timestamps set to now and no
// completion or tombstone.
func (s *TaskServiceImpl) Create(ctx context.Context, owner uuid.UUID, title string, description *string) (*model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title must not be empty: %w", errs.ErrValidation)
	}
	now := s.now()
	t := &model.Task{
		UserID:      owner.String(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List windows the owner's active tasks by (page-1)*size and size. An
// out-of-range page yields an empty page, not an error; Total always
// reflects the full active count.
func (s *TaskServiceImpl) List(ctx context.Context, owner uuid.UUID, page, size int64) (*model.TaskPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if size < 1 {
		size = defaultSize
	}
	ownerID := owner.String()

	tasks, err := s.repo.ListActive(ctx, ownerID, (page-1)*size, size)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &model.TaskPage{Tasks: tasks, Total: total, Page: page, Size: size}, nil
}

// Get fetches a single active task by id.
func (s *TaskServiceImpl) Get(ctx context.Context, owner uuid.UUID, id string) (*model.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetActive(ctx, owner.String(), oid)
}

// Update applies supplied fields atomically. An explicitly blank title is
// rejected; an omitted title is left unchanged.
func (s *TaskServiceImpl) Update(ctx context.Context, owner uuid.UUID, id string, upd model.TaskUpdate) (*model.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, fmt.Errorf("title must not be empty: %w", errs.ErrValidation)
	}
	return s.repo.Update(ctx, owner.String(), oid, upd, s.now())
}

// Delete sets the tombstone. Further operations on the id yield ErrNotFound.
func (s *TaskServiceImpl) Delete(ctx context.Context, owner uuid.UUID, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, owner.String(), oid, s.now())
}

// SetCompleted sets or clears completed_at. Repeating the same transition
// succeeds (idempotent).
func (s *TaskServiceImpl) SetCompleted(ctx context.Context, owner uuid.UUID, id string, completed bool) (*model.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.SetCompleted(ctx, owner.String(), oid, completed, s.now())
}
