package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/and161185/taskkeep/internal/model"
)

// TaskRepository provides owner-scoped access to task documents. Every
// read and mutation is filtered by the owner id and excludes soft-deleted
// documents; a miss for any reason is ErrNotFound.
type TaskRepository interface {
	// Insert stores a new task and fills in its generated ID.
	Insert(ctx context.Context, t *model.Task) error

	// ListActive returns one window of the owner's active tasks, newest first.
	ListActive(ctx context.Context, ownerID string, skip, limit int64) ([]model.Task, error)

	// CountActive returns the owner's total number of active tasks.
	CountActive(ctx context.Context, ownerID string) (int64, error)

	// GetActive returns a single active task owned by ownerID.
	GetActive(ctx context.Context, ownerID string, id primitive.ObjectID) (*model.Task, error)

	// Update applies the supplied fields and refreshes updated_at in one
	// atomic document update, returning the post-update task.
	Update(ctx context.Context, ownerID string, id primitive.ObjectID, upd model.TaskUpdate, now time.Time) (*model.Task, error)

	// SoftDelete sets deleted_at on an active task. It does not touch
	// updated_at.
	SoftDelete(ctx context.Context, ownerID string, id primitive.ObjectID, now time.Time) error

	// SetCompleted sets or clears completed_at and refreshes updated_at,
	// returning the post-transition task.
	SetCompleted(ctx context.Context, ownerID string, id primitive.ObjectID, completed bool, now time.Time) (*model.Task, error)
}
