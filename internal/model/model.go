// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account stored in PostgreSQL. The password is kept
// only as a bcrypt hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"` // unique, case-sensitive as stored
	PwdHash   []byte    `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Tokens carries an issued access token in the OAuth2 response shape.
type Tokens struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"-"` // access token expiry (for diagnostics)
}

// Task is a single task document stored in MongoDB. The owner reference is
// the user's UUID in canonical string form; it is not enforced by any
// cross-store constraint.
//
// Lifecycle timestamps:
//   - CompletedAt nil means not completed; it toggles freely while active.
//   - DeletedAt nil means active; once set the task is a tombstone and is
//     excluded from every read and mutation.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description *string            `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time         `bson:"completed_at" json:"completed_at"`
	DeletedAt   *time.Time         `bson:"deleted_at" json:"deleted_at"`
}

// Active reports whether the task has not been soft-deleted.
func (t *Task) Active() bool { return t.DeletedAt == nil }

// TaskUpdate is a partial-update payload. A nil field means "leave
// unchanged". Completed, when present, resolves into CompletedAt in the
// same atomic update as the other fields.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskPage is one window of a user's active tasks. Total counts all active
// tasks for the owner regardless of the window.
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int64  `json:"total"`
	Page  int64  `json:"page"`
	Size  int64  `json:"size"`
}
