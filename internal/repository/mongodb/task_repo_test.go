package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/and161185/taskkeep/internal/model"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestActiveFilter_ScopesToOwnerAndTombstone(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()
	f := activeFilter("owner-1", id)

	require.Equal(t, id, f["_id"])
	require.Equal(t, "owner-1", f["user_id"])
	// deleted_at must be constrained to null so tombstones never match.
	v, ok := f["deleted_at"]
	require.True(t, ok)
	require.Nil(t, v)
}

func TestActiveOwnerFilter(t *testing.T) {
	t.Parallel()

	f := activeOwnerFilter("owner-2")
	require.Equal(t, bson.M{"user_id": "owner-2", "deleted_at": nil}, f)
}

func TestUpdateSet_NilFieldsIgnored(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	set := updateSet(model.TaskUpdate{}, now)

	// Even an empty update refreshes updated_at and nothing else.
	require.Equal(t, bson.M{"updated_at": now}, set)
}

func TestUpdateSet_SuppliedFields(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	set := updateSet(model.TaskUpdate{
		Title:       strp("T2"),
		Description: strp("d"),
	}, now)

	require.Equal(t, "T2", set["title"])
	require.Equal(t, "d", set["description"])
	require.Equal(t, now, set["updated_at"])
	_, hasCompleted := set["completed_at"]
	require.False(t, hasCompleted, "completed_at must be untouched when Completed is absent")
}

func TestUpdateSet_CompletedFlag(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	set := updateSet(model.TaskUpdate{Completed: boolp(true)}, now)
	require.Equal(t, now, set["completed_at"])

	set = updateSet(model.TaskUpdate{Completed: boolp(false)}, now)
	v, ok := set["completed_at"]
	require.True(t, ok)
	require.Nil(t, v, "uncomplete must explicitly clear completed_at")
}
