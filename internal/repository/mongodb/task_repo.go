// Package mongodb contains the MongoDB implementation of the task repository.
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/and161185/taskkeep/internal/errs"
	"github.com/and161185/taskkeep/internal/model"
)

// CollectionName is the tasks collection.
const CollectionName = "tasks"

// TaskRepo implements TaskRepository using a MongoDB collection.
type TaskRepo struct{ col *mongo.Collection }

// NewTaskRepo constructs a task repository over the given database.
func NewTaskRepo(db *mongo.Database) *TaskRepo {
	return &TaskRepo{col: db.Collection(CollectionName)}
}

// activeFilter matches a single active task owned by ownerID. Soft-deleted
// documents never match, so a tombstone is indistinguishable from absence.
func activeFilter(ownerID string, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user_id": ownerID, "deleted_at": nil}
}

// activeOwnerFilter matches all active tasks of one owner.
func activeOwnerFilter(ownerID string) bson.M {
	return bson.M{"user_id": ownerID, "deleted_at": nil}
}

// updateSet builds the $set document for a partial update. Nil fields are
// left out entirely; a present Completed flag resolves to completed_at.
func updateSet(upd model.TaskUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Completed != nil {
		if *upd.Completed {
			set["completed_at"] = now
		} else {
			set["completed_at"] = nil
		}
	}
	return set
}

// Insert stores a new task document and fills in the generated ObjectID.
func (r *TaskRepo) Insert(ctx context.Context, t *model.Task) error {
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("mongodb: unexpected inserted id type")
	}
	t.ID = id
	return nil
}

// ListActive returns one window of the owner's active tasks, newest first.
func (r *TaskRepo) ListActive(ctx context.Context, ownerID string, skip, limit int64) ([]model.Task, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, activeOwnerFilter(ownerID), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []model.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountActive returns the owner's total number of active tasks.
func (r *TaskRepo) CountActive(ctx context.Context, ownerID string) (int64, error) {
	return r.col.CountDocuments(ctx, activeOwnerFilter(ownerID))
}

// GetActive returns a single active task owned by ownerID.
func (r *TaskRepo) GetActive(ctx context.Context, ownerID string, id primitive.ObjectID) (*model.Task, error) {
	var t model.Task
	err := r.col.FindOne(ctx, activeFilter(ownerID, id)).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies supplied fields plus updated_at in one atomic
// FindOneAndUpdate and returns the post-update document. Whole-field
// last-writer-wins: there is no version check.
func (r *TaskRepo) Update(ctx context.Context, ownerID string, id primitive.ObjectID, upd model.TaskUpdate, now time.Time) (*model.Task, error) {
	return r.findOneAndSet(ctx, ownerID, id, updateSet(upd, now))
}

// SoftDelete sets the deleted_at tombstone on an active task. updated_at is
// deliberately left alone.
func (r *TaskRepo) SoftDelete(ctx context.Context, ownerID string, id primitive.ObjectID, now time.Time) error {
	res, err := r.col.UpdateOne(ctx, activeFilter(ownerID, id), bson.M{"$set": bson.M{"deleted_at": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetCompleted sets or clears completed_at and refreshes updated_at.
func (r *TaskRepo) SetCompleted(ctx context.Context, ownerID string, id primitive.ObjectID, completed bool, now time.Time) (*model.Task, error) {
	set := bson.M{"updated_at": now}
	if completed {
		set["completed_at"] = now
	} else {
		set["completed_at"] = nil
	}
	return r.findOneAndSet(ctx, ownerID, id, set)
}

func (r *TaskRepo) findOneAndSet(ctx context.Context, ownerID string, id primitive.ObjectID, set bson.M) (*model.Task, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t model.Task
	err := r.col.FindOneAndUpdate(ctx, activeFilter(ownerID, id), bson.M{"$set": set}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
