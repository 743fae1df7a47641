package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes declares the secondary indexes the task queries rely on.
// A failure here degrades performance, not correctness; the caller logs
// and continues.
func (r *TaskRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: -1}}},
		{Keys: bson.D{{Key: "completed_at", Value: -1}}},
		// Compound index serving the active-task filter.
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "deleted_at", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, models)
	return err
}
