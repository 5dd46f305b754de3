package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

type TaskRepo struct {
	collection *mongo.Collection
}

func NewTaskRepo(db *mongo.Database) *TaskRepo {
	return &TaskRepo{collection: db.Collection("tasks")}
}

func (r *TaskRepo) Insert(ctx context.Context, task *models.Task) error {
	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return errs.Internal("failed to create task", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id string) (*models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var task models.Task
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("task not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to fetch task", err)
	}
	return &task, nil
}

func (r *TaskRepo) FindByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, errs.Internal("failed to fetch tasks", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, errs.Internal("failed to decode tasks", err)
	}
	return tasks, nil
}

// UpdateByID applies the given $set fields and returns the updated document.
// The updatedAt stamp rides along with every write.
func (r *TaskRepo) UpdateByID(ctx context.Context, id string, set bson.M) (*models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Task
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("task not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to update task", err)
	}
	return &updated, nil
}

func (r *TaskRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NotFound("task not found")
	}
	if err != nil {
		return errs.Internal("failed to delete task", err)
	}
	return nil
}
