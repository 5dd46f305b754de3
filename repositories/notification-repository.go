package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
)

type NotificationRepo struct {
	collection *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{collection: db.Collection("notifications")}
}

func (r *NotificationRepo) Insert(ctx context.Context, notification *models.Notification) error {
	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return errs.Internal("failed to create notification", err)
	}
	notification.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// ListForUser returns at most limit notifications addressed to userID, newest
// first. The recipient filter matches by array element. ObjectIDs grow with
// insertion time, so the secondary _id sort keeps equal-timestamp batches in
// stable insertion order.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"recipient": userID}, opts)
	if err != nil {
		return nil, errs.Internal("failed to fetch notifications", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, errs.Internal("failed to decode notifications", err)
	}
	return notifications, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Notification
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("notification not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to update notification", err)
	}
	return &updated, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	filter := bson.M{"recipient": userID, "read": false}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return errs.Internal("failed to mark notifications as read", err)
	}
	return nil
}

func (r *NotificationRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NotFound("notification not found")
	}
	if err != nil {
		return errs.Internal("failed to delete notification", err)
	}
	return nil
}

func (r *NotificationRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"recipient": userID})
	if err != nil {
		return errs.Internal("failed to delete notifications", err)
	}
	return nil
}
