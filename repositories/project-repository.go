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

type ProjectRepo struct {
	collection *mongo.Collection
}

func NewProjectRepo(db *mongo.Database) *ProjectRepo {
	return &ProjectRepo{collection: db.Collection("projects")}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.InvalidInput("invalid id format: " + id)
	}
	return oid, nil
}

func (r *ProjectRepo) Insert(ctx context.Context, project *models.Project) error {
	result, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return errs.Internal("failed to create project", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var project models.Project
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("project not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to fetch project", err)
	}
	return &project, nil
}

func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.Internal("failed to fetch projects", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, errs.Internal("failed to decode projects", err)
	}
	return projects, nil
}

func (r *ProjectRepo) UpdateByID(ctx context.Context, id string, set bson.M) (*models.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Project
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("project not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to update project", err)
	}
	return &updated, nil
}

func (r *ProjectRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NotFound("project not found")
	}
	if err != nil {
		return errs.Internal("failed to delete project", err)
	}
	return nil
}

// AddMember appends a membership entry, guarded so an existing member is never
// duplicated. The filter excludes projects already holding the user, so a zero
// match means either a duplicate or a missing project; a follow-up read tells
// the two apart.
func (r *ProjectRepo) AddMember(ctx context.Context, projectID, userID string, role models.Role) error {
	oid, err := objectID(projectID)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid, "users.userId": bson.M{"$ne": userID}}
	update := bson.M{"$addToSet": bson.M{"users": models.Member{UserID: userID, Role: role}}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errs.Internal("failed to add user to project", err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, projectID); err != nil {
			return err
		}
		return errs.Conflict("user is already a member of this project")
	}
	return nil
}

func (r *ProjectRepo) SetMemberRole(ctx context.Context, projectID, userID string, role models.Role) error {
	oid, err := objectID(projectID)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid, "users.userId": userID}
	update := bson.M{"$set": bson.M{"users.$.role": role}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errs.Internal("failed to update user role", err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, projectID); err != nil {
			return err
		}
		return errs.NotFound("user is not a member of this project")
	}
	return nil
}

func (r *ProjectRepo) RemoveMembers(ctx context.Context, projectID string, userIDs []string) error {
	oid, err := objectID(projectID)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid}
	update := bson.M{"$pull": bson.M{"users": bson.M{"userId": bson.M{"$in": userIDs}}}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errs.Internal("failed to remove users from project", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFound("project not found")
	}
	return nil
}
