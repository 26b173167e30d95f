package rosterRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements Repository over the resources collection.
type MongoRepository struct {
	resourceColl *mongo.Collection
}

// NewMongoRepository constructs the roster lookup over the configured database.
func NewMongoRepository() *MongoRepository {
	return &MongoRepository{
		resourceColl: database.DB().Collection("resources"),
	}
}

func (repo *MongoRepository) ListQualifiedResources(ctx context.Context, orgID, serviceID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organisation_id": orgID,
		"service_ids":     serviceID,
		"active":          true,
	}
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := repo.resourceColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing qualified resources: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding resource: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return ids, nil
}

func (repo *MongoRepository) GetResource(ctx context.Context, orgID, resourceID string) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var resource models.Resource
	filter := bson.M{"organisation_id": orgID, "id": resourceID}
	if err := repo.resourceColl.FindOne(ctx, filter).Decode(&resource); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching resource %s: %w", resourceID, err)
	}
	return &resource, nil
}
