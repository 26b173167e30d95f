package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraints and overlap-query
// indexes the interval store relies on.
func (repo *MongoRepository) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	availabilityIndexes := []mongo.IndexModel{
		// One base-availability entry per (org, resource, day-of-week).
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "resource_id", Value: 1},
				{Key: "day_of_week", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("org_resource_day_unique"),
		},
	}
	if _, err := repo.availabilityColl.Indexes().CreateMany(ctx, availabilityIndexes); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}

	overrideIndexes := []mongo.IndexModel{
		// One override document per (org, resource, week-start).
		{
			Keys: bson.D{
				{Key: "organisation_id", Value: 1},
				{Key: "resource_id", Value: 1},
				{Key: "week_start", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("org_resource_week_unique"),
		},
	}
	if _, err := repo.overrideColl.Indexes().CreateMany(ctx, overrideIndexes); err != nil {
		return fmt.Errorf("failed to create override indexes: %w", err)
	}

	occupancyIndexes := []mongo.IndexModel{
		// Primary overlap-query pattern.
		{
			Keys: bson.D{
				{Key: "resource_id", Value: 1},
				{Key: "start_time", Value: 1},
				{Key: "end_time", Value: 1},
			},
			Options: options.Index().SetName("resource_start_end_idx"),
		},
		{
			Keys:    bson.D{{Key: "reference_id", Value: 1}},
			Options: options.Index().SetName("reference_idx"),
		},
	}
	if _, err := repo.occupancyColl.Indexes().CreateMany(ctx, occupancyIndexes); err != nil {
		return fmt.Errorf("failed to create occupancy indexes: %w", err)
	}

	appointmentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "resource_id", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().SetName("resource_start_idx"),
		},
	}
	if _, err := repo.appointmentColl.Indexes().CreateMany(ctx, appointmentIndexes); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	return nil
}
