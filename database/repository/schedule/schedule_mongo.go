package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository implements Repository on MongoDB.
type MongoRepository struct {
	availabilityColl *mongo.Collection
	overrideColl     *mongo.Collection
	occupancyColl    *mongo.Collection
	appointmentColl  *mongo.Collection
}

// NewMongoRepository constructs the interval store over the configured database.
func NewMongoRepository() *MongoRepository {
	db := database.DB()
	return &MongoRepository{
		availabilityColl: db.Collection("availability"),
		overrideColl:     db.Collection("availability_overrides"),
		occupancyColl:    db.Collection("occupancy"),
		appointmentColl:  db.Collection("appointments"),
	}
}

func (repo *MongoRepository) ReplaceBaseAvailability(ctx context.Context, orgID, resourceID string, days []models.DaySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(days))
	for _, day := range days {
		docs = append(docs, models.BaseAvailability{
			ID:             uuid.New().String(),
			OrganisationID: orgID,
			ResourceID:     resourceID,
			DayOfWeek:      day.DayOfWeek,
			Slots:          day.Slots,
		})
	}

	// Delete-then-insert inside one transaction so readers never see a
	// half-replaced schedule.
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"organisation_id": orgID, "resource_id": resourceID}
		if _, err := repo.availabilityColl.DeleteMany(sc, filter); err != nil {
			return fmt.Errorf("error clearing base availability: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := repo.availabilityColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("error inserting base availability: %w", err)
		}
		return nil
	})
}

func (repo *MongoRepository) GetBaseAvailability(ctx context.Context, orgID, resourceID string) ([]models.BaseAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"organisation_id": orgID, "resource_id": resourceID}
	cursor, err := repo.availabilityColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching base availability: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.BaseAvailability
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding base availability: %w", err)
	}
	return entries, nil
}

func (repo *MongoRepository) UpsertWeekOverride(ctx context.Context, orgID, resourceID string, weekStart time.Time, day models.DaySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organisation_id": orgID,
		"resource_id":     resourceID,
		"week_start":      weekStart,
	}

	var existing models.WeeklyOverride
	err := repo.overrideColl.FindOne(ctx, filter).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		doc := models.WeeklyOverride{
			ID:             uuid.New().String(),
			OrganisationID: orgID,
			ResourceID:     resourceID,
			WeekStart:      weekStart,
			Days:           []models.DaySchedule{day},
		}
		if _, err := repo.overrideColl.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("error creating week override: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error fetching week override: %w", err)
	}

	// Replace the day entry wholesale when present, append otherwise.
	replaced := false
	for i, d := range existing.Days {
		if d.DayOfWeek == day.DayOfWeek {
			existing.Days[i] = day
			replaced = true
			break
		}
	}
	if !replaced {
		existing.Days = append(existing.Days, day)
	}

	update := bson.M{"$set": bson.M{"days": existing.Days}}
	if _, err := repo.overrideColl.UpdateOne(ctx, bson.M{"id": existing.ID}, update); err != nil {
		return fmt.Errorf("error updating week override: %w", err)
	}
	return nil
}

func (repo *MongoRepository) GetWeekOverride(ctx context.Context, orgID, resourceID string, weekStart time.Time) (*models.WeeklyOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organisation_id": orgID,
		"resource_id":     resourceID,
		"week_start":      weekStart,
	}
	var override models.WeeklyOverride
	if err := repo.overrideColl.FindOne(ctx, filter).Decode(&override); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching week override: %w", err)
	}
	return &override, nil
}

func (repo *MongoRepository) GetOccupancyInRange(ctx context.Context, orgID, resourceID string, from, to time.Time) ([]models.Occupancy, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organisation_id": orgID,
		"resource_id":     resourceID,
		"start_time":      bson.M{"$lt": to},
		"end_time":        bson.M{"$gt": from},
	}
	cursor, err := repo.occupancyColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching occupancy: %w", err)
	}
	defer cursor.Close(ctx)

	var occupancy []models.Occupancy
	if err := cursor.All(ctx, &occupancy); err != nil {
		return nil, fmt.Errorf("error decoding occupancy: %w", err)
	}
	return occupancy, nil
}

func (repo *MongoRepository) FindOccupancyAt(ctx context.Context, orgID, resourceID string, at time.Time) (*models.Occupancy, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organisation_id": orgID,
		"resource_id":     resourceID,
		"start_time":      bson.M{"$lte": at},
		"end_time":        bson.M{"$gt": at},
	}
	var occ models.Occupancy
	if err := repo.occupancyColl.FindOne(ctx, filter).Decode(&occ); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching occupancy at instant: %w", err)
	}
	return &occ, nil
}

func (repo *MongoRepository) GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.appointmentColl.FindOne(ctx, bson.M{"id": appointmentID}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", appointmentID, err)
	}
	return &appt, nil
}
