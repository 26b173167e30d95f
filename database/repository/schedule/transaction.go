package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs fn inside a mongo session transaction, aborting
// on any error. Domain sentinels (ErrSlotTaken, ErrNotFound) pass
// through unwrapped so callers can match them with errors.Is.
func (repo *MongoRepository) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.occupancyColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("could not start transaction: %w", err)
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return fmt.Errorf("commit failed: %w", err)
		}
		return nil
	})
}

// checkOverlap fails with ErrSlotTaken when any occupancy of the same
// resource intersects the half-open interval [start, end).
func (repo *MongoRepository) checkOverlap(sc mongo.SessionContext, orgID, resourceID string, start, end time.Time) error {
	filter := bson.M{
		"organisation_id": orgID,
		"resource_id":     resourceID,
		"start_time":      bson.M{"$lt": end},
		"end_time":        bson.M{"$gt": start},
	}
	count, err := repo.occupancyColl.CountDocuments(sc, filter)
	if err != nil {
		return fmt.Errorf("overlap query failed: %w", err)
	}
	if count > 0 {
		return ErrSlotTaken
	}
	return nil
}

func (repo *MongoRepository) CommitBooking(ctx context.Context, occ *models.Occupancy, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := repo.checkOverlap(sc, occ.OrganisationID, occ.ResourceID, occ.StartTime, occ.EndTime); err != nil {
			return err
		}
		if _, err := repo.occupancyColl.InsertOne(sc, occ); err != nil {
			return fmt.Errorf("insert occupancy failed: %w", err)
		}
		if appt != nil {
			if _, err := repo.appointmentColl.InsertOne(sc, appt); err != nil {
				return fmt.Errorf("insert appointment failed: %w", err)
			}
		}
		return nil
	})
}

func (repo *MongoRepository) ReassignBooking(ctx context.Context, referenceID string, occ *models.Occupancy) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var appt models.Appointment
		err := repo.appointmentColl.FindOne(sc, bson.M{"id": referenceID}).Decode(&appt)
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("error fetching appointment %s: %w", referenceID, err)
		}
		if appt.Status == models.AppointmentCancelled {
			return ErrNotFound
		}

		// The old occupancy is removed before the overlap check so a
		// reschedule within the original interval does not conflict
		// with itself.
		if _, err := repo.occupancyColl.DeleteMany(sc, bson.M{"reference_id": referenceID}); err != nil {
			return fmt.Errorf("delete old occupancy failed: %w", err)
		}
		if err := repo.checkOverlap(sc, occ.OrganisationID, occ.ResourceID, occ.StartTime, occ.EndTime); err != nil {
			return err
		}
		if _, err := repo.occupancyColl.InsertOne(sc, occ); err != nil {
			return fmt.Errorf("insert occupancy failed: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"resource_id": occ.ResourceID,
			"start_time":  occ.StartTime,
			"end_time":    occ.EndTime,
			"updated_at":  time.Now().UTC(),
		}}
		if _, err := repo.appointmentColl.UpdateOne(sc, bson.M{"id": referenceID}, update); err != nil {
			return fmt.Errorf("update appointment assignment failed: %w", err)
		}
		return nil
	})
}

func (repo *MongoRepository) ReleaseBooking(ctx context.Context, orgID, resourceID, referenceID string) (*models.Occupancy, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var released *models.Occupancy
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		released = nil

		var appt models.Appointment
		err := repo.appointmentColl.FindOne(sc, bson.M{"id": referenceID}).Decode(&appt)
		hasAppt := err == nil
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("error fetching appointment %s: %w", referenceID, err)
		}
		if hasAppt && appt.Status == models.AppointmentCancelled {
			// Already released; keep cancellation idempotent.
			return nil
		}

		occFilter := bson.M{
			"organisation_id": orgID,
			"resource_id":     resourceID,
			"reference_id":    referenceID,
		}
		var occ models.Occupancy
		if err := repo.occupancyColl.FindOne(sc, occFilter).Decode(&occ); err == nil {
			released = &occ
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("error fetching occupancy for %s: %w", referenceID, err)
		}

		if released != nil {
			if _, err := repo.occupancyColl.DeleteMany(sc, occFilter); err != nil {
				return fmt.Errorf("delete occupancy failed: %w", err)
			}
		}
		if hasAppt {
			update := bson.M{"$set": bson.M{
				"status":     models.AppointmentCancelled,
				"updated_at": time.Now().UTC(),
			}}
			if _, err := repo.appointmentColl.UpdateOne(sc, bson.M{"id": referenceID}, update); err != nil {
				return fmt.Errorf("cancel appointment failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}
