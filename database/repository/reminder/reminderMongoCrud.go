package reminderRepo

import (
	"fmt"
	"time"

	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new schedule document.
func (r *MongoReminderRepo) Create(schedule *models.ReminderSchedule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	schedule.CreatedAt = time.Now()
	if schedule.Status == "" {
		schedule.Status = models.ReminderActive
	}

	_, err := r.coll.InsertOne(ctx, schedule)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a field-level $set update to a schedule.
func (r *MongoReminderRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update reminder with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a schedule document by its ID.
func (r *MongoReminderRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reminder with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFired records a successful delivery. The filter matches the previously
// observed last_sent value, so of two overlapping evaluations only one update
// matches; the loser gets ErrFireConflict and must not count the delivery.
func (r *MongoReminderRepo) MarkFired(id string, prevLastSent *time.Time, firedAt time.Time, completed bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if prevLastSent == nil {
		filter["last_sent"] = bson.M{"$exists": false}
	} else {
		filter["last_sent"] = *prevLastSent
	}

	set := bson.M{
		"last_sent":  firedAt,
		"fail_count": 0,
	}
	if completed {
		set["status"] = models.ReminderCompleted
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to mark reminder %s as fired: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a vanished schedule from a lost race.
		var existing models.ReminderSchedule
		err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return ErrFireConflict
	}
	return nil
}

// RecordFailure increments the consecutive-failure counter and pauses the
// schedule once the counter reaches pauseAt. last_sent is left untouched so
// the schedule stays due for the next evaluation.
func (r *MongoReminderRepo) RecordFailure(id string, pauseAt int) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var updated models.ReminderSchedule
	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$inc": bson.M{"fail_count": 1}},
	)
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to record failure for reminder %s: %w", id, err)
	}

	// FindOneAndUpdate returns the pre-update document by default.
	count := updated.FailCount + 1

	if pauseAt > 0 && count >= pauseAt && updated.Status == models.ReminderActive {
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"id": id, "status": models.ReminderActive},
			bson.M{"$set": bson.M{"status": models.ReminderPaused}},
		)
		if err != nil {
			return count, fmt.Errorf("failed to pause reminder %s after repeated failures: %w", id, err)
		}
	}
	return count, nil
}
