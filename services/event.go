package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guestboard/models"
)

// ValidateEventDate checks that a date is a bare YYYY-MM-DD calendar date.
// Event dates are stored and compared as strings, so the format is load-bearing.
func ValidateEventDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid event date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

// CreateEvent creates a new event for a user
func CreateEvent(ctx context.Context, userID, title, date, venue, description string) (*models.Event, error) {
	if err := ValidateEventDate(date); err != nil {
		return nil, err
	}

	now := time.Now()
	event := &models.Event{
		EventID:     uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Date:        date,
		Venue:       venue,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	collection := GetDatabase().Collection("events")
	if _, err := collection.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	slog.Info("Event created", "eventID", event.EventID, "userID", userID, "title", title)
	return event, nil
}

// eventSortOrder orders events by date ascending, then creation time, then
// _id. The trailing _id key keeps same-millisecond creations in a stable
// order across queries; new-vs-returning splits depend on it.
var eventSortOrder = bson.D{
	{Key: "date", Value: 1},
	{Key: "created_at", Value: 1},
	{Key: "_id", Value: 1},
}

// GetEventsByUser returns all events for a user in ascending date order,
// with creation order as the tie-break for same-date events.
func GetEventsByUser(ctx context.Context, userID string) ([]models.Event, error) {
	collection := GetDatabase().Collection("events")

	opts := options.Find().SetSort(eventSortOrder)
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]models.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	return events, nil
}

// GetEvent retrieves a single event owned by the user
func GetEvent(ctx context.Context, userID, eventID string) (*models.Event, error) {
	collection := GetDatabase().Collection("events")

	var event models.Event
	err := collection.FindOne(ctx, bson.M{
		"event_id": eventID,
		"user_id":  userID,
	}).Decode(&event)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

// UpdateEvent updates an event's editable fields
func UpdateEvent(ctx context.Context, userID, eventID, title, date, venue, description string) (*models.Event, error) {
	if err := ValidateEventDate(date); err != nil {
		return nil, err
	}

	collection := GetDatabase().Collection("events")

	result, err := collection.UpdateOne(
		ctx,
		bson.M{"event_id": eventID, "user_id": userID},
		bson.M{"$set": bson.M{
			"title":       title,
			"date":        date,
			"venue":       venue,
			"description": description,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}

	return GetEvent(ctx, userID, eventID)
}

// DeleteEvent deletes an event along with its guest rows and file records
func DeleteEvent(ctx context.Context, userID, eventID string) error {
	db := GetDatabase()

	result, err := db.Collection("events").DeleteOne(ctx, bson.M{
		"event_id": eventID,
		"user_id":  userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("event not found")
	}

	if _, err := db.Collection("guests").DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return fmt.Errorf("failed to delete event guests: %w", err)
	}
	if _, err := db.Collection("guest_list_files").DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return fmt.Errorf("failed to delete event file records: %w", err)
	}

	slog.Info("Event deleted", "eventID", eventID, "userID", userID)
	return nil
}
