package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guestboard/models"
)

// InsertGuests bulk-inserts guest rows for an event. Rows are stored as-is:
// duplicates within one upload are kept, because per-event totals count rows.
func InsertGuests(ctx context.Context, guests []models.Guest) error {
	if len(guests) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(guests))
	now := time.Now()
	for i := range guests {
		if guests[i].GuestID == "" {
			guests[i].GuestID = uuid.New().String()
		}
		guests[i].CreatedAt = now
		docs = append(docs, guests[i])
	}

	collection := GetDatabase().Collection("guests")
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert guests: %w", err)
	}

	slog.Info("Guests inserted", "count", len(guests), "eventID", guests[0].EventID)
	return nil
}

// GetGuestsByUser returns every guest row across all of a user's events, in
// insertion order. Analytics consume this full snapshot with no pagination.
func GetGuestsByUser(ctx context.Context, userID string) ([]models.Guest, error) {
	collection := GetDatabase().Collection("guests")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get guests: %w", err)
	}
	defer cursor.Close(ctx)

	guests := make([]models.Guest, 0)
	if err := cursor.All(ctx, &guests); err != nil {
		return nil, fmt.Errorf("failed to decode guests: %w", err)
	}

	return guests, nil
}

// GetGuestsByEvent returns the guest rows of one event in insertion order
func GetGuestsByEvent(ctx context.Context, userID, eventID string) ([]models.Guest, error) {
	collection := GetDatabase().Collection("guests")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID, "event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get event guests: %w", err)
	}
	defer cursor.Close(ctx)

	guests := make([]models.Guest, 0)
	if err := cursor.All(ctx, &guests); err != nil {
		return nil, fmt.Errorf("failed to decode event guests: %w", err)
	}

	return guests, nil
}

// DeleteGuestsByEvent removes all guest rows for one event
func DeleteGuestsByEvent(ctx context.Context, userID, eventID string) (int64, error) {
	collection := GetDatabase().Collection("guests")

	result, err := collection.DeleteMany(ctx, bson.M{"user_id": userID, "event_id": eventID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete event guests: %w", err)
	}

	return result.DeletedCount, nil
}

// SaveGuestListFile records a CSV upload against an event
func SaveGuestListFile(ctx context.Context, userID, eventID, fileName string, fileSize int64, guestCount int) (*models.GuestListFile, error) {
	file := &models.GuestListFile{
		FileID:     uuid.New().String(),
		UserID:     userID,
		EventID:    eventID,
		FileName:   fileName,
		FileSize:   fileSize,
		GuestCount: guestCount,
		CreatedAt:  time.Now(),
	}

	collection := GetDatabase().Collection("guest_list_files")
	if _, err := collection.InsertOne(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to save guest list file record: %w", err)
	}

	return file, nil
}

// GetGuestListFiles returns a user's upload history, newest first
func GetGuestListFiles(ctx context.Context, userID string) ([]models.GuestListFile, error) {
	collection := GetDatabase().Collection("guest_list_files")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest list files: %w", err)
	}
	defer cursor.Close(ctx)

	files := make([]models.GuestListFile, 0)
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("failed to decode guest list files: %w", err)
	}

	return files, nil
}
