package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guestboard/models"
)

// SaveConnection stores or refreshes a social platform connection for a user
func SaveConnection(ctx context.Context, conn *models.SocialConnection) error {
	collection := GetDatabase().Collection("social_connections")

	now := time.Now()
	filter := bson.M{
		"user_id":  conn.UserID,
		"platform": conn.Platform,
	}
	update := bson.M{
		"$set": bson.M{
			"platform_id":   conn.PlatformID,
			"username":      conn.Username,
			"access_token":  conn.AccessToken,
			"refresh_token": conn.RefreshToken,
			"expires_at":    conn.ExpiresAt,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"user_id":      conn.UserID,
			"platform":     conn.Platform,
			"connected_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save %s connection: %w", conn.Platform, err)
	}

	slog.Info("Social connection saved", "userID", conn.UserID, "platform", conn.Platform)
	return nil
}

// GetConnectionsByUser returns all social connections for a user
func GetConnectionsByUser(ctx context.Context, userID string) ([]models.SocialConnection, error) {
	collection := GetDatabase().Collection("social_connections")

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get social connections: %w", err)
	}
	defer cursor.Close(ctx)

	connections := make([]models.SocialConnection, 0)
	if err := cursor.All(ctx, &connections); err != nil {
		return nil, fmt.Errorf("failed to decode social connections: %w", err)
	}

	return connections, nil
}

// DeleteConnection removes a social platform connection
func DeleteConnection(ctx context.Context, userID, platform string) error {
	collection := GetDatabase().Collection("social_connections")

	result, err := collection.DeleteOne(ctx, bson.M{
		"user_id":  userID,
		"platform": platform,
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s connection: %w", platform, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("no %s connection found", platform)
	}

	return nil
}
