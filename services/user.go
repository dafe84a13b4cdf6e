package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"guestboard/models"
)

// ErrEmailTaken is returned by CreateUser when an account already exists for
// the email, so handlers can tell a conflict apart from a storage failure.
var ErrEmailTaken = errors.New("email already registered")

// CreateUser creates a new organizer account with a hashed password
func CreateUser(ctx context.Context, email, password, displayName string) (*models.User, error) {
	collection := GetDatabase().Collection("users")

	email = strings.ToLower(strings.TrimSpace(email))

	// Check for an existing account with this email
	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := collection.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created", "userID", user.UserID, "email", user.Email)
	return user, nil
}

// GetUserByID retrieves a user by their public ID
func GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	collection := GetDatabase().Collection("users")

	var user models.User
	err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	collection := GetDatabase().Collection("users")

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpdateProfile updates the organizer-facing profile fields
func UpdateProfile(ctx context.Context, userID, displayName, organizationName string) (*models.User, error) {
	collection := GetDatabase().Collection("users")

	_, err := collection.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"display_name":      displayName,
			"organization_name": organizationName,
			"updated_at":        time.Now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return GetUserByID(ctx, userID)
}

// UpdateUserLastLogin updates the last login timestamp
func UpdateUserLastLogin(ctx context.Context, userID string) error {
	collection := GetDatabase().Collection("users")

	_, err := collection.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	)
	return err
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
