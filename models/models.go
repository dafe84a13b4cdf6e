package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents a single event organized by a user
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EventID     string             `bson:"event_id" json:"id"` // stable public ID (UUID)
	UserID      string             `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Date        string             `bson:"date" json:"date"` // calendar date, YYYY-MM-DD, no time component
	Venue       string             `bson:"venue" json:"venue"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Guest represents one imported guest-list row. No field is required and no
// field is unique: the same person may appear as multiple rows within one
// event and across events. Identity is derived at query time, never stored.
type Guest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	GuestID     string             `bson:"guest_id" json:"id"`
	EventID     string             `bson:"event_id" json:"event_id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	APIID       string             `bson:"api_id,omitempty" json:"api_id,omitempty"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	FirstName   string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName    string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	TicketType  string             `bson:"ticket_type,omitempty" json:"ticket_type,omitempty"`
	RawData     map[string]string  `bson:"raw_data,omitempty" json:"raw_data,omitempty"` // original CSV row, passthrough
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// GuestListFile records one CSV upload against an event
type GuestListFile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FileID     string             `bson:"file_id" json:"id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	EventID    string             `bson:"event_id" json:"event_id"`
	FileName   string             `bson:"file_name" json:"file_name"`
	FileSize   int64              `bson:"file_size" json:"file_size"`
	GuestCount int                `bson:"guest_count" json:"guest_count"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// SocialConnection stores an OAuth connection to a social platform
type SocialConnection struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       string             `bson:"user_id" json:"user_id"`
	Platform     string             `bson:"platform" json:"platform"` // "instagram" or "tiktok"
	PlatformID   string             `bson:"platform_id" json:"platform_id"`
	Username     string             `bson:"username,omitempty" json:"username,omitempty"`
	AccessToken  string             `bson:"access_token" json:"-"`
	RefreshToken string             `bson:"refresh_token,omitempty" json:"-"`
	ExpiresAt    *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	ConnectedAt  time.Time          `bson:"connected_at" json:"connected_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
)
