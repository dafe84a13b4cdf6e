package analytics

import (
	"testing"

	"guestboard/models"
)

func TestResolveIdentityEmailPrimary(t *testing.T) {
	tests := []struct {
		name    string
		guest   models.Guest
		wantKey string
	}{
		{
			name:    "plain email",
			guest:   models.Guest{Email: "a@x.com"},
			wantKey: "a@x.com",
		},
		{
			name:    "email is trimmed and lowercased",
			guest:   models.Guest{Email: "  Anna.Lee@Example.COM "},
			wantKey: "anna.lee@example.com",
		},
		{
			name:    "email wins over differing names and phone",
			guest:   models.Guest{Email: "a@x.com", FirstName: "Totally", LastName: "Different", PhoneNumber: "999"},
			wantKey: "a@x.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveIdentity(tt.guest)
			if got.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", got.Key, tt.wantKey)
			}
			if got.Email != tt.wantKey {
				t.Errorf("email = %q, want %q", got.Email, tt.wantKey)
			}
		})
	}
}

func TestResolveIdentityFallbackKey(t *testing.T) {
	tests := []struct {
		name    string
		guest   models.Guest
		wantKey string
	}{
		{
			name:    "first last phone",
			guest:   models.Guest{FirstName: "Jo", LastName: "Lee", PhoneNumber: "555"},
			wantKey: "jo|lee|555",
		},
		{
			name:    "case insensitive",
			guest:   models.Guest{FirstName: "JO", LastName: "lee", PhoneNumber: "555"},
			wantKey: "jo|lee|555",
		},
		{
			name:    "missing phone",
			guest:   models.Guest{FirstName: "Jo", LastName: "Lee"},
			wantKey: "jo|lee|",
		},
		{
			name:    "whitespace-only fields are absent",
			guest:   models.Guest{FirstName: "  ", LastName: " ", PhoneNumber: "\t"},
			wantKey: "||",
		},
		{
			name:    "all-empty record collapses to degenerate key",
			guest:   models.Guest{},
			wantKey: "||",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveIdentity(tt.guest)
			if got.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", got.Key, tt.wantKey)
			}
			if got.Email != "" {
				t.Errorf("email = %q, want empty", got.Email)
			}
		})
	}
}

func TestResolveIdentityFallbackDistinguishesComponents(t *testing.T) {
	base := models.Guest{FirstName: "Jo", LastName: "Lee", PhoneNumber: "555"}
	variants := []models.Guest{
		{FirstName: "Jon", LastName: "Lee", PhoneNumber: "555"},
		{FirstName: "Jo", LastName: "Leen", PhoneNumber: "555"},
		{FirstName: "Jo", LastName: "Lee", PhoneNumber: "556"},
	}

	baseKey := ResolveIdentity(base).Key
	for _, v := range variants {
		if key := ResolveIdentity(v).Key; key == baseKey {
			t.Errorf("guest %+v resolved to same key %q as base", v, key)
		}
	}
}

func TestResolveIdentityDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		guest    models.Guest
		wantName string
	}{
		{
			name:     "explicit name wins",
			guest:    models.Guest{Name: "Jo Lee", FirstName: "Other", LastName: "Person"},
			wantName: "Jo Lee",
		},
		{
			name:     "first and last joined",
			guest:    models.Guest{FirstName: "Jo", LastName: "Lee"},
			wantName: "Jo Lee",
		},
		{
			name:     "first name only trims trailing space",
			guest:    models.Guest{FirstName: "Jo"},
			wantName: "Jo",
		},
		{
			name:     "no name at all",
			guest:    models.Guest{Email: "a@x.com"},
			wantName: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveIdentity(tt.guest); got.Name != tt.wantName {
				t.Errorf("name = %q, want %q", got.Name, tt.wantName)
			}
		})
	}
}
