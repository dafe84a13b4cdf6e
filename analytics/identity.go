// Package analytics derives attendance, loyalty, and retention metrics from a
// user's full event and guest-row snapshots. Guest rows carry no shared guest
// ID, so the same real person is recognized across rows and events through a
// deterministic identity key. Every function here is pure: inputs are never
// mutated and derived values are rebuilt from scratch on each call.
package analytics

import (
	"strings"

	"guestboard/models"
)

// Identity is the canonical identity derived from one guest row
type Identity struct {
	Key         string `json:"key"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ResolveIdentity reduces a guest row to its canonical identity. A trimmed,
// lowercased email is the primary key and wins regardless of name or phone
// differences. Without an email the key falls back to
// lowercase("first|last|phone"). Empty and whitespace-only fields are treated
// as absent, so an all-empty row resolves to the degenerate key "||" and all
// such rows collapse into one identity.
func ResolveIdentity(g models.Guest) Identity {
	email := strings.ToLower(strings.TrimSpace(g.Email))
	firstName := strings.TrimSpace(g.FirstName)
	lastName := strings.TrimSpace(g.LastName)
	phoneNumber := strings.TrimSpace(g.PhoneNumber)

	name := strings.TrimSpace(g.Name)
	if name == "" {
		name = strings.TrimSpace(firstName + " " + lastName)
	}
	if name == "" {
		name = "Unknown"
	}

	if email != "" {
		return Identity{
			Key:         email,
			Email:       email,
			Name:        name,
			PhoneNumber: phoneNumber,
		}
	}

	key := strings.ToLower(firstName + "|" + lastName + "|" + phoneNumber)
	return Identity{
		Key:         key,
		Name:        name,
		PhoneNumber: phoneNumber,
	}
}
