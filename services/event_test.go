package services

import (
	"testing"
)

func TestValidateEventDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{date: "2024-01-01", wantErr: false},
		{date: "2024-12-31", wantErr: false},
		{date: "2024-13-01", wantErr: true},
		{date: "2024-01-01T10:00:00Z", wantErr: true},
		{date: "01/02/2024", wantErr: true},
		{date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			err := ValidateEventDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEventDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestEventSortOrderIsFullyDeterministic(t *testing.T) {
	wantKeys := []string{"date", "created_at", "_id"}

	if len(eventSortOrder) != len(wantKeys) {
		t.Fatalf("sort has %d keys, want %d", len(eventSortOrder), len(wantKeys))
	}
	for i, key := range wantKeys {
		if eventSortOrder[i].Key != key {
			t.Errorf("sort key %d = %q, want %q", i, eventSortOrder[i].Key, key)
		}
		if eventSortOrder[i].Value != 1 {
			t.Errorf("sort key %q direction = %v, want ascending", key, eventSortOrder[i].Value)
		}
	}
}
