package services

import (
	"testing"
	"time"
)

func TestCleanupInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     time.Duration
	}{
		{name: "explicit interval is kept", interval: 30 * time.Minute, want: 30 * time.Minute},
		{name: "zero falls back to default", interval: 0, want: DefaultSessionCleanupInterval},
		{name: "negative falls back to default", interval: -time.Minute, want: DefaultSessionCleanupInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanupInterval(tt.interval); got != tt.want {
				t.Errorf("cleanupInterval(%v) = %v, want %v", tt.interval, got, tt.want)
			}
		})
	}
}

func TestGenerateSessionID(t *testing.T) {
	first, err := GenerateSessionID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("session ID length = %d, want 64 hex chars", len(first))
	}

	second, err := GenerateSessionID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("consecutive session IDs are identical")
	}
}
