package analytics

import (
	"testing"

	"guestboard/models"
)

func testEvent(id, date string) models.Event {
	return models.Event{EventID: id, Title: "Event " + id, Date: date}
}

func emailGuest(eventID, email string) models.Guest {
	return models.Guest{EventID: eventID, Email: email}
}

func TestBuildIdentityIndexMergesAcrossEvents(t *testing.T) {
	events := []models.Event{
		testEvent("e2", "2024-02-01"),
		testEvent("e1", "2024-01-01"),
	}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e2", "a@x.com"),
		emailGuest("e2", "b@x.com"),
	}

	index := BuildIdentityIndex(events, guests)

	if len(index) != 2 {
		t.Fatalf("index size = %d, want 2", len(index))
	}

	a, ok := index["a@x.com"]
	if !ok {
		t.Fatal("a@x.com missing from index")
	}
	if len(a.EventIDs) != 2 {
		t.Errorf("a@x.com attended %d events, want 2", len(a.EventIDs))
	}
	if a.FirstSeen != "2024-01-01" || a.LastSeen != "2024-02-01" {
		t.Errorf("a@x.com seen [%s, %s], want [2024-01-01, 2024-02-01]", a.FirstSeen, a.LastSeen)
	}

	b, ok := index["b@x.com"]
	if !ok {
		t.Fatal("b@x.com missing from index")
	}
	if len(b.EventIDs) != 1 {
		t.Errorf("b@x.com attended %d events, want 1", len(b.EventIDs))
	}
	if b.FirstSeen != "2024-02-01" || b.LastSeen != "2024-02-01" {
		t.Errorf("b@x.com seen [%s, %s], want [2024-02-01, 2024-02-01]", b.FirstSeen, b.LastSeen)
	}
}

func TestBuildIdentityIndexRepeatRowsWithinOneEvent(t *testing.T) {
	events := []models.Event{testEvent("e1", "2024-01-01")}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e1", "a@x.com"),
	}

	index := BuildIdentityIndex(events, guests)

	if len(index) != 1 {
		t.Fatalf("index size = %d, want 1", len(index))
	}
	if entry := index["a@x.com"]; len(entry.EventIDs) != 1 {
		t.Errorf("a@x.com attended %d events, want 1", len(entry.EventIDs))
	}
}

func TestBuildIdentityIndexCardinalityBounds(t *testing.T) {
	events := []models.Event{
		testEvent("e1", "2024-01-01"),
		testEvent("e2", "2024-02-01"),
	}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e1", "b@x.com"),
		emailGuest("e2", "a@x.com"),
		{EventID: "e2", FirstName: "Jo", LastName: "Lee"},
	}

	index := BuildIdentityIndex(events, guests)

	if len(index) > len(guests) {
		t.Errorf("index size %d exceeds guest row count %d", len(index), len(guests))
	}
	if len(index) < 1 {
		t.Error("index is empty despite non-empty guest rows")
	}
}

func TestBuildIdentityIndexIgnoresOrphanGuests(t *testing.T) {
	// A guest row pointing at no known event never enters the fold.
	events := []models.Event{testEvent("e1", "2024-01-01")}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("missing", "ghost@x.com"),
	}

	index := BuildIdentityIndex(events, guests)

	if len(index) != 1 {
		t.Fatalf("index size = %d, want 1", len(index))
	}
	if _, ok := index["ghost@x.com"]; ok {
		t.Error("orphan guest row made it into the index")
	}
}

func TestBuildIdentityIndexEmptyInputs(t *testing.T) {
	if index := BuildIdentityIndex(nil, nil); len(index) != 0 {
		t.Errorf("index size = %d, want 0", len(index))
	}
}
