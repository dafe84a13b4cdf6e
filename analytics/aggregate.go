package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"guestboard/models"
)

// ErrEventNotFound is returned by ComputeEventKPIs when the queried event is
// not present in the full event list. Treating that case as "no earlier
// events" would silently misclassify returning guests, so it fails instead.
var ErrEventNotFound = errors.New("event not found in event list")

// EventGuestCount is the raw row count for one event
type EventGuestCount struct {
	EventID    string `json:"event_id"`
	Label      string `json:"label"`
	GuestCount int    `json:"guest_count"`
}

// EventGuestData is the per-event new/returning split
type EventGuestData struct {
	EventID         string `json:"event_id"`
	Label           string `json:"label"`
	GuestCount      int    `json:"guest_count"`
	NewGuests       int    `json:"new_guests"`
	ReturningGuests int    `json:"returning_guests"`
}

// LoyaltyBucket counts identities by how many distinct events they attended
type LoyaltyBucket struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// TopRepeatGuest is one identity that attended more than one event
type TopRepeatGuest struct {
	Identity       Identity `json:"identity"`
	EventsAttended int      `json:"events_attended"`
	FirstEventDate string   `json:"first_event_date"`
	LastEventDate  string   `json:"last_event_date"`
}

// MaxEventGuests is the busiest event by raw row count. EventTitle is nil when
// there are no events or no guest rows.
type MaxEventGuests struct {
	Count      int     `json:"count"`
	EventTitle *string `json:"event_title"`
}

// DashboardKPIs are the headline numbers across all of a user's events
type DashboardKPIs struct {
	TotalUniqueGuests      int            `json:"total_unique_guests"`
	TotalEvents            int            `json:"total_events"`
	AverageGuestsPerEvent  int            `json:"average_guests_per_event"`
	MaxGuestsAtSingleEvent MaxEventGuests `json:"max_guests_at_single_event"`
}

// EventKPIs are the headline numbers for a single event
type EventKPIs struct {
	TotalGuests         int `json:"total_guests"`
	UniqueGuests        int `json:"unique_guests"`
	ReturningGuests     int `json:"returning_guests"`
	ReturningPercentage int `json:"returning_percentage"`
}

func eventLabel(event models.Event) string {
	return fmt.Sprintf("%s – %s", event.Date, event.Title)
}

// roundRatio applies the one rounding rule used for every user-visible
// average and percentage: round half away from zero (math.Round).
func roundRatio(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator)))
}

// ComputeEventGuestCounts returns the raw row count per event, in ascending
// date order. Rows are not deduplicated by identity here.
func ComputeEventGuestCounts(events []models.Event, guests []models.Guest) []EventGuestCount {
	grouped := groupGuestsByEvent(guests)

	counts := make([]EventGuestCount, 0, len(events))
	for _, event := range sortEventsByDate(events) {
		counts = append(counts, EventGuestCount{
			EventID:    event.EventID,
			Label:      eventLabel(event),
			GuestCount: len(grouped[event.EventID]),
		})
	}
	return counts
}

// ComputeNewVsReturning splits each event's guest rows into new and returning
// against a running set of identity keys seen at this or any earlier event.
// The split is counted at row granularity: a guest appearing twice in the same
// event's list counts once as new and once as returning.
func ComputeNewVsReturning(events []models.Event, guests []models.Guest) []EventGuestData {
	grouped := groupGuestsByEvent(guests)
	seen := make(map[string]struct{})

	result := make([]EventGuestData, 0, len(events))
	for _, event := range sortEventsByDate(events) {
		eventGuests := grouped[event.EventID]

		newGuests := 0
		returningGuests := 0
		for _, guest := range eventGuests {
			key := ResolveIdentity(guest).Key
			if _, ok := seen[key]; ok {
				returningGuests++
			} else {
				newGuests++
				seen[key] = struct{}{}
			}
		}

		result = append(result, EventGuestData{
			EventID:         event.EventID,
			Label:           eventLabel(event),
			GuestCount:      len(eventGuests),
			NewGuests:       newGuests,
			ReturningGuests: returningGuests,
		})
	}
	return result
}

// ComputeLoyaltyBuckets buckets every identity by the number of distinct
// events it attended. Bucket order in the output is fixed.
func ComputeLoyaltyBuckets(events []models.Event, guests []models.Guest) []LoyaltyBucket {
	index := BuildIdentityIndex(events, guests)

	buckets := map[string]int{
		"1 event":   0,
		"2 events":  0,
		"3 events":  0,
		"4+ events": 0,
	}

	for _, entry := range index {
		switch len(entry.EventIDs) {
		case 1:
			buckets["1 event"]++
		case 2:
			buckets["2 events"]++
		case 3:
			buckets["3 events"]++
		default:
			buckets["4+ events"]++
		}
	}

	return []LoyaltyBucket{
		{Bucket: "1 event", Count: buckets["1 event"]},
		{Bucket: "2 events", Count: buckets["2 events"]},
		{Bucket: "3 events", Count: buckets["3 events"]},
		{Bucket: "4+ events", Count: buckets["4+ events"]},
	}
}

// ComputeTopRepeatGuests returns every identity that attended more than one
// event, sorted by events attended descending, then by locale-aware name
// comparison, then by identity key so that equal names order reproducibly.
// The caller truncates or paginates.
func ComputeTopRepeatGuests(events []models.Event, guests []models.Guest) []TopRepeatGuest {
	index := BuildIdentityIndex(events, guests)

	topGuests := make([]TopRepeatGuest, 0)
	for _, entry := range index {
		if len(entry.EventIDs) > 1 {
			topGuests = append(topGuests, TopRepeatGuest{
				Identity:       entry.Identity,
				EventsAttended: len(entry.EventIDs),
				FirstEventDate: entry.FirstSeen,
				LastEventDate:  entry.LastSeen,
			})
		}
	}

	coll := collate.New(language.English)
	sort.Slice(topGuests, func(i, j int) bool {
		if topGuests[i].EventsAttended != topGuests[j].EventsAttended {
			return topGuests[i].EventsAttended > topGuests[j].EventsAttended
		}
		if cmp := coll.CompareString(topGuests[i].Identity.Name, topGuests[j].Identity.Name); cmp != 0 {
			return cmp < 0
		}
		return topGuests[i].Identity.Key < topGuests[j].Identity.Key
	})

	return topGuests
}

// ComputeDashboardKPIs derives the dashboard-level numbers across all events.
func ComputeDashboardKPIs(events []models.Event, guests []models.Guest) DashboardKPIs {
	index := BuildIdentityIndex(events, guests)
	grouped := groupGuestsByEvent(guests)

	// Busiest event by raw row count; first event wins on ties, scanning in
	// the original array order.
	maxCount := 0
	var maxEventTitle *string
	for _, event := range events {
		if count := len(grouped[event.EventID]); count > maxCount {
			maxCount = count
			title := event.Title
			maxEventTitle = &title
		}
	}

	return DashboardKPIs{
		TotalUniqueGuests:     len(index),
		TotalEvents:           len(events),
		AverageGuestsPerEvent: roundRatio(len(guests), len(events)),
		MaxGuestsAtSingleEvent: MaxEventGuests{
			Count:      maxCount,
			EventTitle: maxEventTitle,
		},
	}
}

// ComputeEventKPIs derives the numbers for one event. Returning guests are the
// distinct identities at this event that also appear at an event strictly
// earlier in date order. The queried event must be present in allEvents;
// otherwise ErrEventNotFound is returned.
func ComputeEventKPIs(event models.Event, allEvents []models.Event, allGuests []models.Guest) (EventKPIs, error) {
	grouped := groupGuestsByEvent(allGuests)
	eventGuests := grouped[event.EventID]

	uniqueKeys := make(map[string]struct{})
	for _, guest := range eventGuests {
		uniqueKeys[ResolveIdentity(guest).Key] = struct{}{}
	}

	sortedEvents := sortEventsByDate(allEvents)
	eventIndex := -1
	for i, e := range sortedEvents {
		if e.EventID == event.EventID {
			eventIndex = i
			break
		}
	}
	if eventIndex < 0 {
		return EventKPIs{}, fmt.Errorf("%w: %s", ErrEventNotFound, event.EventID)
	}

	earlierKeys := make(map[string]struct{})
	for _, earlier := range sortedEvents[:eventIndex] {
		for _, guest := range grouped[earlier.EventID] {
			earlierKeys[ResolveIdentity(guest).Key] = struct{}{}
		}
	}

	returningGuests := 0
	for key := range uniqueKeys {
		if _, ok := earlierKeys[key]; ok {
			returningGuests++
		}
	}

	return EventKPIs{
		TotalGuests:         len(eventGuests),
		UniqueGuests:        len(uniqueKeys),
		ReturningGuests:     returningGuests,
		ReturningPercentage: roundRatio(returningGuests*100, len(uniqueKeys)),
	}, nil
}
