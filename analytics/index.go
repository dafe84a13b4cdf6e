package analytics

import (
	"sort"

	"guestboard/models"
)

// IndexEntry tracks which events one identity attended. FirstSeen and LastSeen
// are event dates, not wall-clock time.
type IndexEntry struct {
	Identity  Identity
	EventIDs  map[string]struct{}
	FirstSeen string
	LastSeen  string
}

// sortEventsByDate returns a copy of events in ascending date order. Event
// dates are YYYY-MM-DD strings, so lexicographic order is chronological order.
// The sort is stable: events on the same date keep their input order.
func sortEventsByDate(events []models.Event) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// groupGuestsByEvent buckets guest rows by event ID in one pass, preserving
// row order within each event.
func groupGuestsByEvent(guests []models.Guest) map[string][]models.Guest {
	grouped := make(map[string][]models.Guest)
	for _, g := range guests {
		grouped[g.EventID] = append(grouped[g.EventID], g)
	}
	return grouped
}

// BuildIdentityIndex folds every guest row, grouped by event in ascending date
// order, into a map from identity key to attendance entry. Processing order is
// deterministic, so FirstSeen/LastSeen and all downstream new-vs-returning
// classification are reproducible given identical inputs. The returned map is
// freshly built on every call and safe for the caller to own.
func BuildIdentityIndex(events []models.Event, guests []models.Guest) map[string]*IndexEntry {
	index := make(map[string]*IndexEntry)
	grouped := groupGuestsByEvent(guests)

	for _, event := range sortEventsByDate(events) {
		eventDate := event.Date

		for _, guest := range grouped[event.EventID] {
			identity := ResolveIdentity(guest)

			if entry, ok := index[identity.Key]; ok {
				entry.EventIDs[event.EventID] = struct{}{}
				if eventDate < entry.FirstSeen {
					entry.FirstSeen = eventDate
				}
				if eventDate > entry.LastSeen {
					entry.LastSeen = eventDate
				}
				continue
			}

			index[identity.Key] = &IndexEntry{
				Identity:  identity,
				EventIDs:  map[string]struct{}{event.EventID: {}},
				FirstSeen: eventDate,
				LastSeen:  eventDate,
			}
		}
	}

	return index
}
