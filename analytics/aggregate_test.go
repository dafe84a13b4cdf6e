package analytics

import (
	"errors"
	"reflect"
	"testing"

	"guestboard/models"
)

func twoEventScenario() ([]models.Event, []models.Guest) {
	events := []models.Event{
		testEvent("e1", "2024-01-01"),
		testEvent("e2", "2024-02-01"),
	}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e2", "a@x.com"),
		emailGuest("e2", "b@x.com"),
	}
	return events, guests
}

func TestComputeEventGuestCounts(t *testing.T) {
	events, guests := twoEventScenario()

	counts := ComputeEventGuestCounts(events, guests)

	want := []EventGuestCount{
		{EventID: "e1", Label: "2024-01-01 – Event e1", GuestCount: 1},
		{EventID: "e2", Label: "2024-02-01 – Event e2", GuestCount: 2},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
}

func TestComputeNewVsReturning(t *testing.T) {
	events, guests := twoEventScenario()

	result := ComputeNewVsReturning(events, guests)

	if len(result) != 2 {
		t.Fatalf("got %d entries, want 2", len(result))
	}
	if result[0].NewGuests != 1 || result[0].ReturningGuests != 0 {
		t.Errorf("event 1 split = %d new / %d returning, want 1/0", result[0].NewGuests, result[0].ReturningGuests)
	}
	if result[1].NewGuests != 1 || result[1].ReturningGuests != 1 {
		t.Errorf("event 2 split = %d new / %d returning, want 1/1", result[1].NewGuests, result[1].ReturningGuests)
	}
}

func TestComputeNewVsReturningRowGranularity(t *testing.T) {
	// A guest listed twice in the same event counts once as new and once as
	// returning.
	events := []models.Event{testEvent("e1", "2024-01-01")}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e1", "a@x.com"),
	}

	result := ComputeNewVsReturning(events, guests)

	if result[0].NewGuests != 1 || result[0].ReturningGuests != 1 {
		t.Errorf("split = %d new / %d returning, want 1/1", result[0].NewGuests, result[0].ReturningGuests)
	}
}

func TestComputeNewVsReturningNewTotalsMatchIndex(t *testing.T) {
	events, guests := twoEventScenario()

	totalNew := 0
	for _, entry := range ComputeNewVsReturning(events, guests) {
		totalNew += entry.NewGuests
	}

	if index := BuildIdentityIndex(events, guests); totalNew != len(index) {
		t.Errorf("sum of new guests = %d, want index size %d", totalNew, len(index))
	}
}

func TestComputeLoyaltyBuckets(t *testing.T) {
	events := []models.Event{
		testEvent("e1", "2024-01-01"),
		testEvent("e2", "2024-02-01"),
	}
	// No email: fallback identity from first/last/phone, shared across events.
	guests := []models.Guest{
		{EventID: "e1", FirstName: "Jo", LastName: "Lee", PhoneNumber: "555"},
		{EventID: "e2", FirstName: "Jo", LastName: "Lee", PhoneNumber: "555"},
		{EventID: "e1", Email: "solo@x.com"},
	}

	buckets := ComputeLoyaltyBuckets(events, guests)

	want := []LoyaltyBucket{
		{Bucket: "1 event", Count: 1},
		{Bucket: "2 events", Count: 1},
		{Bucket: "3 events", Count: 0},
		{Bucket: "4+ events", Count: 0},
	}
	if !reflect.DeepEqual(buckets, want) {
		t.Errorf("buckets = %+v, want %+v", buckets, want)
	}
}

func TestComputeLoyaltyBucketsSumEqualsIndexSize(t *testing.T) {
	events, guests := twoEventScenario()

	total := 0
	for _, b := range ComputeLoyaltyBuckets(events, guests) {
		total += b.Count
	}

	if index := BuildIdentityIndex(events, guests); total != len(index) {
		t.Errorf("bucket sum = %d, want index size %d", total, len(index))
	}
}

func TestComputeTopRepeatGuests(t *testing.T) {
	events, guests := twoEventScenario()

	top := ComputeTopRepeatGuests(events, guests)

	if len(top) != 1 {
		t.Fatalf("got %d repeat guests, want 1", len(top))
	}
	if top[0].Identity.Key != "a@x.com" || top[0].EventsAttended != 2 {
		t.Errorf("top guest = %q with %d events, want a@x.com with 2", top[0].Identity.Key, top[0].EventsAttended)
	}
	if top[0].FirstEventDate != "2024-01-01" || top[0].LastEventDate != "2024-02-01" {
		t.Errorf("top guest dates [%s, %s], want [2024-01-01, 2024-02-01]", top[0].FirstEventDate, top[0].LastEventDate)
	}
}

func TestComputeTopRepeatGuestsOrdering(t *testing.T) {
	events := []models.Event{
		testEvent("e1", "2024-01-01"),
		testEvent("e2", "2024-02-01"),
		testEvent("e3", "2024-03-01"),
	}
	guests := []models.Guest{
		// zed attends all three, anna and ben attend two each
		{EventID: "e1", Email: "zed@x.com", Name: "Zed"},
		{EventID: "e2", Email: "zed@x.com", Name: "Zed"},
		{EventID: "e3", Email: "zed@x.com", Name: "Zed"},
		{EventID: "e1", Email: "ben@x.com", Name: "Ben"},
		{EventID: "e2", Email: "ben@x.com", Name: "Ben"},
		{EventID: "e2", Email: "anna@x.com", Name: "Anna"},
		{EventID: "e3", Email: "anna@x.com", Name: "Anna"},
	}

	top := ComputeTopRepeatGuests(events, guests)

	gotKeys := make([]string, 0, len(top))
	for _, g := range top {
		gotKeys = append(gotKeys, g.Identity.Key)
	}
	wantKeys := []string{"zed@x.com", "anna@x.com", "ben@x.com"}
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Errorf("order = %v, want %v", gotKeys, wantKeys)
	}
}

func TestComputeDashboardKPIs(t *testing.T) {
	events, guests := twoEventScenario()

	kpis := ComputeDashboardKPIs(events, guests)

	if kpis.TotalUniqueGuests != 2 {
		t.Errorf("total unique guests = %d, want 2", kpis.TotalUniqueGuests)
	}
	if kpis.TotalEvents != 2 {
		t.Errorf("total events = %d, want 2", kpis.TotalEvents)
	}
	// 3 rows over 2 events rounds half away from zero: 1.5 -> 2
	if kpis.AverageGuestsPerEvent != 2 {
		t.Errorf("average guests per event = %d, want 2", kpis.AverageGuestsPerEvent)
	}
	if kpis.MaxGuestsAtSingleEvent.Count != 2 {
		t.Errorf("max guests = %d, want 2", kpis.MaxGuestsAtSingleEvent.Count)
	}
	if kpis.MaxGuestsAtSingleEvent.EventTitle == nil || *kpis.MaxGuestsAtSingleEvent.EventTitle != "Event e2" {
		t.Errorf("max event title = %v, want Event e2", kpis.MaxGuestsAtSingleEvent.EventTitle)
	}
}

func TestComputeDashboardKPIsEmpty(t *testing.T) {
	kpis := ComputeDashboardKPIs(nil, nil)

	if kpis.TotalUniqueGuests != 0 || kpis.TotalEvents != 0 || kpis.AverageGuestsPerEvent != 0 {
		t.Errorf("empty KPIs = %+v, want zeros", kpis)
	}
	if kpis.MaxGuestsAtSingleEvent.Count != 0 || kpis.MaxGuestsAtSingleEvent.EventTitle != nil {
		t.Errorf("max guests = %+v, want count 0 and nil title", kpis.MaxGuestsAtSingleEvent)
	}
}

func TestComputeDashboardKPIsMaxTiesFirstWins(t *testing.T) {
	events := []models.Event{
		testEvent("e2", "2024-02-01"),
		testEvent("e1", "2024-01-01"),
	}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e2", "b@x.com"),
	}

	kpis := ComputeDashboardKPIs(events, guests)

	// Ties resolve to the first event in the original array order, not date order.
	if kpis.MaxGuestsAtSingleEvent.EventTitle == nil || *kpis.MaxGuestsAtSingleEvent.EventTitle != "Event e2" {
		t.Errorf("max event title = %v, want Event e2", kpis.MaxGuestsAtSingleEvent.EventTitle)
	}
}

func TestComputeEventKPIs(t *testing.T) {
	events, guests := twoEventScenario()

	kpis, err := ComputeEventKPIs(events[1], events, guests)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if kpis.TotalGuests != 2 {
		t.Errorf("total guests = %d, want 2", kpis.TotalGuests)
	}
	if kpis.UniqueGuests != 2 {
		t.Errorf("unique guests = %d, want 2", kpis.UniqueGuests)
	}
	if kpis.ReturningGuests != 1 {
		t.Errorf("returning guests = %d, want 1", kpis.ReturningGuests)
	}
	if kpis.ReturningPercentage != 50 {
		t.Errorf("returning percentage = %d, want 50", kpis.ReturningPercentage)
	}
}

func TestComputeEventKPIsEarliestEventHasNoReturning(t *testing.T) {
	events := []models.Event{
		testEvent("e1", "2024-01-01"),
		testEvent("e2", "2024-02-01"),
		testEvent("e3", "2024-03-01"),
	}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e2", "a@x.com"),
		emailGuest("e3", "a@x.com"),
	}

	kpis, err := ComputeEventKPIs(events[0], events, guests)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.ReturningGuests != 0 {
		t.Errorf("returning guests at earliest event = %d, want 0", kpis.ReturningGuests)
	}
	if kpis.ReturningPercentage != 0 {
		t.Errorf("returning percentage at earliest event = %d, want 0", kpis.ReturningPercentage)
	}
}

func TestComputeEventKPIsNoGuests(t *testing.T) {
	events := []models.Event{testEvent("e1", "2024-01-01")}

	kpis, err := ComputeEventKPIs(events[0], events, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.TotalGuests != 0 || kpis.UniqueGuests != 0 || kpis.ReturningPercentage != 0 {
		t.Errorf("KPIs = %+v, want zeros", kpis)
	}
}

func TestComputeEventKPIsUnknownEventFails(t *testing.T) {
	events, guests := twoEventScenario()
	stranger := testEvent("e99", "2024-05-01")

	_, err := ComputeEventKPIs(stranger, events, guests)
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
}

func TestAggregationsAreIdempotent(t *testing.T) {
	events, guests := twoEventScenario()

	first := ComputeNewVsReturning(events, guests)
	second := ComputeNewVsReturning(events, guests)
	if !reflect.DeepEqual(first, second) {
		t.Error("ComputeNewVsReturning is not idempotent")
	}

	firstTop := ComputeTopRepeatGuests(events, guests)
	secondTop := ComputeTopRepeatGuests(events, guests)
	if !reflect.DeepEqual(firstTop, secondTop) {
		t.Error("ComputeTopRepeatGuests is not idempotent")
	}

	firstKPIs := ComputeDashboardKPIs(events, guests)
	secondKPIs := ComputeDashboardKPIs(events, guests)
	if firstKPIs.TotalUniqueGuests != secondKPIs.TotalUniqueGuests ||
		firstKPIs.AverageGuestsPerEvent != secondKPIs.AverageGuestsPerEvent {
		t.Error("ComputeDashboardKPIs is not idempotent")
	}
}

func TestAggregationsDoNotMutateInputs(t *testing.T) {
	events := []models.Event{
		testEvent("e2", "2024-02-01"),
		testEvent("e1", "2024-01-01"),
	}
	guests := []models.Guest{
		emailGuest("e1", "a@x.com"),
		emailGuest("e2", "a@x.com"),
	}

	eventsBefore := make([]models.Event, len(events))
	copy(eventsBefore, events)
	guestsBefore := make([]models.Guest, len(guests))
	copy(guestsBefore, guests)

	ComputeEventGuestCounts(events, guests)
	ComputeNewVsReturning(events, guests)
	ComputeLoyaltyBuckets(events, guests)
	ComputeTopRepeatGuests(events, guests)
	ComputeDashboardKPIs(events, guests)

	if !reflect.DeepEqual(events, eventsBefore) {
		t.Error("events slice was mutated")
	}
	if !reflect.DeepEqual(guests, guestsBefore) {
		t.Error("guests slice was mutated")
	}
}
