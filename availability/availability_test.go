package availability

import (
	"testing"
	"time"

	"zatoka-backend/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestBlockedDates_CoversBookingInclusive(t *testing.T) {
	today := day(2024, 8, 1)
	bookings := []models.Booking{
		{ID: "b1", RoomID: "standard", StartDate: day(2024, 8, 10), EndDate: day(2024, 8, 15)},
	}
	e := New(bookings, "", today)

	for d := day(2024, 8, 10); !d.After(day(2024, 8, 15)); d = d.AddDate(0, 0, 1) {
		if !e.IsDateBlocked(d) {
			t.Errorf("expected %s blocked", d.Format("2006-01-02"))
		}
	}
	if e.IsDateBlocked(day(2024, 8, 16)) {
		t.Error("day after checkout should not be blocked")
	}
	if got := len(e.BlockedDates()); got != 6 {
		t.Errorf("expected 6 blocked dates, got %d", got)
	}
}

func TestExcludeBookingID(t *testing.T) {
	today := day(2024, 8, 1)
	bookings := []models.Booking{
		{ID: "b1", RoomID: "standard", StartDate: day(2024, 8, 10), EndDate: day(2024, 8, 15)},
	}
	e := New(bookings, "b1", today)

	if e.IsDateBlocked(day(2024, 8, 12)) {
		t.Error("excluded booking must not block its own days")
	}
	// Editing b1 back to its own unchanged range is allowed.
	if !e.IsRangeValid(ptr(day(2024, 8, 10)), ptr(day(2024, 8, 15))) {
		t.Error("self-excluded range should be valid")
	}
}

func TestPastBookingsDoNotBlock(t *testing.T) {
	today := day(2024, 8, 1)
	bookings := []models.Booking{
		{ID: "old", RoomID: "standard", StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 31)},
	}
	e := New(bookings, "", today)

	if got := len(e.BlockedDates()); got != 0 {
		t.Fatalf("past booking contributed %d blocked dates", got)
	}
	// Re-booking the same historical dates starting today is fine.
	if !e.IsRangeValid(ptr(day(2024, 8, 1)), ptr(day(2024, 8, 3))) {
		t.Error("future range should be valid when only past bookings exist")
	}
}

func TestEmptyBookings(t *testing.T) {
	e := New(nil, "", day(2024, 8, 1))

	if !e.IsRangeValid(ptr(day(2024, 8, 5)), ptr(day(2024, 8, 5))) {
		t.Error("single-day range should be valid with no bookings")
	}
	if !e.IsRangeValid(ptr(day(2024, 8, 5)), ptr(day(2024, 9, 5))) {
		t.Error("multi-day range should be valid with no bookings")
	}
}

func TestPastDatesAlwaysBlocked(t *testing.T) {
	e := New(nil, "", day(2024, 8, 1))

	if !e.IsDateBlocked(day(2024, 7, 31)) {
		t.Error("yesterday should be blocked")
	}
	if e.IsDateBlocked(day(2024, 8, 1)) {
		t.Error("today should not be blocked")
	}
	if e.IsRangeValid(ptr(day(2024, 7, 30)), ptr(day(2024, 8, 2))) {
		t.Error("range reaching into the past should be invalid")
	}
}

func TestPartialRangeHasNoVerdict(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", StartDate: day(2024, 8, 10), EndDate: day(2024, 8, 15)},
	}
	e := New(bookings, "", day(2024, 8, 1))

	if !e.IsRangeValid(ptr(day(2024, 8, 12)), nil) {
		t.Error("range with only from must not be rejected")
	}
	if !e.IsRangeValid(nil, ptr(day(2024, 8, 12))) {
		t.Error("range with only to must not be rejected")
	}
	if !e.IsRangeValid(nil, nil) {
		t.Error("empty range must not be rejected")
	}
}

func TestRangeAgainstExistingBooking(t *testing.T) {
	today := day(2024, 8, 1)
	bookings := []models.Booking{
		{ID: "b1", RoomID: "standard", StartDate: day(2024, 8, 10), EndDate: day(2024, 8, 15)},
	}
	e := New(bookings, "", today)

	cases := []struct {
		name     string
		from, to time.Time
		want     bool
	}{
		{"inside existing stay", day(2024, 8, 12), day(2024, 8, 13), false},
		{"after existing stay", day(2024, 8, 16), day(2024, 8, 20), true},
		{"straddles start", day(2024, 8, 8), day(2024, 8, 11), false},
		{"starts on checkout day", day(2024, 8, 15), day(2024, 8, 18), false},
		{"ends day before checkin", day(2024, 8, 5), day(2024, 8, 9), true},
	}
	for _, tc := range cases {
		if got := e.IsRangeValid(ptr(tc.from), ptr(tc.to)); got != tc.want {
			t.Errorf("%s: IsRangeValid = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCustomPredicate(t *testing.T) {
	e := New(nil, "", day(2024, 8, 1))
	maintenance := day(2024, 8, 20)
	e.Custom = func(d time.Time) bool { return d.Equal(maintenance) }

	if !e.IsDateBlocked(maintenance) {
		t.Error("custom predicate should block the flagged day")
	}
	if e.IsRangeValid(ptr(day(2024, 8, 19)), ptr(day(2024, 8, 21))) {
		t.Error("range crossing a custom-blocked day should be invalid")
	}
}

func TestStartOfDayNormalizesTimeOfDay(t *testing.T) {
	today := day(2024, 8, 1)
	bookings := []models.Booking{
		{ID: "b1", StartDate: time.Date(2024, 8, 10, 14, 30, 0, 0, time.UTC), EndDate: time.Date(2024, 8, 12, 11, 0, 0, 0, time.UTC)},
	}
	e := New(bookings, "", today)

	if !e.IsDateBlocked(time.Date(2024, 8, 10, 23, 59, 0, 0, time.UTC)) {
		t.Error("time-of-day must not affect blocking")
	}
	if got := len(e.BlockedDates()); got != 3 {
		t.Errorf("expected 3 blocked dates, got %d", got)
	}
}

func TestForRoom(t *testing.T) {
	bookings := []models.Booking{
		{ID: "a", RoomID: "standard"},
		{ID: "b", RoomID: "deluxe"},
		{ID: "c", RoomID: "standard"},
	}
	got := ForRoom(bookings, "standard")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint", day(2024, 8, 1), day(2024, 8, 5), day(2024, 8, 10), day(2024, 8, 12), false},
		{"contained", day(2024, 8, 1), day(2024, 8, 10), day(2024, 8, 3), day(2024, 8, 5), true},
		{"back to back", day(2024, 8, 1), day(2024, 8, 5), day(2024, 8, 5), day(2024, 8, 8), false},
		{"one day shared", day(2024, 8, 1), day(2024, 8, 6), day(2024, 8, 5), day(2024, 8, 8), true},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}
