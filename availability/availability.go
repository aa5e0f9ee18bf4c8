// Package availability decides date conflicts for a single room. It is pure:
// callers fetch the room's bookings, build an Evaluator, and ask it questions.
// The same logic backs the calendar endpoint consumed by the date picker and
// the server-side re-check before a booking write, so the two can never
// disagree.
package availability

import (
	"sort"
	"time"

	"zatoka-backend/models"
)

// StartOfDay truncates t to midnight UTC. All day-level comparisons in the
// booking flow go through this.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ForRoom filters bookings down to one room. Use it when the caller holds the
// full booking list rather than a per-room query result.
func ForRoom(bookings []models.Booking, roomID string) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.RoomID == roomID {
			out = append(out, b)
		}
	}
	return out
}

// Evaluator answers blocked-date and range-validity questions against a fixed
// snapshot of bookings and a fixed "today". Safe for concurrent use once built.
type Evaluator struct {
	// Custom, when set, additionally marks days as blocked. Mirrors the
	// date picker's caller-supplied disabled predicate.
	Custom func(time.Time) bool

	today   time.Time
	blocked map[time.Time]bool
}

// New builds an Evaluator from a room's bookings. A booking matching excludeID
// is ignored (edit flows must not conflict with themselves), and bookings that
// ended strictly before today contribute nothing.
//
// Each remaining booking's [StartDate, EndDate] day range is expanded
// inclusively, so a stay starting on another stay's checkout day counts as
// blocked. That matches the interactive calendar; keep both in sync.
func New(bookings []models.Booking, excludeID string, today time.Time) *Evaluator {
	e := &Evaluator{
		today:   StartOfDay(today),
		blocked: make(map[time.Time]bool),
	}
	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		start := StartOfDay(b.StartDate)
		end := StartOfDay(b.EndDate)
		if end.Before(e.today) {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			e.blocked[d] = true
		}
	}
	return e
}

// BlockedDates returns the sorted union of blocked days, for rendering.
func (e *Evaluator) BlockedDates() []time.Time {
	dates := make([]time.Time, 0, len(e.blocked))
	for d := range e.blocked {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// IsDateBlocked reports whether date cannot be part of a new reservation:
// it is in the past, covered by a non-excluded booking, or flagged by Custom.
func (e *Evaluator) IsDateBlocked(date time.Time) bool {
	d := StartOfDay(date)
	if d.Before(e.today) {
		return true
	}
	if e.blocked[d] {
		return true
	}
	if e.Custom != nil && e.Custom(d) {
		return true
	}
	return false
}

// IsRangeValid reports whether every day from from to to inclusive is free.
// A partially specified range (nil from or to) has no verdict yet and is not
// rejected. The Evaluator does not reorder an inverted range; ordering is the
// booking validator's rule, not this one's.
func (e *Evaluator) IsRangeValid(from, to *time.Time) bool {
	if from == nil || to == nil {
		return true
	}
	start := StartOfDay(*from)
	end := StartOfDay(*to)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if e.IsDateBlocked(d) {
			return false
		}
	}
	return true
}

// Overlaps is the half-open interval test: [start1, end1) intersects
// [start2, end2). The room search uses it to drop rooms with a clashing stay
// while still offering back-to-back checkout/checkin.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
