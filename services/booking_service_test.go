package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"zatoka-backend/models"
)

func strPtr(s string) *string { return &s }

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseBookingDate(t *testing.T) {
	cases := []struct {
		in      string
		wantDay string
		wantErr bool
	}{
		{"2024-08-20", "2024-08-20", false},
		{"2024-08-20T00:00:00Z", "2024-08-20", false},
		{"2024-08-20T15:04:05.123Z", "2024-08-20", false},
		{" 2024-08-20 ", "2024-08-20", false},
		{"20.08.2024", "", true},
		{"not-a-date", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseBookingDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseBookingDate(%q): expected error", tc.in)
			} else {
				assertValidationError(t, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBookingDate(%q): %v", tc.in, err)
			continue
		}
		if got.Format("2006-01-02") != tc.wantDay {
			t.Errorf("ParseBookingDate(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.wantDay)
		}
	}
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		RoomID:    "standard",
		StartDate: "2024-08-10",
		EndDate:   "2024-08-15",
		Name:      "Ivan Ivanov",
		Phone:     "+380501234567",
		Email:     "ivan@example.com",
	}
}

func TestNewBookingFromRequest_Valid(t *testing.T) {
	booking, err := newBookingFromRequest(validCreateRequest(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.RoomID != "standard" || booking.Name != "Ivan Ivanov" {
		t.Errorf("unexpected booking: %+v", booking)
	}
	if booking.Email == nil || *booking.Email != "ivan@example.com" {
		t.Errorf("email not carried over: %v", booking.Email)
	}
	if booking.StartDate.Format("2006-01-02") != "2024-08-10" {
		t.Errorf("start date not day-truncated: %s", booking.StartDate)
	}
	if !booking.StartDate.Before(booking.EndDate) {
		t.Error("start must precede end")
	}
}

func TestNewBookingFromRequest_MissingFields(t *testing.T) {
	for _, mutate := range []func(*CreateBookingRequest){
		func(r *CreateBookingRequest) { r.RoomID = "" },
		func(r *CreateBookingRequest) { r.StartDate = "" },
		func(r *CreateBookingRequest) { r.EndDate = "" },
		func(r *CreateBookingRequest) { r.Name = "  " },
		func(r *CreateBookingRequest) { r.Phone = "" },
	} {
		req := validCreateRequest()
		mutate(&req)
		if _, err := newBookingFromRequest(req, false); err == nil {
			t.Errorf("expected validation error for %+v", req)
		}
	}
}

func TestNewBookingFromRequest_EmailOptionality(t *testing.T) {
	req := validCreateRequest()
	req.Email = ""

	// Relaxed mode: email may be absent.
	booking, err := newBookingFromRequest(req, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Email != nil {
		t.Error("absent email should stay nil")
	}

	// Strict mode: email is required.
	if _, err := newBookingFromRequest(req, true); err == nil {
		t.Error("expected error when email required but absent")
	}

	req.Email = "not-an-email"
	if _, err := newBookingFromRequest(req, false); err == nil {
		t.Error("expected error for malformed email")
	}
}

func TestNewBookingFromRequest_RejectsInvertedOrEmptyRange(t *testing.T) {
	req := validCreateRequest()
	req.StartDate = "2024-08-20"
	req.EndDate = "2024-08-18"
	_, err := newBookingFromRequest(req, false)
	if err == nil {
		t.Fatal("checkout before checkin must be rejected")
	}
	assertValidationError(t, err)

	// Equal days mean zero nights, also rejected.
	req.EndDate = "2024-08-20"
	if _, err := newBookingFromRequest(req, false); err == nil {
		t.Fatal("checkout equal to checkin must be rejected")
	}

	// Same calendar day with different times is still zero nights.
	req.StartDate = "2024-08-20T08:00:00Z"
	req.EndDate = "2024-08-20T20:00:00Z"
	if _, err := newBookingFromRequest(req, false); err == nil {
		t.Fatal("day-level comparison must ignore time of day")
	}
}

func existingBooking() models.Booking {
	email := "ivan@example.com"
	return models.Booking{
		ID:        "b1",
		RoomID:    "standard",
		StartDate: time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		Name:      "Ivan Ivanov",
		Phone:     "+380501234567",
		Email:     &email,
	}
}

func TestApplyBookingPatch_OmittedFieldsKeepValues(t *testing.T) {
	got, err := applyBookingPatch(existingBooking(), UpdateBookingRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := existingBooking()
	if got.RoomID != want.RoomID || got.Name != want.Name || got.Phone != want.Phone {
		t.Errorf("omitted fields changed: %+v", got)
	}
	if got.Email == nil || *got.Email != *want.Email {
		t.Error("omitted email must keep its value")
	}
}

func TestApplyBookingPatch_ClearsEmailExplicitly(t *testing.T) {
	got, err := applyBookingPatch(existingBooking(), UpdateBookingRequest{Email: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != nil {
		t.Error("empty email in patch must clear the field")
	}
}

func TestApplyBookingPatch_DateMergeRevalidatesOrder(t *testing.T) {
	// Moving only the end date before the existing start must fail.
	_, err := applyBookingPatch(existingBooking(), UpdateBookingRequest{EndDate: strPtr("2024-08-09")})
	if err == nil {
		t.Fatal("expected order violation after merge")
	}
	assertValidationError(t, err)

	// Collapsing end onto start must fail too.
	if _, err := applyBookingPatch(existingBooking(), UpdateBookingRequest{EndDate: strPtr("2024-08-10")}); err == nil {
		t.Fatal("end equal to start must be rejected")
	}

	// Moving both dates together is fine.
	got, err := applyBookingPatch(existingBooking(), UpdateBookingRequest{
		StartDate: strPtr("2024-09-01"),
		EndDate:   strPtr("2024-09-05"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StartDate.Format("2006-01-02") != "2024-09-01" || got.EndDate.Format("2006-01-02") != "2024-09-05" {
		t.Errorf("dates not applied: %+v", got)
	}
}

func TestApplyBookingPatch_BadDateFormats(t *testing.T) {
	if _, err := applyBookingPatch(existingBooking(), UpdateBookingRequest{StartDate: strPtr("08/10/2024")}); err == nil {
		t.Error("expected error for bad start date")
	}
	if _, err := applyBookingPatch(existingBooking(), UpdateBookingRequest{Email: strPtr("nope")}); err == nil {
		t.Error("expected error for bad email")
	}
}

func TestRoomLocks_SameRoomSameMutex(t *testing.T) {
	var l roomLocks
	if l.get("standard") != l.get("standard") {
		t.Error("same room must map to the same mutex")
	}
	if l.get("standard") == l.get("deluxe") {
		t.Error("different rooms must not share a mutex")
	}
}

func TestRoomLocks_ConcurrentGet(t *testing.T) {
	var l roomLocks
	var wg sync.WaitGroup
	locks := make([]*sync.Mutex, 50)
	for i := range locks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			locks[i] = l.get("standard")
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(locks); i++ {
		if locks[i] != locks[0] {
			t.Fatal("concurrent get returned distinct mutexes for one room")
		}
	}
}
