package services

import (
	"errors"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zatoka-backend/availability"
	"zatoka-backend/models"
	"zatoka-backend/utils"
)

// emailRx is deliberately loose: local@domain.tld shaped, nothing more.
var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// bookingDateLayouts are accepted for request dates, tried in order.
var bookingDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseBookingDate parses an ISO 8601 date or datetime string.
func ParseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid("invalid date format: %q", s)
}

// CreateBookingRequest is the POST /api/bookings body.
type CreateBookingRequest struct {
	RoomID    string `json:"roomId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// UpdateBookingRequest is the PUT /api/bookings/:id body. Nil means the field
// was omitted and keeps its previous value; an explicitly empty email clears
// it. The distinction matters, hence pointers instead of zero values.
type UpdateBookingRequest struct {
	RoomID    *string `json:"roomId"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// roomLocks hands out one mutex per room id so concurrent booking writes for
// the same room serialize their check-then-write. This only narrows the race
// within one process; a second server instance can still double-book, which
// would take a database-level exclusion constraint to close.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *roomLocks) get(roomID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	return m
}

// BookingService is the gatekeeper for all booking reads and mutations.
type BookingService struct {
	DB *gorm.DB

	// RequireEmail makes email a required create field. Earlier deployments
	// required it, later ones relaxed it, so it is configuration.
	RequireEmail bool

	// Now is the clock used for the availability "today"; tests pin it.
	Now func() time.Time

	locks roomLocks
}

func NewBookingService(db *gorm.DB, requireEmail bool) *BookingService {
	return &BookingService{DB: db, RequireEmail: requireEmail, Now: time.Now}
}

func (s *BookingService) List() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListByRoom(roomID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Where("room_id = ?", roomID).Order("start_date ASC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByID(id string) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Booking{}, ErrNotFound
	}
	return booking, err
}

// newBookingFromRequest applies every structural rule for create: required
// fields, parseable dates, email shape, strict start < end at day resolution.
// It touches no storage, so it is tested directly.
func newBookingFromRequest(req CreateBookingRequest, requireEmail bool) (models.Booking, error) {
	req.RoomID = strings.TrimSpace(req.RoomID)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)

	if req.RoomID == "" || req.StartDate == "" || req.EndDate == "" || req.Name == "" || req.Phone == "" {
		return models.Booking{}, invalid("required fields: roomId, startDate, endDate, name, phone")
	}
	if requireEmail && req.Email == "" {
		return models.Booking{}, invalid("email is required")
	}

	var email *string
	if req.Email != "" {
		if !emailRx.MatchString(req.Email) {
			return models.Booking{}, invalid("invalid email format")
		}
		email = &req.Email
	}

	start, err := ParseBookingDate(req.StartDate)
	if err != nil {
		return models.Booking{}, err
	}
	end, err := ParseBookingDate(req.EndDate)
	if err != nil {
		return models.Booking{}, err
	}

	startDay := availability.StartOfDay(start)
	endDay := availability.StartOfDay(end)
	if !startDay.Before(endDay) {
		return models.Booking{}, invalid("check-out date must be after check-in date")
	}

	return models.Booking{
		RoomID:    req.RoomID,
		StartDate: startDay,
		EndDate:   endDay,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     email,
	}, nil
}

// applyBookingPatch merges an update request into an existing booking and
// re-validates whatever the merge produced. Pure, like newBookingFromRequest.
func applyBookingPatch(existing models.Booking, req UpdateBookingRequest) (models.Booking, error) {
	out := existing

	if req.RoomID != nil {
		roomID := strings.TrimSpace(*req.RoomID)
		if roomID == "" {
			return models.Booking{}, invalid("roomId cannot be empty")
		}
		out.RoomID = roomID
	}
	if req.StartDate != nil {
		start, err := ParseBookingDate(*req.StartDate)
		if err != nil {
			return models.Booking{}, invalid("invalid check-in date format")
		}
		out.StartDate = availability.StartOfDay(start)
	}
	if req.EndDate != nil {
		end, err := ParseBookingDate(*req.EndDate)
		if err != nil {
			return models.Booking{}, invalid("invalid check-out date format")
		}
		out.EndDate = availability.StartOfDay(end)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return models.Booking{}, invalid("name cannot be empty")
		}
		out.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return models.Booking{}, invalid("phone cannot be empty")
		}
		out.Phone = phone
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			out.Email = nil
		} else {
			if !emailRx.MatchString(email) {
				return models.Booking{}, invalid("invalid email format")
			}
			out.Email = &email
		}
	}

	startDay := availability.StartOfDay(out.StartDate)
	endDay := availability.StartOfDay(out.EndDate)
	if !startDay.Before(endDay) {
		return models.Booking{}, invalid("check-out date must be after check-in date")
	}

	return out, nil
}

// Create validates the request, re-checks room availability under the room's
// write lock, and persists. The availability re-check is the same Evaluator
// the calendar endpoint uses, so a stale client cannot sneak a conflicting
// range past the server.
func (s *BookingService) Create(req CreateBookingRequest) (models.Booking, error) {
	booking, err := newBookingFromRequest(req, s.RequireEmail)
	if err != nil {
		return models.Booking{}, err
	}

	var room models.Room
	if err := s.DB.First(&room, "id = ?", booking.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrNotFound
		}
		return models.Booking{}, err
	}

	lock := s.locks.get(booking.RoomID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkAvailability(booking.RoomID, "", booking.StartDate, booking.EndDate); err != nil {
		return models.Booking{}, err
	}

	booking.ID = uuid.NewString()
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, err
	}

	s.sendConfirmation(booking, room)
	return booking, nil
}

// Update merges a partial patch, re-validates ordering, and re-checks
// availability against all other bookings for the effective room (the booking
// never conflicts with itself).
func (s *BookingService) Update(id string, req UpdateBookingRequest) (models.Booking, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}

	booking, err := applyBookingPatch(existing, req)
	if err != nil {
		return models.Booking{}, err
	}

	if booking.RoomID != existing.RoomID {
		var room models.Room
		if err := s.DB.First(&room, "id = ?", booking.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Booking{}, ErrNotFound
			}
			return models.Booking{}, err
		}
	}

	lock := s.locks.get(booking.RoomID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkAvailability(booking.RoomID, booking.ID, booking.StartDate, booking.EndDate); err != nil {
		return models.Booking{}, err
	}

	if err := s.DB.Save(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *BookingService) Delete(id string) error {
	result := s.DB.Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BookingService) checkAvailability(roomID, excludeID string, start, end time.Time) error {
	existing, err := s.ListByRoom(roomID)
	if err != nil {
		return err
	}
	eval := availability.New(existing, excludeID, s.Now())
	if !eval.IsRangeValid(&start, &end) {
		return ErrConflict
	}
	return nil
}

// sendConfirmation emails the guest, best effort. Booking creation never
// fails because of SMTP.
func (s *BookingService) sendConfirmation(booking models.Booking, room models.Room) {
	if booking.Email == nil {
		return
	}
	err := utils.SendBookingConfirmationEmail(
		*booking.Email,
		booking.ID,
		room.Name,
		booking.Name,
		booking.StartDate.Format("2006-01-02"),
		booking.EndDate.Format("2006-01-02"),
	)
	if err != nil {
		log.Printf("warning: confirmation email to %s failed: %v", utils.MaskEmail(*booking.Email), err)
	}
}
