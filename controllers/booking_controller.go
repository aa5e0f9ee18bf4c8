package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zatoka-backend/availability"
	"zatoka-backend/services"
	"zatoka-backend/utils"
)

type BookingController struct {
	Svc   *services.BookingService
	Rooms *services.RoomService
}

func NewBookingController(svc *services.BookingService, rooms *services.RoomService) *BookingController {
	return &BookingController{Svc: svc, Rooms: rooms}
}

// respondServiceError maps service errors onto the HTTP error taxonomy:
// validation 400, unknown id 404, date conflict 409, anything else 500 with
// the detail kept out of the response.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}

// GetBookings handles GET /api/bookings. An optional ?roomId= narrows the
// list to one room, which is what the booking page loads for the picker.
func (bc *BookingController) GetBookings(c *gin.Context) {
	if roomID := c.Query("roomId"); roomID != "" {
		bookings, err := bc.Svc.ListByRoom(roomID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := bc.Svc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (bc *BookingController) GetBooking(c *gin.Context) {
	booking, err := bc.Svc.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateBooking handles POST /api/bookings.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := bc.Svc.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// UpdateBooking handles PUT /api/bookings/:id with a partial body.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := bc.Svc.Update(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	if err := bc.Svc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetRoomAvailability handles GET /api/rooms/:id/availability. It returns the
// blocked day set the date picker renders plus the raw bookings, computed with
// the same Evaluator the create/update path re-checks with. An optional
// ?excludeBookingId= supports edit flows.
func (bc *BookingController) GetRoomAvailability(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := bc.Rooms.GetByID(roomID); err != nil {
		respondServiceError(c, err)
		return
	}

	bookings, err := bc.Svc.ListByRoom(roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	eval := availability.New(bookings, c.Query("excludeBookingId"), time.Now())
	blocked := eval.BlockedDates()
	dates := make([]string, 0, len(blocked))
	for _, d := range blocked {
		dates = append(dates, d.Format("2006-01-02"))
	}

	c.JSON(http.StatusOK, gin.H{
		"roomId":       roomID,
		"blockedDates": dates,
		"bookings":     bookings,
	})
}
