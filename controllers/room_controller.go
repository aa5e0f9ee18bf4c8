package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"zatoka-backend/services"
	"zatoka-backend/utils"
)

type RoomController struct {
	Svc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Svc: svc}
}

// GetRooms handles GET /api/rooms. Optional ?from=&to= (YYYY-MM-DD) and
// ?guests= filter down to rooms available for the stay.
func (rc *RoomController) GetRooms(c *gin.Context) {
	var q services.RoomQuery

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
			return
		}
		q.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return
		}
		q.To = &t
	}
	if s := c.Query("guests"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "guests must be a positive number")
			return
		}
		q.Guests = n
	}

	rooms, err := rc.Svc.List(q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	room, err := rc.Svc.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room, err := rc.Svc.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT and PATCH /api/rooms/:id with a partial body.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	var req services.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room, err := rc.Svc.Update(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.Svc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
