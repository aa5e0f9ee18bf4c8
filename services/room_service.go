package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"zatoka-backend/availability"
	"zatoka-backend/models"
	"zatoka-backend/utils"
)

// AmenityList accepts either a JSON array of labels or a single
// comma-separated string, which is what the admin form can send.
type AmenityList []string

func (a *AmenityList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*a = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*a = out
		return nil
	}
	return errors.New("amenities must be an array or a comma-separated string")
}

type CreateRoomRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       *float64    `json:"price"`
	Capacity    *int        `json:"capacity"`
	Amenities   AmenityList `json:"amenities"`
	ImageURL    string      `json:"imageUrl"`
	Images      []string    `json:"images"`
	ImageHint   string      `json:"imageHint"`
}

type UpdateRoomRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price"`
	Capacity    *int         `json:"capacity"`
	Amenities   *AmenityList `json:"amenities"`
	ImageURL    *string      `json:"imageUrl"`
	Images      *[]string    `json:"images"`
	ImageHint   *string      `json:"imageHint"`
}

// RoomQuery filters the room list. With From and To set, rooms whose bookings
// overlap the half-open [From, To) window are dropped, so back-to-back
// checkout/checkin still shows the room as bookable.
type RoomQuery struct {
	From   *time.Time
	To     *time.Time
	Guests int
}

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) List(q RoomQuery) ([]models.Room, error) {
	var rooms []models.Room
	tx := s.DB.Order("created_at DESC")
	if q.Guests > 0 {
		tx = tx.Where("capacity >= ?", q.Guests)
	}
	if err := tx.Find(&rooms).Error; err != nil {
		return nil, err
	}
	if q.From == nil || q.To == nil {
		return rooms, nil
	}

	from := availability.StartOfDay(*q.From)
	to := availability.StartOfDay(*q.To)
	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		var bookings []models.Booking
		if err := s.DB.Where("room_id = ?", room.ID).Find(&bookings).Error; err != nil {
			return nil, err
		}
		free := true
		for _, b := range bookings {
			if availability.Overlaps(from, to, availability.StartOfDay(b.StartDate), availability.StartOfDay(b.EndDate)) {
				free = false
				break
			}
		}
		if free {
			out = append(out, room)
		}
	}
	return out, nil
}

func (s *RoomService) GetByID(id string) (models.Room, error) {
	var room models.Room
	err := s.DB.First(&room, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Room{}, ErrNotFound
	}
	return room, err
}

func (s *RoomService) Create(req CreateRoomRequest) (models.Room, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Description == "" || req.Price == nil || req.Capacity == nil {
		return models.Room{}, invalid("required fields: name, description, price, capacity")
	}
	if *req.Price < 0 {
		return models.Room{}, invalid("price cannot be negative")
	}
	if *req.Capacity < 1 {
		return models.Room{}, invalid("capacity must be at least 1")
	}

	id, err := s.uniqueSlug(req.Name)
	if err != nil {
		return models.Room{}, err
	}

	room := models.Room{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Capacity:    *req.Capacity,
		Amenities:   mustJSON([]string(req.Amenities)),
		ImageURL:    req.ImageURL,
		ImageHint:   req.ImageHint,
	}
	if len(req.Images) > 0 {
		room.Images = mustJSON(req.Images)
	}

	if err := s.DB.Create(&room).Error; err != nil {
		var mysqlErr *mysqldrv.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.Room{}, invalid("room %q already exists", room.ID)
		}
		return models.Room{}, err
	}
	return room, nil
}

func (s *RoomService) Update(id string, req UpdateRoomRequest) (models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return models.Room{}, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return models.Room{}, invalid("name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return models.Room{}, invalid("price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return models.Room{}, invalid("capacity must be at least 1")
		}
		updates["capacity"] = *req.Capacity
	}
	if req.Amenities != nil {
		updates["amenities"] = mustJSON([]string(*req.Amenities))
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Images != nil {
		updates["images"] = mustJSON(*req.Images)
	}
	if req.ImageHint != nil {
		updates["image_hint"] = *req.ImageHint
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
			return models.Room{}, err
		}
	}
	return s.GetByID(id)
}

// Delete removes the room and every booking referencing it, in one
// transaction. The FK cascade covers databases that enforce it; the explicit
// delete keeps behavior identical when it is absent.
func (s *RoomService) Delete(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Booking{}, "room_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Room{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// uniqueSlug derives the room id from its name, suffixing on collision:
// "deluxe-suite", "deluxe-suite-2", ...
func (s *RoomService) uniqueSlug(name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		return "", invalid("name must contain at least one letter or digit")
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.DB.Model(&models.Room{}).Where("id = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		// string slices cannot fail to marshal
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
