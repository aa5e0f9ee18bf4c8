package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room is a bookable unit. IDs are human-readable slugs derived from the
// room name ("deluxe-suite"), kept stable across renames.
type Room struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(191)"`

	Name        string  `json:"name" gorm:"type:varchar(255);not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	Capacity    int     `json:"capacity" gorm:"not null"`

	// Ordered list of free-text amenity labels, stored as a JSON column.
	Amenities datatypes.JSON `json:"amenities" gorm:"column:amenities"`

	ImageURL string `json:"imageUrl" gorm:"column:image_url;type:varchar(512)"`
	// Additional gallery image paths, JSON array of strings.
	Images    datatypes.JSON `json:"images,omitempty" gorm:"column:images"`
	ImageHint string         `json:"imageHint,omitempty" gorm:"column:image_hint;type:varchar(255)"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Deleting a room removes its bookings with it.
	Bookings []Booking `json:"-" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
