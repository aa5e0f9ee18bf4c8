package models

import "time"

// Booking reserves one room for a contiguous date range. StartDate and
// EndDate are compared at day resolution everywhere; StartDate < EndDate
// strictly (a booking covers at least one night).
type Booking struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	RoomID string `json:"roomId" gorm:"column:room_id;index;type:varchar(191);not null"`

	StartDate time.Time `json:"startDate" gorm:"column:start_date;not null"`
	EndDate   time.Time `json:"endDate" gorm:"column:end_date;not null"`

	Name  string  `json:"name" gorm:"type:varchar(255);not null"`
	Phone string  `json:"phone" gorm:"type:varchar(64);not null"`
	Email *string `json:"email,omitempty" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
