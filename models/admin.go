package models

import "time"

// Admin is a back-office account. Password is a bcrypt hash; Token is the
// opaque session token issued on login (empty when logged out).
type Admin struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	FullName string `json:"fullName" gorm:"column:full_name;type:varchar(255)"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(191);not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"`
	Token    string `json:"-" gorm:"index;type:varchar(128)"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
