package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'member'" json:"role"`

	Phone   *string    `gorm:"size:20" json:"phone"`
	Village *string    `gorm:"size:255" json:"village"`
	State   *string    `gorm:"size:100" json:"state"`
	ShgID   *uuid.UUID `gorm:"type:uuid" json:"shg_id"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
