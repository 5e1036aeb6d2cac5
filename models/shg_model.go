package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SHG struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	LeaderName  string    `gorm:"size:255;not null" json:"leader_name"`

	Village string  `gorm:"size:255;not null" json:"village"`
	State   string  `gorm:"size:100;not null" json:"state"`
	PinCode *string `gorm:"size:10" json:"pin_code"`

	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	ContactEmail  *string `gorm:"size:255" json:"contact_email"`
	ContactPhone  *string `gorm:"size:20" json:"contact_phone"`
	FormationDate *string `gorm:"size:10" json:"formation_date"`

	FocusAreas  datatypes.JSON `json:"focus_areas"`
	MemberCount int            `gorm:"default:1" json:"member_count"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NearbySHG is an SHG row annotated with the computed distance from the
// caller's coordinates. Scanned from the proximity query, never migrated.
type NearbySHG struct {
	SHG
	DistanceKm float64 `json:"distance_km"`
}

func (NearbySHG) TableName() string {
	return "shgs"
}
