package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Scheme is an informational government scheme record shown on the
// schemes page. Seeded at startup, read-only afterwards.
type Scheme struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null;unique" json:"name"`
	Ministry    string    `gorm:"size:255" json:"ministry"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:50;not null;index" json:"category"`

	Benefit     *string        `gorm:"type:text" json:"benefit"`
	Eligibility *string        `gorm:"type:text" json:"eligibility"`
	KeyStats    datatypes.JSON `json:"key_stats"`

	LastUpdated *string `gorm:"size:20" json:"last_updated"`
	SourceRef   *string `gorm:"size:100" json:"source_ref"`

	CreatedAt time.Time `json:"created_at"`
}
