package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TrackRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ShgID       uuid.UUID `gorm:"type:uuid;not null;index" json:"shg_id"`
	ProjectName string    `gorm:"size:255;not null" json:"project_name"`
	Description *string   `gorm:"type:text" json:"description"`

	FundsRaised float64 `gorm:"type:numeric(12,2);default:0" json:"funds_raised"`
	FundsSpent  float64 `gorm:"type:numeric(12,2);default:0" json:"funds_spent"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	ImpactMetrics datatypes.JSON `json:"impact_metrics"`
	Testimonials  datatypes.JSON `json:"testimonials"`

	Shg SHG `gorm:"foreignkey:ShgID" json:"shg,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
