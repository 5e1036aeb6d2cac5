package models

import (
	"time"

	"github.com/google/uuid"
)

type SHGMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ShgID    uuid.UUID `gorm:"type:uuid;not null;index" json:"shg_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RoleInShg string   `gorm:"size:50;not null;default:'member'" json:"role_in_shg"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	Shg  SHG  `gorm:"foreignkey:ShgID" json:"shg,omitempty"`
	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`
}
