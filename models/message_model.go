package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users. GroupID is reserved for
// group threads; exactly one of RecipientID and GroupID is meaningful.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID *uuid.UUID `gorm:"type:uuid;index" json:"recipient_id,omitempty"`
	GroupID     *uuid.UUID `gorm:"type:uuid" json:"group_id,omitempty"`
	Timestamp   time.Time  `gorm:"not null;index" json:"timestamp"`
	Read        bool       `gorm:"not null;default:false" json:"read"`
}

// Counterparty returns the other participant of a direct message from the
// viewer's side. ok is false when the row has no usable counterparty (a
// group or malformed message); callers skip such rows.
func (m *Message) Counterparty(viewer uuid.UUID) (uuid.UUID, bool) {
	if m.SenderID == viewer {
		if m.RecipientID == nil {
			return uuid.Nil, false
		}
		return *m.RecipientID, true
	}
	if m.RecipientID != nil && *m.RecipientID == viewer {
		return m.SenderID, true
	}
	return uuid.Nil, false
}
