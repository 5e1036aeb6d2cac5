package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Amount         float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency       string    `gorm:"size:3;not null;default:'INR'" json:"currency"`
	SenderShgID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_shg_id"`
	RecipientShgID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_shg_id"`
	Purpose        *string   `gorm:"type:text" json:"purpose"`

	Status        string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentMethod string  `gorm:"size:30;not null" json:"payment_method"`
	Reference     string  `gorm:"size:20;unique" json:"reference"`

	// Provider-side identifiers: the checkout session created for the
	// transfer and, once paid, the payment intent id.
	CheckoutSessionID *string `gorm:"size:255;index" json:"checkout_session_id,omitempty"`
	TransactionID     *string `gorm:"size:255" json:"transaction_id,omitempty"`

	InitiatedBy uuid.UUID `gorm:"type:uuid;not null" json:"initiated_by"`

	SenderShg    SHG `gorm:"foreignkey:SenderShgID" json:"sender_shg,omitempty"`
	RecipientShg SHG `gorm:"foreignkey:RecipientShgID" json:"recipient_shg,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
