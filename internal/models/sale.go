package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is an immutable record of a finalized, paid order.
type Sale struct {
	BaseModel
	Phone             string     `gorm:"index" json:"phone"`
	CustomerName      string     `json:"name"`
	OrderDate         string     `json:"date"`
	OwnerPhone        string     `gorm:"index" json:"ownerPhone"`
	TotalPrice        float64    `json:"totalPrice"`
	PaymentDate       string     `json:"paymentDate"`
	PaidAt            time.Time  `gorm:"index" json:"paidAt"`
	RazorpayPaymentID string     `json:"razorpayPaymentId,omitempty"`
	Items             []SaleItem `gorm:"constraint:OnDelete:CASCADE" json:"products"`
}

// SaleItem is a price-only snapshot of an order item at finalization
// time; the picking checkmark is not carried over.
type SaleItem struct {
	BaseModel
	SaleID   uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Position int       `json:"-"`
	Brand    string    `json:"brand"`
	Name     string    `json:"name"`
	Size     string    `json:"size"`
	Price    float64   `json:"price"`
	Floor    string    `json:"floor"`
}
