package models

import (
	"github.com/google/uuid"
)

// Order is an in-progress customer purchase ("form") awaiting payment.
// At most one active order exists per customer phone; finalizing the
// order moves it into the sales history and deletes it.
type Order struct {
	BaseModel
	Phone             string      `gorm:"uniqueIndex" json:"phone"`
	CustomerName      string      `json:"name"`
	OrderDate         string      `json:"date"`
	OwnerPhone        string      `gorm:"index" json:"ownerPhone"`
	Paid              bool        `json:"paid"`
	PaymentDate       string      `json:"paymentDate"`
	RazorpayPaymentID string      `json:"razorpayPaymentId,omitempty"`
	Items             []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"products"`
}

// OrderItem is a single selected product inside an order. Items keep a
// durable UUID but the HTTP API addresses them by position.
type OrderItem struct {
	BaseModel
	OrderID  uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Position int       `json:"-"`
	Brand    string    `json:"brand"`
	Name     string    `json:"name"`
	Size     string    `json:"size"`
	Price    float64   `json:"price"`
	Floor    string    `json:"floor"`
	Checked  bool      `json:"checked"`
}

// Total sums the item prices of the order.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}
