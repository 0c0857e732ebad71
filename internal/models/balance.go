package models

// DefaultOwnerID is the shared balance owner used when no owner phone
// is supplied, kept for single-tenant deployments.
const DefaultOwnerID = "owner"

// Balance is an owner's running total of accrued sale revenue. Records
// are created lazily at zero on first access.
type Balance struct {
	BaseModel
	OwnerPhone string  `gorm:"uniqueIndex" json:"ownerPhone"`
	Amount     float64 `json:"amount"`
}

// PendingPayment is an amount awaiting manual confirmation, matched by
// its exact timestamp string.
type PendingPayment struct {
	BaseModel
	Amount float64 `json:"amount"`
	Date   string  `gorm:"index" json:"date"`
	Paid   bool    `json:"paid"`
}
