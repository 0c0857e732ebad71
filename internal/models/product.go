package models

// PriceSurcharge is the fixed markup added to an owner-entered price to
// produce the displayed price.
const PriceSurcharge = 10

// Product is a catalog entry owned by a shop owner phone. The displayed
// price is stored with the surcharge already applied.
type Product struct {
	BaseModel
	Brand        string  `json:"brand"`
	Name         string  `json:"name"`
	Size         string  `json:"size"`
	EnteredPrice float64 `json:"enteredPrice"`
	Price        float64 `json:"price"`
	OwnerPhone   string  `gorm:"index" json:"ownerPhone"`
}
