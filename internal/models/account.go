package models

// Account is a shop owner identity record, created once per owner after
// OTP verification.
type Account struct {
	BaseModel
	Phone    string `gorm:"uniqueIndex" json:"phone"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Name     string `json:"name"`
	ShopName string `json:"shopName"`
	Place    string `json:"place"`
}
