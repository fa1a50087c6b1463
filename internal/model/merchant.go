package model

// Merchant represents the merchant row stored in the database. The schema is
// deliberately minimal: the table predates this service and is shared with
// other consumers, so no columns are added here. Client-side attributes
// (favorite, category, status) live in the overlay store instead.
type Merchant struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	MerchantName string `json:"merchant_name" gorm:"type:varchar(255);not null"`
	Country      string `json:"country" gorm:"type:varchar(100);not null"`
}

// TableName overrides the GORM default to match the existing table.
func (Merchant) TableName() string {
	return "merchants"
}
