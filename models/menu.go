package models

import "time"

// Menu categories are a fixed set; anything else is rejected at the API edge.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnacks    = "snacks"
	CategoryBeverages = "beverages"
)

// Categories lists all menu categories in display order.
var Categories = []string{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategorySnacks,
	CategoryBeverages,
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Menu struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL        string    `gorm:"type:varchar(255)" json:"image_url"`
	Category        string    `gorm:"type:varchar(20);not null;index" json:"category"`
	Available       bool      `gorm:"not null;default:true" json:"available"`
	PreparationTime int       `gorm:"not null;default:0" json:"preparation_time"` // minutes
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
