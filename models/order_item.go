package models

// OrderItem is one line of a placed order. Name, price and preparation time
// are copied from the menu at cart-add time, so later menu edits never
// change what was ordered or what it cost.
type OrderItem struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	OrderID             uint    `gorm:"not null;index" json:"order_id"`
	MenuID              uint    `gorm:"not null" json:"menu_id"`
	MenuName            string  `gorm:"type:varchar(255);not null" json:"menu_name"`
	Price               float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity            int     `gorm:"not null" json:"quantity"`
	PreparationTime     int     `gorm:"not null;default:0" json:"preparation_time"`
	SpecialInstructions string  `gorm:"type:text" json:"special_instructions"`
}

func (oi OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
