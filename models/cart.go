package models

// CartItem is one entry of an in-memory cart. Menu is a snapshot taken at
// add time; the price and preparation time the order will use are frozen
// here, not read back from the catalog at placement.
type CartItem struct {
	MenuID              uint   `json:"menu_id"`
	Menu                Menu   `json:"menu"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

func (ci CartItem) Subtotal() float64 {
	return ci.Menu.Price * float64(ci.Quantity)
}
