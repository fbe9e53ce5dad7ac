package models

// CartItem pairs a product snapshot with a quantity. A cart holds at most
// one item per product id; quantities of retained items are always >= 1.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
