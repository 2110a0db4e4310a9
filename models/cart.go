package models

// CartLine is one entry in a shopper's cart. Lines are identified by
// (ProductID, Size); adding the same pair again bumps Quantity instead of
// appending a duplicate.
type CartLine struct {
	ProductID   int     `json:"product_id"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"` // rupees
	DisplayName string  `json:"display_name"`
	ImageRef    string  `json:"image_ref"`
}
