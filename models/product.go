package models

// Product represents a catalog entry as rendered on listing and detail pages
type Product struct {
	ID            int      `bson:"product_id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Brand         string   `bson:"brand,omitempty" json:"brand,omitempty"`
	Category      string   `bson:"category" json:"category"`
	Description   string   `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64  `bson:"price" json:"price"`                                         // selling price in rupees
	OriginalPrice float64  `bson:"original_price,omitempty" json:"original_price,omitempty"` // list price before discount
	Sizes         []string `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Images        []string `bson:"image_paths" json:"image_paths"`
}

// GarmentImage returns the image used as try-on input, or "" when the
// product carries no imagery.
func (p *Product) GarmentImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
