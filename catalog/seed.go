package catalog

import "github.com/proteuswear/storefront-api/models"

// seedProducts is the built-in catalog used until a product database is
// wired up. Prices are in rupees.
func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:            1,
			Name:          "Knitted woolen jumper",
			Brand:         "Proteus",
			Category:      "women",
			Description:   "Chunky knit jumper in undyed merino wool with a relaxed fit and ribbed cuffs.",
			Price:         2499,
			OriginalPrice: 3299,
			Sizes:         []string{"XS", "S", "M", "L", "XL"},
			Images:        []string{"https://cdn.proteuswear.com/products/knitted-woolen-jumper.jpg"},
		},
		{
			ID:            2,
			Name:          "Linen wrap dress",
			Brand:         "Proteus",
			Category:      "women",
			Description:   "Midi wrap dress in washed linen with self-tie waist.",
			Price:         3199,
			OriginalPrice: 3999,
			Sizes:         []string{"XS", "S", "M", "L"},
			Images:        []string{"https://cdn.proteuswear.com/products/linen-wrap-dress.jpg"},
		},
		{
			ID:          3,
			Name:        "Oxford cotton shirt",
			Brand:       "Proteus",
			Category:    "men",
			Description: "Button-down oxford shirt in brushed cotton, garment dyed.",
			Price:       1899,
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Images:      []string{"https://cdn.proteuswear.com/products/oxford-cotton-shirt.jpg"},
		},
		{
			ID:            4,
			Name:          "Selvedge denim jacket",
			Brand:         "Proteus",
			Category:      "men",
			Description:   "Unwashed selvedge denim trucker jacket with copper hardware.",
			Price:         4499,
			OriginalPrice: 5299,
			Sizes:         []string{"S", "M", "L", "XL"},
			Images:        []string{"https://cdn.proteuswear.com/products/selvedge-denim-jacket.jpg"},
		},
		{
			ID:          5,
			Name:        "Corduroy overshirt",
			Brand:       "Proteus",
			Category:    "men",
			Description: "8-wale corduroy overshirt with patch pockets.",
			Price:       2799,
			Sizes:       []string{"M", "L", "XL"},
			Images:      []string{"https://cdn.proteuswear.com/products/corduroy-overshirt.jpg"},
		},
		{
			ID:          6,
			Name:        "Printed play tee",
			Brand:       "Proteus Kids",
			Category:    "kids",
			Description: "Organic cotton tee with washed-out block print.",
			Price:       799,
			Sizes:       []string{"2-3Y", "4-5Y", "6-7Y", "8-9Y"},
			Images:      []string{"https://cdn.proteuswear.com/products/printed-play-tee.jpg"},
		},
		{
			ID:            7,
			Name:          "Merino crew sweater",
			Brand:         "Proteus",
			Category:      "men",
			Description:   "Fine-gauge merino crew neck in heather grey.",
			Price:         3499,
			OriginalPrice: 4199,
			Sizes:         []string{"S", "M", "L", "XL"},
			Images:        []string{"https://cdn.proteuswear.com/products/merino-crew-sweater.jpg"},
		},
		{
			ID:          8,
			Name:        "Canvas tote bag",
			Brand:       "Proteus",
			Category:    "accessories",
			Description: "Heavy canvas tote with leather handles.",
			Price:       1299,
			Sizes:       []string{"One Size"},
			Images:      []string{"https://cdn.proteuswear.com/products/canvas-tote-bag.jpg"},
		},
	}
}
