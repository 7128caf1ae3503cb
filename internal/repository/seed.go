package repository

import "storefront-sync-api/internal/model"

// SeedCatalog returns the demo catalog used to populate an empty store.
// Every product gets the supplied version marker as its initial LastUpdated.
func SeedCatalog(version string) []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Organic Single-Origin Ethiopian Yirgacheffe Coffee Beans",
			ImageURL:    "/product.jpg",
			MaxQuantity: 50,
			LastUpdated: version,
			Badges:      []model.Badge{{Title: "New", BackgroundColor: "#2E7D32"}},
			Price:       model.Price{Normal: 19},
			Variants:    []string{"#D8D8D8", "#1C4C5B", "#FFFFFF"},
			Category:    model.Category{ID: "1", Title: "Kitchen"},
			InStock:     true,
		},
		{
			ID:          "2",
			Name:        "Premium Earl Grey Imperial Blend Tea Bags",
			ImageURL:    "https://images.unsplash.com/photo-1564890369478-c89ca6d9cde9?w=500&q=80",
			MaxQuantity: 20,
			LastUpdated: version,
			Badges:      []model.Badge{},
			Price:       model.Price{Normal: 10},
			Variants:    []string{"#D8D8D8", "#1C4C5B", "#FFFFFF"},
			Category:    model.Category{ID: "2", Title: "DIY"},
			InStock:     true,
		},
		{
			ID:          "3",
			Name:        "Artisanal Raw Cane Sugar Crystal Collection",
			ImageURL:    "https://images.unsplash.com/photo-1581441363689-1f3c3c414635?w=500&q=80",
			MaxQuantity: 200,
			LastUpdated: version,
			Badges:      []model.Badge{{Title: "New", BackgroundColor: "#2E7D32"}},
			Price:       model.Price{Normal: 5},
			Variants:    []string{"#D8D8D8", "#1C4C5B", "#FFFFFF"},
			Category:    model.Category{ID: "3", Title: "Garden"},
			InStock:     true,
		},
		{
			ID:          "4",
			Name:        "Artisanal Hand-Crafted Chocolate-Dipped Biscotti Collection",
			ImageURL:    "https://images.unsplash.com/photo-1548848221-0c2e497ed557?w=500&q=80",
			MaxQuantity: 45,
			LastUpdated: version,
			Badges:      []model.Badge{{Title: "-25%", BackgroundColor: "#C62828"}},
			Price:       model.Price{Normal: 24, Special: 19},
			Variants:    []string{"#8B4513", "#D2691E", "#A0522D"},
			Category:    model.Category{ID: "4", Title: "Gourmet Treats"},
			InStock:     true,
		},
		{
			ID:          "5",
			Name:        "Ultimate Barista Pro Deluxe Coffee Grinder 3000",
			ImageURL:    "",
			MaxQuantity: 75,
			LastUpdated: version,
			Badges:      []model.Badge{},
			Price:       model.Price{Normal: 299, Special: 249},
			Variants:    []string{"#000000", "#CC0000", "#666666"},
			Category:    model.Category{ID: "5", Title: "Equipment"},
			InStock:     true,
		},
		{
			ID:          "6",
			Name:        "Midnight Mystery Limited Reserve Single-Origin Coffee",
			ImageURL:    "https://images.unsplash.com/photo-1514432324607-a09d9b4aefdd?w=500&q=80",
			MaxQuantity: 90,
			LastUpdated: version,
			Badges:      []model.Badge{{Title: "New", BackgroundColor: "#2E7D32"}},
			Price:       model.Price{Normal: 49},
			Variants:    []string{"#000000"},
			Category:    model.Category{ID: "1", Title: "Category 1"},
			InStock:     false,
		},
		{
			ID:          "7",
			Name:        "Rainbow Unicorn Birthday Cake Flavored Coffee Pods",
			ImageURL:    "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=500&q=80",
			MaxQuantity: 95,
			LastUpdated: version,
			Badges:      []model.Badge{},
			Price:       model.Price{Normal: 15, Special: 12},
			Variants:    []string{"#FF69B4", "#87CEEB", "#98FB98", "#DDA0DD"},
			Category:    model.Category{ID: "6", Title: "Specialty Flavors"},
			InStock:     true,
		},
	}
}
