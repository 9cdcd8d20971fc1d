package catalog

// Product is a catalog entry. The catalog is seeded at startup and read-only
// at runtime; there is no create, update, or delete surface.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// DefaultProducts returns the built-in demonstration catalog used when no
// catalog file is configured.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Premium Headphones",
			Description: "High-quality wireless headphones with noise cancellation",
			Price:       199.99,
			Image:       "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:    "Electronics",
		},
		{
			ID:          2,
			Name:        "Smart Watch",
			Description: "Feature-rich smartwatch with health monitoring",
			Price:       249.99,
			Image:       "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:    "Electronics",
		},
		{
			ID:          3,
			Name:        "Wireless Earbuds",
			Description: "Compact wireless earbuds with premium sound",
			Price:       129.99,
			Image:       "https://images.pexels.com/photos/3780681/pexels-photo-3780681.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:    "Electronics",
		},
		{
			ID:          4,
			Name:        "Smartphone",
			Description: "Latest smartphone with advanced camera system",
			Price:       899.99,
			Image:       "https://images.pexels.com/photos/404280/pexels-photo-404280.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			Category:    "Electronics",
		},
	}
}
