package models

// Product est une entrée du catalogue servi à la Mini App.
// Le catalogue est fixe: quatre produits, pas de CRUD.
type Product struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Emoji    string  `json:"emoji"`
	Accent   string  `json:"accent"`
}

// Catalog retourne les produits de la boutique
func Catalog() []Product {
	return []Product{
		{
			ID:       "stick-acupressure-pro",
			Category: "massage",
			Title:    "Acupressure Pro",
			Price:    19.99,
			Currency: "USD",
			Emoji:    "🧴",
			Accent:   "#39FF14",
		},
		{
			ID:       "stick-therapy-ergonomic",
			Category: "massage",
			Title:    "Therapy Ergonomic",
			Price:    24.99,
			Currency: "USD",
			Emoji:    "💆",
			Accent:   "#00D9FF",
		},
		{
			ID:       "stick-mini-pocket",
			Category: "massage",
			Title:    "Mini Pocket",
			Price:    12.99,
			Currency: "USD",
			Emoji:    "🧊",
			Accent:   "#39FF14",
		},
		{
			ID:       "helmet-cover-style",
			Category: "helmet",
			Title:    "Character Helmet Cover",
			Price:    8.99,
			Currency: "USD",
			Emoji:    "🧸",
			Accent:   "#00D9FF",
		},
	}
}

// ProductByID retourne un produit du catalogue (nil si inconnu)
func ProductByID(id string) *Product {
	for _, p := range Catalog() {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
