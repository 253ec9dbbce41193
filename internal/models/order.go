package models

import (
	"encoding/json"
	"time"
)

// Order correspond à une ligne de la table orders (une commande par soumission)
type Order struct {
	ID              int64     `json:"id"`
	OrderNumber     string    `json:"order_number"`
	UserID          int64     `json:"user_id"`
	Username        string    `json:"username"`
	CustomerName    string    `json:"customer_name"`
	CustomerContact string    `json:"customer_contact"`
	CustomerNote    string    `json:"customer_note"`
	ItemsJSON       string    `json:"-"`
	Subtotal        float64   `json:"subtotal"`
	Currency        string    `json:"currency"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OrderItem est une ligne de panier figée à la soumission.
// Le titre est une copie du catalogue au moment T, pas une clé étrangère.
type OrderItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
	Currency  string  `json:"currency,omitempty"`
}

// Items désérialise la liste figée (liste vide si JSON corrompu)
func (o *Order) Items() []OrderItem {
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return nil
	}
	return items
}

// OrderInput porte les données d'une soumission de commande
type OrderInput struct {
	UserID          int64
	Username        string
	CustomerName    string
	CustomerContact string
	CustomerNote    string
	Items           []OrderItem
	Subtotal        float64
	Currency        string
}
