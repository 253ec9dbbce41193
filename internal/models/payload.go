package models

import (
	"encoding/json"
	"fmt"
)

// CheckoutPayload est l'enveloppe JSON order_v1 envoyée par la Mini App
// (via Telegram.WebApp.sendData ou POST /api/checkout)
type CheckoutPayload struct {
	Type      string           `json:"type"`
	Locale    string           `json:"locale"`
	Customer  CheckoutCustomer `json:"customer"`
	Cart      CheckoutCart     `json:"cart"`
	Timestamp int64            `json:"timestamp"`
}

type CheckoutCustomer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Note    string `json:"note"`
}

type CheckoutCart struct {
	Items    []OrderItem `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Currency string      `json:"currency"`
}

// ParseCheckoutPayload parse et valide une enveloppe order_v1
func ParseCheckoutPayload(raw []byte) (*CheckoutPayload, error) {
	var payload CheckoutPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("payload JSON invalide: %w", err)
	}
	if payload.Type != "order_v1" {
		return nil, fmt.Errorf("type de payload inconnu: %q", payload.Type)
	}
	if payload.Cart.Currency == "" {
		payload.Cart.Currency = "USD"
	}
	return &payload, nil
}
