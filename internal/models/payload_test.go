package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckoutPayload(t *testing.T) {
	raw := []byte(`{
		"type": "order_v1",
		"locale": "ru",
		"customer": {"name": "Иван", "contact": "+84 949197496", "note": ""},
		"cart": {
			"items": [
				{"id": "stick-mini-pocket", "qty": 2, "unitPrice": 12.99, "currency": "USD", "title": "Mini Pocket", "lineTotal": 25.98}
			],
			"subtotal": 25.98,
			"currency": "USD"
		},
		"timestamp": 1756400000000
	}`)

	payload, err := ParseCheckoutPayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "order_v1", payload.Type)
	assert.Equal(t, "Иван", payload.Customer.Name)
	require.Len(t, payload.Cart.Items, 1)
	assert.Equal(t, "Mini Pocket", payload.Cart.Items[0].Title)
	assert.Equal(t, 25.98, payload.Cart.Subtotal)
}

func TestParseCheckoutPayloadDefaultsCurrency(t *testing.T) {
	payload, err := ParseCheckoutPayload([]byte(`{"type":"order_v1","cart":{"items":[],"subtotal":0}}`))
	require.NoError(t, err)
	assert.Equal(t, "USD", payload.Cart.Currency)
}

func TestParseCheckoutPayloadRejectsBadInput(t *testing.T) {
	_, err := ParseCheckoutPayload([]byte(`{"type":"order_v2"}`))
	assert.Error(t, err)

	_, err = ParseCheckoutPayload([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseCheckoutPayload([]byte(`{}`))
	assert.Error(t, err)
}

func TestOrderItemsCorruptJSON(t *testing.T) {
	order := Order{ItemsJSON: "{broken"}
	assert.Nil(t, order.Items())

	order.ItemsJSON = `[{"id":"x","title":"X","qty":1,"unitPrice":2,"lineTotal":2}]`
	items := order.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "X", items[0].Title)
}
