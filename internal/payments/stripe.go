package payments

import (
	"fmt"
	"math"
	"strings"

	stripe "github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"

	"flowhammer_back_end/internal/models"
)

// Client crée des sessions Stripe Checkout pour les commandes
// confirmées. Un client nil signifie paiements désactivés.
type Client struct {
	successURL string
}

// New configure la clé API globale Stripe. Retourne nil si la clé est vide.
func New(apiKey, successURL string) *Client {
	if apiKey == "" {
		return nil
	}
	stripe.Key = apiKey
	return &Client{successURL: successURL}
}

// PaymentLink crée une session Checkout pour la commande et retourne son URL
func (c *Client) PaymentLink(order *models.Order) (string, error) {
	items := order.Items()
	if len(items) == 0 {
		return "", fmt.Errorf("commande %s sans articles", order.OrderNumber)
	}

	currency := strings.ToLower(order.Currency)
	if currency == "" {
		currency = "usd"
	}

	var lineItems []*stripe.CheckoutSessionLineItemParams
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
				UnitAmount: stripe.Int64(int64(math.Round(item.UnitPrice * 100))),
			},
			Quantity: stripe.Int64(int64(item.Qty)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(c.successURL),
		ClientReferenceID: stripe.String(order.OrderNumber),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
