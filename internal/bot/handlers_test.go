package bot

import (
	"strings"
	"testing"

	tg "github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowhammer_back_end/internal/analytics"
	"flowhammer_back_end/internal/lang"
	"flowhammer_back_end/internal/models"
)

func TestReplyShopKeyboardOpensWebApp(t *testing.T) {
	kb := replyShopKeyboard(lang.RU, "https://shop.example.com")

	require.Len(t, kb.Keyboard, 1)
	require.Len(t, kb.Keyboard[0], 2)
	assert.True(t, kb.ResizeKeyboard)

	shop, booking := kb.Keyboard[0][0], kb.Keyboard[0][1]
	assert.Equal(t, lang.T(lang.RU, "buttons.shop"), shop.Text)
	require.NotNil(t, shop.WebApp)
	assert.Equal(t, "https://shop.example.com", shop.WebApp.URL)

	assert.Equal(t, lang.T(lang.RU, "buttons.order"), booking.Text)
	require.NotNil(t, booking.WebApp)
	assert.Equal(t, "https://shop.example.com#booking", booking.WebApp.URL)
}

func TestWebAppDataCarriesCheckoutPayload(t *testing.T) {
	msg := &tg.Message{
		ID:   12,
		Chat: tg.Chat{ID: 42, Type: tg.ChatTypePrivate},
		From: &tg.User{ID: 42, Username: "ivan"},
		WebAppData: &tg.WebAppData{
			Data: `{
				"type": "order_v1",
				"customer": {"name": "Иван", "contact": "+84 949197496", "note": ""},
				"cart": {
					"items": [{"id": "stick-mini-pocket", "qty": 2, "unitPrice": 12.99, "title": "Mini Pocket", "lineTotal": 25.98}],
					"subtotal": 25.98,
					"currency": "USD"
				}
			}`,
		},
	}

	payload, err := models.ParseCheckoutPayload([]byte(msg.WebAppData.Data))
	require.NoError(t, err)
	assert.Equal(t, "Иван", payload.Customer.Name)
	require.Len(t, payload.Cart.Items, 1)
	assert.Equal(t, 25.98, payload.Cart.Subtotal)
}

func TestEntryFromMessageReadsChatAndUser(t *testing.T) {
	msg := &tg.Message{
		ID:   7,
		Chat: tg.Chat{ID: 42, Type: tg.ChatTypePrivate},
		From: &tg.User{ID: 42, Username: "ivan", FirstName: "Иван"},
		Text: "/start",
	}

	entry := entryFromMessage(msg)
	assert.Equal(t, int64(42), entry.ChatID)
	assert.Equal(t, "private", entry.ChatType)
	assert.Equal(t, 7, entry.MessageID)
	assert.Equal(t, "ivan", entry.UserName)
	assert.Equal(t, "text", entry.MessageType)
	assert.Equal(t, "/start", entry.Text)
}

func TestFormatCustomerDetails(t *testing.T) {
	details := &analytics.CustomerDetails{
		Name:       "Иван",
		Username:   "ivan",
		Contact:    "+84 949197496",
		OrderCount: 2,
		TotalSpent: 45.97,
		Orders: []models.Order{
			{OrderNumber: "ORD_1", Status: models.StatusDelivered, Subtotal: 25.98},
			{OrderNumber: "ORD_2", Status: models.StatusPending, Subtotal: 19.99},
		},
		LastOrderDate: "2026-08-29",
	}

	card := formatCustomerDetails(details)
	assert.Contains(t, card, "КАРТОЧКА КЛИЕНТА")
	assert.Contains(t, card, "Иван")
	assert.Contains(t, card, "@ivan")
	assert.Contains(t, card, "$45.97")
	assert.Contains(t, card, "2026-08-29")
	assert.Contains(t, card, "#ORD_1")
	assert.Contains(t, card, "#ORD_2")
}

func TestFormatCustomerDetailsFallbacks(t *testing.T) {
	card := formatCustomerDetails(&analytics.CustomerDetails{OrderCount: 1})
	assert.Equal(t, 3, strings.Count(card, "не указано"))
}
