package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tg "github.com/go-telegram/bot/models"

	"flowhammer_back_end/internal/lang"
	"flowhammer_back_end/internal/models"
	"flowhammer_back_end/internal/utils"
)

// handleWebAppData traite les soumissions order_v1 de la Mini App
// (Telegram.WebApp.sendData arrive en message.web_app_data)
func (b *Bot) handleWebAppData(ctx context.Context, msg *tg.Message) {
	log.Println("\n✨✨✨ ПОЛУЧЕНЫ WEB_APP_DATA! ✨✨✨")
	log.Println(strings.Repeat("─", 60))

	code := b.userLang(ctx, msg.From)

	payload, err := models.ParseCheckoutPayload([]byte(msg.WebAppData.Data))
	if err != nil {
		log.Printf("❌ Ошибка при обработке web_app_data: %v", err)
		b.send(ctx, msg.Chat.ID, lang.T(code, "order.error"))
		return
	}

	var userID int64
	username := ""
	if msg.From != nil {
		userID = msg.From.ID
		username = displayName(msg.From)
	}

	if _, err := b.ProcessCheckout(ctx, payload, userID, username, msg.Chat.ID); err != nil {
		log.Printf("❌ Ошибка при обработке web_app_data: %v", err)
		b.send(ctx, msg.Chat.ID, lang.T(code, "order.error"))
	}
}

// ProcessCheckout enregistre la commande puis notifie, dans l'ordre:
// le client (si chatID non nul), les administrateurs, le canal des
// commandes, et le propriétaire par email. Chaque notification est au
// mieux une fois, un échec n'annule pas la commande.
func (b *Bot) ProcessCheckout(ctx context.Context, payload *models.CheckoutPayload, userID int64, username string, chatID int64) (string, error) {
	customer := payload.Customer
	cart := payload.Cart

	log.Println("\n✉️ ПОЛУЧЕНЫ ДАННЫЕ ЗАКАЗА ИЗ ВЕБ-ПРИЛОЖЕНИЯ")
	log.Println(strings.Repeat("─", 60))
	log.Printf("👤 Заказчик: %s", customer.Name)
	log.Printf("📞 Контакт: %s", customer.Contact)
	log.Printf("📝 Примечание: %s", customer.Note)
	log.Printf("🛒 Товаров в заказе: %d", len(cart.Items))
	log.Printf("💰 Сумма: %g %s", cart.Subtotal, cart.Currency)

	input := models.OrderInput{
		UserID:          userID,
		Username:        username,
		CustomerName:    customer.Name,
		CustomerContact: customer.Contact,
		CustomerNote:    customer.Note,
		Items:           cart.Items,
		Subtotal:        cart.Subtotal,
		Currency:        cart.Currency,
	}

	id, orderNumber, err := b.store.CreateOrder(input)
	if err != nil {
		return "", err
	}
	log.Printf("✅ Заказ сохранён в БД: %s (ID: %d)", orderNumber, id)

	itemsList := formatItemsList(cart.Items)

	if chatID != 0 {
		code := b.langs.Get(ctx, userID, "")
		name := customer.Name
		if name == "" {
			name = "друже"
		}
		confirmation := fmt.Sprintf("✅ *%s, %s!*\n\n", lang.T(code, "order.thanks"), name) +
			fmt.Sprintf("Мы получили ваш заказ на сумму *$%g %s*\n\n", cart.Subtotal, cart.Currency) +
			fmt.Sprintf("📦 *Товары:*\n%s\n", itemsList) +
			fmt.Sprintf("Мы свяжемся с вами по номеру *%s* в течение часа\n\n", customer.Contact) +
			fmt.Sprintf("📌 Номер заказа: `%s`\n", orderNumber) +
			"❓ Чтобы проверить статус, используй: /my-orders"
		b.send(ctx, chatID, confirmation)
		log.Printf("✅ Подтверждение отправлено пользователю %s", username)
	}

	adminMessage := b.newOrderMessage(orderNumber, userID, username, payload, itemsList)
	for _, adminID := range b.registry.NotifyIDs() {
		b.send(ctx, adminID, adminMessage)
	}
	if b.channelID != 0 {
		b.send(ctx, b.channelID, adminMessage)
	}

	if b.ownerMail != "" {
		go func() {
			if err := utils.SendOrderCopyEmail(b.ownerMail, orderNumber, input); err != nil {
				log.Printf("⚠️ Не удалось отправить email о заказе %s: %v", orderNumber, err)
			}
		}()
	}

	log.Println(strings.Repeat("─", 60))
	return orderNumber, nil
}

func (b *Bot) newOrderMessage(orderNumber string, userID int64, username string, payload *models.CheckoutPayload, itemsList string) string {
	customer := payload.Customer
	cart := payload.Cart

	submitted := time.Now()
	if payload.Timestamp > 0 {
		submitted = time.UnixMilli(payload.Timestamp)
	}

	return "🛍️ *НОВЫЙ ЗАКАЗ!*\n\n" +
		fmt.Sprintf("📌 Номер: `%s`\n", orderNumber) +
		fmt.Sprintf("👤 Имя: %s\n", orNotGiven(customer.Name)) +
		fmt.Sprintf("📞 Контакт: %s\n", orNotGiven(customer.Contact)) +
		fmt.Sprintf("👥 Telegram: @%s (ID: %d)\n\n", username, userID) +
		fmt.Sprintf("📦 *Товары:*\n%s\n", itemsList) +
		fmt.Sprintf("💰 *Итого: $%g %s*\n\n", cart.Subtotal, cart.Currency) +
		fmt.Sprintf("📋 *Примечание:* %s\n\n", orNotGiven(customer.Note)) +
		fmt.Sprintf("⏰ Время: %s\n", submitted.Format("02.01.2006 15:04:05")) +
		"📊 Статус: ⏳ Pending\n\n" +
		"Используй /orders чтобы управлять заказами"
}

func orNotGiven(s string) string {
	if s == "" {
		return "не указано"
	}
	return s
}

// notifyStatusChange prévient le client du nouveau statut. Sur
// confirmation, un lien de paiement Stripe est joint si configuré.
func (b *Bot) notifyStatusChange(ctx context.Context, order *models.Order, newStatus models.Status) {
	text := fmt.Sprintf("📦 *Статус вашего заказа #%s изменился!*\n\n", order.OrderNumber) +
		fmt.Sprintf("%s Новый статус: *%s*\n\n", newStatus.Emoji(), newStatus.Label("ru")) +
		"Спасибо за заказ! 🙏"

	if newStatus == models.StatusConfirmed && b.payments != nil {
		link, err := b.payments.PaymentLink(order)
		if err != nil {
			log.Printf("⚠️ Не удалось создать платёжную ссылку для %s: %v", order.OrderNumber, err)
		} else {
			keyboard := &tg.InlineKeyboardMarkup{
				InlineKeyboard: [][]tg.InlineKeyboardButton{
					{{Text: "💳 Оплатить заказ", URL: link}},
				},
			}
			b.sendWithMarkup(ctx, order.UserID, text, keyboard)
			return
		}
	}

	b.send(ctx, order.UserID, text)
}
