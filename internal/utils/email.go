package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"flowhammer_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendOrderCopyEmail envoie une copie de la commande au propriétaire
// de la boutique. SMTP_HOST vide désactive l'envoi.
func SendOrderCopyEmail(to, orderNumber string, input models.OrderInput) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST non défini, email de commande ignoré")
		return nil
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@flowhammer.shop"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("🛍️ Новый заказ %s — $%g %s", orderNumber, input.Subtotal, input.Currency))
	msg.SetBodyString(mail.TypeTextHTML, GenerateOrderCopyHTML(orderNumber, input))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderCopyHTML génère le HTML de la copie de commande
func GenerateOrderCopyHTML(orderNumber string, input models.OrderInput) string {
	itemsHTML := ""
	for _, item := range input.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>$%.2f</td>
				<td>$%.2f</td>
			</tr>`, item.Title, item.Qty, item.UnitPrice, item.LineTotal)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>🛍️ Новый заказ %s</h2>
	<p><b>Заказчик:</b> %s<br>
	<b>Контакт:</b> %s<br>
	<b>Telegram:</b> @%s (ID: %d)</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Товар</th><th>Кол-во</th><th>Цена</th><th>Сумма</th></tr>%s
	</table>
	<p><b>Итого: $%.2f %s</b></p>
	<p><b>Примечание:</b> %s</p>
</body>
</html>`, orderNumber, input.CustomerName, input.CustomerContact, input.Username, input.UserID,
		itemsHTML, input.Subtotal, input.Currency, input.CustomerNote)
}
