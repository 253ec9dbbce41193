package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	tg "github.com/go-telegram/bot/models"

	"flowhammer_back_end/internal/analytics"
	"flowhammer_back_end/internal/models"
)

const accessDeniedText = "❌ У вас нет доступа к этой команде"

// requireAdmin vérifie l'accès et répond au refus dans le chat
func (b *Bot) requireAdmin(ctx context.Context, msg *tg.Message) bool {
	if msg.From == nil {
		return false
	}
	decision := b.registry.Authorize(msg.From.ID, msg.From.Username)
	if !decision.Allowed {
		b.send(ctx, msg.Chat.ID, accessDeniedText)
		return false
	}
	return true
}

// requireAdminCallback vérifie l'accès et répond au refus par alerte
func (b *Bot) requireAdminCallback(ctx context.Context, query *tg.CallbackQuery) bool {
	decision := b.registry.Authorize(query.From.ID, query.From.Username)
	if !decision.Allowed {
		b.answerCallbackAlert(ctx, query.ID, "❌ Доступ запрещён")
		return false
	}
	return true
}

// ordersOverview groupe les commandes par statut pour /orders
func (b *Bot) ordersOverview() (string, error) {
	orders, err := b.store.GetAllOrders()
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "📭 Нет заказов в базе данных", nil
	}

	byStatus := make(map[models.Status][]models.Order)
	for _, order := range orders {
		byStatus[order.Status] = append(byStatus[order.Status], order)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *СТАТИСТИКА ЗАКАЗОВ* (всего: %d)\n\n", len(orders))
	for _, status := range models.AllStatuses {
		group := byStatus[status]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s *%s* (%d)\n", status.Emoji(), status.Label("ru"), len(group))
		for i, order := range group {
			fmt.Fprintf(&sb, "  %d. #%s - %s - $%g\n", i+1, order.OrderNumber, order.CustomerName, order.Subtotal)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("━━━━━━━━━━━━━━━━━━\n\n" +
		"Используй /order-details <номер> чтобы увидеть детали заказа\n" +
		"Используй /order-status <номер> чтобы изменить статус")
	return sb.String(), nil
}

func (b *Bot) cmdOrders(ctx context.Context, msg *tg.Message) {
	if !b.requireAdmin(ctx, msg) {
		return
	}

	text, err := b.ordersOverview()
	if err != nil {
		log.Printf("❌ Ошибка при получении заказов: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Ошибка при получении списка заказов")
		return
	}
	b.send(ctx, msg.Chat.ID, text)
}

func (b *Bot) cmdOrderDetails(ctx context.Context, msg *tg.Message, args string) {
	if !b.requireAdmin(ctx, msg) {
		return
	}

	orderNumber := strings.TrimSpace(args)
	if orderNumber == "" {
		b.send(ctx, msg.Chat.ID, "Использование: /order-details <номер>")
		return
	}

	order, err := b.store.GetOrderByNumber(orderNumber)
	if err != nil {
		log.Printf("❌ Ошибка при получении деталей заказа: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Ошибка при получении деталей заказа")
		return
	}
	if order == nil {
		b.send(ctx, msg.Chat.ID, fmt.Sprintf("❌ Заказ #%s не найден", orderNumber))
		return
	}

	var itemsList strings.Builder
	for i, item := range order.Items() {
		fmt.Fprintf(&itemsList, "%d. %s x%d = $%g\n", i+1, item.Title, item.Qty, item.LineTotal)
	}

	note := order.CustomerNote
	if note == "" {
		note = "не указано"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 *ДЕТАЛИ ЗАКАЗА #%s*\n\n", order.OrderNumber)
	fmt.Fprintf(&sb, "👤 *Заказчик:* %s\n", order.CustomerName)
	fmt.Fprintf(&sb, "📞 *Контакт:* %s\n", order.CustomerContact)
	fmt.Fprintf(&sb, "👥 *Telegram:* @%s (ID: %d)\n\n", order.Username, order.UserID)
	fmt.Fprintf(&sb, "📦 *Товары:*\n%s\n", itemsList.String())
	fmt.Fprintf(&sb, "💰 *Итого:* $%g %s\n\n", order.Subtotal, order.Currency)
	fmt.Fprintf(&sb, "📋 *Примечание:* %s\n\n", note)
	fmt.Fprintf(&sb, "%s *Статус:* %s\n", order.Status.Emoji(), order.Status.Label("ru"))
	fmt.Fprintf(&sb, "📅 *Создан:* %s\n", order.CreatedAt.Format("02.01.2006 15:04:05"))
	fmt.Fprintf(&sb, "📅 *Обновлен:* %s\n\n", order.UpdatedAt.Format("02.01.2006 15:04:05"))
	fmt.Fprintf(&sb, "Используй /order-status %s чтобы изменить статус", order.OrderNumber)

	var rows [][]tg.InlineKeyboardButton
	if next, ok := order.Status.Next(); ok {
		rows = append(rows, []tg.InlineKeyboardButton{{
			Text:         fmt.Sprintf("✅ Перейти на \"%s\"", next.Label("ru")),
			CallbackData: fmt.Sprintf("order_status_%s_%s", order.OrderNumber, next),
		}})
	}
	if !order.Status.IsTerminal() {
		rows = append(rows, []tg.InlineKeyboardButton{{
			Text:         "❌ Отменить заказ",
			CallbackData: fmt.Sprintf("order_status_%s_%s", order.OrderNumber, models.StatusCancelled),
		}})
	}

	if len(rows) > 0 {
		b.sendWithMarkup(ctx, msg.Chat.ID, sb.String(), &tg.InlineKeyboardMarkup{InlineKeyboard: rows})
		return
	}
	b.send(ctx, msg.Chat.ID, sb.String())
}

// cmdOrderStatus change le statut en ligne de commande: /order-status <номер> <статус>
func (b *Bot) cmdOrderStatus(ctx context.Context, msg *tg.Message, args string) {
	if !b.requireAdmin(ctx, msg) {
		return
	}

	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.send(ctx, msg.Chat.ID, "Использование: /order-status <номер> <статус>\n\n"+
			"Статусы: pending, confirmed, processing, shipped, delivered, cancelled")
		return
	}

	b.applyStatusChange(ctx, fields[0], fields[1], func(text string) {
		b.send(ctx, msg.Chat.ID, text)
	})
}

// applyStatusChange exécute la transition et notifie le client
func (b *Bot) applyStatusChange(ctx context.Context, orderNumber, rawStatus string, reply func(string)) {
	newStatus, ok := models.ParseStatus(rawStatus)
	if !ok {
		reply(fmt.Sprintf("❌ Неизвестный статус: %s", rawStatus))
		return
	}

	order, err := b.store.GetOrderByNumber(orderNumber)
	if err != nil {
		log.Printf("❌ Ошибка при изменении статуса заказа: %v", err)
		reply("❌ Ошибка при изменении статуса")
		return
	}
	if order == nil {
		reply(fmt.Sprintf("❌ Заказ #%s не найден", orderNumber))
		return
	}

	if _, err := b.store.UpdateOrderStatus(order.ID, newStatus); err != nil {
		log.Printf("❌ Ошибка при изменении статуса заказа: %v", err)
		reply(fmt.Sprintf("❌ Недопустимый переход: %s → %s", order.Status, newStatus))
		return
	}

	log.Printf("✅ Статус заказа #%s обновлён на \"%s\"", orderNumber, newStatus.Label("ru"))
	reply(fmt.Sprintf("%s *Заказ #%s - Статус обновлён!*\n\nНовый статус: *%s*\n\nИспользуй /order-details %s чтобы вернуться к деталям",
		newStatus.Emoji(), orderNumber, newStatus.Label("ru"), orderNumber))

	b.notifyStatusChange(ctx, order, newStatus)
}

func (b *Bot) callbackOrderStatus(ctx context.Context, query *tg.CallbackQuery, payload string) {
	if !b.requireAdminCallback(ctx, query) {
		return
	}

	// payload = <номер>_<статус>, le numéro contient un underscore (ORD_...)
	idx := strings.LastIndex(payload, "_")
	if idx <= 0 {
		b.answerCallbackAlert(ctx, query.ID, "❌ Некорректные данные")
		return
	}
	orderNumber := payload[:idx]
	rawStatus := payload[idx+1:]

	newStatus, ok := models.ParseStatus(rawStatus)
	if !ok {
		b.answerCallbackAlert(ctx, query.ID, "❌ Неизвестный статус")
		return
	}

	order, err := b.store.GetOrderByNumber(orderNumber)
	if err != nil {
		log.Printf("❌ Ошибка при изменении статуса заказа: %v", err)
		b.answerCallbackAlert(ctx, query.ID, "❌ Ошибка при изменении статуса")
		return
	}
	if order == nil {
		b.answerCallbackAlert(ctx, query.ID, "❌ Заказ не найден")
		return
	}

	if _, err := b.store.UpdateOrderStatus(order.ID, newStatus); err != nil {
		b.answerCallbackAlert(ctx, query.ID, fmt.Sprintf("❌ Недопустимый переход: %s → %s", order.Status, newStatus))
		return
	}

	b.answerCallback(ctx, query.ID, fmt.Sprintf("✅ Статус изменён на \"%s\"", newStatus.Label("ru")))
	b.edit(ctx, callbackChatID(query), callbackMessageID(query),
		fmt.Sprintf("%s *Заказ #%s - Статус обновлён!*\n\nНовый статус: *%s*\n\nИспользуй /order-details %s чтобы вернуться к деталям",
			newStatus.Emoji(), orderNumber, newStatus.Label("ru"), orderNumber))

	log.Printf("✅ Статус заказа #%s обновлён на \"%s\"", orderNumber, newStatus.Label("ru"))
	b.notifyStatusChange(ctx, order, newStatus)
}

// ===== Menu CRM =====

func adminMenuKeyboard() *tg.InlineKeyboardMarkup {
	return &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{{Text: "📊 Панель управления", CallbackData: "admin_dashboard"}},
			{{Text: "📈 Статистика", CallbackData: "admin_stats"}},
			{{Text: "👥 Клиенты", CallbackData: "admin_customers"}},
			{{Text: "📥 Экспортировать данные", CallbackData: "admin_export"}},
			{{Text: "⚙️ Все заказы", CallbackData: "admin_all_orders"}},
		},
	}
}

func dashboardKeyboard() *tg.InlineKeyboardMarkup {
	return &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{{Text: "🔄 Обновить", CallbackData: "admin_dashboard"}},
			{{Text: "📥 Экспортировать", CallbackData: "admin_export"}},
			{{Text: "⬅️ Назад", CallbackData: "admin_menu"}},
		},
	}
}

func backToMenuKeyboard() *tg.InlineKeyboardMarkup {
	return &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{{Text: "⬅️ Назад в меню", CallbackData: "admin_menu"}},
		},
	}
}

func (b *Bot) cmdAdminMenu(ctx context.Context, msg *tg.Message) {
	if msg.From == nil {
		return
	}
	decision := b.registry.Authorize(msg.From.ID, msg.From.Username)
	if !decision.Allowed {
		b.send(ctx, msg.Chat.ID, "❌ У вас нет доступа к админ-панели. Только @QValmont и @netslayer могут использовать эту команду.")
		return
	}

	role := "Администратор"
	if decision.Admin != nil && decision.Admin.Role == "super_admin" {
		role = "Супер Администратор"
	}

	text := fmt.Sprintf("🔐 *АДМИН-ПАНЕЛЬ FLOWHAMMER SHOP*\n\n"+
		"👤 Вход как: *@%s*\n"+
		"🎖️ Роль: *%s*\n\n"+
		"Выбери раздел для управления:", msg.From.Username, role)
	b.sendWithMarkup(ctx, msg.Chat.ID, text, adminMenuKeyboard())
}

// dashboardStats calcule les statistiques sur la fenêtre des commandes
func (b *Bot) dashboardStats() (*analytics.Stats, error) {
	orders, err := b.store.GetAllOrders()
	if err != nil {
		return nil, err
	}
	stats := analytics.ComputeStats(orders)
	return &stats, nil
}

func (b *Bot) cmdAdminDashboard(ctx context.Context, msg *tg.Message) {
	if !b.requireAdmin(ctx, msg) {
		return
	}

	b.send(ctx, msg.Chat.ID, "⏳ Загружаю данные панели управления...")
	stats, err := b.dashboardStats()
	if err != nil {
		log.Printf("❌ Ошибка панели управления: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Ошибка при загрузке панели управления")
		return
	}

	b.sendWithMarkup(ctx, msg.Chat.ID, analytics.FormatDashboardMessage(*stats), dashboardKeyboard())
}

func (b *Bot) cmdAdminStats(ctx context.Context, msg *tg.Message) {
	if !b.requireAdmin(ctx, msg) {
		return
	}

	stats, err := b.dashboardStats()
	if err != nil {
		log.Printf("❌ Ошибка статистики: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Ошибка при получении статистики")
		return
	}

	b.sendWithMarkup(ctx, msg.Chat.ID, analytics.FormatDetailedStats(*stats), backToMenuKeyboard())
}

func (b *Bot) cmdAdminCustomers(ctx context.Context, msg *tg.Message) {
	if !b.requireAdmin(ctx, msg) {
		return
	}

	stats, err := b.dashboardStats()
	if err != nil {
		log.Printf("❌ Ошибка клиентов: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Ошибка при получении данных клиентов")
		return
	}

	b.sendWithMarkup(ctx, msg.Chat.ID, analytics.FormatCustomersMessage(*stats), backToMenuKeyboard())
}

// cmdAdminCustomer affiche la fiche d'un client: /admin-customer <username>
func (b *Bot) cmdAdminCustomer(ctx context.Context, msg *tg.Message, args string) {
	if !b.requireAdmin(ctx, msg) {
		return
	}

	key := strings.TrimPrefix(strings.TrimSpace(args), "@")
	if key == "" {
		b.send(ctx, msg.Chat.ID, "Использование: /admin-customer <username или имя>")
		return
	}

	orders, err := b.store.GetAllOrders()
	if err != nil {
		log.Printf("❌ Ошибка клиентов: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Ошибка при получении данных клиентов")
		return
	}

	details := analytics.GetCustomerDetails(orders, key)
	if details == nil {
		b.send(ctx, msg.Chat.ID, fmt.Sprintf("❌ Клиент \"%s\" не найден", key))
		return
	}

	b.sendWithMarkup(ctx, msg.Chat.ID, formatCustomerDetails(details), backToMenuKeyboard())
}

// formatCustomerDetails rend la fiche client du CRM
func formatCustomerDetails(d *analytics.CustomerDetails) string {
	var sb strings.Builder
	sb.WriteString("👤 *КАРТОЧКА КЛИЕНТА*\n\n")
	fmt.Fprintf(&sb, "📛 Имя: %s\n", orNotGiven(d.Name))
	fmt.Fprintf(&sb, "👥 Telegram: @%s\n", orNotGiven(d.Username))
	fmt.Fprintf(&sb, "📞 Контакт: %s\n\n", orNotGiven(d.Contact))
	fmt.Fprintf(&sb, "📦 Заказов: *%d*\n", d.OrderCount)
	fmt.Fprintf(&sb, "💰 Потрачено: *$%g*\n", d.TotalSpent)
	fmt.Fprintf(&sb, "📅 Последний заказ: %s\n\n", d.LastOrderDate)

	sb.WriteString("*История заказов:*\n")
	for i, order := range d.Orders {
		fmt.Fprintf(&sb, "%d. #%s — %s %s — $%g\n",
			i+1, order.OrderNumber, order.Status.Emoji(), order.Status.Label("ru"), order.Subtotal)
	}
	return sb.String()
}

// sendExport génère le CSV et l'envoie en document
func (b *Bot) sendExport(ctx context.Context, chatID int64) {
	b.send(ctx, chatID, "⏳ Подготавливаю экспорт...")

	orders, err := b.store.GetAllOrders()
	if err != nil {
		log.Printf("❌ Ошибка экспорта: %v", err)
		b.send(ctx, chatID, "❌ Ошибка при создании экспорта")
		return
	}

	csv := analytics.ExportOrdersCSV(orders)
	stamp := time.Now().UTC().Format("2006-01-02")

	_, err = b.api.SendDocument(ctx, &tgbot.SendDocumentParams{
		ChatID: chatID,
		Document: &tg.InputFileUpload{
			Filename: fmt.Sprintf("orders_export_%s.csv", stamp),
			Data:     strings.NewReader(csv),
		},
		Caption: fmt.Sprintf("📊 Экспорт заказов (%s)", stamp),
	})
	if err != nil {
		log.Printf("❌ Ошибка отправки экспорта: %v", err)
		b.send(ctx, chatID, "❌ Ошибка при экспорте данных")
		return
	}

	b.send(ctx, chatID,
		"✅ *Экспорт готов!*\n\n"+
			"📥 CSV файл со всеми заказами отправлен.\n"+
			"Используйте Excel или Google Sheets для анализа.")
}

func (b *Bot) cmdAdminExport(ctx context.Context, msg *tg.Message) {
	if !b.requireAdmin(ctx, msg) {
		return
	}
	b.sendExport(ctx, msg.Chat.ID)
}

// ===== Callbacks CRM =====

func (b *Bot) callbackAdminMenu(ctx context.Context, query *tg.CallbackQuery) {
	if !b.requireAdminCallback(ctx, query) {
		return
	}
	b.answerCallback(ctx, query.ID, "")

	text := fmt.Sprintf("🔐 *АДМИН-ПАНЕЛЬ FLOWHAMMER SHOP*\n\n"+
		"👤 Вход как: *@%s*\n\n"+
		"Выбери раздел для управления:", query.From.Username)
	b.editWithMarkup(ctx, callbackChatID(query), callbackMessageID(query), text, adminMenuKeyboard())
}

func (b *Bot) callbackAdminDashboard(ctx context.Context, query *tg.CallbackQuery) {
	if !b.requireAdminCallback(ctx, query) {
		return
	}
	b.answerCallback(ctx, query.ID, "")

	stats, err := b.dashboardStats()
	if err != nil {
		log.Printf("❌ Ошибка панели управления: %v", err)
		b.answerCallbackAlert(ctx, query.ID, "❌ Ошибка обработки")
		return
	}

	b.editWithMarkup(ctx, callbackChatID(query), callbackMessageID(query),
		analytics.FormatDashboardMessage(*stats), dashboardKeyboard())
}

func (b *Bot) callbackAdminStats(ctx context.Context, query *tg.CallbackQuery) {
	if !b.requireAdminCallback(ctx, query) {
		return
	}
	b.answerCallback(ctx, query.ID, "")

	stats, err := b.dashboardStats()
	if err != nil {
		log.Printf("❌ Ошибка статистики: %v", err)
		b.answerCallbackAlert(ctx, query.ID, "❌ Ошибка обработки")
		return
	}

	b.editWithMarkup(ctx, callbackChatID(query), callbackMessageID(query),
		analytics.FormatDetailedStats(*stats), backToMenuKeyboard())
}

func (b *Bot) callbackAdminCustomers(ctx context.Context, query *tg.CallbackQuery) {
	if !b.requireAdminCallback(ctx, query) {
		return
	}
	b.answerCallback(ctx, query.ID, "")

	stats, err := b.dashboardStats()
	if err != nil {
		log.Printf("❌ Ошибка клиентов: %v", err)
		b.answerCallbackAlert(ctx, query.ID, "❌ Ошибка обработки")
		return
	}

	b.editWithMarkup(ctx, callbackChatID(query), callbackMessageID(query),
		analytics.FormatCustomersMessage(*stats), backToMenuKeyboard())
}

func (b *Bot) callbackAdminExport(ctx context.Context, query *tg.CallbackQuery) {
	if !b.requireAdminCallback(ctx, query) {
		return
	}
	b.answerCallback(ctx, query.ID, "")
	b.sendExport(ctx, callbackChatID(query))
}

func (b *Bot) callbackAdminAllOrders(ctx context.Context, query *tg.CallbackQuery) {
	if !b.requireAdminCallback(ctx, query) {
		return
	}
	b.answerCallback(ctx, query.ID, "")

	text, err := b.ordersOverview()
	if err != nil {
		log.Printf("❌ Ошибка при получении заказов: %v", err)
		b.answerCallbackAlert(ctx, query.ID, "❌ Ошибка обработки")
		return
	}
	b.send(ctx, callbackChatID(query), text)
}
