package bot

import (
	"context"
	"log"
	"strings"

	tgbot "github.com/go-telegram/bot"
	tg "github.com/go-telegram/bot/models"

	"flowhammer_back_end/internal/admins"
	"flowhammer_back_end/internal/database"
	"flowhammer_back_end/internal/lang"
	"flowhammer_back_end/internal/payments"
)

// Bot relie l'API Telegram au magasin de commandes et aux registres
type Bot struct {
	api       *tgbot.Bot
	store     *database.OrderStore
	registry  *admins.Registry
	langs     *lang.Store
	logs      *LogBuffer
	payments  *payments.Client
	webAppURL string
	channelID int64
	ownerMail string
}

// Options regroupe les dépendances du bot
type Options struct {
	Store     *database.OrderStore
	Registry  *admins.Registry
	Langs     *lang.Store
	Payments  *payments.Client
	WebAppURL string
	ChannelID int64
	OwnerMail string
}

// New connecte le client Telegram avec le token fourni
func New(token string, opts Options) (*Bot, error) {
	b := &Bot{
		store:     opts.Store,
		registry:  opts.Registry,
		langs:     opts.Langs,
		logs:      NewLogBuffer(),
		payments:  opts.Payments,
		webAppURL: opts.WebAppURL,
		channelID: opts.ChannelID,
		ownerMail: opts.OwnerMail,
	}

	api, err := tgbot.New(token,
		tgbot.WithDefaultHandler(b.dispatch),
		tgbot.WithAllowedUpdates(tgbot.AllowedUpdates{"message", "callback_query"}),
		tgbot.WithErrorsHandler(func(err error) {
			log.Printf("⚠️ Ошибка Telegram API: %v", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	b.api = api
	return b, nil
}

// Logs expose le journal des messages entrants
func (b *Bot) Logs() *LogBuffer {
	return b.logs
}

// Run consomme les mises à jour Telegram jusqu'à annulation du contexte
func (b *Bot) Run(ctx context.Context) {
	if me, err := b.api.GetMe(ctx); err == nil {
		log.Printf("✅ Бот @%s запущен и готов к работе!", me.Username)
	}

	b.api.Start(ctx)
	log.Println("🛑 Бот остановлен")
}

func (b *Bot) dispatch(ctx context.Context, _ *tgbot.Bot, update *tg.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Необработанная ошибка в обработчике: %v", r)
		}
	}()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tg.Message) {
	if msg.From != nil {
		b.registry.Observe(msg.From.ID, msg.From.Username)
	}

	if msg.WebAppData != nil {
		b.handleWebAppData(ctx, msg)
		return
	}

	entry := entryFromMessage(msg)
	b.logs.Append(entry)
	logToConsole(entry)

	if !strings.HasPrefix(msg.Text, "/") {
		return
	}
	b.routeCommand(ctx, msg)
}

// commandName extrait le nom de commande du texte brut, pour
// supporter les commandes avec tirets comme /my-orders
func commandName(text string) (name, args string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	name = strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
}

func (b *Bot) routeCommand(ctx context.Context, msg *tg.Message) {
	name, args := commandName(msg.Text)

	switch name {
	case "start":
		b.cmdStart(ctx, msg)
	case "help":
		b.cmdHelp(ctx, msg)
	case "docs":
		b.cmdDocs(ctx, msg)
	case "products":
		b.cmdProducts(ctx, msg)
	case "trust":
		b.cmdTrust(ctx, msg)
	case "book":
		b.cmdBook(ctx, msg)
	case "contact":
		b.cmdContact(ctx, msg)
	case "qr":
		b.cmdQR(ctx, msg)
	case "my-orders", "myorders":
		b.cmdMyOrders(ctx, msg)
	case "status":
		b.cmdStatus(ctx, msg)
	case "logs":
		b.cmdLogs(ctx, msg, args)
	case "logs-clear":
		b.cmdLogsClear(ctx, msg)
	case "orders":
		b.cmdOrders(ctx, msg)
	case "order-details":
		b.cmdOrderDetails(ctx, msg, args)
	case "order-status":
		b.cmdOrderStatus(ctx, msg, args)
	case "admin":
		b.cmdAdminMenu(ctx, msg)
	case "admin-dashboard":
		b.cmdAdminDashboard(ctx, msg)
	case "admin-stats":
		b.cmdAdminStats(ctx, msg)
	case "admin-customers":
		b.cmdAdminCustomers(ctx, msg)
	case "admin-customer":
		b.cmdAdminCustomer(ctx, msg, args)
	case "admin-export":
		b.cmdAdminExport(ctx, msg)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tg.CallbackQuery) {
	b.registry.Observe(query.From.ID, query.From.Username)

	data := query.Data
	switch {
	case strings.HasPrefix(data, "lang_"):
		b.callbackLang(ctx, query, strings.TrimPrefix(data, "lang_"))
	case data == "products_list":
		b.callbackProducts(ctx, query)
	case data == "shows_info":
		b.callbackShows(ctx, query)
	case data == "contact_info":
		b.callbackContact(ctx, query)
	case data == "book_show":
		b.callbackBookShow(ctx, query)
	case data == "about":
		b.callbackAbout(ctx, query)
	case strings.HasPrefix(data, "order_status_"):
		b.callbackOrderStatus(ctx, query, strings.TrimPrefix(data, "order_status_"))
	case data == "admin_menu":
		b.callbackAdminMenu(ctx, query)
	case data == "admin_dashboard":
		b.callbackAdminDashboard(ctx, query)
	case data == "admin_stats":
		b.callbackAdminStats(ctx, query)
	case data == "admin_customers":
		b.callbackAdminCustomers(ctx, query)
	case data == "admin_export":
		b.callbackAdminExport(ctx, query)
	case data == "admin_all_orders":
		b.callbackAdminAllOrders(ctx, query)
	default:
		b.answerCallback(ctx, query.ID, "")
	}
}

// callbackChatID retrouve le chat d'origine d'un callback, même
// quand le message est devenu inaccessible
func callbackChatID(query *tg.CallbackQuery) int64 {
	switch query.Message.Type {
	case tg.MaybeInaccessibleMessageTypeMessage:
		if query.Message.Message != nil {
			return query.Message.Message.Chat.ID
		}
	case tg.MaybeInaccessibleMessageTypeInaccessibleMessage:
		if query.Message.InaccessibleMessage != nil {
			return query.Message.InaccessibleMessage.Chat.ID
		}
	}
	return 0
}

func callbackMessageID(query *tg.CallbackQuery) int {
	if query.Message.Type == tg.MaybeInaccessibleMessageTypeMessage && query.Message.Message != nil {
		return query.Message.Message.ID
	}
	return 0
}

// send envoie un message Markdown, les erreurs sont loguées sans bloquer
func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	_, err := b.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: tg.ParseModeMarkdownV1,
	})
	if err != nil {
		log.Printf("❌ Ошибка отправки сообщения в чат %d: %v", chatID, err)
	}
}

func (b *Bot) sendWithMarkup(ctx context.Context, chatID int64, text string, markup tg.ReplyMarkup) {
	_, err := b.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   tg.ParseModeMarkdownV1,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Printf("❌ Ошибка отправки сообщения в чат %d: %v", chatID, err)
	}
}

func (b *Bot) edit(ctx context.Context, chatID int64, messageID int, text string) {
	_, err := b.api.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: tg.ParseModeMarkdownV1,
	})
	if err != nil {
		log.Printf("❌ Ошибка редактирования сообщения %d: %v", messageID, err)
	}
}

func (b *Bot) editWithMarkup(ctx context.Context, chatID int64, messageID int, text string, markup *tg.InlineKeyboardMarkup) {
	_, err := b.api.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   tg.ParseModeMarkdownV1,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Printf("❌ Ошибка редактирования сообщения %d: %v", messageID, err)
	}
}

func (b *Bot) answerCallback(ctx context.Context, id, text string) {
	_, err := b.api.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: id,
		Text:            text,
	})
	if err != nil {
		log.Printf("⚠️ Ошибка подтверждения callback: %v", err)
	}
}

func (b *Bot) answerCallbackAlert(ctx context.Context, id, text string) {
	_, err := b.api.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: id,
		Text:            text,
		ShowAlert:       true,
	})
	if err != nil {
		log.Printf("⚠️ Ошибка подтверждения callback: %v", err)
	}
}
