package bot

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram/bot"
	tg "github.com/go-telegram/bot/models"

	"flowhammer_back_end/internal/lang"
	"flowhammer_back_end/internal/models"
	"flowhammer_back_end/internal/utils"
)

const (
	docsURL        = "https://www.notion.so/FlowHammer-2f0a47a7bb498080bd74ed0ccd8f9174"
	helmetImageURL = "https://i.ibb.co/mrBvbTL5/2026-01-23-03-55-03.jpg"
)

// userLang résout la langue à partir du magasin, puis du locale Telegram
func (b *Bot) userLang(ctx context.Context, from *tg.User) string {
	if from == nil {
		return lang.DefaultLang
	}
	return b.langs.Get(ctx, from.ID, from.LanguageCode)
}

// replyShopKeyboard construit le clavier persistant des deux écrans web_app
func replyShopKeyboard(code, baseURL string) *tg.ReplyKeyboardMarkup {
	return &tg.ReplyKeyboardMarkup{
		Keyboard: [][]tg.KeyboardButton{
			{
				{Text: lang.T(code, "buttons.shop"), WebApp: &tg.WebAppInfo{URL: baseURL}},
				{Text: lang.T(code, "buttons.order"), WebApp: &tg.WebAppInfo{URL: baseURL + "#booking"}},
			},
		},
		ResizeKeyboard: true,
	}
}

// cmdStart envoie le choix de langue, le menu inline et le clavier web_app
func (b *Bot) cmdStart(ctx context.Context, msg *tg.Message) {
	chatID := msg.Chat.ID
	code := b.userLang(ctx, msg.From)

	languageKeyboard := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{
				{Text: "🇷🇺 Русский", CallbackData: "lang_ru"},
				{Text: "🇬🇧 English", CallbackData: "lang_en"},
				{Text: "🇻🇳 Tiếng Việt", CallbackData: "lang_vi"},
			},
		},
	}

	var prompt string
	switch code {
	case lang.VI:
		prompt = "🌐 *Chọn ngôn ngữ / Выберите язык / Select language*"
	case lang.EN:
		prompt = "🌐 *Select language / Выберите язык / Chọn ngôn ngữ*"
	default:
		prompt = "🌐 *Выберите язык / Chọn ngôn ngữ / Select language*"
	}
	b.sendWithMarkup(ctx, chatID, prompt, languageKeyboard)

	inlineKeyboard := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{
				{Text: lang.T(code, "buttons.products"), CallbackData: "products_list"},
				{Text: lang.T(code, "buttons.contacts"), CallbackData: "contact_info"},
			},
		},
	}
	b.sendWithMarkup(ctx, chatID, lang.T(code, "start.title")+"\n\n"+lang.T(code, "start.description"), inlineKeyboard)

	b.sendWithMarkup(ctx, chatID, "🛒 "+lang.T(code, "start.catalog"), replyShopKeyboard(code, b.webAppURL))
}

func (b *Bot) cmdHelp(ctx context.Context, msg *tg.Message) {
	text := "📚 Доступные команды:\n" +
		"/start - Главное меню\n" +
		"/products - Наши три звёзды (массажные палки)\n" +
		"/trust - Почему вам стоит нам верить\n" +
		"/book - Оформить заказ\n" +
		"/contact - Контактная информация\n" +
		"/my-orders - Мои заказы\n" +
		"/logs - Показать логи сообщений\n" +
		"/logs-clear - Очистить логи\n" +
		"/status - Диагностика работы бота\n" +
		"/help - Справка\n\n" +
		"═══════════════════════════════\n" +
		"📖 ПОЛНАЯ ДОКУМЕНТАЦИЯ:\n" +
		"🔗 " + docsURL + "\n\n" +
		"🌐 ВЕБ МАГАЗИН:\n" +
		"🔗 " + b.webAppURL

	keyboard := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{
				{Text: "📖 Полная Документация", URL: docsURL},
				{Text: "🌐 Веб Магазин", URL: b.webAppURL},
			},
		},
	}

	// Текст справки без Markdown: URL со спецсимволами ломают разметку
	_, err := b.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		log.Printf("❌ Ошибка отправки справки: %v", err)
	}
}

func (b *Bot) cmdDocs(ctx context.Context, msg *tg.Message) {
	text := "📖 *ПОЛНАЯ ДОКУМЕНТАЦИЯ FLOWHAMMER SHOP*\n\n" +
		"🔗 Нажми кнопку ниже чтобы открыть Notion\n\n" +
		"Там найдешь:\n" +
		"✅ Полный обзор продукта\n" +
		"✅ Как пользоваться\n" +
		"✅ Все команды\n" +
		"✅ FAQ и примеры\n" +
		"✅ Информацию для инвесторов"

	keyboard := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{{Text: "📖 Открыть Документацию", URL: docsURL}},
			{{Text: "🌐 Веб Магазин", URL: b.webAppURL}},
		},
	}
	b.sendWithMarkup(ctx, msg.Chat.ID, text, keyboard)
}

// productsMessage est le descriptif complet du catalogue, partagé
// entre /products et le bouton products_list
func productsMessage() string {
	return "🛍️ *ТРИ ЗВЕЗДЫ НАШЕГО МАГАЗИНА*\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"🧊 *КОМПАКТНАЯ: Mini Pocket (12.99$)*\n" +
		"📏 Длина: 10 см — в сумку, в карман\n" +
		"✨ Идеальна для: офиса, путешествий, быстрых сессий\n" +
		"💪 Материал: пластик ABS + силикон\n" +
		"⭐ Техника: удобная в ладони\n\n" +
		"💆 *СРЕДНЯЯ: Therapy Ergonomic (24.99$)*\n" +
		"📏 Длина: 30 см — универсальная\n" +
		"✨ Идеальна для: дома, спортзала, повседневного использования\n" +
		"💪 Материал: гибкий корпус + мягкий наконечник\n" +
		"⭐ Техника: точное попадание в триггер-точки\n\n" +
		"🥇 *ПРОФЕССИОНАЛЬНАЯ: Acupressure Pro (19.99$)*\n" +
		"📏 Длина: 45 см — для серьёзной работы\n" +
		"✨ Идеальна для: глубокого массажа, спины, ног\n" +
		"💪 Материал: хардкорный ABS + жёсткий силикон\n" +
		"⭐ Техника: традиционная акупрессура\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"🎯 *ПЛЮС: Character Helmet Cover (8.99$)*\n" +
		"😊 Милый дизайн full-face для мотоциклистов\n" +
		"🛡️ Защита шлема + стиль на фото\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"✅ *3000+ довольных клиентов*\n" +
		"✅ Гарантия качества 30 дней\n" +
		"✅ Бесплатная доставка на первый заказ\n\n" +
		"Нажми кнопку ниже чтобы добавить в корзину!"
}

// sendProducts envoie le catalogue puis la photo du nashlemnik
func (b *Bot) sendProducts(ctx context.Context, chatID int64) {
	keyboard := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{{Text: "🛒 Открыть магазин", WebApp: &tg.WebAppInfo{URL: b.webAppURL + "#products"}}},
		},
	}
	b.sendWithMarkup(ctx, chatID, productsMessage(), keyboard)

	log.Println("📸 Отправляю фото товара...")
	_, err := b.api.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &tg.InputFileString{Data: helmetImageURL},
		Caption:   "🧸 *Character Helmet Cover - Стиль & Защита*\n💙 Милый дизайн | ✨ Высокое качество\n🏍️ Для мотоциклистов | 💰 8.99$",
		ParseMode: tg.ParseModeMarkdownV1,
	})
	if err != nil {
		log.Printf("❌ Ошибка фото: %v", err)
		b.send(ctx, chatID, "🧸 *Character Helmet Cover*\n💙 Милый дизайн full-face шлема\n💰 Цена: 8.99$")
	}
}

func (b *Bot) cmdProducts(ctx context.Context, msg *tg.Message) {
	b.sendProducts(ctx, msg.Chat.ID)
}

func (b *Bot) cmdTrust(ctx context.Context, msg *tg.Message) {
	text := "💎 *ПОЧЕМУ МЫ — ВАШ ВЫБОР*\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"🏆 *ЭКСПЕРТ В ДЕЛЕ*\n" +
		"Наша команда прошла тренинги в Таиланде и Вьетнаме.\n" +
		"Каждый товар тестирован лично.\n\n" +
		"⭐ *ОТЗЫВЫ РЕАЛЬНЫХ ЛЮДЕЙ*\n" +
		"\"Палка помогла избавиться от боли в спине!\" — Мария\n" +
		"\"Беру везде с собой, спасает от стресса!\" — Том\n" +
		"\"Качество — выше всяких похвал!\" — Анна\n\n" +
		"🔐 *ДОВЕРИЕ = КАЧЕСТВО*\n" +
		"✅ Сертифицированные материалы (не токсичны)\n" +
		"✅ Прошли дерматологические тесты\n" +
		"✅ Соответствуют международным стандартам\n\n" +
		"💰 *СПРАВЕДЛИВАЯ ЦЕНА*\n" +
		"Прямые поставки от производителя = минимум наценки.\n" +
		"Промокод WELCOME10 даёт вам 10% на первый заказ.\n\n" +
		"🚀 *БЫСТРО И УДОБНО*\n" +
		"📦 Доставка в Da Nang за 24-48 часов\n" +
		"📦 По Вьетнаму: 2-3 дня\n" +
		"📦 Международная доставка доступна\n\n" +
		"❤️ *ГАРАНТИЯ 30 ДНЕЙ*\n" +
		"Не доволен — возвращаем деньги, без вопросов.\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"Давай начнём твой путь к здоровью! 💪"
	b.send(ctx, msg.Chat.ID, text)
}

func (b *Bot) cmdBook(ctx context.Context, msg *tg.Message) {
	keyboard := &tg.ReplyKeyboardMarkup{
		Keyboard: [][]tg.KeyboardButton{
			{{Text: "📋 Забронировать Шоу", WebApp: &tg.WebAppInfo{URL: b.webAppURL + "#booking"}}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
	b.sendWithMarkup(ctx, msg.Chat.ID, "📋 Нажми кнопку ниже чтобы открыть форму бронирования:", keyboard)
}

func contactMessage() string {
	return "💎 *КОНТАКТЫ FLOW HAMMER SHOP*\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"👤 *Flow Hammer Shop Da Nang*\n" +
		"🛍️ Массажные палки & Нашлемники\n\n" +
		"📧 *Email:*\n" +
		"`wellness.shop.dn@gmail.com`\n\n" +
		"📱 *Телефон:*\n" +
		"`+84 949197496`\n\n" +
		"📍 *Адрес:*\n" +
		"Da Nang, Vietnam\n\n" +
		"🕐 *Режим работы:*\n" +
		"Ежедневно с 09:00 до 21:00\n\n" +
		"💬 *Telegram Support:*\n" +
		"Ответим в течении 1 часа\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"🛒 Для заказа используй команду `/book`\n" +
		"⭐ Используй код *WELCOME10* для скидки 10%\n" +
		"🌐 Посети наш магазин через веб-приложение"
}

func (b *Bot) cmdContact(ctx context.Context, msg *tg.Message) {
	b.send(ctx, msg.Chat.ID, contactMessage())
}

// cmdQR envoie un QR code pointant vers la boutique web
func (b *Bot) cmdQR(ctx context.Context, msg *tg.Message) {
	png, err := utils.GenerateShopQR(b.webAppURL)
	if err != nil {
		log.Printf("❌ Ошибка генерации QR: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Не удалось сгенерировать QR-код")
		return
	}

	_, err = b.api.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:    msg.Chat.ID,
		Photo:     &tg.InputFileUpload{Filename: "flowhammer_shop_qr.png", Data: bytes.NewReader(png)},
		Caption:   "📱 *Отсканируй чтобы открыть магазин*\n🔗 " + b.webAppURL,
		ParseMode: tg.ParseModeMarkdownV1,
	})
	if err != nil {
		log.Printf("❌ Ошибка отправки QR: %v", err)
	}
}

func (b *Bot) cmdMyOrders(ctx context.Context, msg *tg.Message) {
	if msg.From == nil {
		return
	}
	code := b.userLang(ctx, msg.From)

	orders, err := b.store.GetUserOrders(msg.From.ID)
	if err != nil {
		log.Printf("❌ Ошибка при получении заказов пользователя: %v", err)
		b.send(ctx, msg.Chat.ID, "❌ Ошибка при получении ваших заказов")
		return
	}

	if len(orders) == 0 {
		b.send(ctx, msg.Chat.ID, lang.T(code, "myorders.empty"))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 *МОИ ЗАКАЗЫ* (всего: %d)\n\n", len(orders))
	for i, order := range orders {
		fmt.Fprintf(&sb, "%d. Заказ #%s\n", i+1, order.OrderNumber)
		fmt.Fprintf(&sb, "   %s Статус: %s\n", order.Status.Emoji(), order.Status.Label("ru"))
		fmt.Fprintf(&sb, "   💰 Сумма: $%g %s\n", order.Subtotal, order.Currency)
		fmt.Fprintf(&sb, "   📅 Дата: %s\n\n", order.CreatedAt.Format("02.01.2006"))
	}
	sb.WriteString("Используй /order-status <номер> чтобы узнать больше о конкретном заказе")

	b.send(ctx, msg.Chat.ID, sb.String())
}

func (b *Bot) cmdStatus(ctx context.Context, msg *tg.Message) {
	var sb strings.Builder
	sb.WriteString("🤖 *Статус Flow Hammer Shop Bot*\n\n")
	fmt.Fprintf(&sb, "📊 Всего логов в памяти: %d\n", b.logs.Len())
	fmt.Fprintf(&sb, "💬 Тип текущего чата: %s\n", msg.Chat.Type)
	fmt.Fprintf(&sb, "📍 Chat ID: %d\n\n", msg.Chat.ID)
	sb.WriteString("ℹ️ *ВАЖНО!*\n")
	sb.WriteString("Бот логирует сообщения из:\n")
	sb.WriteString("✅ Супергрупп (supergroup)\n")
	sb.WriteString("✅ Обычных групп (group)\n")
	sb.WriteString("✅ Приватных каналов (private)\n")
	sb.WriteString("✅ Публичных каналов (channel) - если бот админ\n\n")
	sb.WriteString("⚠️ *Если сообщений нет:*\n")
	sb.WriteString("1. Проверь что бот добавлен в канал/группу\n")
	sb.WriteString("2. В каналах - бот должен быть админом\n")
	sb.WriteString("3. Убедись что люди пишут сообщения")

	b.send(ctx, msg.Chat.ID, sb.String())
}

func (b *Bot) cmdLogs(ctx context.Context, msg *tg.Message, args string) {
	if b.logs.Len() == 0 {
		b.send(ctx, msg.Chat.ID, "📭 Пока нет логов сообщений")
		return
	}

	limit := 10
	if n, err := strconv.Atoi(args); err == nil && n > 0 {
		limit = n
	}

	recent := b.logs.Recent(limit)
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *Последние %d сообщений:*\n\n", len(recent))
	for i, entry := range recent {
		fmt.Fprintf(&sb, "%d. 📅 %s\n", i+1, entry.Timestamp.Format("02.01.2006 15:04:05"))
		fmt.Fprintf(&sb, "   💬 Канал: %s\n", entry.ChatTitle)
		fmt.Fprintf(&sb, "   👤 От: @%s\n", entry.UserName)
		fmt.Fprintf(&sb, "   📝 Тип: %s\n", entry.MessageType)
		fmt.Fprintf(&sb, "   💭 Текст: %s\n\n", truncate(entry.Text, 50))
	}
	fmt.Fprintf(&sb, "\n*Всего логов в памяти: %d*", b.logs.Len())

	b.send(ctx, msg.Chat.ID, sb.String())
}

func (b *Bot) cmdLogsClear(ctx context.Context, msg *tg.Message) {
	cleared := b.logs.Clear()
	b.send(ctx, msg.Chat.ID, fmt.Sprintf("🗑️ *Логи очищены!*\n\nУдалено записей: %d", cleared))
}

// ===== Callbacks publics =====

func (b *Bot) callbackLang(ctx context.Context, query *tg.CallbackQuery, code string) {
	if !b.langs.Set(ctx, query.From.ID, code) {
		b.answerCallbackAlert(ctx, query.ID, "⚠️ Неизвестный язык")
		return
	}

	var ack, confirmation string
	switch code {
	case lang.EN:
		ack = "✅ Language: English"
		confirmation = "🌐 ✅ *Language: English (EN)*"
	case lang.VI:
		ack = "✅ Ngôn ngữ: Tiếng Việt"
		confirmation = "🌐 ✅ *Ngôn ngữ: Tiếng Việt (VI)*"
	default:
		ack = "✅ Язык: Русский"
		confirmation = "🌐 ✅ *Язык установлен: Русский (РУ)*"
	}

	b.answerCallbackAlert(ctx, query.ID, ack)
	b.edit(ctx, callbackChatID(query), callbackMessageID(query), confirmation)
}

func (b *Bot) callbackProducts(ctx context.Context, query *tg.CallbackQuery) {
	log.Println("✅ Обработка: products_list")
	b.answerCallback(ctx, query.ID, "")
	b.sendProducts(ctx, callbackChatID(query))
}

func (b *Bot) callbackShows(ctx context.Context, query *tg.CallbackQuery) {
	log.Println("✅ Обработка: shows_info")
	b.answerCallback(ctx, query.ID, "")
	text := "🛍️ *ТРИ ЗВЕЗДЫ НАШЕГО МАГАЗИНА*\n\n" +
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
		"🧊 *КОМПАКТНАЯ: Mini Pocket (12.99$)* — 10 см\n" +
		"✨ Карман, спешка, путешествия\n\n" +
		"💆 *СРЕДНЯЯ: Therapy Ergonomic (24.99$)* — 30 см\n" +
		"✨ Домашняя работа, спортзал, повседневное\n\n" +
		"🥇 *ПРОФЕССИОНАЛЬНАЯ: Acupressure Pro (19.99$)* — 45 см\n" +
		"✨ Глубокий массаж, спина, ноги\n\n" +
		"🎯 *ПЛЮС: Character Helmet Cover (8.99$)*\n" +
		"😊 Фирменный нашлемник для мотоциклистов\n\n" +
		"✅ Первый заказ: промокод WELCOME10 = −10%\n" +
		"✅ Доставка бесплатна от 50$"
	b.send(ctx, callbackChatID(query), text)
}

func (b *Bot) callbackContact(ctx context.Context, query *tg.CallbackQuery) {
	log.Println("✅ Обработка: contact_info")
	b.answerCallback(ctx, query.ID, "")
	b.send(ctx, callbackChatID(query), contactMessage())
}

func (b *Bot) callbackBookShow(ctx context.Context, query *tg.CallbackQuery) {
	b.answerCallback(ctx, query.ID, "📋 Откроется форма заказа...")
	keyboard := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{{Text: "🛒 Перейти к заказу", WebApp: &tg.WebAppInfo{URL: b.webAppURL + "#booking"}}},
		},
	}
	b.sendWithMarkup(ctx, callbackChatID(query), "Нажми кнопку чтобы оформить заказ:", keyboard)
}

func (b *Bot) callbackAbout(ctx context.Context, query *tg.CallbackQuery) {
	b.answerCallback(ctx, query.ID, "")
	keyboard := &tg.InlineKeyboardMarkup{
		InlineKeyboard: [][]tg.InlineKeyboardButton{
			{{Text: "🌐 Больше информации", WebApp: &tg.WebAppInfo{URL: b.webAppURL}}},
		},
	}
	text := "💎 *FLOW HAMMER SHOP DA NANG*\n\n" +
		"Профессиональные массажные палки + Фирменный нашлемник\n\n" +
		"✨ 3 хедлайнера по длине (10см, 30см, 45см)\n" +
		"💪 Для спортсменов, йогов, путешественников\n" +
		"🏆 3000+ довольных клиентов\n\n" +
		"Гарантия качества:\n" +
		"✅ 30-дневная гарантия\n" +
		"✅ Бесплатная доставка от 50$\n" +
		"✅ Сертифицированные материалы\n" +
		"✅ Сеть 4* отзывов"
	b.sendWithMarkup(ctx, callbackChatID(query), text, keyboard)
}

// formatItemsList rend la liste des articles au format des confirmations
func formatItemsList(items []models.OrderItem) string {
	var sb strings.Builder
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. *%s*\n", i+1, item.Title)
		fmt.Fprintf(&sb, "   Количество: %d\n", item.Qty)
		fmt.Fprintf(&sb, "   Цена: $%g\n\n", item.LineTotal)
	}
	return sb.String()
}
