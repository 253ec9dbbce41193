package lang

// Tables de traduction du bot (en/ru/vi).
// Les écrans admin restent en russe, comme le tableau de bord.
var locales = map[string]map[string]string{
	EN: {
		"start.title":       "💎 *FLOW HAMMER SHOP DA NANG*",
		"start.description": "Professional massage sticks and the signature helmet cover. Open the shop, fill your cart and place your order right here in Telegram.",
		"start.catalog":     "Open the catalog with the buttons below:",
		"buttons.products":  "🛍️ Products",
		"buttons.contacts":  "💎 Contacts",
		"buttons.shop":      "🛒 Shop",
		"buttons.order":     "🛒 Order",
		"order.thanks":      "Thank you for your order",
		"order.error":       "❌ Error while processing your order. Please try again later.",
		"myorders.empty":    "📭 You have no orders yet\n\n🛒 Use /start to open the catalog and place an order",
	},
	RU: {
		"start.title":       "💎 *FLOW HAMMER SHOP DA NANG*",
		"start.description": "Профессиональные массажные палки и фирменный нашлемник. Открой магазин, собери корзину и оформи заказ прямо в Telegram.",
		"start.catalog":     "Открой каталог кнопками ниже:",
		"buttons.products":  "🛍️ Товары",
		"buttons.contacts":  "💎 Контакты",
		"buttons.shop":      "🛒 Магазин",
		"buttons.order":     "🛒 Оформить заказ",
		"order.thanks":      "Спасибо за заказ",
		"order.error":       "❌ Ошибка при обработке заказа. Пожалуйста, попробуйте позже.",
		"myorders.empty":    "📭 У вас пока нет заказов\n\n🛒 Используй /start чтобы перейти в каталог и сделать заказ",
	},
	VI: {
		"start.title":       "💎 *FLOW HAMMER SHOP DA NANG*",
		"start.description": "Gậy massage chuyên nghiệp và vỏ bọc mũ bảo hiểm đặc trưng. Mở cửa hàng, chọn sản phẩm và đặt hàng ngay trong Telegram.",
		"start.catalog":     "Mở danh mục bằng các nút bên dưới:",
		"buttons.products":  "🛍️ Sản phẩm",
		"buttons.contacts":  "💎 Liên hệ",
		"buttons.shop":      "🛒 Cửa hàng",
		"buttons.order":     "🛒 Đặt hàng",
		"order.thanks":      "Cảm ơn bạn đã đặt hàng",
		"order.error":       "❌ Lỗi khi xử lý đơn hàng. Vui lòng thử lại sau.",
		"myorders.empty":    "📭 Bạn chưa có đơn hàng nào\n\n🛒 Dùng /start để mở danh mục và đặt hàng",
	},
}

// T retourne la traduction d'une clé (la clé elle-même si absente)
func T(code, key string) string {
	locale, ok := locales[code]
	if !ok {
		locale = locales[DefaultLang]
	}
	if value, ok := locale[key]; ok {
		return value
	}
	return key
}
