package analytics

import (
	"fmt"
	"sort"
	"strings"

	"flowhammer_back_end/internal/models"
)

const separator = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"

// FormatDashboardMessage rend le rapport multi-sections du tableau de bord.
// Libellés figés en russe, indépendants de la préférence de langue du chat.
func FormatDashboardMessage(stats Stats) string {
	var b strings.Builder

	b.WriteString("📊 *УПРАВЛЕНЧЕСКАЯ ПАНЕЛЬ FLOWHAMMERR SHOP*\n\n")

	b.WriteString(separator)
	b.WriteString("💰 *ФИНАНСОВЫЕ ПОКАЗАТЕЛИ*\n")
	b.WriteString(separator)
	fmt.Fprintf(&b, "📈 Всего заказов: *%d*\n", stats.TotalOrders)
	fmt.Fprintf(&b, "💵 Общая выручка: *$%.2f*\n", stats.TotalRevenue)
	fmt.Fprintf(&b, "💳 Средний чек: *$%.2f*\n\n", stats.AverageOrderValue)

	b.WriteString(separator)
	b.WriteString("📋 *СТАТУСЫ ЗАКАЗОВ*\n")
	b.WriteString(separator)
	for _, status := range models.AllStatuses {
		fmt.Fprintf(&b, "%s %s: *%d*\n", status.Emoji(), status.Label("ru"), stats.OrdersByStatus[status])
	}

	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("📊 *МЕТРИКИ КОНВЕРСИИ*\n")
	b.WriteString(separator)
	fmt.Fprintf(&b, "✅ Завершено: *%.1f%%*\n", stats.Conversion.CompletionRate)
	fmt.Fprintf(&b, "⏳ В процессе: *%.1f%%*\n", stats.Conversion.InProgressRate)
	fmt.Fprintf(&b, "❌ Отменено: *%.1f%%*\n\n", stats.Conversion.CancellationRate)

	if len(stats.TopCustomers) > 0 {
		b.WriteString(separator)
		b.WriteString("👥 *ТОП ПОКУПАТЕЛИ*\n")
		b.WriteString(separator)
		for idx, customer := range capCustomers(stats.TopCustomers, 5) {
			fmt.Fprintf(&b, "%d. %s\n", idx+1, customer.Name)
			fmt.Fprintf(&b, "   📞 %s\n", orNA(customer.Contact))
			fmt.Fprintf(&b, "   🛒 %d заказ(ов) / $%.2f\n", customer.Count, customer.TotalSpent)
		}
		b.WriteString("\n")
	}

	if len(stats.TopProducts) > 0 {
		b.WriteString(separator)
		b.WriteString("🏆 *ТОП ПРОДУКТЫ*\n")
		b.WriteString(separator)
		for _, product := range capProducts(stats.TopProducts, 5) {
			fmt.Fprintf(&b, "• %s\n", product.Title)
			fmt.Fprintf(&b, "  📦 %d шт. / $%.2f\n", product.Qty, product.Revenue)
		}
	}

	return b.String()
}

// FormatDetailedStats rend la vue détaillée: revenus des 7 derniers jours
// et classement complet des produits
func FormatDetailedStats(stats Stats) string {
	var b strings.Builder

	b.WriteString("📊 *ДЕТАЛЬНАЯ СТАТИСТИКА*\n\n")
	b.WriteString(separator)
	b.WriteString("💵 *ВЫРУЧКА ПО ДНЯМ (ПОСЛЕДНИЕ 7)*\n")
	b.WriteString(separator)

	days := make([]string, 0, len(stats.RevenueByDay))
	for day := range stats.RevenueByDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if len(days) > 7 {
		days = days[:7]
	}
	for _, day := range days {
		fmt.Fprintf(&b, "📅 %s: *$%.2f* (%d заказов)\n", day, stats.RevenueByDay[day], stats.OrdersByDay[day])
	}

	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("🏆 *ПРОДУКТЫ - ПОЛНЫЙ РЕЙТИНГ*\n")
	b.WriteString(separator)
	for idx, product := range stats.TopProducts {
		fmt.Fprintf(&b, "%d. *%s*\n", idx+1, product.Title)
		fmt.Fprintf(&b, "   📦 Продано: %d шт.\n", product.Qty)
		fmt.Fprintf(&b, "   💰 Выручка: $%.2f\n\n", product.Revenue)
	}

	return b.String()
}

// FormatCustomersMessage rend l'analyse clients
func FormatCustomersMessage(stats Stats) string {
	var b strings.Builder

	b.WriteString("👥 *АНАЛИЗ КЛИЕНТОВ*\n\n")
	b.WriteString(separator)
	fmt.Fprintf(&b, "📊 Всего уникальных клиентов: *%d*\n\n", stats.UniqueCustomers)

	b.WriteString(separator)
	b.WriteString("🌟 *ТОП 10 ПОКУПАТЕЛЕЙ (ПОЛНЫЙ СПИСОК)*\n")
	b.WriteString(separator)
	for idx, customer := range stats.TopCustomers {
		fmt.Fprintf(&b, "%d. *%s*\n", idx+1, customer.Name)
		fmt.Fprintf(&b, "   📞 %s\n", orNA(customer.Contact))
		fmt.Fprintf(&b, "   🛒 Заказов: %d\n", customer.Count)
		fmt.Fprintf(&b, "   💳 Потратил: $%.2f\n", customer.TotalSpent)
		fmt.Fprintf(&b, "   💲 Средний заказ: $%.2f\n\n", customer.TotalSpent/float64(customer.Count))
	}

	return b.String()
}

func capCustomers(customers []CustomerStat, n int) []CustomerStat {
	if len(customers) > n {
		return customers[:n]
	}
	return customers
}

func capProducts(products []ProductStat, n int) []ProductStat {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
