package analytics

import (
	"fmt"
	"strings"

	"flowhammer_back_end/internal/models"
)

// ExportOrdersCSV sérialise les commandes: une ligne par commande,
// huit colonnes fixes, champs entre guillemets doublés
func ExportOrdersCSV(orders []models.Order) string {
	var b strings.Builder
	b.WriteString("Order#,Date,Customer,Contact,Status,Subtotal,Currency,Items Count\n")

	for _, order := range orders {
		date := order.CreatedAt.UTC().Format("02.01.2006")
		fields := []string{
			order.OrderNumber,
			date,
			order.CustomerName,
			order.CustomerContact,
			string(order.Status),
			fmt.Sprintf("%g", order.Subtotal),
			order.Currency,
			fmt.Sprintf("%d", len(order.Items())),
		}
		for i, field := range fields {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(csvQuote(field))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// csvQuote entoure un champ de guillemets et double les guillemets internes
func csvQuote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
