package analytics

import (
	"math"
	"sort"

	"flowhammer_back_end/internal/models"
)

// CustomerStat agrège les commandes d'un client (clé: nom client, sinon username)
type CustomerStat struct {
	Name       string  `json:"name"`
	Contact    string  `json:"contact"`
	Count      int     `json:"count"`
	TotalSpent float64 `json:"total_spent"`
}

// ProductStat agrège les ventes d'un produit par titre figé.
// Un produit renommé fragmente son historique: la clé est le titre, pas l'id.
type ProductStat struct {
	Title   string  `json:"title"`
	Qty     int     `json:"qty"`
	Revenue float64 `json:"revenue"`
}

// ConversionMetrics sont les taux dérivés, en pourcentage à une décimale
type ConversionMetrics struct {
	CompletionRate   float64 `json:"completion_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	InProgressRate   float64 `json:"in_progress_rate"`
}

// Stats est le résultat complet de l'agrégation
type Stats struct {
	TotalOrders       int                      `json:"total_orders"`
	TotalRevenue      float64                  `json:"total_revenue"`
	AverageOrderValue float64                  `json:"average_order_value"`
	OrdersByStatus    map[models.Status]int    `json:"orders_by_status"`
	OrdersByDay       map[string]int           `json:"orders_by_day"`
	RevenueByDay      map[string]float64       `json:"revenue_by_day"`
	TopCustomers      []CustomerStat           `json:"top_customers"`
	TopProducts       []ProductStat            `json:"top_products"`
	UniqueCustomers   int                      `json:"unique_customers"`
	Conversion        ConversionMetrics        `json:"conversion_metrics"`
}

// ComputeStats agrège l'ensemble des commandes en une seule passe.
// Fonction pure: aucun accès base, aucun état partagé.
func ComputeStats(orders []models.Order) Stats {
	stats := Stats{
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[models.Status]int, len(models.AllStatuses)),
		OrdersByDay:    make(map[string]int),
		RevenueByDay:   make(map[string]float64),
		TopCustomers:   []CustomerStat{},
		TopProducts:    []ProductStat{},
	}

	for _, status := range models.AllStatuses {
		stats.OrdersByStatus[status] = 0
	}

	customerIndex := make(map[string]int)
	productIndex := make(map[string]int)

	for _, order := range orders {
		// Chiffre d'affaires et statuts; un statut hors énumération
		// compte dans le total mais pas dans la ventilation
		stats.TotalRevenue += order.Subtotal
		if _, known := stats.OrdersByStatus[order.Status]; known {
			stats.OrdersByStatus[order.Status]++
		}

		// Ventilation par jour calendaire UTC
		day := order.CreatedAt.UTC().Format("2006-01-02")
		stats.OrdersByDay[day]++
		stats.RevenueByDay[day] += order.Subtotal

		// Top clients
		customerKey := order.CustomerName
		if customerKey == "" {
			customerKey = order.Username
		}
		if idx, ok := customerIndex[customerKey]; ok {
			stats.TopCustomers[idx].Count++
			stats.TopCustomers[idx].TotalSpent += order.Subtotal
		} else {
			customerIndex[customerKey] = len(stats.TopCustomers)
			stats.TopCustomers = append(stats.TopCustomers, CustomerStat{
				Name:       customerKey,
				Contact:    order.CustomerContact,
				Count:      1,
				TotalSpent: order.Subtotal,
			})
		}

		// Top produits (les articles corrompus sont ignorés)
		for _, item := range order.Items() {
			if idx, ok := productIndex[item.Title]; ok {
				stats.TopProducts[idx].Qty += item.Qty
				stats.TopProducts[idx].Revenue += item.LineTotal
			} else {
				productIndex[item.Title] = len(stats.TopProducts)
				stats.TopProducts = append(stats.TopProducts, ProductStat{
					Title:   item.Title,
					Qty:     item.Qty,
					Revenue: item.LineTotal,
				})
			}
		}
	}

	stats.UniqueCustomers = len(stats.TopCustomers)

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = round2(stats.TotalRevenue / float64(stats.TotalOrders))
	}

	sort.SliceStable(stats.TopCustomers, func(i, j int) bool {
		return stats.TopCustomers[i].TotalSpent > stats.TopCustomers[j].TotalSpent
	})
	if len(stats.TopCustomers) > 10 {
		stats.TopCustomers = stats.TopCustomers[:10]
	}

	sort.SliceStable(stats.TopProducts, func(i, j int) bool {
		return stats.TopProducts[i].Qty > stats.TopProducts[j].Qty
	})
	if len(stats.TopProducts) > 10 {
		stats.TopProducts = stats.TopProducts[:10]
	}

	total := float64(stats.TotalOrders)
	if total > 0 {
		delivered := float64(stats.OrdersByStatus[models.StatusDelivered])
		cancelled := float64(stats.OrdersByStatus[models.StatusCancelled])
		inProgress := float64(stats.OrdersByStatus[models.StatusPending] +
			stats.OrdersByStatus[models.StatusConfirmed] +
			stats.OrdersByStatus[models.StatusProcessing])

		stats.Conversion = ConversionMetrics{
			CompletionRate:   round1(delivered / total * 100),
			CancellationRate: round1(cancelled / total * 100),
			InProgressRate:   round1(inProgress / total * 100),
		}
	}

	return stats
}

// CustomerDetails est la fiche détaillée d'un client
type CustomerDetails struct {
	Name          string
	Username      string
	Contact       string
	OrderCount    int
	TotalSpent    float64
	Orders        []models.Order
	LastOrderDate string
}

// GetCustomerDetails retrouve un client par username ou nom saisi au checkout
func GetCustomerDetails(orders []models.Order, username string) *CustomerDetails {
	var matched []models.Order
	for _, o := range orders {
		if o.Username == username || o.CustomerName == username {
			matched = append(matched, o)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	details := &CustomerDetails{
		Name:     matched[0].CustomerName,
		Username: matched[0].Username,
		Contact:  matched[0].CustomerContact,
		Orders:   matched,
	}

	var last string
	for _, o := range matched {
		details.TotalSpent += o.Subtotal
		day := o.CreatedAt.UTC().Format("2006-01-02")
		if day > last {
			last = day
		}
	}
	details.OrderCount = len(matched)
	details.LastOrderDate = last
	return details
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
