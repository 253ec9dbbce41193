package admin

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flowhammer_back_end/internal/admins"
	"flowhammer_back_end/internal/analytics"
	"flowhammer_back_end/internal/database"
	"flowhammer_back_end/internal/middleware"
	"flowhammer_back_end/internal/models"
	"flowhammer_back_end/internal/utils"
)

// Handler porte les dépendances du back-office web
type Handler struct {
	Orders   *database.OrderStore
	Registry *admins.Registry
	BotToken string
}

//
// 🟢 POST /api/admin/login - initData signées + allowlist → JWT 24h
//
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		InitData string `json:"initData"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.InitData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "initData requises"})
		return
	}

	values, err := middleware.ValidateInitData(input.InitData, h.BotToken)
	if err != nil {
		log.Printf("⚠️ Login admin refusé: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "initData invalides"})
		return
	}

	var user middleware.TelegramUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Champ user illisible"})
		return
	}

	h.Registry.Observe(user.ID, user.Username)
	decision := h.Registry.Authorize(user.ID, user.Username)
	if !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		return
	}

	token, err := utils.GenerateAdminJWT(user.ID, user.Username)
	if err != nil {
		log.Printf("❌ Erreur génération JWT: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "username": user.Username})
}

//
// 🟢 GET /api/admin/stats
//
func (h *Handler) GetStats(c *gin.Context) {
	orders, err := h.Orders.GetAllOrders()
	if err != nil {
		log.Printf("❌ Erreur récupération commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération statistiques"})
		return
	}
	c.JSON(http.StatusOK, analytics.ComputeStats(orders))
}

//
// 🟢 GET /api/admin/orders
//
func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.Orders.GetAllOrders()
	if err != nil {
		log.Printf("❌ Erreur récupération commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderResponse{Order: orders[i], Items: orders[i].Items()})
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

//
// 🟢 GET /api/admin/orders/:number
//
func (h *Handler) GetOrderByNumber(c *gin.Context) {
	order, err := h.Orders.GetOrderByNumber(c.Param("number"))
	if err != nil {
		log.Printf("❌ Erreur récupération commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	c.JSON(http.StatusOK, orderResponse{Order: *order, Items: order.Items()})
}

//
// 🟢 PATCH /api/admin/orders/:number/status
//
func (h *Handler) UpdateStatus(c *gin.Context) {
	order, err := h.Orders.GetOrderByNumber(c.Param("number"))
	if err != nil {
		log.Printf("❌ Erreur récupération commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	status, ok := models.ParseStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}

	affected, err := h.Orders.UpdateOrderStatus(order.ID, status)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_number": order.OrderNumber, "status": string(status)})
}

//
// 🟢 GET /api/admin/export
//
func (h *Handler) ExportCSV(c *gin.Context) {
	orders, err := h.Orders.GetAllOrders()
	if err != nil {
		log.Printf("❌ Erreur export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur export"})
		return
	}

	csv := analytics.ExportOrdersCSV(orders)
	filename := fmt.Sprintf("orders_export_%s.csv", uuid.NewString())

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

type orderResponse struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}
