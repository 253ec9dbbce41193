package shop

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"flowhammer_back_end/internal/models"
)

//
// 🟢 POST /api/checkout - même pipeline que web_app_data
//
func (h *Handler) Checkout(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corps illisible"})
		return
	}

	payload, err := models.ParseCheckoutPayload(raw)
	if err != nil {
		log.Printf("❌ Payload checkout invalide: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload invalide"})
		return
	}
	if len(payload.Cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	userID := c.GetInt64("telegram_id")
	username := c.GetString("telegram_username")

	// Pas d'identité de chat via HTTP: le client n'est pas notifié
	// dans Telegram, la diffusion admin a bien lieu
	orderNumber, err := h.Bot.ProcessCheckout(c.Request.Context(), payload, userID, username, 0)
	if err != nil {
		log.Printf("❌ Erreur checkout HTTP: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la commande"})
		return
	}

	// Le panier serveur a été soumis, on le vide
	h.Carts.Clear(context.Background(), c.GetString("cart_key"))

	c.JSON(http.StatusCreated, gin.H{
		"orderNumber": orderNumber,
		"status":      string(models.StatusPending),
	})
}

//
// 🟢 GET /api/orders/my
//
func (h *Handler) GetMyOrders(c *gin.Context) {
	userID := c.GetInt64("telegram_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identité Telegram requise"})
		return
	}

	orders, err := h.Orders.GetUserOrders(userID)
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

// orderResponse expose la liste d'articles figée à côté de la commande
type orderResponse struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}
