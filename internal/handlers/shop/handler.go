package shop

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowhammer_back_end/internal/bot"
	"flowhammer_back_end/internal/cart"
	"flowhammer_back_end/internal/database"
	"flowhammer_back_end/internal/models"
)

// Handler porte les dépendances de l'API boutique Mini App
type Handler struct {
	Carts  *cart.Store
	Orders *database.OrderStore
	Bot    *bot.Bot
}

//
// 🟢 GET /api/products
//
func (h *Handler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": models.Catalog()})
}
