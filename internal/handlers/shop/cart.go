package shop

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flowhammer_back_end/internal/cart"
	"flowhammer_back_end/internal/models"
)

//
// 🟢 GET /api/cart
//
func (h *Handler) GetCart(c *gin.Context) {
	key := c.GetString("cart_key")
	state := h.Carts.Get(context.Background(), key)
	c.JSON(http.StatusOK, cart.BuildView(state))
}

type cartInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

//
// 🟢 POST /api/cart/add
//
func (h *Handler) AddToCart(c *gin.Context) {
	key := c.GetString("cart_key")

	var input cartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if models.ProductByID(input.ProductID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	state := h.Carts.Add(context.Background(), key, input.ProductID, input.Quantity)
	c.JSON(http.StatusOK, cart.BuildView(state))
}

//
// 🟢 POST /api/cart/remove
//
func (h *Handler) RemoveFromCart(c *gin.Context) {
	key := c.GetString("cart_key")

	var input cartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	state := h.Carts.Remove(context.Background(), key, input.ProductID)
	c.JSON(http.StatusOK, cart.BuildView(state))
}

//
// 🟢 POST /api/cart/quantity
//
func (h *Handler) SetQuantity(c *gin.Context) {
	key := c.GetString("cart_key")

	var input cartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if models.ProductByID(input.ProductID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	state := h.Carts.SetQuantity(context.Background(), key, input.ProductID, input.Quantity)
	c.JSON(http.StatusOK, cart.BuildView(state))
}

//
// 🟢 POST /api/cart/clear
//
func (h *Handler) ClearCart(c *gin.Context) {
	key := c.GetString("cart_key")
	state := h.Carts.Clear(context.Background(), key)
	c.JSON(http.StatusOK, cart.BuildView(state))
}
