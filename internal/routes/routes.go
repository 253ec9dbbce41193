package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminapi "flowhammer_back_end/internal/handlers/admin"
	"flowhammer_back_end/internal/handlers/shop"
	"flowhammer_back_end/internal/middleware"
)

// RegisterRoutes monte l'API Mini App et le back-office web
func RegisterRoutes(r *gin.Engine, shopH *shop.Handler, adminH *adminapi.Handler, botToken string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://flowhammer.shop", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Telegram-Init-Data", "X-Guest-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Guest-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api")
	api.Use(middleware.TelegramAuth(botToken))
	{
		api.GET("/products", shopH.GetProducts)

		api.GET("/cart", shopH.GetCart)
		api.POST("/cart/add", shopH.AddToCart)
		api.POST("/cart/remove", shopH.RemoveFromCart)
		api.POST("/cart/quantity", shopH.SetQuantity)
		api.POST("/cart/clear", shopH.ClearCart)

		api.POST("/checkout", shopH.Checkout)
		api.GET("/orders/my", shopH.GetMyOrders)
	}

	r.POST("/api/admin/login", adminH.Login)

	authorized := r.Group("/api/admin")
	authorized.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		authorized.GET("/stats", adminH.GetStats)
		authorized.GET("/orders", adminH.GetOrders)
		authorized.GET("/orders/:number", adminH.GetOrderByNumber)
		authorized.PATCH("/orders/:number/status", adminH.UpdateStatus)
		authorized.GET("/export", adminH.ExportCSV)
	}
}
