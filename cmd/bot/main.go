package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"flowhammer_back_end/internal/admins"
	"flowhammer_back_end/internal/bot"
	"flowhammer_back_end/internal/cart"
	"flowhammer_back_end/internal/config"
	"flowhammer_back_end/internal/database"
	adminapi "flowhammer_back_end/internal/handlers/admin"
	"flowhammer_back_end/internal/handlers/shop"
	"flowhammer_back_end/internal/lang"
	"flowhammer_back_end/internal/payments"
	"flowhammer_back_end/internal/routes"
)

func main() {
	config.Load()

	stripeClient := payments.New(config.StripeKey(), config.PaymentSuccessURL())
	if stripeClient != nil {
		log.Println("✅ Stripe initialisé")
	} else {
		log.Println("⚠️ STRIPE_SECRET_KEY manquante, paiements désactivés")
	}

	database.ConnectDatabases(config.DatabasePath())

	store, err := database.NewOrderStore(database.DB)
	if err != nil {
		log.Fatal("❌ Impossible de préparer le magasin de commandes :", err)
	}

	carts := cart.NewStore(database.Redis)
	langs := lang.NewStore(database.Redis)
	registry := admins.NewRegistry(database.Redis, config.AdminIDs())

	tgBot, err := bot.New(config.BotToken(), bot.Options{
		Store:     store,
		Registry:  registry,
		Langs:     langs,
		Payments:  stripeClient,
		WebAppURL: config.WebAppURL(),
		ChannelID: config.OrdersChannelID(),
		OwnerMail: config.ShopOwnerEmail(),
	})
	if err != nil {
		log.Fatal("❌ Impossible de démarrer le bot Telegram :", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go tgBot.Run(ctx)

	r := gin.Default()
	routes.RegisterRoutes(r,
		&shop.Handler{Carts: carts, Orders: store, Bot: tgBot},
		&adminapi.Handler{Orders: store, Registry: registry, BotToken: config.BotToken()},
		config.BotToken(),
	)

	srv := &http.Server{Addr: ":" + config.Port(), Handler: r}
	go func() {
		log.Println("🚀 Serveur FlowHammer lancé sur le port", config.Port())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Erreur serveur HTTP :", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Arrêt demandé, fermeture en cours...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("⚠️ Arrêt HTTP forcé :", err)
	}

	database.CloseSQLite()
	database.CloseRedis()
	log.Println("✅ Arrêt propre terminé")
}
