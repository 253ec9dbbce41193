package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// BotToken retourne le token Telegram (fatal si absent)
func BotToken() string {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("❌ BOT_TOKEN manquant dans .env — impossible de démarrer le bot")
	}
	return token
}

// WebAppURL retourne l'URL de la boutique Mini App
func WebAppURL() string {
	url := os.Getenv("WEBAPP_URL")
	if url == "" {
		url = "https://flowhammer.shop"
	}
	return url
}

// AdminIDs retourne la liste des identifiants Telegram des administrateurs
func AdminIDs() []int64 {
	raw := os.Getenv("ADMIN_IDS")
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			log.Printf("⚠️ ADMIN_IDS contient une valeur invalide: %q", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// OrdersChannelID retourne l'identifiant du canal de copie des commandes (0 = désactivé)
func OrdersChannelID() int64 {
	raw := os.Getenv("ORDERS_CHANNEL_ID")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		log.Printf("⚠️ ORDERS_CHANNEL_ID invalide: %q", raw)
		return 0
	}
	return id
}

// DatabasePath retourne le chemin du fichier SQLite
func DatabasePath() string {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "orders.db"
	}
	return path
}

// Port retourne le port HTTP de l'API Mini App
func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}

// JWTSecret retourne le secret de signature des tokens admin
func JWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return secret
}

// StripeKey retourne la clé Stripe (vide = liens de paiement désactivés)
func StripeKey() string {
	return os.Getenv("STRIPE_SECRET_KEY")
}

// PaymentSuccessURL retourne l'URL de retour après paiement
func PaymentSuccessURL() string {
	url := os.Getenv("PAYMENT_SUCCESS_URL")
	if url == "" {
		url = WebAppURL()
	}
	return url
}

// ShopOwnerEmail retourne l'adresse de copie des commandes (vide = désactivé)
func ShopOwnerEmail() string {
	return os.Getenv("SHOP_OWNER_EMAIL")
}
