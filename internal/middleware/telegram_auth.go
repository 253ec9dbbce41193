package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// initDataMaxAge rejette les initData plus vieux que 24h
const initDataMaxAge = 24 * time.Hour

// TelegramUser est le champ "user" des initData de la Mini App
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// ValidateInitData vérifie la signature HMAC des initData Telegram.
// Le secret est HMAC-SHA256(botToken) avec la clé "WebAppData".
func ValidateInitData(initData, botToken string) (url.Values, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("initData illisible: %w", err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("hash manquant")
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(dataCheckString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return nil, fmt.Errorf("signature invalide")
	}

	if rawDate := values.Get("auth_date"); rawDate != "" {
		authDate, err := strconv.ParseInt(rawDate, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("auth_date invalide: %w", err)
		}
		if time.Since(time.Unix(authDate, 0)) > initDataMaxAge {
			return nil, fmt.Errorf("initData expirées")
		}
	}

	return values, nil
}

// TelegramAuth identifie l'appelant de l'API Mini App. Les initData
// signées donnent une identité Telegram, sinon l'appelant reste un
// invité avec une clé de panier éphémère.
func TelegramAuth(botToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		initData := c.GetHeader("X-Telegram-Init-Data")

		if initData != "" {
			values, err := ValidateInitData(initData, botToken)
			if err != nil {
				log.Printf("⚠️ initData rejetées: %v", err)
				c.JSON(401, gin.H{"error": "initData invalides"})
				c.Abort()
				return
			}

			var user TelegramUser
			if raw := values.Get("user"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &user); err != nil {
					log.Printf("⚠️ Champ user illisible: %v", err)
				}
			}

			c.Set("telegram_id", user.ID)
			c.Set("telegram_username", user.Username)
			c.Set("telegram_lang", user.LanguageCode)
			c.Set("cart_key", strconv.FormatInt(user.ID, 10))
			c.Next()
			return
		}

		guestID := c.GetHeader("X-Guest-ID")
		if guestID == "" {
			guestID = uuid.NewString()
		}
		c.Set("telegram_id", int64(0))
		c.Set("cart_key", "guest:"+guestID)
		c.Header("X-Guest-ID", guestID)
		c.Next()
	}
}
