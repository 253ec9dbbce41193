package lang

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Langues supportées par le bot
const (
	EN = "en"
	RU = "ru"
	VI = "vi"
)

// DefaultLang est la langue de repli de la boutique
const DefaultLang = RU

const keyPrefix = "lang:"

// Supported valide un code langue
func Supported(code string) bool {
	return code == EN || code == RU || code == VI
}

// FromLocale déduit une langue d'un language_code Telegram ("ru-RU" → ru)
func FromLocale(locale string) string {
	l := strings.ToLower(locale)
	switch {
	case strings.HasPrefix(l, "ru"):
		return RU
	case strings.HasPrefix(l, "vi"):
		return VI
	default:
		return DefaultLang
	}
}

// Store conserve la préférence de langue par utilisateur
// (Redis si disponible, sinon durée de vie du processus)
type Store struct {
	redis *redis.Client

	mu  sync.Mutex
	mem map[int64]string
}

// NewStore crée un store de préférences (client Redis optionnel, nil accepté)
func NewStore(client *redis.Client) *Store {
	return &Store{
		redis: client,
		mem:   make(map[int64]string),
	}
}

// Set enregistre une préférence explicite (refuse les codes inconnus)
func (s *Store) Set(ctx context.Context, userID int64, code string) bool {
	if !Supported(code) {
		return false
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key(userID), code, 0).Err(); err != nil {
			log.Printf("⚠️ Erreur sauvegarde langue pour %d: %v", userID, err)
		}
	}

	s.mu.Lock()
	s.mem[userID] = code
	s.mu.Unlock()
	return true
}

// Get retourne la préférence stockée, sinon la langue déduite du locale,
// sinon le défaut (ru)
func (s *Store) Get(ctx context.Context, userID int64, locale string) string {
	s.mu.Lock()
	code, ok := s.mem[userID]
	s.mu.Unlock()
	if ok {
		return code
	}

	if s.redis != nil {
		stored, err := s.redis.Get(ctx, key(userID)).Result()
		if err == nil && Supported(stored) {
			s.mu.Lock()
			s.mem[userID] = stored
			s.mu.Unlock()
			return stored
		}
		if err != nil && err != redis.Nil {
			log.Printf("⚠️ Erreur lecture langue pour %d: %v", userID, err)
		}
	}

	return FromLocale(locale)
}

func key(userID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}
