package admins

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

const bindingKeyPrefix = "admin_id:"

// Admin décrit un compte administrateur de la boutique.
// La liste des permissions est déclarative: seule l'appartenance
// à l'allowlist est réellement vérifiée.
type Admin struct {
	Username    string
	TelegramID  int64
	Role        string
	Permissions []string
}

// Decision est le résultat typé du garde d'autorisation
type Decision struct {
	Allowed bool
	Admin   *Admin
}

// Registry est l'allowlist fixe à deux comptes, avec liaison
// paresseuse de l'identifiant Telegram au premier message observé
type Registry struct {
	redis *redis.Client

	mu        sync.Mutex
	admins    map[string]*Admin
	numericID map[int64]string // id Telegram lié → username
	extraIDs  map[int64]bool   // identifiants issus de ADMIN_IDS
}

// NewRegistry construit l'allowlist et recharge les liaisons persistées
func NewRegistry(client *redis.Client, configuredIDs []int64) *Registry {
	r := &Registry{
		redis:     client,
		numericID: make(map[int64]string),
		extraIDs:  make(map[int64]bool),
		admins: map[string]*Admin{
			"QValmont": {
				Username:    "QValmont",
				Role:        "super_admin",
				Permissions: []string{"view_orders", "edit_orders", "view_users", "export_data", "view_stats", "manage_admins"},
			},
			"netslayer": {
				Username:    "netslayer",
				Role:        "super_admin",
				Permissions: []string{"view_orders", "edit_orders", "view_users", "export_data", "view_stats", "manage_admins"},
			},
		},
	}

	for _, id := range configuredIDs {
		r.extraIDs[id] = true
	}

	r.loadBindings()
	return r
}

// Observe lie l'identifiant Telegram d'un admin à son premier contact.
// Retourne true quand une nouvelle liaison vient d'être créée.
func (r *Registry) Observe(userID int64, username string) bool {
	if username == "" || userID == 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[username]
	if !ok || admin.TelegramID != 0 {
		return false
	}

	admin.TelegramID = userID
	r.numericID[userID] = username
	r.persistBinding(username, userID)
	log.Printf("🔐 Admin @%s lié à l'identifiant Telegram %d", username, userID)
	return true
}

// Authorize est le garde unique de toutes les commandes admin
func (r *Registry) Authorize(userID int64, username string) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	if admin, ok := r.admins[username]; ok {
		return Decision{Allowed: true, Admin: admin}
	}
	if name, ok := r.numericID[userID]; ok {
		return Decision{Allowed: true, Admin: r.admins[name]}
	}
	if r.extraIDs[userID] {
		return Decision{Allowed: true}
	}
	return Decision{}
}

// NotifyIDs retourne les identifiants configurés pour la copie des commandes
func (r *Registry) NotifyIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int64, 0, len(r.extraIDs))
	for id := range r.extraIDs {
		ids = append(ids, id)
	}
	return ids
}

// --- Persistance Redis des liaisons (optionnelle) ---

func (r *Registry) loadBindings() {
	if r.redis == nil {
		return
	}
	ctx := context.Background()

	for username, admin := range r.admins {
		raw, err := r.redis.Get(ctx, bindingKeyPrefix+username).Result()
		if err != nil {
			if err != redis.Nil {
				log.Printf("⚠️ Erreur lecture liaison admin @%s: %v", username, err)
			}
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		admin.TelegramID = id
		r.numericID[id] = username
	}
}

func (r *Registry) persistBinding(username string, userID int64) {
	if r.redis == nil {
		return
	}
	ctx := context.Background()
	if err := r.redis.Set(ctx, bindingKeyPrefix+username, strconv.FormatInt(userID, 10), 0).Err(); err != nil {
		log.Printf("⚠️ Erreur sauvegarde liaison admin @%s: %v", username, err)
	}
}
