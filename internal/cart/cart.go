package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"flowhammer_back_end/internal/models"
)

const (
	keyPrefix = "cart:"
	cartTTL   = 30 * 24 * time.Hour

	// Quantités bornées à [1,99], comme côté client
	minQty = 1
	maxQty = 99
)

// Line est une ligne de panier: référence produit + quantité
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// State est l'état complet d'un panier
type State struct {
	Lines []Line `json:"lines"`
}

func clampQty(qty int) int {
	if qty < minQty {
		return minQty
	}
	if qty > maxQty {
		return maxQty
	}
	return qty
}

// Store persiste un panier par utilisateur sous cart:<id>
// (Redis si disponible, sinon mémoire process)
type Store struct {
	redis *redis.Client

	mu  sync.Mutex
	mem map[string]State
}

// NewStore crée un store de paniers (client Redis optionnel, nil accepté)
func NewStore(client *redis.Client) *Store {
	return &Store{
		redis: client,
		mem:   make(map[string]State),
	}
}

// Get recharge l'état du panier avec filtrage défensif des lignes corrompues
func (s *Store) Get(ctx context.Context, userKey string) State {
	raw, ok := s.load(ctx, userKey)
	if !ok {
		return State{Lines: []Line{}}
	}
	return hydrate(raw)
}

// Add ajoute un produit; une ligne existante est incrémentée, jamais dupliquée
func (s *Store) Add(ctx context.Context, userKey, productID string, qty int) State {
	state := s.Get(ctx, userKey)
	qty = clampQty(qty)

	found := false
	for i := range state.Lines {
		if state.Lines[i].ProductID == productID {
			state.Lines[i].Quantity = clampQty(state.Lines[i].Quantity + qty)
			found = true
			break
		}
	}
	if !found {
		state.Lines = append(state.Lines, Line{ProductID: productID, Quantity: qty})
	}

	s.save(ctx, userKey, state)
	return state
}

// Remove supprime une ligne (seule façon de descendre à zéro)
func (s *Store) Remove(ctx context.Context, userKey, productID string) State {
	state := s.Get(ctx, userKey)

	kept := state.Lines[:0]
	for _, l := range state.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	state.Lines = kept

	s.save(ctx, userKey, state)
	return state
}

// SetQuantity fixe la quantité d'une ligne, bornée à [1,99]
func (s *Store) SetQuantity(ctx context.Context, userKey, productID string, qty int) State {
	state := s.Get(ctx, userKey)
	qty = clampQty(qty)

	for i := range state.Lines {
		if state.Lines[i].ProductID == productID {
			state.Lines[i].Quantity = qty
		}
	}

	s.save(ctx, userKey, state)
	return state
}

// Clear vide le panier
func (s *Store) Clear(ctx context.Context, userKey string) State {
	state := State{Lines: []Line{}}
	s.save(ctx, userKey, state)
	return state
}

// hydrate filtre les lignes malformées et borne les quantités
func hydrate(raw []byte) State {
	var parsed State
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Lines == nil {
		return State{Lines: []Line{}}
	}

	lines := []Line{}
	for _, l := range parsed.Lines {
		if l.ProductID == "" {
			continue
		}
		lines = append(lines, Line{ProductID: l.ProductID, Quantity: clampQty(l.Quantity)})
	}
	return State{Lines: lines}
}

func (s *Store) load(ctx context.Context, userKey string) ([]byte, bool) {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, keyPrefix+userKey).Result()
		if err == nil {
			return []byte(data), true
		}
		if err != redis.Nil {
			log.Printf("⚠️ Erreur lecture panier %s: %v", userKey, err)
		}
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.mem[userKey]
	if !ok {
		return nil, false
	}
	data, _ := json.Marshal(state)
	return data, true
}

// save persiste après chaque transition; les erreurs Redis sont
// loguées et ignorées (fire-and-forget, comme le localStorage client)
func (s *Store) save(ctx context.Context, userKey string, state State) {
	if s.redis != nil {
		data, _ := json.Marshal(state)
		if err := s.redis.Set(ctx, keyPrefix+userKey, data, cartTTL).Err(); err != nil {
			log.Printf("⚠️ Erreur sauvegarde panier %s: %v", userKey, err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem[userKey] = state
}

// --- Vue panier résolue contre le catalogue ---

// ViewItem est une ligne valorisée avec les données produit actuelles
type ViewItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
	Currency  string  `json:"currency"`
}

// View est le panier prêt à afficher ou à soumettre
type View struct {
	Items    []ViewItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Currency string     `json:"currency"`
	Count    int        `json:"count"`
}

// BuildView valorise le panier contre le catalogue vivant.
// Une ligne dont le produit n'existe plus disparaît silencieusement.
func BuildView(state State) View {
	view := View{Items: []ViewItem{}, Currency: "USD"}

	for _, line := range state.Lines {
		product := models.ProductByID(line.ProductID)
		if product == nil {
			continue
		}
		lineTotal := product.Price * float64(line.Quantity)
		view.Items = append(view.Items, ViewItem{
			ID:        product.ID,
			Title:     product.Title,
			Qty:       line.Quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
			Currency:  product.Currency,
		})
		view.Subtotal += lineTotal
		view.Count += line.Quantity
		view.Currency = product.Currency
	}
	return view
}
