package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"flowhammer_back_end/internal/models"
)

var (
	// ErrUnknownStatus est renvoyé pour un statut hors énumération
	ErrUnknownStatus = errors.New("statut inconnu")
	// ErrInvalidTransition est renvoyé pour un passage de statut non autorisé
	ErrInvalidTransition = errors.New("transition de statut non autorisée")
)

// OrderStore est la couche de persistance de la table orders
type OrderStore struct {
	db *sql.DB

	mu         sync.Mutex
	lastMillis int64

	stmtInsert       *sql.Stmt
	stmtAll          *sql.Stmt
	stmtByID         *sql.Stmt
	stmtByNumber     *sql.Stmt
	stmtByUser       *sql.Stmt
	stmtUpdateStatus *sql.Stmt
}

const orderColumns = `id, order_number, user_id, username, customer_name, customer_contact,
	customer_note, items_json, subtotal, currency, status, created_at, updated_at`

// NewOrderStore prépare les requêtes fréquentes et retourne le store
func NewOrderStore(db *sql.DB) (*OrderStore, error) {
	s := &OrderStore{db: db}

	var err error
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		stmt, err = db.Prepare(query)
		return stmt
	}

	s.stmtInsert = prepare(`INSERT INTO orders (
		order_number, user_id, username, customer_name, customer_contact,
		customer_note, items_json, subtotal, currency, status, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	// Tri par id AUTOINCREMENT: l'ordre de création exact, là où un tri
	// lexicographique sur created_at trébuche sur les fractions de seconde
	s.stmtAll = prepare(`SELECT ` + orderColumns + ` FROM orders
		ORDER BY id DESC LIMIT 100`)
	s.stmtByID = prepare(`SELECT ` + orderColumns + ` FROM orders WHERE id = ?`)
	s.stmtByNumber = prepare(`SELECT ` + orderColumns + ` FROM orders WHERE order_number = ?`)
	s.stmtByUser = prepare(`SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = ? ORDER BY id DESC LIMIT 20`)
	s.stmtUpdateStatus = prepare(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`)

	if err != nil {
		return nil, fmt.Errorf("préparation des requêtes orders: %w", err)
	}
	return s, nil
}

// nextOrderNumber génère un numéro ORD_<ms>, strictement croissant dans le processus
func (s *OrderStore) nextOrderNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := time.Now().UnixMilli()
	if ms <= s.lastMillis {
		ms = s.lastMillis + 1
	}
	s.lastMillis = ms
	return fmt.Sprintf("ORD_%d", ms)
}

// CreateOrder insère une commande et retourne son id et son numéro
func (s *OrderStore) CreateOrder(input models.OrderInput) (int64, string, error) {
	orderNumber := s.nextOrderNumber()

	items := input.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return 0, "", fmt.Errorf("sérialisation des articles: %w", err)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.stmtInsert.Exec(
		orderNumber,
		input.UserID,
		input.Username,
		input.CustomerName,
		input.CustomerContact,
		input.CustomerNote,
		string(itemsJSON),
		input.Subtotal,
		currency,
		string(models.StatusPending),
		now,
		now,
	)
	if err != nil {
		return 0, "", fmt.Errorf("insertion de la commande: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}
	return id, orderNumber, nil
}

// GetAllOrders retourne les 100 commandes les plus récentes
func (s *OrderStore) GetAllOrders() ([]models.Order, error) {
	rows, err := s.stmtAll.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// GetOrderByID retourne une commande par id interne (nil si absente)
func (s *OrderStore) GetOrderByID(id int64) (*models.Order, error) {
	return scanOneOrder(s.stmtByID.QueryRow(id))
}

// GetOrderByNumber retourne une commande par numéro (nil si absente)
func (s *OrderStore) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	return scanOneOrder(s.stmtByNumber.QueryRow(orderNumber))
}

// GetUserOrders retourne les 20 commandes les plus récentes d'un utilisateur
func (s *OrderStore) GetUserOrders(userID int64) ([]models.Order, error) {
	rows, err := s.stmtByUser.Query(userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// UpdateOrderStatus applique un passage de statut autorisé et
// rafraîchit updated_at. Retourne le nombre de lignes modifiées.
func (s *OrderStore) UpdateOrderStatus(id int64, status models.Status) (int64, error) {
	if _, ok := models.ParseStatus(string(status)); !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	current, err := s.GetOrderByID(id)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 0, nil
	}
	if !models.CanTransition(current.Status, status) {
		return 0, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, current.Status, status)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.stmtUpdateStatus.Exec(string(status), now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Scan helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(r rowScanner) (*models.Order, error) {
	var o models.Order
	var status, createdAt, updatedAt string

	err := r.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Username,
		&o.CustomerName, &o.CustomerContact, &o.CustomerNote,
		&o.ItemsJSON, &o.Subtotal, &o.Currency, &status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Status = models.Status(status)
	o.CreatedAt = parseTimestamp(createdAt)
	o.UpdatedAt = parseTimestamp(updatedAt)
	return &o, nil
}

func scanOneOrder(row *sql.Row) (*models.Order, error) {
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// parseTimestamp accepte nos horodatages RFC3339 et le format
// CURRENT_TIMESTAMP de SQLite pour les lignes historiques
func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
