package database

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// --- Variables Globales ---
var (
	DB    *sql.DB
	Redis *redis.Client // nil si REDIS_HOST non configuré
)

// ConnectDatabases ouvre SQLite (obligatoire) et Redis (optionnel)
func ConnectDatabases(dbPath string) {
	if err := InitSQLite(dbPath); err != nil {
		log.Fatalf("❌ Échec initialisation SQLite: %v", err)
	}

	connectRedis()

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// SQLITE (table unique orders)
// =============================================

// InitSQLite ouvre le fichier et crée la table si absente
func InitSQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	// Un seul writer: SQLite sérialise les écritures au niveau moteur
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	DB = db
	log.Println("✅ Connecté à SQLite:", path)
	return nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_number TEXT UNIQUE NOT NULL,
			user_id INTEGER NOT NULL,
			username TEXT NOT NULL,
			customer_name TEXT NOT NULL DEFAULT '',
			customer_contact TEXT NOT NULL DEFAULT '',
			customer_note TEXT NOT NULL DEFAULT '',
			items_json TEXT NOT NULL,
			subtotal REAL NOT NULL,
			currency TEXT DEFAULT 'USD',
			status TEXT DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}
	log.Println("✅ Table orders prête")
	return nil
}

// CloseSQLite ferme la connexion SQLite
func CloseSQLite() {
	if DB != nil {
		DB.Close()
		log.Println("🔌 Connexion SQLite fermée")
	}
}

// =============================================
// REDIS (paniers, préférences de langue, liaisons admin)
// =============================================

func connectRedis() {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Println("⚠️ REDIS_HOST non configuré — stockage en mémoire uniquement")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         host,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis injoignable (%v) — stockage en mémoire uniquement", err)
		client.Close()
		return
	}

	Redis = client
	log.Println("✅ Connecté à Redis")
}

// CloseRedis ferme la connexion Redis
func CloseRedis() {
	if Redis != nil {
		Redis.Close()
		log.Println("🔌 Connexion Redis fermée")
	}
}
