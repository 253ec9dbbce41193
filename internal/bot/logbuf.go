package bot

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tg "github.com/go-telegram/bot/models"
)

// logCapacity borne le journal en mémoire: au-delà, la plus
// ancienne entrée est écartée
const logCapacity = 1000

// LogEntry est la trace d'un message entrant
type LogEntry struct {
	Timestamp   time.Time
	ChatID      int64
	ChatType    string
	ChatTitle   string
	UserID      int64
	UserName    string
	IsBot       bool
	MessageID   int
	Text        string
	MessageType string
}

// LogBuffer est un anneau borné d'entrées de journal
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	start   int
	count   int
}

// NewLogBuffer crée un journal de capacité fixe
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{entries: make([]LogEntry, logCapacity)}
}

// Append enregistre une entrée, en écartant la plus ancienne si plein
func (b *LogBuffer) Append(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count < len(b.entries) {
		b.entries[(b.start+b.count)%len(b.entries)] = entry
		b.count++
		return
	}
	b.entries[b.start] = entry
	b.start = (b.start + 1) % len(b.entries)
}

// Recent retourne les n dernières entrées, de la plus récente à la plus ancienne
func (b *LogBuffer) Recent(n int) []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.count {
		n = b.count
	}
	out := make([]LogEntry, 0, n)
	for i := 0; i < n; i++ {
		idx := (b.start + b.count - 1 - i) % len(b.entries)
		out = append(out, b.entries[idx])
	}
	return out
}

// Len retourne le nombre d'entrées présentes
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Clear vide le journal et retourne le nombre d'entrées supprimées
func (b *LogBuffer) Clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	cleared := b.count
	b.start = 0
	b.count = 0
	return cleared
}

// entryFromMessage construit la trace d'un message Telegram
func entryFromMessage(msg *tg.Message) LogEntry {
	entry := LogEntry{
		Timestamp: time.Now(),
		ChatID:    msg.Chat.ID,
		ChatType:  string(msg.Chat.Type),
		ChatTitle: msg.Chat.Title,
		MessageID: msg.ID,
	}

	if entry.ChatTitle == "" {
		entry.ChatTitle = msg.Chat.Username
	}
	if entry.ChatTitle == "" {
		entry.ChatTitle = "Private Chat"
	}

	if msg.From != nil {
		entry.UserID = msg.From.ID
		entry.IsBot = msg.From.IsBot
		entry.UserName = displayName(msg.From)
	} else {
		entry.UserName = msg.Chat.Title
	}

	switch {
	case msg.Text != "":
		entry.Text = msg.Text
		entry.MessageType = "text"
	case len(msg.Photo) > 0:
		entry.Text = msg.Caption
		entry.MessageType = "photo"
	case msg.Video != nil:
		entry.Text = msg.Caption
		entry.MessageType = "video"
	case msg.Document != nil:
		entry.Text = msg.Caption
		entry.MessageType = "document"
	default:
		entry.MessageType = "other"
	}
	if entry.Text == "" {
		entry.Text = "[Non-text message]"
	}

	return entry
}

// logToConsole reproduit le cadre de log du bot sur la sortie standard
func logToConsole(entry LogEntry) {
	frame := strings.Repeat("─", 60)
	botFlag := ""
	if entry.IsBot {
		botFlag = " [БОТ]"
	}

	log.Println("\n📨 НОВОЕ СООБЩЕНИЕ")
	log.Println(frame)
	log.Printf("📅 Время: %s", entry.Timestamp.Format(time.RFC3339))
	log.Printf("💬 Канал/Чат: %s (%s)", entry.ChatTitle, entry.ChatType)
	log.Printf("🆔 ID Канала/Чата: %d", entry.ChatID)
	log.Printf("👤 От пользователя: @%s (ID: %d)%s", entry.UserName, entry.UserID, botFlag)
	log.Printf("📝 Тип сообщения: %s", entry.MessageType)
	log.Printf("💭 Текст: %s", truncate(entry.Text, 100))
	log.Println(frame)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func displayName(user *tg.User) string {
	if user.Username != "" {
		return user.Username
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", user.FirstName, user.LastName))
}
