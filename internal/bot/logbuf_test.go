package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferAppendAndRecent(t *testing.T) {
	buf := NewLogBuffer()

	for i := 0; i < 5; i++ {
		buf.Append(LogEntry{Text: fmt.Sprintf("msg-%d", i)})
	}

	assert.Equal(t, 5, buf.Len())

	recent := buf.Recent(3)
	require.Len(t, recent, 3)
	// De la plus récente à la plus ancienne
	assert.Equal(t, "msg-4", recent[0].Text)
	assert.Equal(t, "msg-3", recent[1].Text)
	assert.Equal(t, "msg-2", recent[2].Text)

	// Demande au-delà du contenu: tout, sans panique
	assert.Len(t, buf.Recent(50), 5)
}

func TestLogBufferEvictsOldest(t *testing.T) {
	buf := NewLogBuffer()

	for i := 0; i < logCapacity+25; i++ {
		buf.Append(LogEntry{Text: fmt.Sprintf("msg-%d", i)})
	}

	assert.Equal(t, logCapacity, buf.Len())

	recent := buf.Recent(buf.Len())
	assert.Equal(t, fmt.Sprintf("msg-%d", logCapacity+24), recent[0].Text)
	// La plus ancienne survivante est décalée du nombre d'évincées
	assert.Equal(t, "msg-25", recent[len(recent)-1].Text)
}

func TestLogBufferClear(t *testing.T) {
	buf := NewLogBuffer()

	for i := 0; i < 7; i++ {
		buf.Append(LogEntry{Text: "x"})
	}

	assert.Equal(t, 7, buf.Clear())
	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.Recent(10))

	// Réutilisable après vidage
	buf.Append(LogEntry{Text: "y"})
	assert.Equal(t, 1, buf.Len())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
	// Les runes multi-octets ne sont pas coupées au milieu
	assert.Equal(t, "привет...", truncate("привет мир", 6))
}

func TestCommandName(t *testing.T) {
	name, args := commandName("/my-orders")
	assert.Equal(t, "my-orders", name)
	assert.Empty(t, args)

	name, args = commandName("/order-details ORD_123")
	assert.Equal(t, "order-details", name)
	assert.Equal(t, "ORD_123", args)

	name, _ = commandName("/start@FlowHammerBot")
	assert.Equal(t, "start", name)

	name, args = commandName("/order-status ORD_1 confirmed")
	assert.Equal(t, "order-status", name)
	assert.Equal(t, "ORD_1 confirmed", args)

	name, _ = commandName("")
	assert.Empty(t, name)
}
