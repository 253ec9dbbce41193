package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, status := range AllStatuses {
		parsed, ok := ParseStatus(string(status))
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseStatus("refunded")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
	_, ok = ParseStatus("Pending")
	assert.False(t, ok, "l'énumération est sensible à la casse")
}

func TestNextFollowsSequence(t *testing.T) {
	next, ok := StatusPending.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, next)

	next, ok = StatusShipped.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusDelivered, next)

	_, ok = StatusDelivered.Next()
	assert.False(t, ok)
	_, ok = StatusCancelled.Next()
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	// Pas à pas uniquement
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusProcessing))
	assert.True(t, CanTransition(StatusProcessing, StatusShipped))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))

	// Pas de saut ni de retour en arrière
	assert.False(t, CanTransition(StatusPending, StatusShipped))
	assert.False(t, CanTransition(StatusShipped, StatusConfirmed))
	assert.False(t, CanTransition(StatusDelivered, StatusPending))

	// Annulation depuis tout état non terminal
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusShipped, StatusCancelled))
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestLabelAndEmoji(t *testing.T) {
	assert.Equal(t, "⏳", StatusPending.Emoji())
	assert.Equal(t, "Ожидание", StatusPending.Label("ru"))
	assert.Equal(t, "Pending", StatusPending.Label("en"))
	assert.Equal(t, "Đang chờ", StatusPending.Label("vi"))

	// Langue inconnue: repli anglais
	assert.Equal(t, "Confirmed", StatusConfirmed.Label("de"))

	// Statut hors énumération: valeur brute, pictogramme générique
	assert.Equal(t, "📋", Status("weird").Emoji())
	assert.Equal(t, "weird", Status("weird").Label("ru"))
}
