package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLocale(t *testing.T) {
	assert.Equal(t, RU, FromLocale("ru"))
	assert.Equal(t, RU, FromLocale("ru-RU"))
	assert.Equal(t, VI, FromLocale("vi"))
	assert.Equal(t, VI, FromLocale("vi-VN"))

	// Tout le reste retombe sur le russe, y compris l'anglais
	assert.Equal(t, RU, FromLocale("en"))
	assert.Equal(t, RU, FromLocale("fr"))
	assert.Equal(t, RU, FromLocale(""))
}

func TestStoreSetGet(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	assert.Equal(t, RU, store.Get(ctx, 1, "en"), "pas de préférence: locale en → ru")

	assert.True(t, store.Set(ctx, 1, EN))
	assert.Equal(t, EN, store.Get(ctx, 1, "ru"), "la préférence explicite prime sur le locale")

	assert.True(t, store.Set(ctx, 1, VI))
	assert.Equal(t, VI, store.Get(ctx, 1, ""))
}

func TestStoreRejectsUnknownCode(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	assert.False(t, store.Set(ctx, 1, "de"))
	assert.False(t, store.Set(ctx, 1, ""))
	assert.Equal(t, RU, store.Get(ctx, 1, ""), "un code refusé ne change rien")
}

func TestT(t *testing.T) {
	assert.NotEmpty(t, T(RU, "start.title"))
	// Le nom de la boutique est le même partout, la description est traduite
	assert.NotEqual(t, T(RU, "start.description"), T(EN, "start.description"))

	// Clé inconnue: la clé elle-même, jamais une chaîne vide
	assert.Equal(t, "missing.key", T(RU, "missing.key"))
	// Langue inconnue: repli sur le russe
	assert.Equal(t, T(RU, "start.title"), T("de", "start.title"))
}

func TestOrderReplyKeysExistInEveryLanguage(t *testing.T) {
	// Clés des réponses de commande du bot: une clé manquante
	// renverrait la clé brute à l'utilisateur
	for _, code := range []string{EN, RU, VI} {
		for _, key := range []string{"order.thanks", "order.error", "myorders.empty"} {
			assert.NotEqual(t, key, T(code, key), "clé %s absente pour %s", key, code)
		}
	}
}
