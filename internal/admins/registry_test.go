package admins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeByUsername(t *testing.T) {
	r := NewRegistry(nil, nil)

	decision := r.Authorize(1, "QValmont")
	assert.True(t, decision.Allowed)
	require.NotNil(t, decision.Admin)
	assert.Equal(t, "super_admin", decision.Admin.Role)

	decision = r.Authorize(2, "netslayer")
	assert.True(t, decision.Allowed)
}

func TestAuthorizeDeniesUnknown(t *testing.T) {
	r := NewRegistry(nil, nil)

	assert.False(t, r.Authorize(42, "random_user").Allowed)
	assert.False(t, r.Authorize(42, "").Allowed)
	// La casse du username compte
	assert.False(t, r.Authorize(42, "qvalmont").Allowed)
}

func TestLazyBinding(t *testing.T) {
	r := NewRegistry(nil, nil)

	// Avant observation, l'identifiant seul ne suffit pas
	assert.False(t, r.Authorize(777, "").Allowed)

	// Premier contact: liaison créée
	assert.True(t, r.Observe(777, "QValmont"))
	// Répétition sans effet
	assert.False(t, r.Observe(777, "QValmont"))

	// L'identifiant lié autorise même sans username (callback sans user)
	decision := r.Authorize(777, "")
	assert.True(t, decision.Allowed)
	require.NotNil(t, decision.Admin)
	assert.Equal(t, "QValmont", decision.Admin.Username)
}

func TestObserveIgnoresNonAdmins(t *testing.T) {
	r := NewRegistry(nil, nil)

	assert.False(t, r.Observe(55, "random_user"))
	assert.False(t, r.Authorize(55, "").Allowed)
}

func TestConfiguredIDs(t *testing.T) {
	r := NewRegistry(nil, []int64{1000, 2000})

	assert.True(t, r.Authorize(1000, "whoever").Allowed)
	assert.True(t, r.Authorize(2000, "").Allowed)
	assert.False(t, r.Authorize(3000, "").Allowed)

	// La diffusion des nouvelles commandes ne vise que ADMIN_IDS
	assert.ElementsMatch(t, []int64{1000, 2000}, r.NotifyIDs())
}

func TestNotifyIDsExcludesLazyBindings(t *testing.T) {
	r := NewRegistry(nil, []int64{1000})
	r.Observe(777, "QValmont")

	assert.ElementsMatch(t, []int64{1000}, r.NotifyIDs())
}
