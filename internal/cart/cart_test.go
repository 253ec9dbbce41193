package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesLines(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	store.Add(ctx, "u1", "stick-mini-pocket", 2)
	state := store.Add(ctx, "u1", "stick-mini-pocket", 3)

	require.Len(t, state.Lines, 1)
	assert.Equal(t, 5, state.Lines[0].Quantity)
}

func TestAddClampsQuantity(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	state := store.Add(ctx, "u1", "stick-mini-pocket", 500)
	assert.Equal(t, 99, state.Lines[0].Quantity)

	state = store.Add(ctx, "u1", "stick-mini-pocket", 1)
	assert.Equal(t, 99, state.Lines[0].Quantity, "la fusion reste bornée à 99")

	state = store.Add(ctx, "u1", "stick-therapy-ergonomic", -3)
	require.Len(t, state.Lines, 2)
	assert.Equal(t, 1, state.Lines[1].Quantity, "quantité négative remontée à 1")
}

func TestSetQuantityClamps(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	store.Add(ctx, "u1", "stick-mini-pocket", 5)

	state := store.SetQuantity(ctx, "u1", "stick-mini-pocket", 0)
	assert.Equal(t, 1, state.Lines[0].Quantity, "zéro ne supprime pas la ligne")

	state = store.SetQuantity(ctx, "u1", "stick-mini-pocket", 250)
	assert.Equal(t, 99, state.Lines[0].Quantity)
}

func TestRemoveIsTheOnlyWayDown(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	store.Add(ctx, "u1", "stick-mini-pocket", 1)
	store.Add(ctx, "u1", "helmet-cover-style", 2)

	state := store.Remove(ctx, "u1", "stick-mini-pocket")
	require.Len(t, state.Lines, 1)
	assert.Equal(t, "helmet-cover-style", state.Lines[0].ProductID)

	// Supprimer une ligne absente est sans effet
	state = store.Remove(ctx, "u1", "ghost")
	assert.Len(t, state.Lines, 1)
}

func TestClear(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	store.Add(ctx, "u1", "stick-mini-pocket", 1)
	state := store.Clear(ctx, "u1")
	assert.Empty(t, state.Lines)

	state = store.Get(ctx, "u1")
	assert.Empty(t, state.Lines)
}

func TestCartsAreIsolatedPerKey(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	store.Add(ctx, "u1", "stick-mini-pocket", 1)
	state := store.Get(ctx, "guest:abc")
	assert.Empty(t, state.Lines)
}

func TestHydrateFiltersCorruptLines(t *testing.T) {
	state := hydrate([]byte(`{"lines":[
		{"productId":"stick-mini-pocket","quantity":3},
		{"productId":"","quantity":2},
		{"productId":"stick-therapy-ergonomic","quantity":0},
		{"productId":"helmet-cover-style","quantity":1000}
	]}`))

	require.Len(t, state.Lines, 3)
	assert.Equal(t, 3, state.Lines[0].Quantity)
	assert.Equal(t, 1, state.Lines[1].Quantity, "quantité nulle remontée au plancher")
	assert.Equal(t, 99, state.Lines[2].Quantity)

	state = hydrate([]byte(`garbage`))
	assert.Empty(t, state.Lines)
}

func TestBuildViewResolvesCatalog(t *testing.T) {
	state := State{Lines: []Line{
		{ProductID: "stick-acupressure-pro", Quantity: 2},
		{ProductID: "discontinued-item", Quantity: 1},
	}}

	view := BuildView(state)

	require.Len(t, view.Items, 1, "un produit retiré du catalogue disparaît de la vue")
	assert.Equal(t, "stick-acupressure-pro", view.Items[0].ID)
	assert.Equal(t, 2, view.Items[0].Qty)
	assert.InDelta(t, 39.98, view.Items[0].LineTotal, 0.001)
	assert.InDelta(t, 39.98, view.Subtotal, 0.001)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "USD", view.Currency)
}

func TestBuildViewEmpty(t *testing.T) {
	view := BuildView(State{})
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Subtotal)
	assert.Equal(t, "USD", view.Currency)
}
