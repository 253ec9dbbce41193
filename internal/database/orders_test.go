package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowhammer_back_end/internal/models"
)

func newTestStore(t *testing.T) *OrderStore {
	store, _ := newTestStoreDB(t)
	return store
}

func newTestStoreDB(t *testing.T) (*OrderStore, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "orders_test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, createSchema(db))

	store, err := NewOrderStore(db)
	require.NoError(t, err)
	return store, db
}

func sampleInput(userID int64, subtotal float64) models.OrderInput {
	return models.OrderInput{
		UserID:          userID,
		Username:        "testuser",
		CustomerName:    "Иван",
		CustomerContact: "+84 949197496",
		CustomerNote:    "быстрее, пожалуйста",
		Items: []models.OrderItem{
			{ID: "stick-acupressure-pro", Title: "Acupressure Pro", Qty: 2, UnitPrice: 19.99, LineTotal: 39.98},
		},
		Subtotal: subtotal,
		Currency: "USD",
	}
}

func TestCreateOrderRoundtrip(t *testing.T) {
	store := newTestStore(t)

	id, number, err := store.CreateOrder(sampleInput(1001, 39.98))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
	assert.Regexp(t, `^ORD_\d+$`, number)

	order, err := store.GetOrderByNumber(number)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, id, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "Иван", order.CustomerName)
	assert.Equal(t, 39.98, order.Subtotal)
	assert.Equal(t, "USD", order.Currency)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)

	items := order.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Acupressure Pro", items[0].Title)
	assert.Equal(t, 2, items[0].Qty)
}

func TestCreateOrderDefaults(t *testing.T) {
	store := newTestStore(t)

	input := sampleInput(1, 5)
	input.Currency = ""
	input.Items = nil

	_, number, err := store.CreateOrder(input)
	require.NoError(t, err)

	order, err := store.GetOrderByNumber(number)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "[]", order.ItemsJSON)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	store := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		_, number, err := store.CreateOrder(sampleInput(int64(i), 1))
		require.NoError(t, err)
		assert.False(t, seen[number], "numéro dupliqué: %s", number)
		seen[number] = true
	}
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)

	var numbers []string
	for i := 0; i < 3; i++ {
		_, number, err := store.CreateOrder(sampleInput(7, float64(i)))
		require.NoError(t, err)
		numbers = append(numbers, number)
	}

	orders, err := store.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// La plus récente d'abord, indépendamment des mises à jour
	assert.Equal(t, numbers[2], orders[0].OrderNumber)
	assert.Equal(t, numbers[1], orders[1].OrderNumber)
	assert.Equal(t, numbers[0], orders[2].OrderNumber)

	_, err = store.UpdateOrderStatus(orders[2].ID, models.StatusConfirmed)
	require.NoError(t, err)

	orders, err = store.GetAllOrders()
	require.NoError(t, err)
	assert.Equal(t, numbers[2], orders[0].OrderNumber)
}

func TestGetAllOrdersIgnoresTimestampPrecision(t *testing.T) {
	store, db := newTestStoreDB(t)

	idOld, numOld, err := store.CreateOrder(sampleInput(7, 1))
	require.NoError(t, err)
	idNew, numNew, err := store.CreateOrder(sampleInput(7, 2))
	require.NoError(t, err)

	// RFC3339Nano tronque les zéros finaux: ".5Z" se classe
	// lexicographiquement après ".523Z" alors qu'il est plus ancien
	_, err = db.Exec(`UPDATE orders SET created_at = ? WHERE id = ?`, "2026-08-29T10:00:00.5Z", idOld)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE orders SET created_at = ? WHERE id = ?`, "2026-08-29T10:00:00.523Z", idNew)
	require.NoError(t, err)

	orders, err := store.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, numNew, orders[0].OrderNumber)
	assert.Equal(t, numOld, orders[1].OrderNumber)

	userOrders, err := store.GetUserOrders(7)
	require.NoError(t, err)
	require.Len(t, userOrders, 2)
	assert.Equal(t, numNew, userOrders[0].OrderNumber)
}

func TestGetUserOrdersFiltersAndLimits(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 25; i++ {
		_, _, err := store.CreateOrder(sampleInput(42, 1))
		require.NoError(t, err)
	}
	_, _, err := store.CreateOrder(sampleInput(99, 1))
	require.NoError(t, err)

	orders, err := store.GetUserOrders(42)
	require.NoError(t, err)
	assert.Len(t, orders, 20)
	for _, o := range orders {
		assert.Equal(t, int64(42), o.UserID)
	}
}

func TestRowsWithoutCustomerFieldsScanClean(t *testing.T) {
	store, db := newTestStoreDB(t)

	// Une insertion hors du store qui omet les champs client ne doit
	// pas produire de NULL: le schéma garantit la chaîne vide
	_, err := db.Exec(`INSERT INTO orders (order_number, user_id, username, items_json, subtotal)
		VALUES ('ORD_1', 9, 'legacy', '[]', 3.5)`)
	require.NoError(t, err)

	orders, err := store.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "", orders[0].CustomerName)
	assert.Equal(t, "", orders[0].CustomerContact)
	assert.Equal(t, "", orders[0].CustomerNote)
}

func TestGetOrderMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	order, err := store.GetOrderByNumber("ORD_0")
	require.NoError(t, err)
	assert.Nil(t, order)

	order, err = store.GetOrderByID(12345)
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestUpdateOrderStatusFollowsSequence(t *testing.T) {
	store := newTestStore(t)

	id, number, err := store.CreateOrder(sampleInput(5, 10))
	require.NoError(t, err)

	for _, next := range []models.Status{
		models.StatusConfirmed,
		models.StatusProcessing,
		models.StatusShipped,
		models.StatusDelivered,
	} {
		affected, err := store.UpdateOrderStatus(id, next)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		order, err := store.GetOrderByNumber(number)
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}
}

func TestUpdateOrderStatusRejectsSkips(t *testing.T) {
	store := newTestStore(t)

	id, number, err := store.CreateOrder(sampleInput(5, 10))
	require.NoError(t, err)

	_, err = store.UpdateOrderStatus(id, models.StatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = store.UpdateOrderStatus(id, models.Status("weird"))
	assert.ErrorIs(t, err, ErrUnknownStatus)

	// La ligne n'a pas bougé
	order, err := store.GetOrderByNumber(number)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestUpdateOrderStatusCancellation(t *testing.T) {
	store := newTestStore(t)

	id, _, err := store.CreateOrder(sampleInput(5, 10))
	require.NoError(t, err)

	affected, err := store.UpdateOrderStatus(id, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Un état terminal ne bouge plus
	_, err = store.UpdateOrderStatus(id, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateOrderStatusOnlyTouchesStatusAndUpdatedAt(t *testing.T) {
	store := newTestStore(t)

	id, number, err := store.CreateOrder(sampleInput(5, 10))
	require.NoError(t, err)

	before, err := store.GetOrderByNumber(number)
	require.NoError(t, err)

	_, err = store.UpdateOrderStatus(id, models.StatusConfirmed)
	require.NoError(t, err)

	after, err := store.GetOrderByNumber(number)
	require.NoError(t, err)

	assert.Equal(t, before.ItemsJSON, after.ItemsJSON)
	assert.Equal(t, before.Subtotal, after.Subtotal)
	assert.Equal(t, before.CustomerName, after.CustomerName)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt) || after.UpdatedAt.Equal(before.UpdatedAt))
	assert.Equal(t, models.StatusConfirmed, after.Status)
}

func TestUpdateOrderStatusMissingOrder(t *testing.T) {
	store := newTestStore(t)

	affected, err := store.UpdateOrderStatus(777, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
