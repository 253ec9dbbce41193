package shop

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowhammer_back_end/internal/cart"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{Carts: cart.NewStore(nil)}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("cart_key", "test-user")
		c.Next()
	})
	r.GET("/api/products", h.GetProducts)
	r.GET("/api/cart", h.GetCart)
	r.POST("/api/cart/add", h.AddToCart)
	r.POST("/api/cart/remove", h.RemoveFromCart)
	r.POST("/api/cart/quantity", h.SetQuantity)
	r.POST("/api/cart/clear", h.ClearCart)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProducts(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []struct {
			ID       string  `json:"id"`
			Title    string  `json:"title"`
			Price    float64 `json:"price"`
			Currency string  `json:"currency"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 4)

	byID := map[string]float64{}
	for _, p := range resp.Products {
		byID[p.ID] = p.Price
		assert.Equal(t, "USD", p.Currency)
	}
	assert.Equal(t, 19.99, byID["stick-acupressure-pro"])
	assert.Equal(t, 24.99, byID["stick-therapy-ergonomic"])
	assert.Equal(t, 12.99, byID["stick-mini-pocket"])
	assert.Equal(t, 8.99, byID["helmet-cover-style"])
}

type cartViewResp struct {
	Items []struct {
		ID        string  `json:"id"`
		Qty       int     `json:"qty"`
		LineTotal float64 `json:"lineTotal"`
	} `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Count    int     `json:"count"`
}

func TestCartFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view cartViewResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Items)

	w = doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":"stick-mini-pocket","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Qty)
	assert.InDelta(t, 25.98, view.Subtotal, 0.001)

	// Ajout du même produit: fusion, pas de doublon
	w = doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":"stick-mini-pocket","quantity":3}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Qty)

	w = doJSON(t, r, http.MethodPost, "/api/cart/quantity", `{"productId":"stick-mini-pocket","quantity":0}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Items[0].Qty, "zéro remonte au plancher")

	w = doJSON(t, r, http.MethodPost, "/api/cart/remove", `{"productId":"stick-mini-pocket"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
}

func TestAddUnknownProduct(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":"ghost","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartClear(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":"helmet-cover-style","quantity":1}`)
	w := doJSON(t, r, http.MethodPost, "/api/cart/clear", "")

	var view cartViewResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Subtotal)
}
