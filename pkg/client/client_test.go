package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LoginStoresToken(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-123"}`))
	})
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"email":"alice@example.com","username":"alice"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	token, err := c.Login(context.Background(), "alice@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_DecodesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"AUTHZ_FORBIDDEN","message":"not your cart item"}`))
	}))
	defer server.Close()

	err := New(server.URL).RemoveFromCart(context.Background(), 3)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "AUTHZ_FORBIDDEN", apiErr.Code)
	assert.Equal(t, "not your cart item", apiErr.Message)
}

func TestClient_SearchProductsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "chair", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("categoryId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":5,"title":"Oak chair","price":49.9,"imageUrl":"x","categoryId":2}]`))
	}))
	defer server.Close()

	results, err := New(server.URL).SearchProducts(context.Background(), SearchQuery{Query: "chair", CategoryID: 2})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, decimal.RequireFromString("49.9").Equal(results[0].Price))
}

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{Quantity: 2, Product: &Product{Price: decimal.NewFromInt(10)}},
		{Quantity: 1, Product: &Product{Price: decimal.RequireFromString("5.25")}},
		{Quantity: 4},
	}
	assert.Equal(t, "25.25", CartTotal(items).String())
	assert.True(t, CartTotal(nil).IsZero())
}

func TestOrderTotal(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 2, Price: decimal.NewFromInt(10)},
		{Quantity: 1, Price: decimal.NewFromInt(5)},
	}}
	assert.Equal(t, "25", order.Total().String())
}
