package payphone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier_backend/internal/feature/payment/adapters/payphone/dto"
	"courier_backend/internal/feature/payment/usecase"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Identifier: "store-1",
		ClientID:   "client-id",
		SecretKey:  "secret-key",
		Timeout:    5 * time.Second,
	}
}

func testRequest() usecase.GatewayRequest {
	return usecase.GatewayRequest{
		Amount:         120.50,
		OrderID:        "LIQ-42",
		IdempotencyKey: "idem-1",
		CardNumber:     "4242424242424242",
		Expiry:         "12/27",
		CVC:            "123",
		HolderName:     "Carlos Perez",
		Items: []usecase.Item{
			{ID: "42", Description: "Customs liquidation", Amount: 120.50},
		},
	}
}

func TestClient_Charge_Success(t *testing.T) {
	var got dto.ChargeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "secret-key", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.ChargeResponse{TransactionID: "tx-999"})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())

	result, err := c.Charge(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "tx-999", result.TransactionID)

	assert.Equal(t, "store-1", got.Identifier)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "LIQ-42", got.OrderID)
	assert.Equal(t, "idem-1", got.IdempotencyKey)
	assert.Equal(t, "4242424242424242", got.Card.Number)
	assert.Equal(t, "Carlos Perez", got.Card.Name)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Customs liquidation", got.Items[0].Description)
}

func TestClient_Charge_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(dto.ChargeResponse{Message: "insufficient funds"})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())

	result, err := c.Charge(context.Background(), testRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, usecase.ErrGatewayDeclined)
	// Gateway message propagates verbatim
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestClient_Charge_DeclinedWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())

	_, err := c.Charge(context.Background(), testRequest())

	assert.ErrorIs(t, err, usecase.ErrGatewayDeclined)
	assert.Contains(t, err.Error(), "gateway http 502")
}

func TestClient_Charge_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := NewClient(testConfig(srv.URL), &http.Client{Timeout: time.Second})

	result, err := c.Charge(context.Background(), testRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, usecase.ErrGatewayUnavailable)
}
