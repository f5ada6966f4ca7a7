package external

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaymentClient(serverURL string) *PaymentClient {
	return NewPaymentClient(PaymentConfig{
		BaseURL:  serverURL,
		TeamSlug: "kinoplex",
		Password: "secret",
	})
}

func TestGenerateToken(t *testing.T) {
	client := newTestPaymentClient("http://unused")

	token := client.generateToken(map[string]string{
		"Amount":   "500000",
		"Currency": "KZT",
		"OrderId":  "order-1",
	})

	// Values concatenated in alphabetical key order:
	// Amount, Currency, OrderId, Password, TeamSlug
	expected := sha256.Sum256([]byte("500000KZTorder-1secretkinoplex"))
	assert.Equal(t, hex.EncodeToString(expected[:]), token)
}

func TestInitPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/PaymentInit/init", r.URL.Path)

		var req PaymentInitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "kinoplex", req.TeamSlug)
		assert.Equal(t, int64(500000), req.Amount)
		assert.Equal(t, "order-1", req.OrderID)
		assert.NotEmpty(t, req.Token)
		assert.NotEmpty(t, req.SuccessURL)

		json.NewEncoder(w).Encode(PaymentInitResponse{
			Success:    true,
			PaymentID:  "pay-123",
			OrderID:    req.OrderID,
			Status:     "NEW",
			Amount:     req.Amount,
			Currency:   req.Currency,
			PaymentURL: "https://gateway.example.com/pay/pay-123",
		})
	}))
	defer server.Close()

	client := newTestPaymentClient(server.URL)

	resp, err := client.InitPayment(context.Background(), InitPaymentParams{
		Amount:     500000,
		OrderID:    "order-1",
		Currency:   "KZT",
		SuccessURL: "http://localhost:8080/api/payments/success?orderId=order-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-123", resp.PaymentID)
	assert.Equal(t, "https://gateway.example.com/pay/pay-123", resp.PaymentURL)
}

func TestInitPaymentRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PaymentInitResponse{Success: false})
	}))
	defer server.Close()

	client := newTestPaymentClient(server.URL)

	_, err := client.InitPayment(context.Background(), InitPaymentParams{
		Amount:   100,
		OrderID:  "order-2",
		Currency: "KZT",
	})
	assert.Error(t, err)
}

func TestCheckPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/PaymentCheck/check", r.URL.Path)
		json.NewEncoder(w).Encode(PaymentCheckResponse{
			Success:    true,
			TotalCount: 1,
			Payments: []PaymentDetails{
				{PaymentID: "pay-123", Status: "CONFIRMED"},
			},
		})
	}))
	defer server.Close()

	client := newTestPaymentClient(server.URL)

	resp, err := client.CheckPayment(context.Background(), "pay-123")
	require.NoError(t, err)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, "CONFIRMED", resp.Payments[0].Status)
}

func TestCancelPaymentUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestPaymentClient(server.URL)

	err := client.CancelPayment(context.Background(), "pay-123", "test")
	assert.Error(t, err)
}
