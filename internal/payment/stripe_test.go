package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionParams() *SessionParams {
	return &SessionParams{
		Currency:      "eur",
		Description:   "Seat Ibiza",
		UnitAmount:    1250050,
		Quantity:      1,
		SuccessURL:    "http://localhost/success",
		CancelURL:     "http://localhost/cancel",
		CustomerEmail: "buyer@example.com",
		Metadata:      map[string]string{"car_id": "abc"},
	}
}

func TestStripeCreateSession(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "cs_test_abc123"}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_secret")
	id, err := client.CreateSession(context.Background(), sessionParams())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc123", id)

	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "card", gotForm["payment_method_types[0]"])
	assert.Equal(t, "eur", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Seat Ibiza", gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "1250050", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "1", gotForm["line_items[0][quantity]"])
	assert.Equal(t, "http://localhost/success", gotForm["success_url"])
	assert.Equal(t, "http://localhost/cancel", gotForm["cancel_url"])
	assert.Equal(t, "buyer@example.com", gotForm["customer_email"])
	assert.Equal(t, "abc", gotForm["metadata[car_id]"])
}

func TestStripeErrorMessageSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid currency: xxx"}}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_secret")
	_, err := client.CreateSession(context.Background(), sessionParams())

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Equal(t, "Invalid currency: xxx", gwErr.Message)
}

func TestStripeMissingSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_secret")
	_, err := client.CreateSession(context.Background(), sessionParams())

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusOK, gwErr.StatusCode)
}

func TestStripeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewStripeClient(server.URL, "sk_test_secret")
	_, err := client.CreateSession(context.Background(), sessionParams())

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadGateway, gwErr.StatusCode)
}
