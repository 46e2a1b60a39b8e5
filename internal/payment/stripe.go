package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeClient implements Gateway against the Stripe Checkout Sessions API.
// The base URL is configurable so tests can point it at a local server.
type StripeClient struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func NewStripeClient(apiURL, secretKey string) *StripeClient {
	return &StripeClient{
		apiURL:    strings.TrimSuffix(apiURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type stripeSession struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *StripeClient) CreateSession(ctx context.Context, params *SessionParams) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][product_data][name]", params.Description)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.UnitAmount, 10))
	quantity := params.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	form.Set("line_items[0][quantity]", strconv.FormatInt(quantity, 10))
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GatewayError{StatusCode: http.StatusBadGateway, Message: "payment provider unreachable: " + err.Error()}
	}
	defer resp.Body.Close()

	var session stripeSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", &GatewayError{StatusCode: resp.StatusCode, Message: "invalid response from payment provider"}
	}

	if resp.StatusCode != http.StatusOK {
		msg := "payment provider rejected the request"
		if session.Error != nil && session.Error.Message != "" {
			msg = session.Error.Message
		}
		return "", &GatewayError{StatusCode: resp.StatusCode, Message: msg}
	}
	if session.ID == "" {
		return "", &GatewayError{StatusCode: resp.StatusCode, Message: "payment provider returned no session id"}
	}
	return session.ID, nil
}
