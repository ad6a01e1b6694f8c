package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

// Gateway is the provider-agnostic interface every payment adapter must
// implement. To add a new provider, implement this interface and register
// it under its method key.
type Gateway interface {
	// CreateSession builds the provider-specific checkout request for an
	// order and returns the provider's session identifiers.
	CreateSession(ctx context.Context, order *pricing.Order) (*SessionResult, error)
	// Status queries the provider for the current state of a payment and
	// maps it to the normalized Paid flag.
	Status(ctx context.Context, paymentID string) (*StatusResult, error)
}

// WebhookVerifier is implemented by gateways that can verify and process
// inbound provider callbacks.
type WebhookVerifier interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// Registry maps method keys to their Gateway implementations.
type Registry map[Method]Gateway

// ── REST helper shared by the hosted-checkout adapters ────────────────────────

type restClient struct {
	http *http.Client
}

func newRESTClient() *restClient {
	return &restClient{http: &http.Client{Timeout: 30 * time.Second}}
}

// post sends a pre-marshaled JSON payload. The payload is marshaled by the
// caller so signature schemes (Mada's HMAC) cover the exact bytes sent.
func (c *restClient) post(ctx context.Context, url string, payload []byte, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *restClient) get(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *restClient) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func bearer(apiKey string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

// orderAmount is the charge total as the decimal string the regional
// gateways expect.
func orderAmount(order *pricing.Order) string {
	return fmt.Sprintf("%.2f", order.Subtotal+order.Shipping)
}

func orderDescription(order *pricing.Order) string {
	return "طلب رقم " + order.ID
}

// shippingAddress tolerates orders without one; the gateways receive empty
// fields instead of the request failing.
func shippingAddress(order *pricing.Order) pricing.Address {
	if order.ShippingAddress == nil {
		return pricing.Address{}
	}
	return *order.ShippingAddress
}
