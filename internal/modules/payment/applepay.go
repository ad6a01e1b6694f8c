package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

// errApplePayStatus marks the deliberately missing Apple Pay verification:
// reporting an unverified payment as paid is worse than failing loudly.
var errApplePayStatus = errors.New("التحقق من حالة الدفع عبر Apple Pay غير متوفر بعد")

type applePayGateway struct {
	merchantID  string
	frontendURL string
	baseURL     string
	rest        *restClient
}

// NewApplePayGateway returns the Apple Pay merchant-session adapter.
func NewApplePayGateway(merchantID, environment, frontendURL string) Gateway {
	baseURL := "https://apple-pay-gateway.apple.com/paymentservices"
	if environment == "sandbox" {
		baseURL = "https://apple-pay-gateway.sandbox.apple.com/paymentservices"
	}
	return &applePayGateway{
		merchantID:  merchantID,
		frontendURL: frontendURL,
		baseURL:     baseURL,
		rest:        newRESTClient(),
	}
}

type applePaySessionRequest struct {
	MerchantIdentifier string `json:"merchantIdentifier"`
	DomainName         string `json:"domainName"`
	DisplayName        string `json:"displayName"`
}

func (g *applePayGateway) CreateSession(ctx context.Context, order *pricing.Order) (*SessionResult, error) {
	domain := strings.TrimPrefix(strings.TrimPrefix(g.frontendURL, "https://"), "http://")

	payload, err := json.Marshal(applePaySessionRequest{
		MerchantIdentifier: g.merchantID,
		DomainName:         domain,
		DisplayName:        "Bazaar",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		SessionID       string          `json:"sessionId"`
		MerchantSession json.RawMessage `json:"merchantSession"`
	}
	if err := g.rest.post(ctx, g.baseURL+"/startSession", payload, nil, &resp); err != nil {
		return nil, fmt.Errorf("apple pay session request: %w", err)
	}
	return &SessionResult{SessionID: resp.SessionID, MerchantSession: resp.MerchantSession}, nil
}

func (g *applePayGateway) Status(ctx context.Context, paymentID string) (*StatusResult, error) {
	return nil, errApplePayStatus
}
