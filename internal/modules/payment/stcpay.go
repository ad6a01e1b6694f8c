package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

type stcPayGateway struct {
	merchantID  string
	apiKey      string
	frontendURL string
	baseURL     string
	rest        *restClient
}

func NewSTCPayGateway(merchantID, apiKey, environment, frontendURL string) Gateway {
	baseURL := "https://api.stcpay.com.sa/v1"
	if environment == "test" {
		baseURL = "https://api.test.stcpay.com.sa/v1"
	}
	return &stcPayGateway{
		merchantID:  merchantID,
		apiKey:      apiKey,
		frontendURL: frontendURL,
		baseURL:     baseURL,
		rest:        newRESTClient(),
	}
}

type stcPayPaymentRequest struct {
	MerchantID  string `json:"merchantId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	OrderID     string `json:"orderId"`
	Description string `json:"description"`
	CallbackURL string `json:"callbackUrl"`
	CancelURL   string `json:"cancelUrl"`
}

func (g *stcPayGateway) CreateSession(ctx context.Context, order *pricing.Order) (*SessionResult, error) {
	payload, err := json.Marshal(stcPayPaymentRequest{
		MerchantID:  g.merchantID,
		Amount:      orderAmount(order),
		Currency:    "SAR",
		OrderID:     order.ID,
		Description: orderDescription(order),
		CallbackURL: g.frontendURL + "/checkout/success",
		CancelURL:   g.frontendURL + "/cart",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		PaymentID   string `json:"paymentId"`
		CheckoutURL string `json:"checkoutUrl"`
	}
	if err := g.rest.post(ctx, g.baseURL+"/payments", payload, bearer(g.apiKey), &resp); err != nil {
		return nil, fmt.Errorf("stc pay payment request: %w", err)
	}
	return &SessionResult{PaymentID: resp.PaymentID, CheckoutURL: resp.CheckoutURL}, nil
}

func (g *stcPayGateway) Status(ctx context.Context, paymentID string) (*StatusResult, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := g.rest.get(ctx, g.baseURL+"/payments/"+paymentID, bearer(g.apiKey), &resp); err != nil {
		return nil, fmt.Errorf("stc pay status request: %w", err)
	}
	return &StatusResult{Status: resp.Status, Paid: resp.Status == "COMPLETED"}, nil
}
