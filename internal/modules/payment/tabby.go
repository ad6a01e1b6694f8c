package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

type tabbyGateway struct {
	merchantID  string
	apiKey      string
	frontendURL string
	baseURL     string
	rest        *restClient
}

// NewTabbyGateway returns the Tabby (installments) adapter. Tabby serves
// sandbox and live traffic from the same host; the API key decides the
// environment.
func NewTabbyGateway(merchantID, apiKey, environment, frontendURL string) Gateway {
	_ = environment
	return &tabbyGateway{
		merchantID:  merchantID,
		apiKey:      apiKey,
		frontendURL: frontendURL,
		baseURL:     "https://api.tabby.ai/api/v1",
		rest:        newRESTClient(),
	}
}

type tabbyItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Category  string  `json:"category"`
}

type tabbyCheckoutRequest struct {
	MerchantID  string `json:"merchantId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	OrderID     string `json:"orderId"`
	Description string `json:"description"`
	Buyer       struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
		Name  string `json:"name"`
	} `json:"buyer"`
	ShippingAddress struct {
		Address string `json:"address"`
		City    string `json:"city"`
		Zip     string `json:"zip"`
	} `json:"shippingAddress"`
	Items    []tabbyItem `json:"items"`
	Shipping struct {
		Amount float64 `json:"amount"`
	} `json:"shipping"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (g *tabbyGateway) CreateSession(ctx context.Context, order *pricing.Order) (*SessionResult, error) {
	addr := shippingAddress(order)

	req := tabbyCheckoutRequest{
		MerchantID:  g.merchantID,
		Amount:      orderAmount(order),
		Currency:    "SAR",
		OrderID:     order.ID,
		Description: orderDescription(order),
		SuccessURL:  g.frontendURL + "/checkout/success",
		CancelURL:   g.frontendURL + "/cart",
	}
	req.Buyer.Email = order.Email
	req.Buyer.Phone = order.Phone
	req.Buyer.Name = addr.FirstName + " " + addr.LastName
	req.ShippingAddress.Address = addr.Address
	req.ShippingAddress.City = addr.City
	req.ShippingAddress.Zip = addr.PostalCode
	for _, item := range order.Items {
		req.Items = append(req.Items, tabbyItem{
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Category:  item.Category,
		})
	}
	req.Shipping.Amount = order.Shipping

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ID          string `json:"id"`
		CheckoutURL string `json:"checkoutUrl"`
	}
	if err := g.rest.post(ctx, g.baseURL+"/checkout", payload, bearer(g.apiKey), &resp); err != nil {
		return nil, fmt.Errorf("tabby checkout request: %w", err)
	}
	return &SessionResult{SessionID: resp.ID, CheckoutURL: resp.CheckoutURL}, nil
}

func (g *tabbyGateway) Status(ctx context.Context, paymentID string) (*StatusResult, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := g.rest.get(ctx, g.baseURL+"/checkout/"+paymentID, bearer(g.apiKey), &resp); err != nil {
		return nil, fmt.Errorf("tabby status request: %w", err)
	}
	return &StatusResult{Status: resp.Status, Paid: resp.Status == "APPROVED"}, nil
}
