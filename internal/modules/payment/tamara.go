package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

type tamaraGateway struct {
	merchantID  string
	apiKey      string
	frontendURL string
	baseURL     string
	rest        *restClient
}

// NewTamaraGateway returns the Tamara (pay-later) adapter.
func NewTamaraGateway(merchantID, apiKey, environment, frontendURL string) Gateway {
	baseURL := "https://api.tamara.co"
	if environment == "sandbox" {
		baseURL = "https://api.sandbox.tamara.co"
	}
	return &tamaraGateway{
		merchantID:  merchantID,
		apiKey:      apiKey,
		frontendURL: frontendURL,
		baseURL:     baseURL,
		rest:        newRESTClient(),
	}
}

type tamaraItem struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type tamaraCheckoutRequest struct {
	MerchantID  string       `json:"merchantId"`
	Amount      string       `json:"amount"`
	Currency    string       `json:"currency"`
	OrderID     string       `json:"orderId"`
	Description string       `json:"description"`
	Items       []tamaraItem `json:"items"`
	Shipping    struct {
		Amount float64 `json:"amount"`
	} `json:"shipping"`
	Consumer struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	} `json:"consumer"`
	ShippingAddress struct {
		Line1       string `json:"line1"`
		City        string `json:"city"`
		CountryCode string `json:"countryCode"`
	} `json:"shippingAddress"`
	CallbackURL string `json:"callbackUrl"`
	CancelURL   string `json:"cancelUrl"`
}

func (g *tamaraGateway) CreateSession(ctx context.Context, order *pricing.Order) (*SessionResult, error) {
	addr := shippingAddress(order)

	req := tamaraCheckoutRequest{
		MerchantID:  g.merchantID,
		Amount:      orderAmount(order),
		Currency:    "SAR",
		OrderID:     order.ID,
		Description: orderDescription(order),
		CallbackURL: g.frontendURL + "/checkout/success",
		CancelURL:   g.frontendURL + "/cart",
	}
	for _, item := range order.Items {
		req.Items = append(req.Items, tamaraItem{
			Name:      item.Title,
			SKU:       item.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}
	req.Shipping.Amount = order.Shipping
	req.Consumer.FirstName = addr.FirstName
	req.Consumer.LastName = addr.LastName
	req.Consumer.Email = order.Email
	req.Consumer.Phone = order.Phone
	req.ShippingAddress.Line1 = addr.Address
	req.ShippingAddress.City = addr.City
	req.ShippingAddress.CountryCode = "SA"

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		CheckoutID  string `json:"checkoutId"`
		CheckoutURL string `json:"checkoutUrl"`
	}
	if err := g.rest.post(ctx, g.baseURL+"/checkout", payload, bearer(g.apiKey), &resp); err != nil {
		return nil, fmt.Errorf("tamara checkout request: %w", err)
	}
	return &SessionResult{CheckoutID: resp.CheckoutID, CheckoutURL: resp.CheckoutURL}, nil
}

func (g *tamaraGateway) Status(ctx context.Context, paymentID string) (*StatusResult, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := g.rest.get(ctx, g.baseURL+"/checkout/"+paymentID, bearer(g.apiKey), &resp); err != nil {
		return nil, fmt.Errorf("tamara status request: %w", err)
	}
	return &StatusResult{Status: resp.Status, Paid: resp.Status == "APPROVED"}, nil
}
