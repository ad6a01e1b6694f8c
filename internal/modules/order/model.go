package order

// CreateOrderRequest is the payload for direct order creation.
type CreateOrderRequest struct {
	ProductID    string                 `json:"productId" validate:"required"`
	Quantity     int                    `json:"quantity" validate:"required,min=1"`
	CustomerInfo map[string]interface{} `json:"customerInfo" validate:"required"`
}

// ProductLink compares the supplier price with the storefront price and
// carries the affiliate redirect URL for a product.
type ProductLink struct {
	ProductID     string  `json:"productId"`
	OriginalURL   string  `json:"originalUrl"`
	BazaarURL     string  `json:"bazaarUrl"`
	OriginalPrice float64 `json:"originalPrice"`
	BazaarPrice   float64 `json:"bazaarPrice"`
	ProfitMargin  float64 `json:"profitMargin"`
}
