package pricing

// OrderItem is a storefront line item. Price is the customer-facing price
// after markup; OriginalPrice (or the legacy PriceBeforeMarkup) keeps the
// supplier price it was derived from so the markup can be removed exactly.
type OrderItem struct {
	ID                string   `json:"id,omitempty"`
	Title             string   `json:"title,omitempty"`
	Category          string   `json:"category,omitempty"`
	Images            []string `json:"images,omitempty"`
	Price             float64  `json:"price"`
	OriginalPrice     float64  `json:"originalPrice,omitempty"`
	PriceBeforeMarkup float64  `json:"priceBeforeMarkup,omitempty"`
	Quantity          int      `json:"quantity"`
}

// Address is the customer shipping address attached to an order.
type Address struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Order is the storefront order shape shared by the order and payment
// modules. The markup bookkeeping fields (OriginalSubtotal, Markup,
// MarkupPercentage) are internal and stripped before anything is sent to
// the supplier.
type Order struct {
	ID               string      `json:"id,omitempty"`
	Items            []OrderItem `json:"items"`
	Subtotal         float64     `json:"subtotal"`
	OriginalSubtotal float64     `json:"originalSubtotal,omitempty"`
	Shipping         float64     `json:"shipping"`
	Total            float64     `json:"total"`
	Markup           float64     `json:"markup,omitempty"`
	MarkupPercentage float64     `json:"markupPercentage,omitempty"`
	Email            string      `json:"email,omitempty"`
	Phone            string      `json:"phone,omitempty"`
	ShippingAddress  *Address    `json:"shippingAddress,omitempty"`
}

// OrderDetails are the computed totals for a set of line items.
type OrderDetails struct {
	Subtotal         float64 `json:"subtotal"`
	Shipping         float64 `json:"shipping"`
	Total            float64 `json:"total"`
	OriginalSubtotal float64 `json:"originalSubtotal"`
	Markup           float64 `json:"markup"`
}
