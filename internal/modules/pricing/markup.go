package pricing

import "math"

// DefaultMarkupPercent is the markup applied when no explicit percentage is
// configured. Product pricing and order math share the same engine so the
// two can never drift apart.
const DefaultMarkupPercent = 30

// Engine converts supplier prices into customer-facing prices and back.
// All methods are pure.
type Engine struct {
	Percent float64
}

// NewEngine returns an engine for the given markup percentage, falling back
// to DefaultMarkupPercent when the value is unusable.
func NewEngine(percent float64) Engine {
	if percent <= 0 || math.IsNaN(percent) || math.IsInf(percent, 0) {
		percent = DefaultMarkupPercent
	}
	return Engine{Percent: percent}
}

// Apply returns price * (1 + Percent/100).
func (e Engine) Apply(price float64) float64 {
	return price * (1 + e.Percent/100)
}

// PriceWithMarkup returns the customer-facing price for a supplier price.
// Missing or non-numeric input yields 0 instead of propagating garbage.
func (e Engine) PriceWithMarkup(price float64) float64 {
	if price == 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price + price*e.Percent/100
}

// basePrice recovers the supplier price of an item. The stored
// OriginalPrice (or legacy PriceBeforeMarkup) is authoritative; dividing
// the marked-up price back out is only an estimate subject to
// floating-point drift, so callers should always persist the original.
func (e Engine) basePrice(item OrderItem) float64 {
	if item.OriginalPrice != 0 {
		return item.OriginalPrice
	}
	if item.PriceBeforeMarkup != 0 {
		return item.PriceBeforeMarkup
	}
	return item.Price / (1 + e.Percent/100)
}

// OrderDetails computes the order totals from its line items. Items carry
// post-markup prices; the pre-markup subtotal is recovered per item. An
// empty item list yields zero totals with the shipping cost passed through.
func (e Engine) OrderDetails(items []OrderItem, shipping float64) OrderDetails {
	if len(items) == 0 {
		return OrderDetails{Shipping: shipping, Total: shipping}
	}

	var subtotal, originalSubtotal float64
	for _, item := range items {
		qty := float64(item.Quantity)
		subtotal += item.Price * qty
		originalSubtotal += e.basePrice(item) * qty
	}

	return OrderDetails{
		Subtotal:         subtotal,
		Shipping:         shipping,
		Total:            subtotal + shipping,
		OriginalSubtotal: originalSubtotal,
		Markup:           subtotal - originalSubtotal,
	}
}

// ToSupplierOrder converts a storefront order back to supplier form:
// every price reverts to its pre-markup value and the markup bookkeeping
// fields are stripped. When the original prices were preserved this is the
// exact inverse of markup application.
func (e Engine) ToSupplierOrder(order Order) Order {
	items := make([]OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.Price = e.basePrice(item)
		item.OriginalPrice = 0
		item.PriceBeforeMarkup = 0
		items[i] = item
	}

	subtotal := order.OriginalSubtotal
	if subtotal == 0 {
		subtotal = order.Subtotal / (1 + e.Percent/100)
	}

	order.Items = items
	order.Subtotal = subtotal
	order.Total = subtotal + order.Shipping
	order.OriginalSubtotal = 0
	order.Markup = 0
	order.MarkupPercentage = 0
	return order
}
