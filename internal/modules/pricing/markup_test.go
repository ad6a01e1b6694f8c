package pricing

import (
	"math"
	"testing"
)

func TestApply(t *testing.T) {
	e := NewEngine(30)
	cases := []struct {
		price float64
		want  float64
	}{
		{100, 130},
		{0, 0},
		{59.99, 77.987},
		{1, 1.3},
	}
	for _, c := range cases {
		got := e.Apply(c.price)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("Apply(%v) = %v, want %v", c.price, got, c.want)
		}
		// identical to price + price*m/100
		alt := c.price + c.price*30/100
		if math.Abs(got-alt) > 1e-9 {
			t.Fatalf("Apply(%v) = %v, expected %v", c.price, got, alt)
		}
	}
}

func TestPriceWithMarkupInvalidInput(t *testing.T) {
	e := NewEngine(30)
	if got := e.PriceWithMarkup(math.NaN()); got != 0 {
		t.Fatalf("NaN price: got %v, want 0", got)
	}
	if got := e.PriceWithMarkup(0); got != 0 {
		t.Fatalf("zero price: got %v, want 0", got)
	}
	if got := e.PriceWithMarkup(math.Inf(1)); got != 0 {
		t.Fatalf("inf price: got %v, want 0", got)
	}
	if got := e.PriceWithMarkup(100); got != 130 {
		t.Fatalf("valid price: got %v, want 130", got)
	}
}

func TestNewEngineFallback(t *testing.T) {
	if e := NewEngine(0); e.Percent != DefaultMarkupPercent {
		t.Fatalf("zero percent: got %v", e.Percent)
	}
	if e := NewEngine(math.NaN()); e.Percent != DefaultMarkupPercent {
		t.Fatalf("NaN percent: got %v", e.Percent)
	}
	if e := NewEngine(15); e.Percent != 15 {
		t.Fatalf("explicit percent: got %v", e.Percent)
	}
}

func TestOrderDetailsEmpty(t *testing.T) {
	e := NewEngine(30)
	d := e.OrderDetails(nil, 50)
	if d.Subtotal != 0 || d.Shipping != 50 || d.Total != 50 || d.OriginalSubtotal != 0 || d.Markup != 0 {
		t.Fatalf("empty items: got %+v", d)
	}
}

func TestOrderDetails(t *testing.T) {
	e := NewEngine(30)
	items := []OrderItem{{Price: 130, OriginalPrice: 100, Quantity: 2}}
	d := e.OrderDetails(items, 20)
	if d.Subtotal != 260 {
		t.Fatalf("subtotal = %v, want 260", d.Subtotal)
	}
	if d.OriginalSubtotal != 200 {
		t.Fatalf("originalSubtotal = %v, want 200", d.OriginalSubtotal)
	}
	if d.Markup != 60 {
		t.Fatalf("markup = %v, want 60", d.Markup)
	}
	if d.Total != 280 {
		t.Fatalf("total = %v, want 280", d.Total)
	}
}

func TestOrderDetailsFallbackChain(t *testing.T) {
	e := NewEngine(30)

	// legacy field used when OriginalPrice is absent
	d := e.OrderDetails([]OrderItem{{Price: 130, PriceBeforeMarkup: 100, Quantity: 1}}, 0)
	if d.OriginalSubtotal != 100 {
		t.Fatalf("priceBeforeMarkup fallback: got %v, want 100", d.OriginalSubtotal)
	}

	// divide-back estimate when neither was stored
	d = e.OrderDetails([]OrderItem{{Price: 130, Quantity: 1}}, 0)
	if math.Abs(d.OriginalSubtotal-100) > 1e-9 {
		t.Fatalf("divide-back fallback: got %v, want ~100", d.OriginalSubtotal)
	}
}

func TestToSupplierOrderRoundTrip(t *testing.T) {
	e := NewEngine(30)
	original := 100.0
	order := Order{
		ID: "ord-1",
		Items: []OrderItem{{
			ID:            "p1",
			Price:         e.Apply(original),
			OriginalPrice: original,
			Quantity:      2,
		}},
		Subtotal:         260,
		OriginalSubtotal: 200,
		Shipping:         20,
		Total:            280,
		Markup:           60,
		MarkupPercentage: 30,
	}

	supplier := e.ToSupplierOrder(order)

	if supplier.Items[0].Price != original {
		t.Fatalf("recovered price = %v, want %v", supplier.Items[0].Price, original)
	}
	if supplier.Items[0].OriginalPrice != 0 || supplier.Items[0].PriceBeforeMarkup != 0 {
		t.Fatalf("markup fields not stripped from item: %+v", supplier.Items[0])
	}
	if supplier.Subtotal != 200 || supplier.Total != 220 {
		t.Fatalf("totals = %v/%v, want 200/220", supplier.Subtotal, supplier.Total)
	}
	if supplier.OriginalSubtotal != 0 || supplier.Markup != 0 || supplier.MarkupPercentage != 0 {
		t.Fatalf("markup fields not stripped from order: %+v", supplier)
	}
	// input order untouched
	if order.Items[0].OriginalPrice != 100 {
		t.Fatalf("input order mutated: %+v", order.Items[0])
	}
}

func TestToSupplierOrderDivideBack(t *testing.T) {
	e := NewEngine(30)
	order := Order{
		Items:    []OrderItem{{Price: 130, Quantity: 1}},
		Subtotal: 130,
		Shipping: 10,
		Total:    140,
	}
	supplier := e.ToSupplierOrder(order)
	if math.Abs(supplier.Items[0].Price-100) > 1e-9 {
		t.Fatalf("estimated price = %v, want ~100", supplier.Items[0].Price)
	}
	if math.Abs(supplier.Subtotal-100) > 1e-9 {
		t.Fatalf("estimated subtotal = %v, want ~100", supplier.Subtotal)
	}
}
