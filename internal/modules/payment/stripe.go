package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

type stripeGateway struct {
	webhookSecret string
	frontendURL   string
	logger        *zap.Logger
}

// NewStripeGateway configures the Stripe SDK and returns the checkout
// adapter. Amounts are converted to halalas (SAR minor units) because
// Stripe expects integer minor-unit amounts.
func NewStripeGateway(apiKey, webhookSecret, frontendURL string, logger *zap.Logger) Gateway {
	stripe.Key = apiKey
	return &stripeGateway{webhookSecret: webhookSecret, frontendURL: frontendURL, logger: logger}
}

func halalas(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *stripeGateway) CreateSession(ctx context.Context, order *pricing.Order) (*SessionResult, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Items)+1)
	for _, item := range order.Items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Title),
		}
		if len(item.Images) > 0 {
			productData.Images = stripe.StringSlice(item.Images[:1])
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String("sar"),
				ProductData: productData,
				UnitAmount:  stripe.Int64(halalas(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}
	if order.Shipping > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("sar"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("تكلفة الشحن"),
				},
				UnitAmount: stripe.Int64(halalas(order.Shipping)),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(g.frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(g.frontendURL + "/cart"),
	}
	params.Context = ctx
	params.AddMetadata("orderId", order.ID)
	params.AddMetadata("originalSubtotal", fmt.Sprintf("%.2f", order.OriginalSubtotal))
	params.AddMetadata("markup", fmt.Sprintf("%.2f", order.Markup))

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &SessionResult{SessionID: sess.ID, URL: sess.URL}, nil
}

func (g *stripeGateway) Status(ctx context.Context, paymentID string) (*StatusResult, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := session.Get(paymentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe session retrieve: %w", err)
	}
	return &StatusResult{
		Status:   string(sess.PaymentStatus),
		Paid:     sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: sess.Metadata,
	}, nil
}

// HandleWebhook verifies the Stripe-Signature header against the configured
// webhook secret before touching the payload.
func (g *stripeGateway) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		// Fulfillment hook: once supplier order placement exists, the paid
		// order is converted back to supplier form and submitted here.
		g.logger.Info("stripe checkout completed", zap.String("event_id", event.ID))
	default:
		g.logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
	}
	return nil
}
