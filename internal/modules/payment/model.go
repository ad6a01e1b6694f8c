package payment

import (
	"encoding/json"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

// Method identifies a supported payment gateway.
type Method string

const (
	MethodStripe   Method = "stripe"
	MethodMada     Method = "mada"
	MethodApplePay Method = "applePay"
	MethodSTCPay   Method = "stcPay"
	MethodTamara   Method = "tamara"
	MethodTabby    Method = "tabby"
)

// SessionResult is the uniform adapter response for session creation.
// Each gateway populates its own identifier fields; the rest stay empty
// and are omitted from the JSON.
type SessionResult struct {
	Success         bool            `json:"success"`
	SessionID       string          `json:"sessionId,omitempty"`
	PaymentID       string          `json:"paymentId,omitempty"`
	CheckoutID      string          `json:"checkoutId,omitempty"`
	URL             string          `json:"url,omitempty"`
	CheckoutURL     string          `json:"checkoutUrl,omitempty"`
	MerchantSession json.RawMessage `json:"merchantSession,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// StatusResult is the uniform adapter response for a status check. Status
// keeps the gateway's own vocabulary; Paid is the normalized boolean.
type StatusResult struct {
	Success  bool              `json:"success"`
	Status   string            `json:"status,omitempty"`
	Paid     bool              `json:"paid"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// CreateSessionRequest is the payload of POST /payments/create-session.
type CreateSessionRequest struct {
	Order         *pricing.Order `json:"order" validate:"required"`
	PaymentMethod string         `json:"paymentMethod" validate:"required"`
}

// VerifyRequest is the payload of POST /payments/verify.
type VerifyRequest struct {
	PaymentID     string `json:"paymentId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}
