package payment

import (
	"context"
	"errors"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnsupportedMethod is returned when no gateway is registered under the
// requested method key.
var ErrUnsupportedMethod = errors.New("طريقة الدفع غير مدعومة")

// Service defines payment business logic. Gateway failures surface as
// failure results, never as panics or unhandled errors.
type Service interface {
	CreatePayment(ctx context.Context, order *pricing.Order, method Method) *SessionResult
	CheckStatus(ctx context.Context, paymentID string, method Method) *StatusResult
	HandleWebhook(ctx context.Context, method Method, payload []byte, signature string) error
}

type service struct {
	gateways Registry
	engine   pricing.Engine
	logger   *zap.Logger
}

func NewService(gateways Registry, engine pricing.Engine, logger *zap.Logger) Service {
	return &service{gateways: gateways, engine: engine, logger: logger}
}

func (s *service) CreatePayment(ctx context.Context, order *pricing.Order, method Method) *SessionResult {
	if order == nil || len(order.Items) == 0 {
		return &SessionResult{Success: false, Error: "بيانات الطلب غير صالحة"}
	}

	// Internal bookkeeping; the gateways never see the markup fields.
	order.MarkupPercentage = s.engine.Percent
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	gw, ok := s.gateways[method]
	if !ok {
		return &SessionResult{Success: false, Error: ErrUnsupportedMethod.Error()}
	}

	result, err := gw.CreateSession(ctx, order)
	if err != nil {
		s.logger.Error("payment session creation failed",
			zap.String("method", string(method)), zap.String("order_id", order.ID), zap.Error(err))
		return &SessionResult{Success: false, Error: err.Error()}
	}
	result.Success = true
	return result
}

func (s *service) CheckStatus(ctx context.Context, paymentID string, method Method) *StatusResult {
	gw, ok := s.gateways[method]
	if !ok {
		return &StatusResult{Success: false, Error: ErrUnsupportedMethod.Error()}
	}

	result, err := gw.Status(ctx, paymentID)
	if err != nil {
		s.logger.Error("payment status check failed",
			zap.String("method", string(method)), zap.String("payment_id", paymentID), zap.Error(err))
		return &StatusResult{Success: false, Error: err.Error()}
	}
	result.Success = true
	return result
}

func (s *service) HandleWebhook(ctx context.Context, method Method, payload []byte, signature string) error {
	gw, ok := s.gateways[method]
	if !ok {
		return ErrUnsupportedMethod
	}
	verifier, ok := gw.(WebhookVerifier)
	if !ok {
		return ErrUnsupportedMethod
	}
	return verifier.HandleWebhook(ctx, payload, signature)
}
