package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentRouter(gateways Registry) *chi.Mux {
	router := chi.NewRouter()
	svc := NewService(gateways, pricing.NewEngine(30), zap.NewNop())
	NewHandler(svc).RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *chi.Mux, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return rec, decoded
}

const validSessionBody = `{
	"order": {
		"items": [{"id": "p1", "title": "Case", "price": 130, "quantity": 1}],
		"subtotal": 130, "shipping": 20, "total": 150
	},
	"paymentMethod": "mada"
}`

func TestCreateSessionEndpoint(t *testing.T) {
	gw := &fakeGateway{session: &SessionResult{PaymentID: "pay_1", CheckoutURL: "https://gw/1"}}
	router := newPaymentRouter(Registry{MethodMada: gw})

	rec, body := postJSON(t, router, "/api/v1/payments/create-session", validSessionBody, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "pay_1", body["paymentId"])
	assert.Equal(t, "https://gw/1", body["checkoutUrl"])
}

func TestCreateSessionUnknownMethod(t *testing.T) {
	router := newPaymentRouter(Registry{})

	rec, body := postJSON(t, router, "/api/v1/payments/create-session",
		strings.Replace(validSessionBody, "mada", "bitcoin", 1), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "طريقة الدفع غير مدعومة", body["message"])
}

func TestCreateSessionMissingFields(t *testing.T) {
	router := newPaymentRouter(Registry{})

	rec, body := postJSON(t, router, "/api/v1/payments/create-session", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok, "body: %v", body)
	assert.Len(t, errs, 2)
}

func TestCreateSessionBadJSON(t *testing.T) {
	router := newPaymentRouter(Registry{})

	rec, body := postJSON(t, router, "/api/v1/payments/create-session", `{broken`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "بيانات الطلب أو طريقة الدفع غير متوفرة", body["message"])
}

func TestVerifyEndpoint(t *testing.T) {
	gw := &fakeGateway{status: &StatusResult{Status: "COMPLETED", Paid: true}}
	router := newPaymentRouter(Registry{MethodSTCPay: gw})

	rec, body := postJSON(t, router, "/api/v1/payments/verify",
		`{"paymentId": "pay_1", "paymentMethod": "stcPay"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["paid"])
	assert.Equal(t, "COMPLETED", body["status"])
}

func TestVerifyMissingFields(t *testing.T) {
	router := newPaymentRouter(Registry{})

	rec, body := postJSON(t, router, "/api/v1/payments/verify", `{"paymentId": "pay_1"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok, "body: %v", body)
	assert.Len(t, errs, 1)
}

func TestWebhookUnknownMethod(t *testing.T) {
	router := newPaymentRouter(Registry{})

	rec, body := postJSON(t, router, "/api/v1/payments/webhook/unknown", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "طريقة الدفع غير مدعومة", body["message"])
}

func TestWebhookBadStripeSignature(t *testing.T) {
	gw := NewStripeGateway("sk_test_dummy", "whsec_dummy", "https://bazaar.sa", zap.NewNop())
	router := newPaymentRouter(Registry{MethodStripe: gw})

	rec, body := postJSON(t, router, "/api/v1/payments/webhook/stripe",
		`{"type": "checkout.session.completed"}`,
		map[string]string{"Stripe-Signature": "t=1,v1=bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg, _ := body["message"].(string)
	assert.Contains(t, msg, "webhook signature verification failed")
}
