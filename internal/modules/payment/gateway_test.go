package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayOrder() *pricing.Order {
	return &pricing.Order{
		ID: "order-1",
		Items: []pricing.OrderItem{
			{ID: "p1", Title: "Phone case", Category: "200", Price: 130, Quantity: 2},
		},
		Subtotal: 260,
		Shipping: 20,
		Total:    280,
		Email:    "buyer@example.com",
		Phone:    "+966500000000",
		ShippingAddress: &pricing.Address{
			FirstName:  "سارة",
			LastName:   "العتيبي",
			Address:    "شارع الملك فهد",
			City:       "الرياض",
			PostalCode: "12211",
		},
	}
}

type capturedRequest struct {
	headers http.Header
	body    []byte
}

// captureServer records the last request and answers with a fixed JSON body.
func captureServer(t *testing.T, reply string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured.headers = r.Header.Clone()
		captured.body = body
		w.Write([]byte(reply))
	}))
	return server, captured
}

func TestMadaCreateSession(t *testing.T) {
	server, captured := captureServer(t, `{"paymentId":"mada_1","checkoutUrl":"https://mada/pay/1"}`)
	defer server.Close()

	gw := &madaGateway{
		merchantID:  "merch",
		apiKey:      "key123",
		frontendURL: "https://bazaar.sa",
		baseURL:     server.URL,
		rest:        newRESTClient(),
	}

	result, err := gw.CreateSession(context.Background(), gatewayOrder())
	require.NoError(t, err)
	assert.Equal(t, "mada_1", result.PaymentID)
	assert.Equal(t, "https://mada/pay/1", result.CheckoutURL)

	assert.Equal(t, "Bearer key123", captured.headers.Get("Authorization"))

	// the signature covers the exact bytes on the wire
	mac := hmac.New(sha256.New, []byte("key123"))
	mac.Write(captured.body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), captured.headers.Get("X-Signature"))

	var sent madaPaymentRequest
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "merch", sent.MerchantID)
	assert.Equal(t, "280.00", sent.Amount)
	assert.Equal(t, "SAR", sent.Currency)
	assert.Equal(t, "order-1", sent.OrderID)
	assert.Equal(t, "https://bazaar.sa/checkout/success", sent.CallbackURL)
	assert.Equal(t, "https://bazaar.sa/cart", sent.CancelURL)
}

func TestMadaStatus(t *testing.T) {
	cases := []struct {
		status string
		paid   bool
	}{
		{"COMPLETED", true},
		{"PENDING", false},
		{"FAILED", false},
	}
	for _, c := range cases {
		t.Run(c.status, func(t *testing.T) {
			server, _ := captureServer(t, `{"status":"`+c.status+`"}`)
			defer server.Close()

			gw := &madaGateway{apiKey: "k", baseURL: server.URL, rest: newRESTClient()}
			result, err := gw.Status(context.Background(), "mada_1")
			require.NoError(t, err)
			assert.Equal(t, c.status, result.Status)
			assert.Equal(t, c.paid, result.Paid)
		})
	}
}

func TestTamaraCreateSession(t *testing.T) {
	server, captured := captureServer(t, `{"checkoutId":"tmr_1","checkoutUrl":"https://tamara/c/1"}`)
	defer server.Close()

	gw := &tamaraGateway{
		merchantID:  "merch",
		apiKey:      "tk",
		frontendURL: "https://bazaar.sa",
		baseURL:     server.URL,
		rest:        newRESTClient(),
	}

	result, err := gw.CreateSession(context.Background(), gatewayOrder())
	require.NoError(t, err)
	assert.Equal(t, "tmr_1", result.CheckoutID)
	assert.Equal(t, "https://tamara/c/1", result.CheckoutURL)

	var sent tamaraCheckoutRequest
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "280.00", sent.Amount)
	require.Len(t, sent.Items, 1)
	assert.Equal(t, "Phone case", sent.Items[0].Name)
	assert.Equal(t, "p1", sent.Items[0].SKU)
	assert.Equal(t, 2, sent.Items[0].Quantity)
	assert.Equal(t, float64(130), sent.Items[0].UnitPrice)
	assert.Equal(t, float64(20), sent.Shipping.Amount)
	assert.Equal(t, "سارة", sent.Consumer.FirstName)
	assert.Equal(t, "buyer@example.com", sent.Consumer.Email)
	assert.Equal(t, "SA", sent.ShippingAddress.CountryCode)
}

func TestTamaraStatusApproved(t *testing.T) {
	server, _ := captureServer(t, `{"status":"APPROVED"}`)
	defer server.Close()

	gw := &tamaraGateway{apiKey: "tk", baseURL: server.URL, rest: newRESTClient()}
	result, err := gw.Status(context.Background(), "tmr_1")
	require.NoError(t, err)
	assert.True(t, result.Paid)
}

func TestTabbyCreateSession(t *testing.T) {
	server, captured := captureServer(t, `{"id":"tby_1","checkoutUrl":"https://tabby/c/1"}`)
	defer server.Close()

	gw := &tabbyGateway{
		merchantID:  "merch",
		apiKey:      "bk",
		frontendURL: "https://bazaar.sa",
		baseURL:     server.URL,
		rest:        newRESTClient(),
	}

	result, err := gw.CreateSession(context.Background(), gatewayOrder())
	require.NoError(t, err)
	assert.Equal(t, "tby_1", result.SessionID)

	var sent tabbyCheckoutRequest
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "280.00", sent.Amount)
	assert.Equal(t, "سارة العتيبي", sent.Buyer.Name)
	assert.Equal(t, "12211", sent.ShippingAddress.Zip)
	require.Len(t, sent.Items, 1)
	assert.Equal(t, "200", sent.Items[0].Category)
}

func TestSTCPayCreateSessionWithoutAddress(t *testing.T) {
	server, captured := captureServer(t, `{"paymentId":"stc_1","checkoutUrl":"https://stc/pay/1"}`)
	defer server.Close()

	gw := &stcPayGateway{
		merchantID:  "merch",
		apiKey:      "sk",
		frontendURL: "https://bazaar.sa",
		baseURL:     server.URL,
		rest:        newRESTClient(),
	}

	order := gatewayOrder()
	order.ShippingAddress = nil

	result, err := gw.CreateSession(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "stc_1", result.PaymentID)
	assert.Equal(t, "Bearer sk", captured.headers.Get("Authorization"))
}

func TestGatewayErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	gw := &madaGateway{apiKey: "k", baseURL: server.URL, rest: newRESTClient()}
	_, err := gw.CreateSession(context.Background(), gatewayOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway returned status 401")
}

func TestApplePayCreateSession(t *testing.T) {
	server, captured := captureServer(t, `{"sessionId":"ap_1","merchantSession":{"epochTimestamp":1}}`)
	defer server.Close()

	gw := &applePayGateway{
		merchantID:  "merchant.sa.bazaar",
		frontendURL: "https://bazaar.sa",
		baseURL:     server.URL,
		rest:        newRESTClient(),
	}

	result, err := gw.CreateSession(context.Background(), gatewayOrder())
	require.NoError(t, err)
	assert.Equal(t, "ap_1", result.SessionID)
	assert.JSONEq(t, `{"epochTimestamp":1}`, string(result.MerchantSession))

	var sent applePaySessionRequest
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "merchant.sa.bazaar", sent.MerchantIdentifier)
	assert.Equal(t, "bazaar.sa", sent.DomainName, "scheme must be stripped from the domain")
	assert.Equal(t, "Bazaar", sent.DisplayName)
}

func TestApplePayStatusNotImplemented(t *testing.T) {
	gw := NewApplePayGateway("merchant.sa.bazaar", "sandbox", "https://bazaar.sa")
	_, err := gw.Status(context.Background(), "ap_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, errApplePayStatus)
}

func TestHalalas(t *testing.T) {
	assert.Equal(t, int64(13000), halalas(130))
	assert.Equal(t, int64(2999), halalas(29.99))
	// float artifacts round to the nearest halala
	assert.Equal(t, int64(1010), halalas(10.1))
	assert.Equal(t, int64(0), halalas(0))
}

func TestOrderAmountFormatting(t *testing.T) {
	assert.Equal(t, "280.00", orderAmount(gatewayOrder()))
	assert.Equal(t, "0.00", orderAmount(&pricing.Order{}))
	assert.Equal(t, "99.90", orderAmount(&pricing.Order{Subtotal: 99.9}))
}
