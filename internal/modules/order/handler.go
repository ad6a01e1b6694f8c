package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/link/{productId}", h.productLink)
		r.Get("/track/{trackingId}", h.trackOrder)
		r.Post("/", h.createOrder)
	})
}

func (h *Handler) productLink(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "معرف المنتج مطلوب", nil)
		return
	}
	link, err := h.service.ProductLink(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "المنتج غير موجود", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "حدث خطأ أثناء إنشاء رابط المنتج", err)
		return
	}
	respond(w, http.StatusOK, response{
		"success":       true,
		"productId":     link.ProductID,
		"originalUrl":   link.OriginalURL,
		"bazaarUrl":     link.BazaarURL,
		"originalPrice": link.OriginalPrice,
		"bazaarPrice":   link.BazaarPrice,
		"profitMargin":  link.ProfitMargin,
	})
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	trackingID := chi.URLParam(r, "trackingId")
	if trackingID == "" {
		respondError(w, http.StatusBadRequest, "معرف التتبع مطلوب", nil)
		return
	}
	// Supplier-side tracking is not integrated yet.
	respond(w, http.StatusNotImplemented, response{
		"success":    false,
		"trackingId": trackingID,
		"message":    "ميزة تتبع الطلبات غير متوفرة بعد. يرجى زيارة موقع علي إكسبريس لتتبع طلبك باستخدام معرف التتبع.",
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "بيانات الطلب غير صالحة", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			errs := make([]string, 0, len(fieldErrors))
			for _, fe := range fieldErrors {
				errs = append(errs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
			}
			respond(w, http.StatusBadRequest, response{"success": false, "errors": errs})
			return
		}
		respondError(w, http.StatusBadRequest, "معرف المنتج والكمية ومعلومات العميل مطلوبة", err)
		return
	}
	// Direct order placement needs supplier order submission and a completed
	// payment; until both exist this endpoint reports not-implemented.
	respond(w, http.StatusNotImplemented, response{
		"success": false,
		"message": "ميزة إنشاء الطلبات غير متوفرة بعد. سيتم توجيهك إلى صفحة الدفع قريباً.",
	})
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type response map[string]interface{}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := response{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	respond(w, status, body)
}
