package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler exposes payment HTTP endpoints.
type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Post("/create-session", h.createSession)
		r.Post("/verify", h.verify)
		// Provider callback; authenticated by the provider's signature,
		// not by any middleware.
		r.Post("/webhook/{paymentMethod}", h.webhook)
	})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "بيانات الطلب أو طريقة الدفع غير متوفرة", err)
		return
	}
	if errs := h.validationErrors(req); len(errs) > 0 {
		respond(w, http.StatusBadRequest, response{"success": false, "errors": errs})
		return
	}

	result := h.service.CreatePayment(r.Context(), req.Order, Method(req.PaymentMethod))
	if !result.Success {
		respondError(w, http.StatusBadRequest, result.Error, nil)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "معرف الدفع أو طريقة الدفع غير متوفرة", err)
		return
	}
	if errs := h.validationErrors(req); len(errs) > 0 {
		respond(w, http.StatusBadRequest, response{"success": false, "errors": errs})
		return
	}

	result := h.service.CheckStatus(r.Context(), req.PaymentID, Method(req.PaymentMethod))
	if !result.Success {
		respondError(w, http.StatusBadRequest, result.Error, nil)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	method := Method(chi.URLParam(r, "paymentMethod"))

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid webhook payload", err)
		return
	}

	err = h.service.HandleWebhook(r.Context(), method, payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, ErrUnsupportedMethod) {
			respondError(w, http.StatusBadRequest, ErrUnsupportedMethod.Error(), nil)
			return
		}
		// Signature failures return the raw error text with no processing.
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	respond(w, http.StatusOK, response{"received": true})
}

func (h *Handler) validationErrors(req interface{}) []string {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		errs := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			errs = append(errs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		return errs
	}
	return []string{err.Error()}
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
