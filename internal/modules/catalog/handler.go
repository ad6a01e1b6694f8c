package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler exposes product and category HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/search", h.search)
		r.Get("/featured", h.featured)
		r.Get("/category/{categoryId}", h.byCategory)
		r.Get("/{productId}", h.productDetails)
	})
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.allCategories)
		r.Get("/main", h.mainCategories)
		r.Get("/sub/{parentId}", h.subCategories)
	})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var errs []string
	p := SearchParams{
		Keywords:   q.Get("keywords"),
		CategoryID: q.Get("categoryId"),
		Sort:       q.Get("sort"),
		Page:       intQuery(q, "page", 1, 0, &errs, "يجب أن تكون الصفحة رقماً صحيحاً أكبر من 0"),
		PageSize:   intQuery(q, "pageSize", 20, 50, &errs, "يجب أن يكون حجم الصفحة رقماً صحيحاً بين 1 و 50"),
		MinPrice:   priceQuery(q, "minPrice", &errs, "يجب أن يكون الحد الأدنى للسعر رقماً موجباً"),
		MaxPrice:   priceQuery(q, "maxPrice", &errs, "يجب أن يكون الحد الأقصى للسعر رقماً موجباً"),
	}
	if len(errs) > 0 {
		respond(w, http.StatusBadRequest, response{"success": false, "errors": errs})
		return
	}

	res, err := h.service.Search(r.Context(), p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "حدث خطأ أثناء البحث عن المنتجات", err)
		return
	}
	respond(w, http.StatusOK, response{
		"success":      true,
		"totalResults": res.TotalResults,
		"currentPage":  res.Page,
		"pageSize":     res.PageSize,
		"products":     res.Products,
	})
}

func (h *Handler) productDetails(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "معرف المنتج مطلوب", nil)
		return
	}
	product, err := h.service.ProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "المنتج غير موجود", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "حدث خطأ أثناء الحصول على تفاصيل المنتج", err)
		return
	}
	respond(w, http.StatusOK, response{"success": true, "product": product})
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	var errs []string
	limit := intQuery(r.URL.Query(), "limit", 10, 50, &errs, "يجب أن يكون الحد رقماً صحيحاً بين 1 و 50")
	if len(errs) > 0 {
		respond(w, http.StatusBadRequest, response{"success": false, "errors": errs})
		return
	}
	products, err := h.service.Featured(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "حدث خطأ أثناء الحصول على المنتجات المميزة", err)
		return
	}
	respond(w, http.StatusOK, response{"success": true, "products": products})
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	if categoryID == "" {
		respondError(w, http.StatusBadRequest, "معرف الفئة مطلوب", nil)
		return
	}
	q := r.URL.Query()
	var errs []string
	page := intQuery(q, "page", 1, 0, &errs, "يجب أن تكون الصفحة رقماً صحيحاً أكبر من 0")
	pageSize := intQuery(q, "pageSize", 20, 50, &errs, "يجب أن يكون حجم الصفحة رقماً صحيحاً بين 1 و 50")
	if len(errs) > 0 {
		respond(w, http.StatusBadRequest, response{"success": false, "errors": errs})
		return
	}

	res, err := h.service.ByCategory(r.Context(), categoryID, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "حدث خطأ أثناء الحصول على المنتجات حسب الفئة", err)
		return
	}
	respond(w, http.StatusOK, response{
		"success":      true,
		"totalResults": res.TotalResults,
		"currentPage":  res.Page,
		"pageSize":     res.PageSize,
		"products":     res.Products,
	})
}

func (h *Handler) allCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.categoriesError(w, err)
		return
	}
	respond(w, http.StatusOK, response{"success": true, "categories": categories})
}

func (h *Handler) mainCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.MainCategories(r.Context())
	if err != nil {
		h.categoriesError(w, err)
		return
	}
	respond(w, http.StatusOK, response{"success": true, "categories": categories})
}

func (h *Handler) subCategories(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "parentId")
	if parentID == "" {
		respondError(w, http.StatusBadRequest, "معرف الفئة الأم مطلوب", nil)
		return
	}
	categories, err := h.service.SubCategories(r.Context(), parentID)
	if err != nil {
		h.categoriesError(w, err)
		return
	}
	respond(w, http.StatusOK, response{"success": true, "parentId": parentID, "categories": categories})
}

func (h *Handler) categoriesError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "لم يتم العثور على فئات", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, "حدث خطأ أثناء الحصول على الفئات", err)
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

// intQuery parses an optional positive integer query parameter. A value
// outside [1, max] (max 0 means unbounded) records a validation message and
// falls back to the default.
func intQuery(q url.Values, name string, def, max int, errs *[]string, msg string) int {
	raw := q.Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || (max > 0 && n > max) {
		*errs = append(*errs, msg)
		return def
	}
	return n
}

// priceQuery validates an optional non-negative decimal query parameter and
// returns it in its raw string form for the supplier request.
func priceQuery(q url.Values, name string, errs *[]string, msg string) string {
	raw := q.Get(name)
	if raw == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(raw, 64); err != nil || v < 0 {
		*errs = append(*errs, msg)
		return ""
	}
	return raw
}
