package catalog

import (
	"context"
	"errors"
	"strconv"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

// ErrNotFound is returned when the supplier has no matching product or
// category data.
var ErrNotFound = errors.New("not found")

const defaultShippingInfo = "يرجى الاطلاع على صفحة المنتج للحصول على معلومات الشحن"

// SearchResult is a transformed, filtered product page.
type SearchResult struct {
	TotalResults int
	Page         int
	PageSize     int
	Products     []Product
}

// Service defines catalog business logic over the supplier API.
type Service interface {
	Search(ctx context.Context, p SearchParams) (*SearchResult, error)
	ProductByID(ctx context.Context, id string) (*Product, error)
	Featured(ctx context.Context, limit int) ([]Product, error)
	ByCategory(ctx context.Context, categoryID string, page, pageSize int) (*SearchResult, error)
	Categories(ctx context.Context) ([]Category, error)
	MainCategories(ctx context.Context) ([]Category, error)
	SubCategories(ctx context.Context, parentID string) ([]Category, error)
}

type service struct {
	client *Client
	engine pricing.Engine
}

func NewService(client *Client, engine pricing.Engine) Service {
	return &service{client: client, engine: engine}
}

// transformProducts maps raw supplier products into the storefront shape,
// applying the markup, then drops prohibited items. Mapping runs first so
// the filter sees the final title/description/category fields.
func (s *service) transformProducts(raw []SupplierProduct) []Product {
	if len(raw) == 0 {
		return []Product{}
	}

	mapped := make([]Product, 0, len(raw))
	for _, sp := range raw {
		original, err := strconv.ParseFloat(sp.SalePrice, 64)
		if err != nil {
			original = 0
		}
		shipping := sp.ShipToDays
		if shipping == "" {
			shipping = defaultShippingInfo
		}
		images := sp.SmallImages.String
		if images == nil {
			images = []string{}
		}
		specs := sp.Specs
		if specs == nil {
			specs = []ProductSpec{}
		}

		mapped = append(mapped, Product{
			ID:               sp.ProductID,
			Title:            sp.Title,
			Description:      sp.Description,
			OriginalPrice:    original,
			Price:            s.engine.PriceWithMarkup(original),
			Currency:         sp.Currency,
			ImageURL:         sp.MainImage,
			AdditionalImages: images,
			Rating:           sp.Rating,
			TotalOrders:      sp.SaleCount,
			CategoryID:       sp.CategoryID,
			OriginalURL:      sp.PromotionLink,
			BazaarURL:        "/product/" + sp.ProductID,
			Specs:            specs,
			ShippingInfo:     shipping,
		})
	}
	return FilterProhibited(mapped)
}

func (s *service) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	resp, err := s.client.SearchProducts(ctx, p)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		TotalResults: resp.TotalRecordCount,
		Page:         p.Page,
		PageSize:     p.PageSize,
		Products:     s.transformProducts(resp.Products),
	}, nil
}

func (s *service) ProductByID(ctx context.Context, id string) (*Product, error) {
	resp, err := s.client.ProductDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(resp.Products) == 0 {
		return nil, ErrNotFound
	}
	// A prohibited product is reported as absent rather than exposed.
	products := s.transformProducts(resp.Products)
	if len(products) == 0 {
		return nil, ErrNotFound
	}
	return &products[0], nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 10
	}
	resp, err := s.client.SearchProducts(ctx, SearchParams{Page: 1, PageSize: limit})
	if err != nil {
		return nil, err
	}
	return s.transformProducts(resp.Products), nil
}

func (s *service) ByCategory(ctx context.Context, categoryID string, page, pageSize int) (*SearchResult, error) {
	return s.Search(ctx, SearchParams{CategoryID: categoryID, Page: page, PageSize: pageSize})
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	return s.categories(ctx, func(SupplierCategory) bool { return true })
}

func (s *service) MainCategories(ctx context.Context) ([]Category, error) {
	return s.categories(ctx, func(sc SupplierCategory) bool { return sc.Level == "1" })
}

func (s *service) SubCategories(ctx context.Context, parentID string) ([]Category, error) {
	return s.categories(ctx, func(sc SupplierCategory) bool { return sc.ParentID == parentID })
}

func (s *service) categories(ctx context.Context, keep func(SupplierCategory) bool) ([]Category, error) {
	resp, err := s.client.Categories(ctx)
	if err != nil {
		return nil, err
	}
	list := resp.Categories.List
	if len(list) == 0 {
		return nil, ErrNotFound
	}

	out := make([]Category, 0, len(list))
	for _, sc := range list {
		if !keep(sc) {
			continue
		}
		var parent *string
		if sc.ParentID != "" {
			id := sc.ParentID
			parent = &id
		}
		out = append(out, Category{
			ID:       sc.ID,
			Name:     sc.Name,
			Level:    sc.Level,
			ParentID: parent,
			IsLeaf:   sc.IsLeaf == "true",
		})
	}
	return out, nil
}
