package order

import (
	"context"

	"github.com/bazaar-sa/bazaar-backend/internal/modules/catalog"
	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
)

// Service defines order business logic. Order tracking and direct order
// creation are not implemented yet; the handler reports them as such
// instead of fabricating success.
type Service interface {
	ProductLink(ctx context.Context, productID string) (*ProductLink, error)
}

type service struct {
	catalog catalog.Service
	engine  pricing.Engine
}

func NewService(catalogService catalog.Service, engine pricing.Engine) Service {
	return &service{catalog: catalogService, engine: engine}
}

func (s *service) ProductLink(ctx context.Context, productID string) (*ProductLink, error) {
	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductLink{
		ProductID:     productID,
		OriginalURL:   product.OriginalURL,
		BazaarURL:     product.BazaarURL,
		OriginalPrice: product.OriginalPrice,
		BazaarPrice:   product.Price,
		ProfitMargin:  s.engine.Percent,
	}, nil
}
