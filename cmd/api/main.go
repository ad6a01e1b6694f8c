package main

import (
	"log"
	"net/http"

	"github.com/bazaar-sa/bazaar-backend/internal/config"
	"github.com/bazaar-sa/bazaar-backend/internal/modules/catalog"
	"github.com/bazaar-sa/bazaar-backend/internal/modules/order"
	"github.com/bazaar-sa/bazaar-backend/internal/modules/payment"
	"github.com/bazaar-sa/bazaar-backend/internal/modules/pricing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; deployments configure the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// One markup engine for product pricing and order math.
	engine := pricing.NewEngine(cfg.MarkupPercent)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"مرحباً بك في واجهة برمجة تطبيقات Bazaar","version":"1.0.0","status":"active"}`))
	})

	// ── Catalog: supplier client, products, categories ──────
	supplier := catalog.NewClient(
		cfg.Supplier.AppKey,
		cfg.Supplier.AppSecret,
		cfg.Supplier.TrackingID,
		cfg.Supplier.BaseURL,
		logger,
	)
	catalogService := catalog.NewService(supplier, engine)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderService := order.NewService(catalogService, engine)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Payments: one adapter per gateway ───────────────────
	gateways := payment.Registry{
		payment.MethodStripe: payment.NewStripeGateway(
			cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret, cfg.FrontendURL, logger),
		payment.MethodMada: payment.NewMadaGateway(
			cfg.Mada.MerchantID, cfg.Mada.APIKey, cfg.Mada.Environment, cfg.FrontendURL),
		payment.MethodApplePay: payment.NewApplePayGateway(
			cfg.ApplePay.MerchantID, cfg.ApplePay.Environment, cfg.FrontendURL),
		payment.MethodSTCPay: payment.NewSTCPayGateway(
			cfg.STCPay.MerchantID, cfg.STCPay.APIKey, cfg.STCPay.Environment, cfg.FrontendURL),
		payment.MethodTamara: payment.NewTamaraGateway(
			cfg.Tamara.MerchantID, cfg.Tamara.APIKey, cfg.Tamara.Environment, cfg.FrontendURL),
		payment.MethodTabby: payment.NewTabbyGateway(
			cfg.Tabby.MerchantID, cfg.Tabby.APIKey, cfg.Tabby.Environment, cfg.FrontendURL),
	}
	paymentService := payment.NewService(gateways, engine, logger)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	logger.Info("bazaar api listening", zap.String("port", cfg.Port))
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
