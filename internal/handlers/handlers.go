package handlers

import (
	"net/http"
	"time"

	_ "github.com/GlebRadaev/packmarket/docs"
	markethandlers "github.com/GlebRadaev/packmarket/internal/handlers/market"
	"github.com/GlebRadaev/packmarket/internal/service"
	"github.com/GlebRadaev/packmarket/pkg/auth"
	"github.com/GlebRadaev/packmarket/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type MarketHandler interface {
	OpenPack(w http.ResponseWriter, r *http.Request)
	ConvertDiamonds(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
}

// Limits are per-user request quotas. Each route passes only when both of its
// tiers allow the request; a non-positive quota disables that tier.
type Limits struct {
	OpenPackPerMinute        int
	OpenPackPerTenMinutes    int
	ConvertDiamondsPerMinute int
	ConvertDiamondsPerHour   int
}

type Handlers struct {
	MarketHandler MarketHandler
	Validator     auth.TokenValidator
	Gatherer      prometheus.Gatherer
	Limits        Limits
}

func New(s *service.Services, validator auth.TokenValidator, gatherer prometheus.Gatherer, limits Limits) *Handlers {
	return &Handlers{
		MarketHandler: markethandlers.New(s.MarketService),
		Validator:     validator,
		Gatherer:      gatherer,
		Limits:        limits,
	}
}

func userKey(r *http.Request) string {
	userID, _ := auth.UserIDFromContext(r.Context())
	return userID
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}))

	openPackLimits := []func(http.Handler) http.Handler{
		ratelimit.Middleware(ratelimit.PerMinute(h.Limits.OpenPackPerMinute), userKey),
		ratelimit.Middleware(ratelimit.PerWindow(h.Limits.OpenPackPerTenMinutes, 10*time.Minute), userKey),
	}
	convertLimits := []func(http.Handler) http.Handler{
		ratelimit.Middleware(ratelimit.PerMinute(h.Limits.ConvertDiamondsPerMinute), userKey),
		ratelimit.Middleware(ratelimit.PerWindow(h.Limits.ConvertDiamondsPerHour, time.Hour), userKey),
	}

	r.Route("/api/market", func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.Validator))
		r.With(openPackLimits...).Post("/open-pack", h.MarketHandler.OpenPack)
		r.With(convertLimits...).Put("/convert-diamonds", h.MarketHandler.ConvertDiamonds)
		r.Get("/balance", h.MarketHandler.GetBalance)
	})

	return r
}
