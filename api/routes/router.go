package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/only4u/only4u-backend/api/controllers"
	"github.com/only4u/only4u-backend/api/middleware"
	"github.com/only4u/only4u-backend/internal/auth"
	"github.com/only4u/only4u-backend/internal/catalog"
	"github.com/only4u/only4u-backend/internal/media"
	products "github.com/only4u/only4u-backend/internal/products"
	"github.com/only4u/only4u-backend/internal/users"
	"github.com/only4u/only4u-backend/pkg/auth/session"
	"github.com/only4u/only4u-backend/pkg/config"
	"github.com/only4u/only4u-backend/pkg/db"
	"github.com/only4u/only4u-backend/pkg/enums"
	"github.com/only4u/only4u-backend/pkg/logger"
	"github.com/only4u/only4u-backend/pkg/metrics"
	"github.com/only4u/only4u-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	sessionManager sessionManager,
	authService auth.Service,
	userService users.Service,
	catalogService catalog.Service,
	productService products.Service,
	mediaService media.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	var cachePinger redis.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cachePinger, logg))
	})
	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).Post("/signup", controllers.AuthSignup(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(catalogService, logg))
		r.Get("/products/{productID}", controllers.CatalogDetail(catalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.GetProfile(userService, logg))
			r.Put("/", controllers.UpdateProfile(userService, logg))
			r.Get("/check-admin", controllers.CheckAdmin(userService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Get("/ping", controllers.AdminPing())
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(productService, logg))
			r.Patch("/{productID}", controllers.AdminUpdateProduct(productService, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(productService, logg))
		})
		r.Post("/uploads/product-images", controllers.AdminUploadProductImages(mediaService, userService, logg))
	})

	return r
}
