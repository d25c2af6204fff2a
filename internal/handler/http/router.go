package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zamirguliyev/e-commerce-api/internal/auth"
	"github.com/zamirguliyev/e-commerce-api/internal/repository"
	"github.com/zamirguliyev/e-commerce-api/internal/service"
	"github.com/zamirguliyev/e-commerce-api/pkg/health"
	"github.com/zamirguliyev/e-commerce-api/pkg/middleware"
)

// Services bundles the service layer dependencies the router needs.
type Services struct {
	Auth     *service.AuthService
	User     *service.UserService
	Catalog  *service.CatalogService
	Comment  *service.CommentService
	Basket   *service.BasketService
	Wishlist *service.WishlistService
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(
	services Services,
	tokens *auth.TokenManager,
	userRepo repository.UserRepository,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("e-commerce-api"))
	r.Use(middleware.PrometheusMetrics("e-commerce-api"))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authenticate := Authenticate(tokens, userRepo)

	authHandler := NewAuthHandler(services.Auth)
	userHandler := NewUserHandler(services.User)
	categoryHandler := NewCategoryHandler(services.Catalog)
	productHandler := NewProductHandler(services.Catalog)
	commentHandler := NewCommentHandler(services.Comment)
	basketHandler := NewBasketHandler(services.Basket)
	wishlistHandler := NewWishlistHandler(services.Wishlist)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public)
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)

				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/refresh", authHandler.Refresh)
				r.Post("/forgot-password", authHandler.ForgotPassword)
				r.Post("/reset-password", authHandler.ResetPassword)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)

				r.With(ContentTypeJSON).Post("/change-password", authHandler.ChangePassword)
			})
		})

		// User management
		r.Route("/users", func(r chi.Router) {
			r.Use(authenticate)

			r.With(RequireAdmin).Get("/", userHandler.List)
			r.With(ContentTypeJSON).Put("/profile", userHandler.UpdateProfile)
			r.With(RequireAdmin, ContentTypeJSON).Patch("/{id}/status", userHandler.UpdateStatus)
		})

		// Categories: public reads, admin mutations
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Get("/{id}", categoryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, RequireAdmin, ContentTypeJSON)

				r.Post("/", categoryHandler.Create)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})
		})

		// Products: public reads, admin mutations
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
			r.Get("/{id}/comments", commentHandler.ListByProduct)

			r.With(authenticate, ContentTypeJSON).Post("/{id}/comments", commentHandler.Create)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, RequireAdmin, ContentTypeJSON)

				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})

		// Comments (owner or admin checks happen in the service)
		r.Route("/comments", func(r chi.Router) {
			r.Use(authenticate)

			r.With(ContentTypeJSON).Put("/{id}", commentHandler.Update)
			r.Delete("/{id}", commentHandler.Delete)
		})

		// Basket
		r.Route("/basket", func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", basketHandler.List)
			r.Post("/{productId}", basketHandler.Add)
			r.Delete("/{productId}", basketHandler.Remove)
		})

		// Wishlist
		r.Route("/wishlist", func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", wishlistHandler.List)
			r.Post("/{productId}", wishlistHandler.Add)
			r.Delete("/{productId}", wishlistHandler.Remove)
		})
	})

	return r
}
