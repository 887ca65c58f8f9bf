package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/kasayonetim/kasa/internal/http/auth"
	dashboardHandler "github.com/kasayonetim/kasa/internal/http/dashboard"
	notificationHandler "github.com/kasayonetim/kasa/internal/http/notification"
	regionHandler "github.com/kasayonetim/kasa/internal/http/region"
	transactionHandler "github.com/kasayonetim/kasa/internal/http/transaction"
	userHandler "github.com/kasayonetim/kasa/internal/http/user"
)

type RouterConfig struct {
	JWTSecret string
	WebOrigin string
	Profiles  ProfileLoader
}

func New(
	cfg RouterConfig,
	authV1 *authHandler.Handler,
	transactionsV1 *transactionHandler.Handler,
	regionsV1 *regionHandler.Handler,
	notificationsV1 *notificationHandler.Handler,
	usersV1 *userHandler.Handler,
	dashboardV1 *dashboardHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.WebOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	authenticated := Authenticator(cfg.JWTSecret, cfg.Profiles)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				authV1.SessionRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Route("/transactions", transactionsV1.Routes)

			r.Route("/dashboard", dashboardV1.Routes)

			r.Route("/regions", func(r chi.Router) {
				regionsV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(RequireAdmin)
					regionsV1.AdminRoutes(r)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				notificationsV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(RequireAdmin)
					notificationsV1.AdminRoutes(r)
				})
			})

			r.Route("/stats", func(r chi.Router) {
				r.Use(RequireAdmin)
				dashboardV1.AdminRoutes(r)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(RequireAdmin)
				usersV1.Routes(r)
			})
		})
	})

	return router
}
