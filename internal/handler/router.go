package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"smoothies/internal/mw"
	"smoothies/internal/service"
)

type Dependencies struct {
	DB            Pinger
	Catalogs      service.CatalogLoader
	Enricher      *service.Enricher
	Orders        *service.OrderService
	Sessions      *service.SessionStore
	SessionSecret string
	Logger        *zap.Logger
}

func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", HealthHandler(d.DB, d.Logger))

	// Order form
	r.Group(func(r chi.Router) {
		r.Use(mw.SessionMiddleware(d.Sessions, d.SessionSecret, d.Logger))

		r.Get("/", PageHandler(d.Catalogs, d.Enricher, d.Orders, d.Logger))
		r.Post("/selection", SelectionHandler(d.Catalogs, d.Logger))
		r.Post("/order", SubmitOrderHandler(d.Orders, d.Logger))
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/fruits", ListFruitsHandler(d.Catalogs, d.Logger))
		r.Post("/lookup", LookupHandler(d.Catalogs, d.Enricher, d.Logger))
		r.Post("/orders", CreateOrderHandler(d.Catalogs, d.Orders, d.Logger))
		r.Get("/orders", ListOrdersHandler(d.Orders, d.Logger))
		r.Post("/orders/{id}/fill", FillOrderHandler(d.Orders, d.Logger))
	})

	return r
}
