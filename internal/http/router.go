// Package http is the presentation glue over the storefront core: a JSON API
// with a cookie-keyed cart session and a shared-secret admin surface.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yakotaki/chuanghua-shop/internal/service"
)

// NewRouter wires all handlers onto one chi router.
func NewRouter(shop *service.Shop, adminKey string, log *zap.Logger, requestTimeout time.Duration) http.Handler {
	products := NewProductHandler(shop)
	cart := NewCartHandler(shop)
	checkout := NewCheckoutHandler(shop)
	messages := NewMessageHandler(shop)
	admin := NewAdminHandler(shop)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", products.List)
		r.Get("/products/{slug}", products.Get)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cart.Get)
				r.Post("/items", cart.AddItem)
				r.Put("/", cart.Update)
				r.Delete("/", cart.Clear)
			})
			r.Post("/checkout", checkout.Checkout)
		})

		r.Get("/orders/{id}", checkout.GetOrder)
		r.Post("/messages", messages.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminGate(adminKey))
			r.Get("/overview", admin.Overview)
			r.Post("/products", admin.CreateProduct)
			r.Put("/products/{slug}", admin.UpdateProduct)
			r.Post("/products/{slug}/toggle", admin.ToggleProduct)
			r.Delete("/products/{slug}", admin.DeleteProduct)
			r.Get("/export/orders.csv", admin.ExportOrders)
		})
	})

	return r
}
