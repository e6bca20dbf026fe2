package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luisrojasb/doorline-backend/api/controllers"
	"github.com/luisrojasb/doorline-backend/api/middleware"
	"github.com/luisrojasb/doorline-backend/internal/announcements"
	"github.com/luisrojasb/doorline-backend/internal/cart"
	"github.com/luisrojasb/doorline-backend/internal/catalog"
	"github.com/luisrojasb/doorline-backend/internal/dealers"
	"github.com/luisrojasb/doorline-backend/internal/orders"
	"github.com/luisrojasb/doorline-backend/pkg/config"
	"github.com/luisrojasb/doorline-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	cache controllers.Pinger,
	catalogService catalog.Service,
	cartService cart.Service,
	ordersService orders.Service,
	dealersService dealers.Service,
	announcementsService announcements.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, cache))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/catalog", controllers.CatalogList(catalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ActorContext(logg))

		r.Get("/ping", controllers.DealerPing())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/select", controllers.CartSelect(cartService, logg))
			r.Post("/rows", controllers.CartAddRow(cartService, logg))
			r.Patch("/rows/{rowId}", controllers.CartUpdateRow(cartService, logg))
			r.Delete("/rows/{rowId}", controllers.CartRemoveRow(cartService, logg))
			r.Post("/items", controllers.CartAddAll(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/items", controllers.CartClear(cartService, logg))
			r.Post("/place-order", controllers.CartPlaceOrder(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(ordersService, logg))
			r.Get("/groups", controllers.OrdersGroup(ordersService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(ordersService, logg))
			r.Patch("/{orderId}/status", controllers.OrdersUpdateStatus(ordersService, logg))
			r.Post("/{orderId}/cancel", controllers.OrdersCancel(ordersService, logg))
		})

		r.Route("/dealers", func(r chi.Router) {
			r.Post("/", controllers.DealersCreate(dealersService, logg))
			r.Get("/", controllers.DealersList(dealersService, logg))
			r.Get("/{dealerId}", controllers.DealersGet(dealersService, logg))
			r.Post("/{dealerId}/deactivate", controllers.DealersDeactivate(dealersService, logg))
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", controllers.AnnouncementsList(announcementsService, logg))
			r.Post("/", controllers.AnnouncementsCreate(announcementsService, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(catalogService, logg))
			r.Post("/door-types", controllers.CatalogCreateDoorType(catalogService, logg))
			r.Post("/designs", controllers.CatalogCreateDesign(catalogService, logg))
			r.Post("/colors", controllers.CatalogCreateColor(catalogService, logg))
			r.Patch("/designs/{designId}", controllers.CatalogRenameDesign(catalogService, logg))
		})
	})

	return r
}
