package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sathwikreddyb/aqua-farms-backend/api/controllers"
	"github.com/sathwikreddyb/aqua-farms-backend/api/middleware"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/address"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/cart"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/catalog"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/identity"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/orders"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/settings"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DBPinger  controllers.Pinger
	RedisP    controllers.Pinger
	Limiter   middleware.RateLimiterStore
	Users     middleware.RoleLookup
	Identity  identity.Service
	Catalog   catalog.Service
	Addresses address.Service
	Cart      cart.Service
	Orders    orders.Service
	Settings  settings.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.ThrottlePolicy{
		Name:       "login",
		Window:     cfg.AuthRateLimit.LoginWindow,
		IPLimit:    cfg.AuthRateLimit.LoginIPLimit,
		EmailLimit: cfg.AuthRateLimit.LoginEmailLimit,
	}
	registerPolicy := middleware.ThrottlePolicy{
		Name:       "register",
		Window:     cfg.AuthRateLimit.RegisterWindow,
		IPLimit:    cfg.AuthRateLimit.RegisterIPLimit,
		EmailLimit: cfg.AuthRateLimit.RegisterEmailLimit,
	}

	authn := middleware.Auth(cfg.JWT, deps.Users, logg)
	adminOnly := middleware.RequireRole(enums.UserRoleAdmin.String(), logg)

	r.Get("/health", controllers.Health(cfg, logg, deps.DBPinger, deps.RedisP))

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Limiter, logg)).
			Post("/register", controllers.AuthRegister(deps.Identity, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Limiter, logg)).
			Post("/login", controllers.AuthLogin(deps.Identity, logg))
		r.With(authn).Get("/me", controllers.AuthMe(deps.Identity, logg))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/{id}", controllers.GetProduct(deps.Catalog, logg))
		r.Group(func(r chi.Router) {
			r.Use(authn, adminOnly)
			r.Post("/", controllers.CreateProduct(deps.Catalog, logg))
			r.Put("/{id}", controllers.UpdateProduct(deps.Catalog, logg))
			r.Delete("/{id}", controllers.DeleteProduct(deps.Catalog, logg))
		})
	})

	r.Route("/addresses", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", controllers.ListAddresses(deps.Addresses, logg))
		r.Post("/", controllers.CreateAddress(deps.Addresses, logg))
		r.Put("/{id}", controllers.UpdateAddress(deps.Addresses, logg))
		r.Delete("/{id}", controllers.DeleteAddress(deps.Addresses, logg))
	})

	r.With(authn).Post("/cart/quote", controllers.QuoteCart(deps.Cart, logg))

	r.Route("/orders", func(r chi.Router) {
		r.Use(authn)
		r.Post("/", controllers.CreateOrder(deps.Orders, logg))
		r.Get("/my-orders", controllers.MyOrders(deps.Orders, logg))
		r.With(adminOnly).Get("/all", controllers.AllOrders(deps.Orders, logg))
		r.Get("/{id}", controllers.GetOrder(deps.Orders, logg))
		r.With(adminOnly).Patch("/{id}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", controllers.GetSettings(deps.Settings, logg))
		r.With(authn, adminOnly).Post("/", controllers.UpdateSettings(deps.Settings, logg))
	})

	r.With(authn, adminOnly).Get("/users", controllers.ListUsers(deps.Identity, logg))

	return r
}
