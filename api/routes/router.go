package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahedios/estore-backend/api/controllers"
	"github.com/mahedios/estore-backend/api/middleware"
	"github.com/mahedios/estore-backend/internal/adminauth"
	"github.com/mahedios/estore-backend/internal/banners"
	"github.com/mahedios/estore-backend/internal/cart"
	"github.com/mahedios/estore-backend/internal/categories"
	checkoutsvc "github.com/mahedios/estore-backend/internal/checkout"
	"github.com/mahedios/estore-backend/internal/delivery"
	"github.com/mahedios/estore-backend/internal/orders"
	"github.com/mahedios/estore-backend/internal/products"
	"github.com/mahedios/estore-backend/internal/settings"
	"github.com/mahedios/estore-backend/pkg/auth/session"
	"github.com/mahedios/estore-backend/pkg/config"
	"github.com/mahedios/estore-backend/pkg/db"
	"github.com/mahedios/estore-backend/pkg/logger"
	"github.com/mahedios/estore-backend/pkg/redis"
)

// NewRouter wires every HTTP surface: health probes, the cookie-keyed
// storefront API, and the JWT-guarded admin API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	categoriesSvc categories.Service,
	productsSvc products.Service,
	cartSvc cart.Service,
	checkoutSvc checkoutsvc.Service,
	ordersSvc orders.Service,
	bannersSvc banners.Service,
	deliverySvc delivery.Service,
	settingsSvc settings.Service,
	adminAuthSvc adminauth.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(cfg.Session))

		r.Get("/home", controllers.Home(bannersSvc, categoriesSvc, productsSvc, logg))
		r.Get("/settings", controllers.SiteSettings(settingsSvc, logg))

		r.Get("/categories", controllers.CategoryTree(categoriesSvc, logg))
		r.Get("/categories/{slug}/products", controllers.CategoryProducts(categoriesSvc, productsSvc, logg))

		r.Get("/products", controllers.ProductList(productsSvc, logg))
		r.Get("/products/{slug}", controllers.ProductDetail(productsSvc, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartSvc, logg))
			r.Post("/items", controllers.CartAdd(cartSvc, logg))
			r.Patch("/items", controllers.CartUpdate(cartSvc, logg))
			r.Delete("/items", controllers.CartRemove(cartSvc, logg))
			r.Delete("/", controllers.CartClear(cartSvc, logg))
			r.Post("/buy-now", controllers.CartBuyNow(cartSvc, logg))
		})

		r.Get("/delivery-options", controllers.DeliveryOptions(deliverySvc, logg))
		r.Post("/checkout", controllers.Checkout(checkoutSvc, logg))
		r.Get("/track/{key}", controllers.TrackOrder(ordersSvc, logg))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AdminLogin(adminAuthSvc, logg))
		r.Post("/refresh", controllers.AdminRefresh(adminAuthSvc, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AdminLogout(adminAuthSvc, logg))
			r.Get("/me", controllers.AdminMe(adminAuthSvc, logg))
			r.Post("/change-password", controllers.AdminChangePassword(adminAuthSvc, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminCategoryList(categoriesSvc, logg))
			r.Get("/tree", controllers.AdminCategoryTree(categoriesSvc, logg))
			r.Post("/", controllers.AdminCategoryCreate(categoriesSvc, logg))
			r.Get("/{categoryId}", controllers.AdminCategoryDetail(categoriesSvc, logg))
			r.Get("/{categoryId}/possible-parents", controllers.AdminCategoryPossibleParents(categoriesSvc, logg))
			r.Patch("/{categoryId}", controllers.AdminCategoryUpdate(categoriesSvc, logg))
			r.Put("/{categoryId}/parent", controllers.AdminCategorySetParent(categoriesSvc, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDelete(categoriesSvc, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(productsSvc, logg))
			r.Post("/", controllers.AdminProductCreate(productsSvc, logg))
			r.Get("/{productId}", controllers.AdminProductDetail(productsSvc, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(productsSvc, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(productsSvc, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(ordersSvc, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(ordersSvc, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderSetStatus(ordersSvc, logg))
		})

		r.Route("/banners", func(r chi.Router) {
			r.Get("/", controllers.AdminBannerList(bannersSvc, logg))
			r.Post("/", controllers.AdminBannerCreate(bannersSvc, logg))
			r.Put("/reorder", controllers.AdminBannerReorder(bannersSvc, logg))
			r.Patch("/{bannerId}", controllers.AdminBannerUpdate(bannersSvc, logg))
			r.Delete("/{bannerId}", controllers.AdminBannerDelete(bannersSvc, logg))
		})

		r.Route("/delivery-options", func(r chi.Router) {
			r.Get("/", controllers.AdminDeliveryOptionList(deliverySvc, logg))
			r.Post("/", controllers.AdminDeliveryOptionCreate(deliverySvc, logg))
			r.Patch("/{optionId}", controllers.AdminDeliveryOptionUpdate(deliverySvc, logg))
			r.Delete("/{optionId}", controllers.AdminDeliveryOptionDelete(deliverySvc, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.AdminSettingsGet(settingsSvc, logg))
			r.Put("/", controllers.AdminSettingsUpdate(settingsSvc, logg))
		})
	})

	return r
}
