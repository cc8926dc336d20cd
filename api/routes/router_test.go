package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mahedios/estore-backend/internal/adminauth"
	"github.com/mahedios/estore-backend/internal/banners"
	"github.com/mahedios/estore-backend/internal/cart"
	"github.com/mahedios/estore-backend/internal/categories"
	checkoutsvc "github.com/mahedios/estore-backend/internal/checkout"
	"github.com/mahedios/estore-backend/internal/delivery"
	"github.com/mahedios/estore-backend/internal/orders"
	"github.com/mahedios/estore-backend/internal/products"
	"github.com/mahedios/estore-backend/internal/settings"
	"github.com/mahedios/estore-backend/pkg/config"
	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/logger"
	"github.com/mahedios/estore-backend/pkg/pagination"
)

var errNotImplemented = fmt.Errorf("not implemented")

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubCategoryService struct{}

func (stubCategoryService) Create(context.Context, categories.CreateInput) (*models.Category, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) Update(context.Context, uuid.UUID, categories.UpdateInput) (*models.Category, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) SetParent(context.Context, uuid.UUID, *uuid.UUID) (*models.Category, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) Delete(context.Context, uuid.UUID) error { return errNotImplemented }
func (stubCategoryService) Get(context.Context, uuid.UUID) (*models.Category, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) GetBySlug(context.Context, string) (*models.Category, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) ListAll(context.Context) ([]models.Category, error) { return nil, nil }
func (stubCategoryService) ListRoots(context.Context) ([]models.Category, error) {
	return nil, nil
}
func (stubCategoryService) FullPath(context.Context, uuid.UUID) ([]string, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) Level(context.Context, uuid.UUID) (int, error) {
	return 0, errNotImplemented
}
func (stubCategoryService) Descendants(context.Context, uuid.UUID) ([]models.Category, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) BuildTree(context.Context) ([]categories.TreeNode, error) {
	return []categories.TreeNode{}, nil
}
func (stubCategoryService) PossibleParents(context.Context, uuid.UUID) ([]models.Category, error) {
	return nil, errNotImplemented
}
func (stubCategoryService) Detail(context.Context, uuid.UUID) (*categories.Detail, error) {
	return nil, errNotImplemented
}

type stubProductService struct{}

func (stubProductService) Create(context.Context, products.CreateInput) (*models.Product, error) {
	return nil, errNotImplemented
}
func (stubProductService) Update(context.Context, uuid.UUID, products.UpdateInput) (*models.Product, error) {
	return nil, errNotImplemented
}
func (stubProductService) Delete(context.Context, uuid.UUID) error { return errNotImplemented }
func (stubProductService) Get(context.Context, uuid.UUID) (*models.Product, error) {
	return nil, errNotImplemented
}
func (stubProductService) GetBySlug(context.Context, string) (*models.Product, error) {
	return nil, errNotImplemented
}
func (stubProductService) List(context.Context, products.Filters, pagination.Params) (*products.List, error) {
	return &products.List{}, nil
}
func (stubProductService) BestSellers(context.Context, int) ([]models.Product, error) {
	return nil, nil
}
func (stubProductService) Featured(context.Context, int) ([]models.Product, error) { return nil, nil }
func (stubProductService) Related(context.Context, uuid.UUID, int) ([]models.Product, error) {
	return nil, nil
}

type stubCartService struct{}

func (stubCartService) AddItem(context.Context, string, uuid.UUID, int) (*models.CartItem, error) {
	return nil, errNotImplemented
}
func (stubCartService) UpdateQuantity(context.Context, string, uuid.UUID, int) (*cart.Summary, error) {
	return nil, errNotImplemented
}
func (stubCartService) Remove(context.Context, string, uuid.UUID) (*cart.Summary, error) {
	return nil, errNotImplemented
}
func (stubCartService) Get(context.Context, string) (*cart.Summary, error) {
	return &cart.Summary{}, nil
}
func (stubCartService) Clear(context.Context, string) error { return nil }
func (stubCartService) BuyNow(context.Context, string, uuid.UUID) (*models.CartItem, error) {
	return nil, errNotImplemented
}

type stubCheckoutService struct{}

func (stubCheckoutService) Execute(context.Context, string, checkoutsvc.Input) (*models.Order, error) {
	return nil, errNotImplemented
}

type stubOrderService struct{}

func (stubOrderService) Get(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, errNotImplemented
}
func (stubOrderService) Track(context.Context, string) (*models.Order, error) {
	return nil, errNotImplemented
}
func (stubOrderService) Timeline(context.Context, string) (*orders.Timeline, error) {
	return nil, errNotImplemented
}
func (stubOrderService) SetStatus(context.Context, uuid.UUID, orders.SetStatusInput) (*models.Order, error) {
	return nil, errNotImplemented
}
func (stubOrderService) List(context.Context, orders.Filters, pagination.Params) (*orders.List, error) {
	return &orders.List{}, nil
}

type stubBannerService struct{}

func (stubBannerService) Create(context.Context, banners.CreateInput) (*models.HeroBanner, error) {
	return nil, errNotImplemented
}
func (stubBannerService) Update(context.Context, uuid.UUID, banners.UpdateInput) (*models.HeroBanner, error) {
	return nil, errNotImplemented
}
func (stubBannerService) Delete(context.Context, uuid.UUID) error { return errNotImplemented }
func (stubBannerService) Get(context.Context, uuid.UUID) (*models.HeroBanner, error) {
	return nil, errNotImplemented
}
func (stubBannerService) ListAll(context.Context) ([]models.HeroBanner, error)    { return nil, nil }
func (stubBannerService) ListActive(context.Context) ([]models.HeroBanner, error) { return nil, nil }
func (stubBannerService) Reorder(context.Context, []uuid.UUID) error              { return errNotImplemented }

type stubDeliveryService struct{}

func (stubDeliveryService) Create(context.Context, delivery.CreateInput) (*models.DeliveryOption, error) {
	return nil, errNotImplemented
}
func (stubDeliveryService) Update(context.Context, uuid.UUID, delivery.UpdateInput) (*models.DeliveryOption, error) {
	return nil, errNotImplemented
}
func (stubDeliveryService) Delete(context.Context, uuid.UUID) error { return errNotImplemented }
func (stubDeliveryService) Get(context.Context, uuid.UUID) (*models.DeliveryOption, error) {
	return nil, errNotImplemented
}
func (stubDeliveryService) ListAll(context.Context) ([]models.DeliveryOption, error) {
	return nil, nil
}
func (stubDeliveryService) ListActive(context.Context) ([]models.DeliveryOption, error) {
	return []models.DeliveryOption{}, nil
}

type stubSettingsService struct{}

func (stubSettingsService) Ensure(context.Context) error { return nil }
func (stubSettingsService) Get(context.Context) (*models.SiteSettings, error) {
	return &models.SiteSettings{}, nil
}
func (stubSettingsService) Update(context.Context, settings.UpdateInput) (*models.SiteSettings, error) {
	return nil, errNotImplemented
}

type stubAdminAuthService struct{}

func (stubAdminAuthService) Login(context.Context, string, string) (*adminauth.TokenPair, error) {
	return &adminauth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}
func (stubAdminAuthService) Refresh(context.Context, string, string) (*adminauth.TokenPair, error) {
	return nil, errNotImplemented
}
func (stubAdminAuthService) Logout(context.Context, string) error { return errNotImplemented }
func (stubAdminAuthService) Me(context.Context, uuid.UUID) (*models.AdminUser, error) {
	return nil, errNotImplemented
}
func (stubAdminAuthService) ChangePassword(context.Context, uuid.UUID, string, string) error {
	return errNotImplemented
}
func (stubAdminAuthService) EnsureSeedAdmin(context.Context, config.AdminConfig) error { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.Issuer = "estore-test"
	cfg.JWT.ExpirationMinutes = 15
	cfg.Session.CookieName = "estore_session"
	cfg.Session.TTL = 720 * time.Hour

	logg := logger.New(logger.Options{ServiceName: "routes-test"})

	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		stubSessionChecker{},
		stubCategoryService{},
		stubProductService{},
		stubCartService{},
		stubCheckoutService{},
		stubOrderService{},
		stubBannerService{},
		stubDeliveryService{},
		stubSettingsService{},
		stubAdminAuthService{},
	)
}

func TestHealthLive(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStorefrontIssuesCartCookie(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/delivery-options", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "estore_session" && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected cart session cookie to be set")
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	paths := []string{
		"/api/admin/v1/products",
		"/api/admin/v1/orders",
		"/api/admin/v1/settings",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s status = %d, want %d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestAdminLoginRouted(t *testing.T) {
	router := testRouter(t)

	body := strings.NewReader(`{"username":"admin","password":"correct horse"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "access") {
		t.Fatalf("body missing access token: %s", rec.Body.String())
	}
}
