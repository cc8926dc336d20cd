package controllers

import (
	"net/http"

	"github.com/mahedios/estore-backend/api/responses"
	bannersvc "github.com/mahedios/estore-backend/internal/banners"
	categorysvc "github.com/mahedios/estore-backend/internal/categories"
	productsvc "github.com/mahedios/estore-backend/internal/products"
	settingssvc "github.com/mahedios/estore-backend/internal/settings"
	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/logger"
)

type homePayload struct {
	Banners     []models.HeroBanner    `json:"banners"`
	Categories  []categorysvc.TreeNode `json:"categories"`
	Featured    []models.Product       `json:"featured"`
	BestSellers []models.Product       `json:"best_sellers"`
}

// Home assembles the storefront landing page: active banners, the category
// tree for navigation, and the featured and best-seller shelves.
func Home(banners bannersvc.Service, categories categorysvc.Service, products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := banners.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tree, err := categories.BuildTree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		featured, err := products.Featured(r.Context(), 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		best, err := products.BestSellers(r.Context(), 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, homePayload{
			Banners:     active,
			Categories:  tree,
			Featured:    featured,
			BestSellers: best,
		})
	}
}

// SiteSettings exposes the public site branding used by storefront chrome.
func SiteSettings(settings settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := settings.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, current)
	}
}
