package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mahedios/estore-backend/api/responses"
	"github.com/mahedios/estore-backend/api/validators"
	categorysvc "github.com/mahedios/estore-backend/internal/categories"
	productsvc "github.com/mahedios/estore-backend/internal/products"
	"github.com/mahedios/estore-backend/pkg/logger"
)

// CategoryTree returns the full nested category tree for storefront menus.
func CategoryTree(categories categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := categories.BuildTree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tree)
	}
}

// CategoryProducts lists products under the category identified by slug,
// including every descendant category's products.
func CategoryProducts(categories categorysvc.Service, products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		category, err := categories.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := products.List(r.Context(), productsvc.Filters{
			CategoryID: &category.ID,
			Query:      strings.TrimSpace(r.URL.Query().Get("q")),
		}, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"category": category,
			"products": list.Products,
			"page":     list.Page,
		})
	}
}

// ProductList is the storefront product listing with search and paging.
func ProductList(products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := products.List(r.Context(), productsvc.Filters{
			CategoryID:  categoryID,
			InStockOnly: r.URL.Query().Get("in_stock") == "true",
			Query:       strings.TrimSpace(r.URL.Query().Get("q")),
		}, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProductDetail returns one product by slug plus its related shelf.
func ProductDetail(products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		product, err := products.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		related, err := products.Related(r.Context(), product.ID, 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"product": product,
			"related": related,
		})
	}
}
