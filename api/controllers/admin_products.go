package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mahedios/estore-backend/api/responses"
	"github.com/mahedios/estore-backend/api/validators"
	productsvc "github.com/mahedios/estore-backend/internal/products"
	"github.com/mahedios/estore-backend/pkg/logger"
)

type createProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" validate:"required"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	CategoryID    string           `json:"category_id" validate:"required,uuid"`
	ImagePath     string           `json:"image_path"`
	YouTubeURL    *string          `json:"youtube_url,omitempty"`
	StockQuantity int              `json:"stock_quantity" validate:"min=0"`
	IsBestSeller  bool             `json:"is_best_seller"`
	IsFeatured    bool             `json:"is_featured"`
}

type updateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	ClearOriginal bool             `json:"clear_original_price,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	ImagePath     *string          `json:"image_path,omitempty"`
	YouTubeURL    *string          `json:"youtube_url,omitempty"`
	ClearYouTube  bool             `json:"clear_youtube_url,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	IsBestSeller  *bool            `json:"is_best_seller,omitempty"`
	IsFeatured    *bool            `json:"is_featured,omitempty"`
}

// AdminProductList is the admin catalog table with search and paging.
func AdminProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		list, err := svc.List(r.Context(), productsvc.Filters{
			CategoryID: categoryID,
			Query:      r.URL.Query().Get("q"),
		}, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminProductDetail returns one product by id.
func AdminProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminProductCreate adds a product to the catalog.
func AdminProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := optionalUUID(&payload.CategoryID, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.CreateInput{
			Name:          payload.Name,
			Description:   payload.Description,
			Price:         payload.Price,
			OriginalPrice: payload.OriginalPrice,
			ImagePath:     payload.ImagePath,
			YouTubeURL:    payload.YouTubeURL,
			StockQuantity: payload.StockQuantity,
			IsBestSeller:  payload.IsBestSeller,
			IsFeatured:    payload.IsFeatured,
		}
		if categoryID != nil {
			input.CategoryID = *categoryID
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate applies a partial update to a product.
func AdminProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := optionalUUID(payload.CategoryID, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, productsvc.UpdateInput{
			Name:          payload.Name,
			Description:   payload.Description,
			Price:         payload.Price,
			OriginalPrice: payload.OriginalPrice,
			ClearOriginal: payload.ClearOriginal,
			CategoryID:    categoryID,
			ImagePath:     payload.ImagePath,
			YouTubeURL:    payload.YouTubeURL,
			ClearYouTube:  payload.ClearYouTube,
			StockQuantity: payload.StockQuantity,
			IsBestSeller:  payload.IsBestSeller,
			IsFeatured:    payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a product from the catalog.
func AdminProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
