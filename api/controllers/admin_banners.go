package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mahedios/estore-backend/api/responses"
	"github.com/mahedios/estore-backend/api/validators"
	bannersvc "github.com/mahedios/estore-backend/internal/banners"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/logger"
)

type createBannerRequest struct {
	Title      string  `json:"title" validate:"required"`
	Subtitle   string  `json:"subtitle"`
	ImagePath  string  `json:"image_path" validate:"required"`
	ProductID  *string `json:"product_id,omitempty" validate:"omitempty,uuid"`
	ButtonText string  `json:"button_text"`
	ButtonURL  string  `json:"button_url"`
	IsActive   *bool   `json:"is_active,omitempty"`
	Position   int     `json:"position" validate:"min=0"`
}

type updateBannerRequest struct {
	Title        *string `json:"title,omitempty"`
	Subtitle     *string `json:"subtitle,omitempty"`
	ImagePath    *string `json:"image_path,omitempty"`
	ProductID    *string `json:"product_id,omitempty" validate:"omitempty,uuid"`
	ClearProduct bool    `json:"clear_product,omitempty"`
	ButtonText   *string `json:"button_text,omitempty"`
	ButtonURL    *string `json:"button_url,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Position     *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

type reorderBannersRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// AdminBannerList returns all banners in display order.
func AdminBannerList(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banners, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banners)
	}
}

// AdminBannerCreate adds a carousel slide.
func AdminBannerCreate(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBannerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := optionalUUID(payload.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.Create(r.Context(), bannersvc.CreateInput{
			Title:      payload.Title,
			Subtitle:   payload.Subtitle,
			ImagePath:  payload.ImagePath,
			ProductID:  productID,
			ButtonText: payload.ButtonText,
			ButtonURL:  payload.ButtonURL,
			IsActive:   payload.IsActive,
			Position:   payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, banner)
	}
}

// AdminBannerUpdate applies a partial update to a slide.
func AdminBannerUpdate(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "bannerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateBannerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := optionalUUID(payload.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.Update(r.Context(), id, bannersvc.UpdateInput{
			Title:        payload.Title,
			Subtitle:     payload.Subtitle,
			ImagePath:    payload.ImagePath,
			ProductID:    productID,
			ClearProduct: payload.ClearProduct,
			ButtonText:   payload.ButtonText,
			ButtonURL:    payload.ButtonURL,
			IsActive:     payload.IsActive,
			Position:     payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banner)
	}
}

// AdminBannerDelete removes a slide.
func AdminBannerDelete(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "bannerId")
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

// AdminBannerReorder rewrites carousel positions to match the id sequence.
func AdminBannerReorder(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reorderBannersRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids := make([]uuid.UUID, 0, len(payload.IDs))
		for _, raw := range payload.IDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid banner id"))
				return
			}
			ids = append(ids, id)
		}

		if err := svc.Reorder(r.Context(), ids); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reordered"})
	}
}
