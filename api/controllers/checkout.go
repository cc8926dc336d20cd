package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mahedios/estore-backend/api/responses"
	"github.com/mahedios/estore-backend/api/validators"
	checkoutsvc "github.com/mahedios/estore-backend/internal/checkout"
	deliverysvc "github.com/mahedios/estore-backend/internal/delivery"
	"github.com/mahedios/estore-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerName     string    `json:"customer_name" validate:"required"`
	CustomerEmail    string    `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone    string    `json:"customer_phone" validate:"required"`
	ShippingAddress  string    `json:"shipping_address" validate:"required"`
	DeliveryOptionID uuid.UUID `json:"delivery_option_id" validate:"required"`
	Notes            string    `json:"notes"`
}

// DeliveryOptions lists the active shipping choices shown at checkout.
func DeliveryOptions(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, options)
	}
}

// Checkout converts the session cart into an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := sessionKeyOrError(w, r, logg)
		if !ok {
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Execute(r.Context(), key, checkoutsvc.Input{
			CustomerName:     payload.CustomerName,
			CustomerEmail:    payload.CustomerEmail,
			CustomerPhone:    payload.CustomerPhone,
			ShippingAddress:  payload.ShippingAddress,
			DeliveryOptionID: payload.DeliveryOptionID,
			Notes:            payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
