package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mahedios/estore-backend/api/responses"
	ordersvc "github.com/mahedios/estore-backend/internal/orders"
	"github.com/mahedios/estore-backend/pkg/logger"
)

// TrackOrder resolves an order by its public order id or tracking number
// and returns it together with the staged timeline.
func TrackOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))

		order, err := svc.Track(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"order":    order,
			"timeline": ordersvc.BuildTimeline(order, order.StatusHistory),
		})
	}
}
