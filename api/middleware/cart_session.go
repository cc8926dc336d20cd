package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mahedios/estore-backend/pkg/config"
)

// CartSession assigns each storefront visitor a cookie-backed session key
// that scopes their cart. The cookie is issued on the first request and
// refreshed on every hit so active carts never expire mid-visit.
func CartSession(cfg config.SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				key = cookie.Value
			}
			if _, err := uuid.Parse(key); err != nil {
				key = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    key,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(WithSessionKey(r.Context(), key)))
		})
	}
}
