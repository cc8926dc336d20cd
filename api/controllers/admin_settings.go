package controllers

import (
	"net/http"

	"github.com/mahedios/estore-backend/api/responses"
	"github.com/mahedios/estore-backend/api/validators"
	settingssvc "github.com/mahedios/estore-backend/internal/settings"
	"github.com/mahedios/estore-backend/pkg/logger"
)

type updateSettingsRequest struct {
	SiteName        *string `json:"site_name,omitempty"`
	Tagline         *string `json:"tagline,omitempty"`
	LogoPath        *string `json:"logo_path,omitempty"`
	ClearLogo       bool    `json:"clear_logo,omitempty"`
	FaviconPath     *string `json:"favicon_path,omitempty"`
	ClearFavicon    bool    `json:"clear_favicon,omitempty"`
	HeaderBgColor   *string `json:"header_bg_color,omitempty"`
	HeaderTextColor *string `json:"header_text_color,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Address         *string `json:"address,omitempty"`
	FacebookURL     *string `json:"facebook_url,omitempty"`
	YouTubeURL      *string `json:"youtube_url,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	MetaKeywords    *string `json:"meta_keywords,omitempty"`
}

// AdminSettingsGet returns the full settings row for the admin form.
func AdminSettingsGet(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// AdminSettingsUpdate applies a partial update to the settings row.
func AdminSettingsUpdate(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		settings, err := svc.Update(r.Context(), settingssvc.UpdateInput{
			SiteName:        payload.SiteName,
			Tagline:         payload.Tagline,
			LogoPath:        payload.LogoPath,
			ClearLogo:       payload.ClearLogo,
			FaviconPath:     payload.FaviconPath,
			ClearFavicon:    payload.ClearFavicon,
			HeaderBgColor:   payload.HeaderBgColor,
			HeaderTextColor: payload.HeaderTextColor,
			PhoneNumber:     payload.PhoneNumber,
			Email:           payload.Email,
			Address:         payload.Address,
			FacebookURL:     payload.FacebookURL,
			YouTubeURL:      payload.YouTubeURL,
			MetaDescription: payload.MetaDescription,
			MetaKeywords:    payload.MetaKeywords,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}
