package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/logger"
)

// UpdateInput carries partial updates to the settings row. Nil fields keep
// the stored value; the Clear flags blank the optional image paths.
type UpdateInput struct {
	SiteName        *string
	Tagline         *string
	LogoPath        *string
	ClearLogo       bool
	FaviconPath     *string
	ClearFavicon    bool
	HeaderBgColor   *string
	HeaderTextColor *string
	PhoneNumber     *string
	Email           *string
	Address         *string
	FacebookURL     *string
	YouTubeURL      *string
	MetaDescription *string
	MetaKeywords    *string
}

// Service exposes the singleton site settings.
type Service interface {
	// Ensure creates the settings row with defaults when it does not exist.
	// Called once at startup so request handlers can assume the row exists.
	Ensure(ctx context.Context) error
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, input UpdateInput) (*models.SiteSettings, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds a settings service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Ensure(ctx context.Context) error {
	_, err := s.repo.Find(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup site settings")
	}

	row := &models.SiteSettings{
		ID:              models.SiteSettingsID,
		SiteName:        "E-Store",
		HeaderBgColor:   "#0d6efd",
		HeaderTextColor: "#ffffff",
	}
	if err := s.repo.Create(ctx, row); err != nil {
		// A concurrent boot may have won the insert.
		if pkgerrors.IsUniqueViolation(err) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create site settings")
	}
	s.logg.Info(ctx, "site settings row created with defaults")
	return nil
}

func (s *service) Get(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "site settings not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup site settings")
	}
	return settings, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.SiteSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.SiteName != nil {
		name := strings.TrimSpace(*input.SiteName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "site name is required")
		}
		settings.SiteName = name
	}
	if input.Tagline != nil {
		settings.Tagline = strings.TrimSpace(*input.Tagline)
	}
	switch {
	case input.ClearLogo:
		settings.LogoPath = nil
	case input.LogoPath != nil:
		path := strings.TrimSpace(*input.LogoPath)
		settings.LogoPath = &path
	}
	switch {
	case input.ClearFavicon:
		settings.FaviconPath = nil
	case input.FaviconPath != nil:
		path := strings.TrimSpace(*input.FaviconPath)
		settings.FaviconPath = &path
	}
	if input.HeaderBgColor != nil {
		color, err := normalizeColor(*input.HeaderBgColor)
		if err != nil {
			return nil, err
		}
		settings.HeaderBgColor = color
	}
	if input.HeaderTextColor != nil {
		color, err := normalizeColor(*input.HeaderTextColor)
		if err != nil {
			return nil, err
		}
		settings.HeaderTextColor = color
	}
	if input.PhoneNumber != nil {
		settings.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Email != nil {
		settings.Email = strings.TrimSpace(*input.Email)
	}
	if input.Address != nil {
		settings.Address = strings.TrimSpace(*input.Address)
	}
	if input.FacebookURL != nil {
		settings.FacebookURL = strings.TrimSpace(*input.FacebookURL)
	}
	if input.YouTubeURL != nil {
		settings.YouTubeURL = strings.TrimSpace(*input.YouTubeURL)
	}
	if input.MetaDescription != nil {
		settings.MetaDescription = strings.TrimSpace(*input.MetaDescription)
	}
	if input.MetaKeywords != nil {
		settings.MetaKeywords = strings.TrimSpace(*input.MetaKeywords)
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update site settings")
	}
	return settings, nil
}

func normalizeColor(raw string) (string, error) {
	color := strings.ToLower(strings.TrimSpace(raw))
	if len(color) != 7 || color[0] != '#' {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "color must be a #rrggbb value")
	}
	for _, c := range color[1:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "color must be a #rrggbb value")
		}
	}
	return color, nil
}
