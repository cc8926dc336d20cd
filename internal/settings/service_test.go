package settings

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/mahedios/estore-backend/pkg/db/models"
	pkgerrors "github.com/mahedios/estore-backend/pkg/errors"
	"github.com/mahedios/estore-backend/pkg/logger"
)

type stubRepo struct {
	findFn   func(ctx context.Context) (*models.SiteSettings, error)
	createFn func(ctx context.Context, settings *models.SiteSettings) error
	updateFn func(ctx context.Context, settings *models.SiteSettings) error
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Find(ctx context.Context) (*models.SiteSettings, error) {
	if s.findFn != nil {
		return s.findFn(ctx)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Create(ctx context.Context, settings *models.SiteSettings) error {
	if s.createFn != nil {
		return s.createFn(ctx, settings)
	}
	return nil
}

func (s *stubRepo) Update(ctx context.Context, settings *models.SiteSettings) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, settings)
	}
	return nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "settings-test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestEnsureCreatesMissingRow(t *testing.T) {
	var created *models.SiteSettings
	repo := &stubRepo{
		createFn: func(ctx context.Context, settings *models.SiteSettings) error {
			created = settings
			return nil
		},
	}
	svc := newTestService(t, repo)

	if err := svc.Ensure(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if created == nil {
		t.Fatal("expected settings row to be created")
	}
	if created.ID != models.SiteSettingsID {
		t.Fatalf("expected fixed id %d, got %d", models.SiteSettingsID, created.ID)
	}
	if created.SiteName != "E-Store" {
		t.Fatalf("unexpected default site name %q", created.SiteName)
	}
}

func TestEnsureSkipsExistingRow(t *testing.T) {
	repo := &stubRepo{
		findFn: func(ctx context.Context) (*models.SiteSettings, error) {
			return &models.SiteSettings{ID: models.SiteSettingsID}, nil
		},
		createFn: func(ctx context.Context, settings *models.SiteSettings) error {
			t.Fatal("create must not be called when the row exists")
			return nil
		},
	}
	svc := newTestService(t, repo)

	if err := svc.Ensure(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	logo := "uploads/logo.png"
	var saved *models.SiteSettings
	repo := &stubRepo{
		findFn: func(ctx context.Context) (*models.SiteSettings, error) {
			return &models.SiteSettings{
				ID:            models.SiteSettingsID,
				SiteName:      "E-Store",
				HeaderBgColor: "#0d6efd",
				LogoPath:      &logo,
			}, nil
		},
		updateFn: func(ctx context.Context, settings *models.SiteSettings) error {
			saved = settings
			return nil
		},
	}
	svc := newTestService(t, repo)

	name := " Gadget Hub "
	phone := "0123456789"
	updated, err := svc.Update(context.Background(), UpdateInput{
		SiteName:    &name,
		PhoneNumber: &phone,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SiteName != "Gadget Hub" {
		t.Fatalf("site name not trimmed: %q", updated.SiteName)
	}
	if updated.PhoneNumber != phone {
		t.Fatalf("phone not applied: %q", updated.PhoneNumber)
	}
	if updated.HeaderBgColor != "#0d6efd" {
		t.Fatalf("untouched field changed: %q", updated.HeaderBgColor)
	}
	if updated.LogoPath == nil || *updated.LogoPath != logo {
		t.Fatal("logo should be untouched")
	}
	if saved == nil {
		t.Fatal("update was not persisted")
	}
}

func TestUpdateClearLogo(t *testing.T) {
	logo := "uploads/logo.png"
	repo := &stubRepo{
		findFn: func(ctx context.Context) (*models.SiteSettings, error) {
			return &models.SiteSettings{ID: models.SiteSettingsID, SiteName: "E-Store", LogoPath: &logo}, nil
		},
	}
	svc := newTestService(t, repo)

	updated, err := svc.Update(context.Background(), UpdateInput{ClearLogo: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LogoPath != nil {
		t.Fatal("logo should be cleared")
	}
}

func TestUpdateRejectsBadColor(t *testing.T) {
	repo := &stubRepo{
		findFn: func(ctx context.Context) (*models.SiteSettings, error) {
			return &models.SiteSettings{ID: models.SiteSettingsID, SiteName: "E-Store"}, nil
		},
	}
	svc := newTestService(t, repo)

	for _, bad := range []string{"blue", "#fff", "#gggggg", "0d6efd"} {
		color := bad
		_, err := svc.Update(context.Background(), UpdateInput{HeaderBgColor: &color})
		if err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", bad, err)
		}
	}
}
