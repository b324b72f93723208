package bootstrap_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"diagonator/internal/bootstrap"
	"diagonator/internal/platform/config"
	apperrors "diagonator/internal/platform/errors"
)

func TestNewWithoutServerOrAnalytics(t *testing.T) {
	app, err := bootstrap.New(context.Background(), config.Defaults(), io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()
	if _, err := app.SessionCLI.GetInfo(context.Background()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected missing server error, got %v", err)
	}
	if _, err := app.AnalyticsCLI.Deactivations(context.Background(), "2026-04-01", "2026-04-02"); !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/requirements?from=2026-04-01&to=2026-04-02", nil)
	w := httptest.NewRecorder()
	app.AnalyticsHTTP.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}

func TestNewWithAnalyticsFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.ServerURL = "http://127.0.0.1:1"
	cfg.AnalyticsFile = filepath.Join(t.TempDir(), "nested", "analytics.db")
	app, err := bootstrap.New(context.Background(), cfg, io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()
	out, err := app.AnalyticsCLI.Requirements(context.Background(), "2026-04-01", "2026-04-02")
	if err != nil {
		t.Fatalf("requirements: %v", err)
	}
	if len(out.Series) != 0 {
		t.Fatalf("expected empty store, got %+v", out.Series)
	}
}

func TestNewRejectsBadPolicy(t *testing.T) {
	cfg := config.Defaults()
	cfg.ChallengeMode = "riddle"
	if _, err := bootstrap.New(context.Background(), cfg, io.Discard); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid policy, got %v", err)
	}
}
