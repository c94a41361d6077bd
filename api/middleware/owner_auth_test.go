package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/angelmondragon/storefront-pricing/pkg/auth"
	"github.com/angelmondragon/storefront-pricing/pkg/config"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "storefront-test", ExpirationMinutes: 5}
}

func mintToken(t *testing.T, cfg config.JWTConfig, storeID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintOwnerToken(cfg, time.Now(), pkgAuth.OwnerTokenPayload{UserID: uuid.New(), StoreID: storeID})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func ownerRouter(cfg config.JWTConfig) http.Handler {
	r := chi.NewRouter()
	r.Route("/owner/stores/{storeId}", func(r chi.Router) {
		r.Use(OwnerAuth(cfg, nil), OwnsStore(nil))
		r.Get("/settings", func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}

func TestOwnerAuthAcceptsMatchingStore(t *testing.T) {
	cfg := testJWTConfig()
	storeID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/owner/stores/"+storeID.String()+"/settings", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, storeID))
	rec := httptest.NewRecorder()
	ownerRouter(cfg).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestOwnerAuthRejectsOtherStore(t *testing.T) {
	cfg := testJWTConfig()

	req := httptest.NewRequest(http.MethodGet, "/owner/stores/"+uuid.NewString()+"/settings", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, uuid.New()))
	rec := httptest.NewRecorder()
	ownerRouter(cfg).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestOwnerAuthRejectsMissingOrInvalidToken(t *testing.T) {
	cfg := testJWTConfig()
	storeID := uuid.New()
	path := "/owner/stores/" + storeID.String() + "/settings"

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ownerRouter(cfg).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	other := cfg
	other.Secret = "another-secret"
	req = httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, other, storeID))
	rec = httptest.NewRecorder()
	ownerRouter(cfg).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign signature, got %d", rec.Code)
	}
}

func TestOwnsStoreWithoutClaims(t *testing.T) {
	handler := OwnsStore(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.Background())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
