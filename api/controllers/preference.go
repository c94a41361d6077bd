package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-pricing/api/middleware"
	"github.com/angelmondragon/storefront-pricing/api/responses"
	"github.com/angelmondragon/storefront-pricing/api/validators"
	"github.com/angelmondragon/storefront-pricing/internal/catalogmode"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/google/uuid"
)

// SettingsReader loads the pricing settings of a store.
type SettingsReader interface {
	GetSettings(ctx context.Context, storeID uuid.UUID) (stores.StoreSettings, error)
}

// PreferenceManager reads and writes the shopper's catalog toggle.
type PreferenceManager interface {
	Preference(ctx context.Context, storeID, sessionID string) (*enums.PriceBasis, error)
	SetPreference(ctx context.Context, storeID, sessionID string, cfg catalogmode.Config, basis enums.PriceBasis) error
	ClearPreference(ctx context.Context, storeID, sessionID string) error
}

type catalogPreferenceResponse struct {
	CatalogMode     enums.CatalogMode `json:"catalog_mode"`
	ToggleAvailable bool              `json:"toggle_available"`
	Preference      *enums.PriceBasis `json:"preference"`
	Basis           enums.PriceBasis  `json:"basis"`
}

type catalogPreferenceRequest struct {
	Basis string `json:"basis" validate:"required,oneof=retail wholesale"`
}

// CatalogPreferenceGet reports the catalog the session is browsing.
func CatalogPreferenceGet(settings SettingsReader, prefs PreferenceManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, cfg, err := loadCatalogConfig(r, settings)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var pref *enums.PriceBasis
		if cfg.Mode == enums.CatalogModeToggle {
			pref, err = prefs.Preference(r.Context(), storeID.String(), middleware.SessionIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog preference"))
				return
			}
		}

		responses.WriteSuccess(w, preferenceResponse(cfg, pref))
	}
}

// CatalogPreferencePut stores the session's toggle choice.
func CatalogPreferencePut(settings SettingsReader, prefs PreferenceManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, cfg, err := loadCatalogConfig(r, settings)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body catalogPreferenceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		basis := enums.PriceBasis(body.Basis)

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := prefs.SetPreference(r.Context(), storeID.String(), sessionID, cfg, basis); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preferenceResponse(cfg, &basis))
	}
}

// CatalogPreferenceDelete forgets the session's toggle choice.
func CatalogPreferenceDelete(settings SettingsReader, prefs PreferenceManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, cfg, err := loadCatalogConfig(r, settings)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := prefs.ClearPreference(r.Context(), storeID.String(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preferenceResponse(cfg, nil))
	}
}

func loadCatalogConfig(r *http.Request, settings SettingsReader) (uuid.UUID, catalogmode.Config, error) {
	storeID, err := validators.ParseUUIDParam(r, "storeId")
	if err != nil {
		return uuid.Nil, catalogmode.Config{}, err
	}
	s, err := settings.GetSettings(r.Context(), storeID)
	if err != nil {
		return uuid.Nil, catalogmode.Config{}, err
	}
	return storeID, s.CatalogMode, nil
}

func preferenceResponse(cfg catalogmode.Config, pref *enums.PriceBasis) catalogPreferenceResponse {
	if cfg.Mode != enums.CatalogModeToggle {
		pref = nil
	}
	return catalogPreferenceResponse{
		CatalogMode:     cfg.Mode,
		ToggleAvailable: cfg.Mode == enums.CatalogModeToggle,
		Preference:      pref,
		// Basis of a single unit; hybrid stores switch per line quantity.
		Basis: catalogmode.EffectivePriceBasis(cfg, pref, 1, 0),
	}
}
