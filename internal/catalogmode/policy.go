package catalogmode

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

// Config is a store's pricing visibility policy.
type Config struct {
	Mode                   enums.CatalogMode `json:"mode"`
	RetailCatalogActive    bool              `json:"retail_catalog_active"`
	WholesaleCatalogActive bool              `json:"wholesale_catalog_active"`
}

// Validate checks the configuration enums.
func (c Config) Validate() error {
	if !c.Mode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid catalog mode %q", c.Mode))
	}
	return nil
}

// EffectivePriceBasis decides which catalog prices a quantity of a product.
// applicableMinimum is the product's wholesale threshold; 0 means wholesale is unreachable.
func EffectivePriceBasis(cfg Config, preference *enums.PriceBasis, quantity, applicableMinimum int) enums.PriceBasis {
	switch cfg.Mode {
	case enums.CatalogModeSeparated:
		if cfg.WholesaleCatalogActive && !cfg.RetailCatalogActive {
			return enums.PriceBasisWholesale
		}
		return enums.PriceBasisRetail
	case enums.CatalogModeHybrid:
		if applicableMinimum > 0 && quantity >= applicableMinimum {
			return enums.PriceBasisWholesale
		}
		return enums.PriceBasisRetail
	case enums.CatalogModeToggle:
		if preference != nil && preference.IsValid() {
			return *preference
		}
		return enums.PriceBasisRetail
	default:
		return enums.PriceBasisRetail
	}
}

// Policy resolves the price basis for a shopper session, reading the stored
// preference only when the store runs in toggle mode.
type Policy struct {
	prefs PreferenceStore
	logg  *logger.Logger
}

// NewPolicy wires the preference store into a Policy.
func NewPolicy(prefs PreferenceStore, logg *logger.Logger) (*Policy, error) {
	if prefs == nil {
		return nil, fmt.Errorf("preference store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Policy{prefs: prefs, logg: logg}, nil
}

// Preference returns the session's stored preference for the store, if any.
func (p *Policy) Preference(ctx context.Context, storeID, sessionID string) (*enums.PriceBasis, error) {
	if sessionID == "" {
		return nil, nil
	}
	return p.prefs.Get(ctx, storeID, sessionID)
}

// Basis resolves the price basis for one line of the shopper's view.
func (p *Policy) Basis(ctx context.Context, storeID, sessionID string, cfg Config, quantity, applicableMinimum int) enums.PriceBasis {
	return EffectivePriceBasis(cfg, p.SessionPreference(ctx, storeID, sessionID, cfg), quantity, applicableMinimum)
}

// SessionPreference loads the preference that applies under cfg. Only toggle mode
// reads it; a store failure degrades to no preference.
func (p *Policy) SessionPreference(ctx context.Context, storeID, sessionID string, cfg Config) *enums.PriceBasis {
	if cfg.Mode != enums.CatalogModeToggle {
		return nil
	}
	stored, err := p.Preference(ctx, storeID, sessionID)
	if err != nil {
		p.logg.Warn(p.logg.WithFields(ctx, map[string]any{
			"store_id": storeID,
			"error":    err.Error(),
		}), "catalog preference unavailable")
		return nil
	}
	return stored
}

// SetPreference stores the shopper's toggle choice; only toggle-mode stores accept one.
func (p *Policy) SetPreference(ctx context.Context, storeID, sessionID string, cfg Config, basis enums.PriceBasis) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if !basis.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid price basis %q", basis))
	}
	if cfg.Mode != enums.CatalogModeToggle {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "store does not offer a catalog toggle").
			WithDetails(map[string]any{"mode": cfg.Mode})
	}
	if err := p.prefs.Set(ctx, storeID, sessionID, basis); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store catalog preference")
	}
	return nil
}

// ClearPreference forgets the shopper's toggle choice for the store.
func (p *Policy) ClearPreference(ctx context.Context, storeID, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := p.prefs.Clear(ctx, storeID, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear catalog preference")
	}
	return nil
}
