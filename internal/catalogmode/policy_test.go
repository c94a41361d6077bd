package catalogmode

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

func basisPtr(b enums.PriceBasis) *enums.PriceBasis {
	return &b
}

func TestEffectivePriceBasisSeparated(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		retail    bool
		wholesale bool
		want      enums.PriceBasis
	}{
		{name: "retail only", retail: true, want: enums.PriceBasisRetail},
		{name: "wholesale only", wholesale: true, want: enums.PriceBasisWholesale},
		{name: "both active", retail: true, wholesale: true, want: enums.PriceBasisRetail},
		{name: "neither active", want: enums.PriceBasisRetail},
	}
	for _, tc := range cases {
		cfg := Config{Mode: enums.CatalogModeSeparated, RetailCatalogActive: tc.retail, WholesaleCatalogActive: tc.wholesale}
		got := EffectivePriceBasis(cfg, basisPtr(enums.PriceBasisWholesale), 1000, 1)
		if got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestEffectivePriceBasisHybridIsQuantityDriven(t *testing.T) {
	t.Parallel()

	cfg := Config{Mode: enums.CatalogModeHybrid, RetailCatalogActive: true, WholesaleCatalogActive: true}
	if got := EffectivePriceBasis(cfg, basisPtr(enums.PriceBasisWholesale), 9, 10); got != enums.PriceBasisRetail {
		t.Fatalf("expected retail below minimum, got %s", got)
	}
	if got := EffectivePriceBasis(cfg, basisPtr(enums.PriceBasisRetail), 10, 10); got != enums.PriceBasisWholesale {
		t.Fatalf("expected wholesale at minimum, got %s", got)
	}
	if got := EffectivePriceBasis(cfg, nil, 500, 0); got != enums.PriceBasisRetail {
		t.Fatalf("expected retail when wholesale is unreachable, got %s", got)
	}
}

func TestEffectivePriceBasisToggleUsesPreference(t *testing.T) {
	t.Parallel()

	cfg := Config{Mode: enums.CatalogModeToggle, RetailCatalogActive: true, WholesaleCatalogActive: true}
	if got := EffectivePriceBasis(cfg, nil, 100, 1); got != enums.PriceBasisRetail {
		t.Fatalf("expected retail without preference, got %s", got)
	}
	if got := EffectivePriceBasis(cfg, basisPtr(enums.PriceBasisWholesale), 1, 50); got != enums.PriceBasisWholesale {
		t.Fatalf("expected preference to win regardless of quantity, got %s", got)
	}
	if got := EffectivePriceBasis(cfg, basisPtr("bogus"), 1, 1); got != enums.PriceBasisRetail {
		t.Fatalf("expected invalid preference ignored, got %s", got)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := (Config{Mode: enums.CatalogModeHybrid}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Config{Mode: "mixed"}).Validate(); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type memoryPreferenceStore struct {
	values map[string]enums.PriceBasis
	getErr error
}

func newMemoryPreferenceStore() *memoryPreferenceStore {
	return &memoryPreferenceStore{values: map[string]enums.PriceBasis{}}
}

func (m *memoryPreferenceStore) Get(_ context.Context, storeID, sessionID string) (*enums.PriceBasis, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.values[storeID+"|"+sessionID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *memoryPreferenceStore) Set(_ context.Context, storeID, sessionID string, basis enums.PriceBasis) error {
	m.values[storeID+"|"+sessionID] = basis
	return nil
}

func (m *memoryPreferenceStore) Clear(_ context.Context, storeID, sessionID string) error {
	delete(m.values, storeID+"|"+sessionID)
	return nil
}

func newTestPolicy(t *testing.T, prefs PreferenceStore) *Policy {
	t.Helper()
	policy, err := NewPolicy(prefs, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	return policy
}

func TestPolicyTogglePreferenceIsScopedPerStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	policy := newTestPolicy(t, newMemoryPreferenceStore())
	toggle := Config{Mode: enums.CatalogModeToggle, RetailCatalogActive: true, WholesaleCatalogActive: true}

	if err := policy.SetPreference(ctx, "store-a", "sess", toggle, enums.PriceBasisWholesale); err != nil {
		t.Fatalf("set preference: %v", err)
	}
	if got := policy.Basis(ctx, "store-a", "sess", toggle, 1, 10); got != enums.PriceBasisWholesale {
		t.Fatalf("expected stored wholesale preference, got %s", got)
	}
	if got := policy.Basis(ctx, "store-b", "sess", toggle, 1, 10); got != enums.PriceBasisRetail {
		t.Fatalf("preference leaked across stores, got %s", got)
	}

	if err := policy.ClearPreference(ctx, "store-a", "sess"); err != nil {
		t.Fatalf("clear preference: %v", err)
	}
	if got := policy.Basis(ctx, "store-a", "sess", toggle, 1, 10); got != enums.PriceBasisRetail {
		t.Fatalf("expected retail after clear, got %s", got)
	}
}

func TestPolicyIgnoresPreferenceOutsideToggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	prefs := newMemoryPreferenceStore()
	prefs.values["store-a|sess"] = enums.PriceBasisWholesale
	policy := newTestPolicy(t, prefs)

	hybrid := Config{Mode: enums.CatalogModeHybrid, RetailCatalogActive: true, WholesaleCatalogActive: true}
	if got := policy.Basis(ctx, "store-a", "sess", hybrid, 2, 10); got != enums.PriceBasisRetail {
		t.Fatalf("hybrid must ignore preference, got %s", got)
	}

	err := policy.SetPreference(ctx, "store-a", "sess", hybrid, enums.PriceBasisWholesale)
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict outside toggle mode, got %v", err)
	}
}

func TestPolicyDegradesWhenStoreFails(t *testing.T) {
	t.Parallel()

	prefs := newMemoryPreferenceStore()
	prefs.getErr = errors.New("redis down")
	policy := newTestPolicy(t, prefs)

	toggle := Config{Mode: enums.CatalogModeToggle}
	if got := policy.Basis(context.Background(), "store-a", "sess", toggle, 1, 1); got != enums.PriceBasisRetail {
		t.Fatalf("expected retail fallback, got %s", got)
	}
}

func TestPolicySetPreferenceValidation(t *testing.T) {
	t.Parallel()

	policy := newTestPolicy(t, newMemoryPreferenceStore())
	toggle := Config{Mode: enums.CatalogModeToggle}

	if err := policy.SetPreference(context.Background(), "store-a", "", toggle, enums.PriceBasisRetail); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for missing session, got %v", err)
	}
	if err := policy.SetPreference(context.Background(), "store-a", "sess", toggle, "bulk"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for invalid basis, got %v", err)
	}
}

func TestNewPolicyRequiresDependencies(t *testing.T) {
	if _, err := NewPolicy(nil, logger.New(logger.Options{ServiceName: "test"})); err == nil {
		t.Fatal("expected error without preference store")
	}
	if _, err := NewPolicy(newMemoryPreferenceStore(), nil); err == nil {
		t.Fatal("expected error without logger")
	}
}
