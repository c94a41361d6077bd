package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/angelmondragon/storefront-pricing/api/middleware"
	product "github.com/angelmondragon/storefront-pricing/internal/products"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubSettingsUpdater struct {
	input *stores.UpdateSettingsInput
}

func (s *stubSettingsUpdater) UpdateSettings(ctx context.Context, storeID uuid.UUID, input stores.UpdateSettingsInput) (stores.StoreSettings, error) {
	s.input = &input
	out := stores.StoreSettings{StoreID: storeID}
	if input.PriceModel != nil {
		out.PriceModel = *input.PriceModel
	}
	return out, nil
}

type stubTierManager struct {
	replaced []product.PriceTierInput
	called   bool
}

func (s *stubTierManager) ListPriceTiers(ctx context.Context, storeID, productID uuid.UUID) (*product.PriceTiersDTO, error) {
	return &product.PriceTiersDTO{ProductID: productID, Tiers: []product.PriceTierDTO{}}, nil
}

func (s *stubTierManager) ReplacePriceTiers(ctx context.Context, storeID, productID uuid.UUID, tiers []product.PriceTierInput) (*product.PriceTiersDTO, error) {
	s.called = true
	s.replaced = tiers
	return &product.PriceTiersDTO{ProductID: productID, GradualWholesaleEnabled: len(tiers) > 0}, nil
}

func TestOwnerUpdateSettings(t *testing.T) {
	params := map[string]string{"storeId": uuid.NewString()}

	stub := &stubSettingsUpdater{}
	body := map[string]any{"price_model": "gradual_wholesale", "wholesale_catalog_active": false}
	rec := serve(OwnerUpdateSettings(stub, testLogger()), newRequest(http.MethodPut, "/settings", body, params))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.input.PriceModel == nil || *stub.input.PriceModel != enums.PriceModelGradualWholesale {
		t.Fatalf("unexpected price model %+v", stub.input)
	}
	if stub.input.CatalogMode != nil || stub.input.RetailCatalogActive != nil {
		t.Fatalf("omitted fields must stay nil, got %+v", stub.input)
	}
	if stub.input.WholesaleCatalogActive == nil || *stub.input.WholesaleCatalogActive {
		t.Fatalf("expected wholesale catalog off, got %+v", stub.input)
	}

	stub = &stubSettingsUpdater{}
	rec = serve(OwnerUpdateSettings(stub, testLogger()), newRequest(http.MethodPut, "/settings", map[string]any{"catalog_mode": "mixed"}, params))
	if rec.Code != http.StatusBadRequest || stub.input != nil {
		t.Fatalf("expected 400 for unknown mode, got %d", rec.Code)
	}
}

func TestOwnerReplacePriceTiers(t *testing.T) {
	params := map[string]string{"storeId": uuid.NewString(), "productId": uuid.NewString()}

	stub := &stubTierManager{}
	body := map[string]any{"tiers": []map[string]any{
		{"name": "Atacado 5+", "min_quantity": 5, "unit_price": "90.00"},
		{"min_quantity": 20, "unit_price": 75, "order": 1},
	}}
	rec := serve(OwnerReplacePriceTiers(stub, testLogger()), newRequest(http.MethodPut, "/price-tiers", body, params))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.replaced) != 2 {
		t.Fatalf("expected 2 tiers forwarded, got %d", len(stub.replaced))
	}
	if !stub.replaced[0].UnitPrice.Equal(decimal.NewFromInt(90)) || stub.replaced[1].Order == nil || *stub.replaced[1].Order != 1 {
		t.Fatalf("unexpected tiers %+v", stub.replaced)
	}

	stub = &stubTierManager{}
	bad := map[string]any{"tiers": []map[string]any{{"min_quantity": 5, "unit_price": "-1"}}}
	rec = serve(OwnerReplacePriceTiers(stub, testLogger()), newRequest(http.MethodPut, "/price-tiers", bad, params))
	if rec.Code != http.StatusBadRequest || stub.called {
		t.Fatalf("expected 400 for negative price, got %d", rec.Code)
	}

	stub = &stubTierManager{}
	rec = serve(OwnerReplacePriceTiers(stub, testLogger()), newRequest(http.MethodPut, "/price-tiers", map[string]any{"tiers": []any{}}, params))
	if rec.Code != http.StatusOK || !stub.called || len(stub.replaced) != 0 {
		t.Fatalf("expected empty schedule accepted, got %d", rec.Code)
	}
}

func TestOwnerWritesRequireOwnerContext(t *testing.T) {
	params := map[string]string{"storeId": uuid.NewString(), "productId": uuid.NewString()}
	anonymous := func(method, target string, body any) *http.Request {
		req := newRequest(method, target, body, params)
		return req.WithContext(middleware.WithUserID(req.Context(), ""))
	}

	settings := &stubSettingsUpdater{}
	rec := serve(OwnerUpdateSettings(settings, testLogger()), anonymous(http.MethodPut, "/settings", map[string]any{"price_model": "simple_wholesale"}))
	if rec.Code != http.StatusUnauthorized || settings.input != nil {
		t.Fatalf("expected 401 without owner, got %d", rec.Code)
	}

	tiers := &stubTierManager{}
	rec = serve(OwnerReplacePriceTiers(tiers, testLogger()), anonymous(http.MethodPut, "/price-tiers", map[string]any{"tiers": []any{}}))
	if rec.Code != http.StatusUnauthorized || tiers.called {
		t.Fatalf("expected 401 without owner, got %d", rec.Code)
	}
}

func TestStorefrontBySlug(t *testing.T) {
	lookup := storeLookupFunc(func(ctx context.Context, slug string) (*stores.StoreDTO, error) {
		return &stores.StoreDTO{ID: uuid.New(), Slug: slug}, nil
	})
	rec := serve(StorefrontBySlug(lookup, testLogger()), newRequest(http.MethodGet, "/storefronts/loja", nil, map[string]string{"slug": "loja"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var store stores.StoreDTO
	decodeData(t, rec, &store)
	if store.Slug != "loja" {
		t.Fatalf("unexpected slug %q", store.Slug)
	}
}

type storeLookupFunc func(ctx context.Context, slug string) (*stores.StoreDTO, error)

func (f storeLookupFunc) GetBySlug(ctx context.Context, slug string) (*stores.StoreDTO, error) {
	return f(ctx, slug)
}
