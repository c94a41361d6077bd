package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	product "github.com/angelmondragon/storefront-pricing/internal/products"
	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
)

type stubQuoter struct {
	pc       storefront.PricingContext
	catalog  map[uuid.UUID]pricing.PriceableProduct
	ctxErr   error
	contexts int
}

func (s *stubQuoter) Context(ctx context.Context, storeID uuid.UUID, sessionID string) (storefront.PricingContext, error) {
	s.contexts++
	if s.ctxErr != nil {
		return storefront.PricingContext{}, s.ctxErr
	}
	pc := s.pc
	pc.Settings.StoreID = storeID
	return pc, nil
}

func (s *stubQuoter) QuoteWith(ctx context.Context, pc storefront.PricingContext, productID uuid.UUID, quantity int) (storefront.Quote, error) {
	return catalogPriceFunc(pc, s.catalog)(productID, quantity)
}

type stubVariations struct {
	variations map[uuid.UUID]string
}

func (s stubVariations) GetVariation(ctx context.Context, productID, variationID uuid.UUID) (*product.VariationDTO, error) {
	name, ok := s.variations[variationID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
	}
	return &product.VariationDTO{ID: variationID, ProductID: productID, Name: name}, nil
}

type cartFixture struct {
	svc       Service
	kv        *fakeKV
	quoter    *stubQuoter
	product   pricing.PriceableProduct
	variation uuid.UUID
	storeID   uuid.UUID
}

func newCartFixture(t *testing.T, limits Limits) cartFixture {
	t.Helper()
	kv := newFakeKV()
	store, err := NewRedisSnapshotStore(kv, 24*time.Hour)
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}
	item := simpleProduct("100", "80", 10)
	variation := uuid.New()
	quoter := &stubQuoter{
		pc:      hybridContext(enums.PriceModelSimpleWholesale),
		catalog: map[uuid.UUID]pricing.PriceableProduct{item.ID: item},
	}
	svc, err := NewService(store, quoter, stubVariations{variations: map[uuid.UUID]string{variation: "Azul"}}, limits)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = func() time.Time { return fixedNow }
	return cartFixture{svc: svc, kv: kv, quoter: quoter, product: item, variation: variation, storeID: uuid.New()}
}

func defaultLimits() Limits {
	return Limits{MaxLines: 10, MaxQuantity: 100}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	store, _ := NewRedisSnapshotStore(newFakeKV(), time.Hour)
	quoter := &stubQuoter{}
	variations := stubVariations{}

	if _, err := NewService(nil, quoter, variations, defaultLimits()); err == nil {
		t.Fatal("expected error without store")
	}
	if _, err := NewService(store, nil, variations, defaultLimits()); err == nil {
		t.Fatal("expected error without pricer")
	}
	if _, err := NewService(store, quoter, nil, defaultLimits()); err == nil {
		t.Fatal("expected error without variations")
	}
	if _, err := NewService(store, quoter, variations, Limits{}); err == nil {
		t.Fatal("expected error without limits")
	}
}

func TestServiceHybridScenario(t *testing.T) {
	fx := newCartFixture(t, defaultLimits())
	ctx := context.Background()

	summary, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(summary.Lines) != 1 || summary.Lines[0].Basis != enums.PriceBasisRetail {
		t.Fatalf("expected one retail line, got %+v", summary.Lines)
	}
	lineID := summary.Lines[0].ID

	summary, err = fx.svc.UpdateQuantity(ctx, fx.storeID, "s-1", lineID, 10)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if summary.Lines[0].ID != lineID || summary.Lines[0].Basis != enums.PriceBasisWholesale {
		t.Fatalf("expected same line at wholesale, got %+v", summary.Lines[0])
	}
	if !summary.TotalAmount.Equal(dec("800")) {
		t.Fatalf("expected total 800, got %s", summary.TotalAmount)
	}

	reloaded, err := fx.svc.Get(ctx, fx.storeID, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.TotalItems != 10 {
		t.Fatalf("expected persisted quantity 10, got %d", reloaded.TotalItems)
	}
}

func TestServiceRepricesOnRead(t *testing.T) {
	fx := newCartFixture(t, defaultLimits())
	ctx := context.Background()

	if _, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	changed := fx.product
	changed.RetailPrice = dec("90")
	fx.quoter.catalog[fx.product.ID] = changed

	summary, err := fx.svc.Get(ctx, fx.storeID, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !summary.TotalAmount.Equal(dec("180")) {
		t.Fatalf("expected latest retail price applied, got %s", summary.TotalAmount)
	}
}

func TestServiceAddItemVariation(t *testing.T) {
	fx := newCartFixture(t, defaultLimits())
	ctx := context.Background()

	summary, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, VariationID: &fx.variation, Quantity: 1})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if summary.Lines[0].Variation != "Azul" {
		t.Fatalf("expected variation name, got %q", summary.Lines[0].Variation)
	}

	unknown := uuid.New()
	if _, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, VariationID: &unknown, Quantity: 1}); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected variation not found, got %v", err)
	}
}

func TestServiceAddItemRejections(t *testing.T) {
	fx := newCartFixture(t, Limits{MaxLines: 1, MaxQuantity: 20})
	ctx := context.Background()

	if _, err := fx.svc.AddItem(ctx, fx.storeID, "", ItemInput{ProductID: fx.product.ID, Quantity: 1}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected session validation error, got %v", err)
	}
	if _, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: -1}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected quantity validation error, got %v", err)
	}
	if _, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: uuid.New(), Quantity: 1}); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected unknown product rejected, got %v", err)
	}

	if _, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: 15}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: 6}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected quantity limit error, got %v", err)
	}
	if _, err := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, VariationID: &fx.variation, Quantity: 1}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected line limit error, got %v", err)
	}

	summary, err := fx.svc.Get(ctx, fx.storeID, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if summary.TotalItems != 15 {
		t.Fatalf("rejected adds must not change the cart, got %d items", summary.TotalItems)
	}
}

func TestServiceRemoveAndClear(t *testing.T) {
	fx := newCartFixture(t, defaultLimits())
	ctx := context.Background()

	summary, _ := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: 3})
	lineID := summary.Lines[0].ID

	if _, err := fx.svc.RemoveItem(ctx, fx.storeID, "s-1", "missing"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	summary, err := fx.svc.RemoveItem(ctx, fx.storeID, "s-1", lineID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(summary.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", summary.Lines)
	}

	_, _ = fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: 3})
	summary, err = fx.svc.Clear(ctx, fx.storeID, "s-1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(summary.Lines) != 0 || len(fx.kv.data) != 0 {
		t.Fatalf("expected cleared cart and snapshot, got %+v / %v", summary.Lines, fx.kv.data)
	}
}

func TestServiceUpdateQuantityZeroRemoves(t *testing.T) {
	fx := newCartFixture(t, defaultLimits())
	ctx := context.Background()

	summary, _ := fx.svc.AddItem(ctx, fx.storeID, "s-1", ItemInput{ProductID: fx.product.ID, Quantity: 3})
	summary, err := fx.svc.UpdateQuantity(ctx, fx.storeID, "s-1", summary.Lines[0].ID, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(summary.Lines) != 0 {
		t.Fatalf("expected line removed, got %+v", summary.Lines)
	}

	if _, err := fx.svc.UpdateQuantity(ctx, fx.storeID, "s-1", "missing", 2); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceStoreFailureIsDependencyError(t *testing.T) {
	fx := newCartFixture(t, defaultLimits())
	fx.kv.err = errors.New("connection refused")

	if _, err := fx.svc.Get(context.Background(), fx.storeID, "s-1"); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
