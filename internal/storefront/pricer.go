package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-pricing/internal/catalogmode"
	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/angelmondragon/storefront-pricing/pkg/metrics"
	"github.com/google/uuid"
)

type settingsReader interface {
	GetSettings(ctx context.Context, storeID uuid.UUID) (stores.StoreSettings, error)
}

type productReader interface {
	GetPriceable(ctx context.Context, storeID, productID uuid.UUID) (pricing.PriceableProduct, error)
}

type preferenceReader interface {
	SessionPreference(ctx context.Context, storeID, sessionID string, cfg catalogmode.Config) *enums.PriceBasis
}

// Pricer answers storefront price questions from the current store and product data.
type Pricer struct {
	settings settingsReader
	products productReader
	prefs    preferenceReader
	metrics  *metrics.PricingMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewPricer wires a Pricer. A nil metrics recorder disables metrics.
func NewPricer(settings settingsReader, products productReader, prefs preferenceReader, m *metrics.PricingMetrics, logg *logger.Logger) (*Pricer, error) {
	if settings == nil {
		return nil, fmt.Errorf("store settings reader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if prefs == nil {
		return nil, fmt.Errorf("preference reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Pricer{
		settings: settings,
		products: products,
		prefs:    prefs,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Context loads the settings and session preference that every quote of the store shares.
func (p *Pricer) Context(ctx context.Context, storeID uuid.UUID, sessionID string) (PricingContext, error) {
	settings, err := p.settings.GetSettings(ctx, storeID)
	if err != nil {
		return PricingContext{}, err
	}
	return PricingContext{
		Settings:   settings,
		Preference: p.prefs.SessionPreference(ctx, storeID.String(), sessionID, settings.CatalogMode),
	}, nil
}

// Quote resolves the price of a quantity of one product for a shopper session.
func (p *Pricer) Quote(ctx context.Context, input QuoteInput) (Quote, error) {
	start := p.now()
	defer func() { p.metrics.ObserveDuration("quote", p.now().Sub(start)) }()

	if input.Quantity <= 0 {
		err := pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"quantity": input.Quantity})
		p.recordFailure(err)
		return Quote{}, err
	}

	pc, err := p.Context(ctx, input.StoreID, input.SessionID)
	if err != nil {
		p.recordFailure(err)
		return Quote{}, err
	}
	return p.QuoteWith(ctx, pc, input.ProductID, input.Quantity)
}

// QuoteWith prices a product against an already loaded context.
func (p *Pricer) QuoteWith(ctx context.Context, pc PricingContext, productID uuid.UUID, quantity int) (Quote, error) {
	product, err := p.products.GetPriceable(ctx, pc.Settings.StoreID, productID)
	if err != nil {
		p.recordFailure(err)
		return Quote{}, err
	}
	quote, err := pc.Quote(product, quantity)
	if err != nil {
		p.recordFailure(err)
		return Quote{}, err
	}

	p.metrics.IncQuote(quote.Basis.String())
	if quote.Result.HasGap() {
		p.reportGaps(ctx, pc.Settings.StoreID, productID, quote.Result.Gaps)
	}
	return quote, nil
}

// DisplayPrice returns the product card price for the session.
func (p *Pricer) DisplayPrice(ctx context.Context, storeID uuid.UUID, sessionID string, productID uuid.UUID) (pricing.DisplayPrice, error) {
	start := p.now()
	defer func() { p.metrics.ObserveDuration("display", p.now().Sub(start)) }()

	pc, err := p.Context(ctx, storeID, sessionID)
	if err != nil {
		p.recordFailure(err)
		return pricing.DisplayPrice{}, err
	}
	product, err := p.products.GetPriceable(ctx, storeID, productID)
	if err != nil {
		p.recordFailure(err)
		return pricing.DisplayPrice{}, err
	}
	display, err := pc.Display(product)
	if err != nil {
		p.recordFailure(err)
		return pricing.DisplayPrice{}, err
	}
	if len(display.Gaps) > 0 {
		p.reportGaps(ctx, storeID, productID, display.Gaps)
	}
	return display, nil
}

func (p *Pricer) reportGaps(ctx context.Context, storeID, productID uuid.UUID, gaps []enums.ConfigurationGap) {
	names := make([]string, 0, len(gaps))
	for _, gap := range gaps {
		p.metrics.IncGap(gap.String())
		names = append(names, gap.String())
	}
	ctx = p.logg.WithFields(ctx, map[string]any{
		"store_id":   storeID.String(),
		"product_id": productID.String(),
		"gaps":       names,
	})
	p.logg.Warn(ctx, "price resolved with configuration gap")
}

func (p *Pricer) recordFailure(err error) {
	code := pkgerrors.CodeInternal
	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
	}
	p.metrics.IncFailure(string(code))
}
