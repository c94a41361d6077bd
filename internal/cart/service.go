package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	product "github.com/angelmondragon/storefront-pricing/internal/products"
	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
)

type quoter interface {
	Context(ctx context.Context, storeID uuid.UUID, sessionID string) (storefront.PricingContext, error)
	QuoteWith(ctx context.Context, pc storefront.PricingContext, productID uuid.UUID, quantity int) (storefront.Quote, error)
}

type variationLoader interface {
	GetVariation(ctx context.Context, productID, variationID uuid.UUID) (*product.VariationDTO, error)
}

// Limits bounds a single cart.
type Limits struct {
	MaxLines    int
	MaxQuantity int
}

// Service manages the session cart of a store and prices it on every read.
type Service interface {
	Get(ctx context.Context, storeID uuid.UUID, sessionID string) (Summary, error)
	AddItem(ctx context.Context, storeID uuid.UUID, sessionID string, input ItemInput) (Summary, error)
	UpdateQuantity(ctx context.Context, storeID uuid.UUID, sessionID, lineID string, quantity int) (Summary, error)
	RemoveItem(ctx context.Context, storeID uuid.UUID, sessionID, lineID string) (Summary, error)
	Clear(ctx context.Context, storeID uuid.UUID, sessionID string) (Summary, error)
}

type service struct {
	store      SnapshotStore
	pricer     quoter
	variations variationLoader
	limits     Limits
	now        func() time.Time
}

// NewService builds a cart service backed by the provided stack.
func NewService(store SnapshotStore, pricer quoter, variations variationLoader, limits Limits) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart snapshot store required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if variations == nil {
		return nil, fmt.Errorf("variation loader required")
	}
	if limits.MaxLines <= 0 || limits.MaxQuantity <= 0 {
		return nil, fmt.Errorf("cart limits must be positive")
	}
	return &service{
		store:      store,
		pricer:     pricer,
		variations: variations,
		limits:     limits,
		now:        time.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, storeID uuid.UUID, sessionID string) (Summary, error) {
	c, err := s.load(ctx, storeID, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return s.price(ctx, c)
}

// AddItem checks that the product can be priced before it enters the cart.
func (s *service) AddItem(ctx context.Context, storeID uuid.UUID, sessionID string, input ItemInput) (Summary, error) {
	c, err := s.load(ctx, storeID, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if input.Quantity <= 0 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"quantity": input.Quantity})
	}

	if input.VariationID != nil && *input.VariationID != uuid.Nil {
		variation, err := s.variations.GetVariation(ctx, input.ProductID, *input.VariationID)
		if err != nil {
			return Summary{}, err
		}
		input.Variation = variation.Name
	}

	key := LineKey(input.ProductID, input.VariationID)
	existing, exists := c.Line(key)
	if !exists && len(c.Lines) >= s.limits.MaxLines {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "cart line limit reached").
			WithDetails(map[string]any{"max_lines": s.limits.MaxLines})
	}
	if err := s.checkQuantity(existing.Quantity + input.Quantity); err != nil {
		return Summary{}, err
	}

	pc, err := s.pricer.Context(ctx, storeID, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if _, err := s.pricer.QuoteWith(ctx, pc, input.ProductID, existing.Quantity+input.Quantity); err != nil {
		return Summary{}, err
	}

	if _, err := c.AddItem(input, s.now()); err != nil {
		return Summary{}, err
	}
	if err := s.save(ctx, c); err != nil {
		return Summary{}, err
	}
	return s.priceWith(ctx, pc, c)
}

func (s *service) UpdateQuantity(ctx context.Context, storeID uuid.UUID, sessionID, lineID string, quantity int) (Summary, error) {
	c, err := s.load(ctx, storeID, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if quantity > 0 {
		if err := s.checkQuantity(quantity); err != nil {
			return Summary{}, err
		}
	}
	if _, err := c.UpdateQuantity(strings.TrimSpace(lineID), quantity, s.now()); err != nil {
		return Summary{}, err
	}
	if err := s.save(ctx, c); err != nil {
		return Summary{}, err
	}
	return s.price(ctx, c)
}

func (s *service) RemoveItem(ctx context.Context, storeID uuid.UUID, sessionID, lineID string) (Summary, error) {
	c, err := s.load(ctx, storeID, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if err := c.RemoveItem(strings.TrimSpace(lineID), s.now()); err != nil {
		return Summary{}, err
	}
	if err := s.save(ctx, c); err != nil {
		return Summary{}, err
	}
	return s.price(ctx, c)
}

func (s *service) Clear(ctx context.Context, storeID uuid.UUID, sessionID string) (Summary, error) {
	if err := validateSession(sessionID); err != nil {
		return Summary{}, err
	}
	if err := s.store.Delete(ctx, storeID, sessionID); err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	c := New(storeID, sessionID)
	c.Clear(s.now())
	return s.price(ctx, c)
}

func (s *service) load(ctx context.Context, storeID uuid.UUID, sessionID string) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	c, err := s.store.Load(ctx, storeID, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return c, nil
}

func (s *service) save(ctx context.Context, c *Cart) error {
	if err := s.store.Save(ctx, c); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) price(ctx context.Context, c *Cart) (Summary, error) {
	pc, err := s.pricer.Context(ctx, c.StoreID, c.SessionID)
	if err != nil {
		return Summary{}, err
	}
	return s.priceWith(ctx, pc, c)
}

func (s *service) priceWith(ctx context.Context, pc storefront.PricingContext, c *Cart) (Summary, error) {
	return Aggregate(c, func(productID uuid.UUID, quantity int) (storefront.Quote, error) {
		return s.pricer.QuoteWith(ctx, pc, productID, quantity)
	})
}

func (s *service) checkQuantity(quantity int) error {
	if quantity > s.limits.MaxQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, "line quantity exceeds limit").
			WithDetails(map[string]any{"max_quantity": s.limits.MaxQuantity, "quantity": quantity})
	}
	return nil
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
