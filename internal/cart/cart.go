package cart

import (
	"time"

	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
)

const defaultVariationKey = "default"

// Line is one product/variation pair in a cart. Prices are never stored on it.
type Line struct {
	ID          string     `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	VariationID *uuid.UUID `json:"variation_id,omitempty"`
	Variation   string     `json:"variation,omitempty"`
	Quantity    int        `json:"quantity"`
	AddedAt     time.Time  `json:"added_at"`
}

// LineKey identifies a line by product and variation.
func LineKey(productID uuid.UUID, variationID *uuid.UUID) string {
	variation := defaultVariationKey
	if variationID != nil && *variationID != uuid.Nil {
		variation = variationID.String()
	}
	return productID.String() + ":" + variation
}

// Cart is a shopper's selection for one store. Lines keep insertion order.
type Cart struct {
	StoreID   uuid.UUID `json:"store_id"`
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for the store session.
func New(storeID uuid.UUID, sessionID string) *Cart {
	return &Cart{StoreID: storeID, SessionID: sessionID, Lines: []Line{}}
}

// ItemInput describes a product added to the cart.
type ItemInput struct {
	ProductID   uuid.UUID
	VariationID *uuid.UUID
	Variation   string
	Quantity    int
}

// AddItem adds quantity to the line of the product/variation, creating it when absent.
func (c *Cart) AddItem(input ItemInput, now time.Time) (Line, error) {
	if input.ProductID == uuid.Nil {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity <= 0 {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"quantity": input.Quantity})
	}

	key := LineKey(input.ProductID, input.VariationID)
	c.UpdatedAt = now
	if idx := c.indexOf(key); idx >= 0 {
		c.Lines[idx].Quantity += input.Quantity
		return c.Lines[idx], nil
	}

	line := Line{
		ID:        key,
		ProductID: input.ProductID,
		Variation: input.Variation,
		Quantity:  input.Quantity,
		AddedAt:   now,
	}
	if input.VariationID != nil && *input.VariationID != uuid.Nil {
		id := *input.VariationID
		line.VariationID = &id
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less removes it.
func (c *Cart) UpdateQuantity(lineID string, quantity int, now time.Time) (removed bool, err error) {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return false, lineNotFound(lineID)
	}
	c.UpdatedAt = now
	if quantity <= 0 {
		c.removeAt(idx)
		return true, nil
	}
	c.Lines[idx].Quantity = quantity
	return false, nil
}

// RemoveItem deletes a line.
func (c *Cart) RemoveItem(lineID string, now time.Time) error {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return lineNotFound(lineID)
	}
	c.removeAt(idx)
	c.UpdatedAt = now
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) {
	c.Lines = []Line{}
	c.UpdatedAt = now
}

// Line returns the line with the given id.
func (c *Cart) Line(lineID string) (Line, bool) {
	if idx := c.indexOf(lineID); idx >= 0 {
		return c.Lines[idx], true
	}
	return Line{}, false
}

func (c *Cart) indexOf(lineID string) int {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

func lineNotFound(lineID string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
		WithDetails(map[string]any{"line_id": lineID})
}
