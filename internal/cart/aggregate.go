package cart

import (
	"time"

	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceFunc prices a quantity of a product against the current store data.
type PriceFunc func(productID uuid.UUID, quantity int) (storefront.Quote, error)

const (
	LineStatusPriced       = enums.CartLineStatusPriced
	LineStatusUnavailable  = enums.CartLineStatusUnavailable
	LineStatusPricePending = enums.CartLineStatusPricePending
)

// PricedLine is a cart line with its price resolved at read time.
type PricedLine struct {
	Line
	Status      enums.CartLineStatus     `json:"status"`
	ProductName string                   `json:"product_name,omitempty"`
	Basis       enums.PriceBasis         `json:"basis,omitempty"`
	Price       *pricing.PricedResult    `json:"price,omitempty"`
	RetailTotal decimal.Decimal          `json:"retail_total"`
	Gaps        []enums.ConfigurationGap `json:"configuration_gaps,omitempty"`
}

// Analysis summarises the wholesale opportunities left in the cart.
type Analysis struct {
	CanGetWholesalePrice  bool            `json:"can_get_wholesale_price"`
	LinesBelowWholesale   int             `json:"lines_below_wholesale"`
	TotalPotentialSavings decimal.Decimal `json:"total_potential_savings"`
}

// Summary is the priced view of a cart.
type Summary struct {
	StoreID      uuid.UUID       `json:"store_id"`
	SessionID    string          `json:"session_id"`
	Lines        []PricedLine    `json:"lines"`
	TotalItems   int             `json:"total_items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	RetailAmount decimal.Decimal `json:"retail_amount"`
	TotalSavings decimal.Decimal `json:"total_savings"`
	Analysis     Analysis        `json:"analysis"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Aggregate prices every line of c and derives the cart totals. Lines whose product
// is gone or whose store has no price model yet are kept but left out of the totals;
// any other pricing failure aborts the aggregation.
func Aggregate(c *Cart, price PriceFunc) (Summary, error) {
	summary := Summary{
		StoreID:      c.StoreID,
		SessionID:    c.SessionID,
		Lines:        make([]PricedLine, 0, len(c.Lines)),
		TotalAmount:  decimal.Zero,
		RetailAmount: decimal.Zero,
		TotalSavings: decimal.Zero,
		Analysis:     Analysis{TotalPotentialSavings: decimal.Zero},
		UpdatedAt:    c.UpdatedAt,
	}

	for _, line := range c.Lines {
		quote, err := price(line.ProductID, line.Quantity)
		if err != nil {
			status, skip := skippableStatus(err)
			if !skip {
				return Summary{}, err
			}
			summary.Lines = append(summary.Lines, PricedLine{Line: line, Status: status, RetailTotal: decimal.Zero})
			continue
		}

		result := quote.Result
		retailTotal := quote.RetailPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		summary.Lines = append(summary.Lines, PricedLine{
			Line:        line,
			Status:      LineStatusPriced,
			ProductName: quote.ProductName,
			Basis:       quote.Basis,
			Price:       &result,
			RetailTotal: retailTotal,
			Gaps:        result.Gaps,
		})

		summary.TotalItems += line.Quantity
		summary.TotalAmount = summary.TotalAmount.Add(result.LineTotal)
		summary.RetailAmount = summary.RetailAmount.Add(retailTotal)
		summary.TotalSavings = summary.TotalSavings.Add(result.SavingsTotal)

		if quote.BelowWholesale() {
			summary.Analysis.CanGetWholesalePrice = true
			summary.Analysis.LinesBelowWholesale++
		}
		if result.NextTierHint != nil {
			summary.Analysis.TotalPotentialSavings = summary.Analysis.TotalPotentialSavings.
				Add(result.NextTierHint.PotentialSavings())
		}
	}
	return summary, nil
}

func skippableStatus(err error) (enums.CartLineStatus, bool) {
	switch {
	case pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
		return LineStatusUnavailable, true
	case pkgerrors.IsCode(err, pkgerrors.CodeStateConflict):
		return LineStatusPricePending, true
	default:
		return "", false
	}
}
