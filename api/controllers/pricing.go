package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-pricing/api/middleware"
	"github.com/angelmondragon/storefront-pricing/api/responses"
	"github.com/angelmondragon/storefront-pricing/api/validators"
	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/google/uuid"
)

const maxQuoteQuantity = 1_000_000

// ProductPricer answers the storefront price questions.
type ProductPricer interface {
	Quote(ctx context.Context, input storefront.QuoteInput) (storefront.Quote, error)
	DisplayPrice(ctx context.Context, storeID uuid.UUID, sessionID string, productID uuid.UUID) (pricing.DisplayPrice, error)
}

// ProductPrice resolves the price of ?quantity units of a product for the shopper session.
func ProductPrice(svc ProductPricer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricer unavailable"))
			return
		}

		storeID, productID, err := storeAndProduct(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, maxQuoteQuantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), storefront.QuoteInput{
			StoreID:   storeID,
			SessionID: middleware.SessionIDFromContext(r.Context()),
			ProductID: productID,
			Quantity:  quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// ProductDisplayPrice returns the product card price for the shopper session.
func ProductDisplayPrice(svc ProductPricer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricer unavailable"))
			return
		}

		storeID, productID, err := storeAndProduct(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		display, err := svc.DisplayPrice(r.Context(), storeID, middleware.SessionIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, display)
	}
}

func storeAndProduct(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	storeID, err := validators.ParseUUIDParam(r, "storeId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	productID, err := validators.ParseUUIDParam(r, "productId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return storeID, productID, nil
}
