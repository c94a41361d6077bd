package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-pricing/api/middleware"
	"github.com/angelmondragon/storefront-pricing/api/responses"
	"github.com/angelmondragon/storefront-pricing/api/validators"
	"github.com/angelmondragon/storefront-pricing/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/google/uuid"
)

// CartService is the cart surface used by the storefront handlers.
type CartService interface {
	Get(ctx context.Context, storeID uuid.UUID, sessionID string) (cart.Summary, error)
	AddItem(ctx context.Context, storeID uuid.UUID, sessionID string, input cart.ItemInput) (cart.Summary, error)
	UpdateQuantity(ctx context.Context, storeID uuid.UUID, sessionID, lineID string, quantity int) (cart.Summary, error)
	RemoveItem(ctx context.Context, storeID uuid.UUID, sessionID, lineID string) (cart.Summary, error)
	Clear(ctx context.Context, storeID uuid.UUID, sessionID string) (cart.Summary, error)
}

type addCartItemRequest struct {
	ProductID   string  `json:"product_id" validate:"required,uuid"`
	VariationID *string `json:"variation_id" validate:"omitempty,uuid"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
}

func (r addCartItemRequest) toInput() (cart.ItemInput, error) {
	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return cart.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_id")
	}
	input := cart.ItemInput{ProductID: productID, Quantity: r.Quantity}
	if r.VariationID != nil {
		variationID, err := uuid.Parse(*r.VariationID)
		if err != nil {
			return cart.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variation_id")
		}
		input.VariationID = &variationID
	}
	return input, nil
}

type updateCartItemRequest struct {
	// Zero removes the line.
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// CartGet returns the session cart priced against the current catalog state.
func CartGet(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Get(r.Context(), storeID, middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartAddItem adds a product, merging into the existing line of the same variation.
func CartAddItem(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.AddItem(r.Context(), storeID, middleware.SessionIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

// CartUpdateItem sets the quantity of a line.
func CartUpdateItem(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID := validators.PathParam(r, "lineId")
		if lineID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line id is required"))
			return
		}

		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.UpdateQuantity(r.Context(), storeID, middleware.SessionIDFromContext(r.Context()), lineID, *body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID := validators.PathParam(r, "lineId")
		if lineID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line id is required"))
			return
		}

		summary, err := svc.RemoveItem(r.Context(), storeID, middleware.SessionIDFromContext(r.Context()), lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func CartClear(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Clear(r.Context(), storeID, middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
