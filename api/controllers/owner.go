package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-pricing/api/middleware"
	"github.com/angelmondragon/storefront-pricing/api/responses"
	"github.com/angelmondragon/storefront-pricing/api/validators"
	product "github.com/angelmondragon/storefront-pricing/internal/products"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettingsUpdater applies owner changes to the store pricing settings.
type SettingsUpdater interface {
	UpdateSettings(ctx context.Context, storeID uuid.UUID, input stores.UpdateSettingsInput) (stores.StoreSettings, error)
}

// TierManager reads and replaces the tier schedule of a product.
type TierManager interface {
	ListPriceTiers(ctx context.Context, storeID, productID uuid.UUID) (*product.PriceTiersDTO, error)
	ReplacePriceTiers(ctx context.Context, storeID, productID uuid.UUID, tiers []product.PriceTierInput) (*product.PriceTiersDTO, error)
}

type updateSettingsRequest struct {
	PriceModel             *string `json:"price_model" validate:"omitempty,oneof=retail_only wholesale_only simple_wholesale gradual_wholesale"`
	CatalogMode            *string `json:"catalog_mode" validate:"omitempty,oneof=separated toggle hybrid"`
	RetailCatalogActive    *bool   `json:"retail_catalog_active"`
	WholesaleCatalogActive *bool   `json:"wholesale_catalog_active"`
}

func (r updateSettingsRequest) toInput() stores.UpdateSettingsInput {
	input := stores.UpdateSettingsInput{
		RetailCatalogActive:    r.RetailCatalogActive,
		WholesaleCatalogActive: r.WholesaleCatalogActive,
	}
	if r.PriceModel != nil {
		model := enums.PriceModel(*r.PriceModel)
		input.PriceModel = &model
	}
	if r.CatalogMode != nil {
		mode := enums.CatalogMode(*r.CatalogMode)
		input.CatalogMode = &mode
	}
	return input
}

type priceTierRequest struct {
	Name        string          `json:"name" validate:"max=80"`
	MinQuantity int             `json:"min_quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"decimal_gte0"`
	Order       *int            `json:"order" validate:"omitempty,gte=0"`
}

type replaceTiersRequest struct {
	Tiers []priceTierRequest `json:"tiers" validate:"dive"`
}

// OwnerUpdateSettings changes the price model and catalog mode of the owner's store.
func OwnerUpdateSettings(svc SettingsUpdater, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.UpdateSettings(r.Context(), storeID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithField(r.Context(), "owner_id", ownerID), "owner.settings_updated")
		responses.WriteSuccess(w, settings)
	}
}

func OwnerGetSettings(svc SettingsReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := validators.ParseUUIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		settings, err := svc.GetSettings(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

func OwnerListPriceTiers(svc TierManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, productID, err := storeAndProduct(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tiers, err := svc.ListPriceTiers(r.Context(), storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tiers)
	}
}

// OwnerReplacePriceTiers swaps the whole tier schedule. An empty list turns gradual pricing off.
func OwnerReplacePriceTiers(svc TierManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, productID, err := storeAndProduct(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body replaceTiersRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inputs := make([]product.PriceTierInput, 0, len(body.Tiers))
		for _, tier := range body.Tiers {
			inputs = append(inputs, product.PriceTierInput{
				Name:        tier.Name,
				MinQuantity: tier.MinQuantity,
				UnitPrice:   tier.UnitPrice,
				Order:       tier.Order,
			})
		}

		tiers, err := svc.ReplacePriceTiers(r.Context(), storeID, productID, inputs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithFields(r.Context(), map[string]any{
			"owner_id":   ownerID,
			"product_id": productID.String(),
			"tier_count": len(tiers.Tiers),
		})
		logg.Info(ctx, "owner.price_tiers_replaced")
		responses.WriteSuccess(w, tiers)
	}
}

func ownerFromContext(r *http.Request) (string, error) {
	ownerID := middleware.UserIDFromContext(r.Context())
	if ownerID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "owner context missing")
	}
	return ownerID, nil
}
