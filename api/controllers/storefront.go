package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-pricing/api/responses"
	"github.com/angelmondragon/storefront-pricing/api/validators"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

// StoreLookup resolves a public storefront.
type StoreLookup interface {
	GetBySlug(ctx context.Context, slug string) (*stores.StoreDTO, error)
}

// StorefrontBySlug returns the store and its pricing settings for the storefront shell.
func StorefrontBySlug(svc StoreLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := svc.GetBySlug(r.Context(), validators.PathParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}
