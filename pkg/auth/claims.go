package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OwnerTokenPayload captures the data available when minting an owner JWT.
type OwnerTokenPayload struct {
	UserID  uuid.UUID
	StoreID uuid.UUID
	JTI     string
}

// OwnerClaims represents the typed JWT presented on owner routes.
type OwnerClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	StoreID uuid.UUID `json:"store_id"`
	jwt.RegisteredClaims
}
