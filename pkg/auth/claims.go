package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only actor role the storefront knows about; every mutating
// catalog route requires it.
const RoleAdmin = "admin"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Role string
	JTI  string
}

// AccessTokenClaims represents the typed JWT issued to the admin client.
type AccessTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
