package auth

import "time"

// TokenVerifier checks bearer tokens presented to the RPC routes.
type TokenVerifier interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// TokenService additionally issues tokens.
type TokenService interface {
	TokenVerifier
	GenerateToken(clerkID string, agencyID uint, role string, ttl time.Duration) (string, error)
}

// Compile-time interface satisfaction checks
var _ TokenService = (*JWTService)(nil)
