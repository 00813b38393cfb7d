package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry reads the exp claim from an access token without verifying the
// signature. The server is the authority on token validity; the client only
// uses the claim to avoid presenting a token it already knows is stale.
// ok is false when the token is not a parseable JWT or carries no exp claim.
func tokenExpiry(token string) (expiry time.Time, ok bool) {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
