package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// ErrMalformedToken is returned when a token cannot be decoded into the
// expected claim structure.
var ErrMalformedToken = errors.New("malformed token")

// Claims is the payload carried by an access token issued by the
// companySYS backend.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int         `json:"user_id"`
	Username string      `json:"username"`
	Role     policy.Role `json:"role"`
}

// Decode parses an access token into its claims without verifying the
// signature. Authenticity is the issuing server's concern; this codec only
// checks that the token carries the structure the dashboard relies on.
//
// A token with a missing or unknown role claim is rejected rather than
// defaulted to the lowest-privilege role.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		log.Debug().Err(err).Msg("token parse failed")
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrMalformedToken)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: missing or unknown role claim %q", ErrMalformedToken, claims.Role)
	}

	return claims, nil
}

// IsExpired reports whether the claims have expired as of now. Pure
// function; both sides of the comparison are instants, so there is no
// seconds-versus-milliseconds conversion to get wrong.
func (c *Claims) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// Sign creates an HMAC-signed access token carrying the given claims.
// The backend normally issues tokens; this is used for fixtures and tests.
func Sign(secret []byte, userID int, username string, role policy.Role, expiresAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
