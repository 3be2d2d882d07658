package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: bad
// signature, malformed payload, or expired token. Callers must not
// tell the client which one it was.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified payload of an auth token.
// Only what comes out of Validate() may be trusted; any id or role
// a client sends elsewhere in the request is ignored.
type Claims struct {
	UserID int64
	Role   string
}

// TokenManager signs and verifies auth tokens. It is constructed once
// from the app config so the secret is injected, not a package constant.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager with the given signing secret.
// Tokens are valid for 1 hour from issuance.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Hour,
	}
}

// Generate creates a signed token for a user. The claims carry the
// user ID ("sub"), the role, and the validity window.
func (tm *TokenManager) Generate(userID int64, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,                   // "sub" (Subject) is the standard claim for User ID
		"role": role,                     // Needed for admin checks without a DB round-trip
		"iat":  now.Unix(),               // "iat" (Issued At)
		"exp":  now.Add(tm.ttl).Unix(),   // Expires in 1 hour
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate parses and verifies a token string and returns its claims.
// Expiry is enforced here by the parser; there is no server-side
// revocation list.
func (tm *TokenManager) Validate(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Make sure the token was signed with the algorithm we use.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	// JSON numbers arrive as float64.
	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: int64(sub), Role: role}, nil
}
