package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JwtKey signs and verifies tokens. Loaded from configuration in main.
var JwtKey = []byte("your_secret_key")

// JwtExpires is the token lifetime from issuance.
var JwtExpires = 24 * time.Hour

// Claims is the token payload. Only the user id is embedded; everything
// else about the user is re-fetched on each request.
type Claims struct {
	ID string `json:"id"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed token for the given user id.
func GenerateJWT(userID string) (string, error) {
	expirationTime := time.Now().Add(JwtExpires)
	claims := &Claims{
		ID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseJWT verifies a token string and returns its claims.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
