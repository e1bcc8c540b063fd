package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidClaims = errors.New("invalid token claims")

func CreateJWTToken(memberID int64, principal string, externalID string, jwtSecretKey string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["memberID"] = memberID
	claims["principal"] = principal
	claims["externalID"] = externalID
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ParseJWTToken validates the signature and expiry and returns the principal claim.
func ParseJWTToken(tokenString string, jwtSecretKey string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidClaims
	}

	principal, ok := claims["principal"].(string)
	if !ok || principal == "" {
		return "", ErrInvalidClaims
	}

	return principal, nil
}
