package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of login tokens.
const TokenTTL = time.Hour

var errNoAccountID = errors.New("token has no account id")

// Claims is the payload of a login token.
type Claims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

func generateToken(accountID, email string, secret []byte, issuedAt time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	})

	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte, now func() time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.AccountID == "" {
		return nil, errNoAccountID
	}

	return claims, nil
}
