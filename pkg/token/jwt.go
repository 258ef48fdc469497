package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
)

var ErrInvalidIssuer = errors.New("invalid token issuer")

type Engine interface {
	// Generate creates a signed token containing the obj, valid for the given duration.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify fails if the token is malformed, expired or was not issued by this engine. Then it
	// decodes the embedded object into obj, which must be a pointer.
	Verify(token string, obj any) error
}

type standardClaims struct {
	jwt.RegisteredClaims
	Object any `json:"obj"`
}

type jwtEngine struct {
	secret string
	issuer string
}

func NewEngine(secret, issuer string) Engine {
	return &jwtEngine{secret: secret, issuer: issuer}
}

func (e *jwtEngine) Generate(expiration time.Duration, obj any) (string, error) {
	now := time.Now()
	claims := standardClaims{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    e.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(e.secret))
}

func (e *jwtEngine) Verify(token string, obj any) error {
	var claims standardClaims
	_, err := jwt.ParseWithClaims(
		token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(e.secret), nil
		},
	)
	if err != nil {
		return err
	}

	if !claims.VerifyIssuer(e.issuer, e.issuer != "") {
		return ErrInvalidIssuer
	}

	return mapstructure.Decode(claims.Object, obj)
}
