package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

// Information a user token encodes
type UserClaims struct {
	ID      string            `json:"id,omitempty"`
	Email   string            `json:"email,omitempty"`
	IsAdmin bool              `json:"is_admin,omitempty"`
	Payload map[string]string `json:"payload,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewUserToken(expiresIn time.Duration, id string, email string, isAdmin bool, payload map[string]string, secretKey string) (tokenString string, err error) {
	claims := UserClaims{
		id,
		email,
		isAdmin,
		payload,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   id,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateUserToken(tokenString string, secretKey string) (claims *UserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*UserClaims)
	valid = valid && token.Valid
	return
}

// ToPrincipal converts validated claims into the caller identity used by
// the application lifecycle.
func (c *UserClaims) ToPrincipal() types.UserPrincipal {
	return types.UserPrincipal{
		ID:      c.ID,
		Email:   c.Email,
		IsAdmin: c.IsAdmin,
	}
}
