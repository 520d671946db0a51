package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a service token encodes. Service tokens are used by the
// scheduled jobs and other machine callers.
type ServiceClaims struct {
	ServiceName string `json:"service_name,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewServiceToken(expiresIn time.Duration, serviceName string, secretKey string) (tokenString string, err error) {
	claims := ServiceClaims{
		serviceName,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   serviceName,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateServiceToken(tokenString string, secretKey string) (claims *ServiceClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &ServiceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*ServiceClaims)
	valid = valid && token.Valid
	return
}
