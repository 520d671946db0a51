package jwthandling

import (
	"testing"
	"time"
)

func TestUserTokenRoundTrip(t *testing.T) {
	signKey := "test-sign-key"

	t.Run("valid token carries the claims", func(t *testing.T) {
		token, err := GenerateNewUserToken(time.Minute, "user-1", "ada@uni.example.org", true, map[string]string{"k": "v"}, signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, valid, err := ValidateUserToken(token, signKey)
		if err != nil || !valid {
			t.Fatalf("token should validate, valid=%v err=%v", valid, err)
		}
		if claims.ID != "user-1" || claims.Email != "ada@uni.example.org" || !claims.IsAdmin {
			t.Errorf("unexpected claims: %+v", claims)
		}
		if claims.Payload["k"] != "v" {
			t.Errorf("payload should round trip, got %v", claims.Payload)
		}

		principal := claims.ToPrincipal()
		if principal.ID != "user-1" || !principal.IsAdmin {
			t.Errorf("unexpected principal: %+v", principal)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := GenerateNewUserToken(-time.Minute, "user-1", "ada@uni.example.org", false, nil, signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, err := ValidateUserToken(token, signKey)
		if valid || err == nil {
			t.Errorf("expired token should not validate, valid=%v err=%v", valid, err)
		}
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		token, err := GenerateNewUserToken(time.Minute, "user-1", "ada@uni.example.org", false, nil, signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, err := ValidateUserToken(token, "other-key")
		if valid || err == nil {
			t.Errorf("token signed with another key should not validate, valid=%v err=%v", valid, err)
		}
	})
}

func TestServiceTokenRoundTrip(t *testing.T) {
	signKey := "test-service-sign-key"

	t.Run("valid token carries the service name", func(t *testing.T) {
		token, err := GenerateNewServiceToken(time.Minute, "data-portal", signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, valid, err := ValidateServiceToken(token, signKey)
		if err != nil || !valid {
			t.Fatalf("token should validate, valid=%v err=%v", valid, err)
		}
		if claims.ServiceName != "data-portal" {
			t.Errorf("unexpected service name: %s", claims.ServiceName)
		}
	})

	t.Run("user token is not a service token", func(t *testing.T) {
		token, err := GenerateNewUserToken(time.Minute, "user-1", "ada@uni.example.org", false, nil, signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, valid, err := ValidateServiceToken(token, signKey)
		if err == nil && valid && claims.ServiceName != "" {
			t.Errorf("user token should not carry a service name, got %s", claims.ServiceName)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := GenerateNewServiceToken(-time.Minute, "data-portal", signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, err := ValidateServiceToken(token, signKey)
		if valid || err == nil {
			t.Errorf("expired token should not validate, valid=%v err=%v", valid, err)
		}
	})
}
