package handlers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blum-backend/internal/models"
)

func TestUserJSONNeverIncludesPassword(t *testing.T) {
	user := models.User{
		Username:     "admin",
		PasswordHash: "$2a$10$secret-hash",
		CreatedAt:    time.Now(),
	}

	body, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	jsonBody := strings.ToLower(string(body))
	if strings.Contains(jsonBody, "password") || strings.Contains(jsonBody, "secret-hash") {
		t.Fatalf("password material leaked into json: %s", jsonBody)
	}
	if !strings.Contains(jsonBody, `"username":"admin"`) {
		t.Fatalf("expected username in json, got %s", jsonBody)
	}
}

func TestIssueTokenCarriesUsernameAndExpiry(t *testing.T) {
	const secret = "test-secret"

	raw, err := issueToken("admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected valid token, err=%v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["username"] != "admin" {
		t.Fatalf("expected username claim, got %v", claims["username"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatal("expected exp claim")
	}
}

func TestIssueTokenRejectedWithWrongSecret(t *testing.T) {
	raw, err := issueToken("admin", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil && token.Valid {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}
