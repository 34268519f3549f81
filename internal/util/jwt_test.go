package util

import (
	"lingua_edu_backend/internal/model"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Role:     model.Student,
		Language: "es",
	}
	user.ID = 7

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 7 || claims.Role != model.Student || claims.Email != "ana@example.com" {
		t.Fatalf("claims lost identity fields: %+v", claims)
	}
	if claims.Language != "es" {
		t.Fatalf("language claim not carried, got %q", claims.Language)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "ana@example.com", Role: model.Student}
	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}
