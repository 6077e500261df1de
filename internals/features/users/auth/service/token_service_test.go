package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/configs"
	usermodel "schoolku_backend/internals/features/users/user/model"
)

func TestTokenRoundTrip(t *testing.T) {
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = "" })

	user := &usermodel.UserModel{
		UserID:   uuid.New(),
		UserRole: "teacher",
	}

	tokenString, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := claims["user_id"]; got != user.UserID.String() {
		t.Fatalf("user_id claim = %v, want %s", got, user.UserID)
	}
	if got := claims["role"]; got != "teacher" {
		t.Fatalf("role claim = %v, want teacher", got)
	}

	exp, err := TokenExpiry(claims)
	if err != nil {
		t.Fatalf("expiry: %v", err)
	}
	if d := time.Until(exp); d < 23*time.Hour || d > 25*time.Hour {
		t.Fatalf("expiry not around 24h away: %v", d)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = "" })

	user := &usermodel.UserModel{UserID: uuid.New(), UserRole: "admin"}
	tokenString, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	configs.JWTSecret = "other-secret"
	if _, err := ParseToken(tokenString); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}
