package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"schoolku_backend/internals/configs"
	usermodel "schoolku_backend/internals/features/users/user/model"
)

const tokenTTL = 24 * time.Hour

// GenerateToken issues an HS256 access token carrying user_id and role.
func GenerateToken(user *usermodel.UserModel) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT secret is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the signature and returns the claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return nil, errors.New("JWT secret is not configured")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// TokenExpiry extracts the exp claim as a time.
func TokenExpiry(claims jwt.MapClaims) (time.Time, error) {
	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("missing exp claim")
	}
	return time.Unix(int64(expFloat), 0), nil
}
