package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"travelcms/errors"
)

type UserInfo struct {
	UserId uint   `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) GenerateToken(userInfo UserInfo) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Subject:   fmt.Sprint(userInfo.UserId),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies the signature and expiry and returns the user claims.
func (s *TokenService) ParseToken(tokenString string) (UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Could not validate credentials", err)
	}
	if claims.UserInfo.UserId == 0 {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Could not validate credentials", nil)
	}
	return claims.UserInfo, nil
}
