package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authUsecases "github.com/assistitk12/assistitk12/internal/application/auth/usecases"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims identify the user only. Role and site are resolved per request so
// directory changes apply without re-login.
type Claims struct {
	UserID    uint      `json:"uid"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:        []byte(secret),
		accessExpiry:  time.Duration(accessExpMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

func (s *JWTService) Generate(userID uint) (*authUsecases.TokenPair, error) {
	now := biztime.NowUTC()

	access, err := s.sign(userID, TokenTypeAccess, now, s.accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(userID, TokenTypeRefresh, now, s.refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &authUsecases.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresIn:        int64(s.accessExpiry.Seconds()),
		RefreshExpiresIn: int64(s.refreshExpiry.Seconds()),
	}, nil
}

func (s *JWTService) sign(userID uint, typ TokenType, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// VerifyAccess accepts only access tokens.
func (s *JWTService) VerifyAccess(tokenString string) (uint, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return 0, err
	}
	if claims.TokenType != TokenTypeAccess {
		return 0, fmt.Errorf("not an access token")
	}
	return claims.UserID, nil
}

func (s *JWTService) ParseRefresh(tokenString string) (*authUsecases.RefreshClaims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh || claims.ID == "" {
		return nil, fmt.Errorf("not a refresh token")
	}
	return &authUsecases.RefreshClaims{
		UserID:    claims.UserID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *JWTService) AccessExpiry() time.Duration  { return s.accessExpiry }
func (s *JWTService) RefreshExpiry() time.Duration { return s.refreshExpiry }
