package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"zellalite/internal/config"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type Claims struct {
	TokenType string `json:"type"`

	jwt.RegisteredClaims
}

type JWT struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func New(cfg config.AuthConfig) JWT {
	return JWT{
		Secret:     []byte(cfg.Secret),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}
}

func (j JWT) SignAccess(userID uint64) (string, error) {
	return j.sign(userID, TokenAccess, j.AccessTTL)
}

func (j JWT) SignRefresh(userID uint64) (string, error) {
	return j.sign(userID, TokenRefresh, j.RefreshTTL)
}

func (j JWT) sign(userID uint64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    "zellalite",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
}

// Verify checks the signature and the expected token type and returns the
// user id carried in the subject claim.
func (j JWT) Verify(token, wantType string) (uint64, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.Secret, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return 0, errors.New("invalid token")
	}
	if claims.TokenType != wantType {
		return 0, errors.New("wrong token type")
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, errors.New("invalid subject")
	}
	return userID, nil
}
