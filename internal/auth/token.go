package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectKind distinguishes the two bearer-token audiences.
type SubjectKind string

const (
	SubjectAdmin     SubjectKind = "admin"
	SubjectDeveloper SubjectKind = "developer"
)

// Claims is the payload carried by admin and developer bearer tokens.
type Claims struct {
	Email string      `json:"email"`
	Kind  SubjectKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256-signed bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue creates a signed token for the subject.
func (m *TokenManager) Issue(subjectID, email string, kind SubjectKind) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns its claims.
// Signature, format, and expiry failures are all reported as a single
// error class; the caller maps them to InvalidToken.
func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("verify token: invalid claims")
	}
	return claims, nil
}

// DecodeUnsafe reads a token's claims without verifying the signature.
// Used only to read the expiry when revoking an already-presented token.
func (m *TokenManager) DecodeUnsafe(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims)
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}
