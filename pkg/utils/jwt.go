package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/pkg/apperror"
)

const tokenIssuer = "restopos-api"

// CashierClaims represents the claims in a register access token
type CashierClaims struct {
	CashierID   uuid.UUID `json:"cashier_id"`
	CashierName string    `json:"cashier_name"`
	BranchID    uuid.UUID `json:"branch_id"`
	Roles       []string  `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries the role
func (c *CashierClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// JWTManager handles JWT token generation and validation
type JWTManager struct {
	secretKey         []byte
	accessTokenExpiry time.Duration
	now               func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:         []byte(secret),
		accessTokenExpiry: accessExpiry,
		now:               time.Now,
	}
}

// GenerateAccessToken generates a new access token for a cashier at a branch
func (m *JWTManager) GenerateAccessToken(cashierID uuid.UUID, cashierName string, branchID uuid.UUID, roles []string) (string, error) {
	now := m.now()
	claims := &CashierClaims{
		CashierID:   cashierID,
		CashierName: cashierName,
		BranchID:    branchID,
		Roles:       roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   cashierID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateAccessToken validates an access token and returns the claims
func (m *JWTManager) ValidateAccessToken(tokenString string) (*CashierClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CashierClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CashierClaims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}
	if claims.CashierID == uuid.Nil || claims.BranchID == uuid.Nil {
		return nil, apperror.NewAppError(apperror.ErrInvalidToken.Code, "token is missing cashier or branch")
	}

	return claims, nil
}
