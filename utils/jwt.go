package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SessionCookie = "sessionid"

var ErrInvalidToken = errors.New("invalid or expired token")

type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

func (sc *SessionClaims) Identity() Identity {
	return Identity{UserID: sc.UserID, Username: sc.Username, IsStaff: sc.IsStaff}
}

// SessionManager issues and verifies session tokens.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	revoked *RevocationList
}

func NewSessionManager(secret string, ttl time.Duration, revoked *RevocationList) *SessionManager {
	if revoked == nil {
		revoked = NewRevocationList()
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, revoked: revoked}
}

func (sm *SessionManager) TTL() time.Duration { return sm.ttl }

func (sm *SessionManager) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   id.UserID,
		Username: id.Username,
		IsStaff:  id.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(sm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "restaurant-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sm.secret)
}

func (sm *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return sm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if sm.revoked.IsRevoked(claims.ID) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke invalidates a token until it would have expired anyway.
func (sm *SessionManager) Revoke(tokenString string) {
	claims, err := sm.Parse(tokenString)
	if err != nil {
		return
	}
	expiry := time.Now().Add(sm.ttl)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	sm.revoked.Revoke(claims.ID, expiry)
}
