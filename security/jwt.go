package security

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"messenger-api/apperror"
	"messenger-api/config/common"
	"messenger-api/enum"
)

const issuer = "messenger-api"

type Claims struct {
	Type enum.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Tokens holds a freshly issued access/refresh pair.
type Tokens struct {
	Access  string
	Refresh string
}

type JWT struct {
	accessPrivate  *ecdsa.PrivateKey
	refreshPrivate *ecdsa.PrivateKey
	accessTTL      time.Duration
	refreshTTL     time.Duration
}

func NewJWT(config *common.Config) (*JWT, error) {
	accessPEM, refreshPEM := config.GetJWTKeys()

	accessKey, err := jwt.ParseECPrivateKeyFromPEM([]byte(accessPEM))
	if err != nil {
		return nil, fmt.Errorf("parse access key: %w", err)
	}

	refreshKey, err := jwt.ParseECPrivateKeyFromPEM([]byte(refreshPEM))
	if err != nil {
		return nil, fmt.Errorf("parse refresh key: %w", err)
	}

	accessTTL, refreshTTL := config.GetJWTExpiry()
	return NewJWTFromKeys(accessKey, refreshKey, accessTTL, refreshTTL), nil
}

func NewJWTFromKeys(accessKey, refreshKey *ecdsa.PrivateKey, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		accessPrivate:  accessKey,
		refreshPrivate: refreshKey,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
	}
}

func (j *JWT) AccessPublicKey() *ecdsa.PublicKey {
	return &j.accessPrivate.PublicKey
}

func (j *JWT) RefreshPublicKey() *ecdsa.PublicKey {
	return &j.refreshPrivate.PublicKey
}

func (j *JWT) GenerateTokenPair(userID string) (*Tokens, error) {
	access, err := j.generateToken(userID, enum.TokenTypeAccess, j.accessPrivate, j.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := j.generateToken(userID, enum.TokenTypeRefresh, j.refreshPrivate, j.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &Tokens{Access: access, Refresh: refresh}, nil
}

func (j *JWT) generateToken(userID string, tokenType enum.TokenType, key *ecdsa.PrivateKey, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodES512, claims).SignedString(key)
}

// VerifyToken validates the signature against the key pair matching the
// expected type and rejects tokens whose type claim does not match, so an
// access token can never be replayed as a refresh token.
func (j *JWT) VerifyToken(tokenString string, expected enum.TokenType) (*Claims, error) {
	key := j.AccessPublicKey()
	if expected == enum.TokenTypeRefresh {
		key = j.RefreshPublicKey()
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return key, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Authentication("token has expired")
		}
		return nil, apperror.Authentication("invalid or malformed token")
	}

	if !token.Valid {
		return nil, apperror.Authentication("invalid or malformed token")
	}

	if claims.Type != expected {
		return nil, apperror.Authentication("unexpected token type")
	}

	return claims, nil
}

// HashRefreshToken digests a refresh token for storage. A signed token is
// longer than bcrypt's 72-byte input limit, so a SHA-256 digest compared in
// constant time stands in for a password hash here.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func CompareRefreshToken(digest, token string) bool {
	expected := HashRefreshToken(token)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(expected)) == 1
}
