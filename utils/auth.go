package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL lifetime of issued tokens
const TokenTTL = 30 * 24 * time.Hour

var jwtSecret = []byte("change-me-in-production")

// SetJWTSecret replaces the signing key
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// TokenClaims JWT payload for admin sessions
type TokenClaims struct {
	UserID   string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.StandardClaims
}

// SimpleHash sha256 with salt, stored as sha256$salt$hash
func SimpleHash(password string, salt string) string {
	hash := sha256.Sum256([]byte(password + salt))
	return fmt.Sprintf("sha256$%s$%s", salt, hex.EncodeToString(hash[:]))
}

// HashPassword hashes with a fresh random salt
func HashPassword(password string) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the host is broken; a fixed salt still yields a valid hash
		return SimpleHash(password, "69dc6ee0")
	}
	return SimpleHash(password, hex.EncodeToString(buf))
}

// VerifyPassword checks a password against a sha256$salt$hash value
func VerifyPassword(password string, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 3 || parts[0] != "sha256" {
		return false
	}
	expected := SimpleHash(password, parts[1])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hashedPassword)) == 1
}

// GenerateToken signs a token for the given admin identity
func GenerateToken(userID, username string, roles []string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   userID,
		Username: username,
		Roles:    roles,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TokenTTL).Unix(),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("failed to sign token")
		return "", err
	}
	return signed, nil
}

// ParseToken validates a token and returns its claims
func ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, errors.New("token is missing identity claims")
	}
	return claims, nil
}
