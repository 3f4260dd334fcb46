// Package auth covers credential hashing, JWT session tokens and the gin
// middlewares that turn a bearer token into an explicit Principal.
package auth

import (
	"errors"
	"fmt"
	"time"

	"carrental/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Principal identifies the authenticated caller. Handlers pass it explicitly
// into every operation that needs authorization instead of reading ambient
// session state.
type Principal struct {
	UserID  uint
	UserUid string
	Role    models.Role
}

func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs an HS256 JWT carrying the user id, uid and role.
func IssueToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret not set")
	}
	claims := jwt.MapClaims{
		"sub":  user.UserUid,
		"uid":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a signed token and extracts the Principal.
func ParseToken(secret, tokenStr string) (*Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	uid, ok := claims["uid"].(float64)
	if sub == "" || role == "" || !ok {
		return nil, errors.New("invalid claims")
	}

	return &Principal{
		UserID:  uint(uid),
		UserUid: sub,
		Role:    models.Role(role),
	}, nil
}
