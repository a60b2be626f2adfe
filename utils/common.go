package utils

import (
	"github.com/gin-gonic/gin"
)

// ContextUserKey gin context key holding *TokenClaims
const ContextUserKey = "user"

// LoginUser identity of the authenticated admin
type LoginUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// GetUser returns the authenticated admin stored by the auth middleware
func GetUser(c *gin.Context) (*LoginUser, error) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, CreateUnauthorizedError()
	}
	claims, ok := raw.(*TokenClaims)
	if !ok || claims == nil {
		return nil, CreateUnauthorizedError()
	}
	return &LoginUser{
		ID:       claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles,
	}, nil
}

// OperatorName username of the caller, or "system" outside an authenticated request
func OperatorName(c *gin.Context) string {
	if user, err := GetUser(c); err == nil {
		return user.Username
	}
	return "system"
}

// ListResponse writes a list with its count
func ListResponse(c *gin.Context, key string, items interface{}, total int) {
	SuccessResponse(c, gin.H{key: items, "total": total}, "")
}

// Slugify lower-case, dash separated form of a title
func Slugify(s string) string {
	out := make([]rune, 0, len(s))
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			dash = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			dash = false
		default:
			if !dash && len(out) > 0 {
				out = append(out, '-')
				dash = true
			}
		}
	}
	if dash {
		out = out[:len(out)-1]
	}
	return string(out)
}
