package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recorderStub struct {
	mu   sync.Mutex
	logs []models.OperationLog
}

func (r *recorderStub) Record(_ context.Context, log models.OperationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func TestSanitizeDataMasksNestedSecrets(t *testing.T) {
	in := map[string]interface{}{
		"username": "asha",
		"Password": "hunter22",
		"profile": map[string]interface{}{
			"confirmPassword": "hunter22",
			"phone":           "9876543210",
		},
		"items": []interface{}{
			map[string]interface{}{"otp": "123456", "code": "CBC"},
		},
	}

	out := sanitizeData(in).(map[string]interface{})
	assert.Equal(t, "asha", out["username"])
	assert.Equal(t, "******", out["Password"])

	profile := out["profile"].(map[string]interface{})
	assert.Equal(t, "******", profile["confirmPassword"])
	assert.Equal(t, "9876543210", profile["phone"])

	item := out["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "******", item["otp"])
	assert.Equal(t, "CBC", item["code"])

	assert.Equal(t, "plain", sanitizeData("plain"))
	assert.Nil(t, sanitizeData(nil))
}

func TestOperationLoggerRecordsMutations(t *testing.T) {
	rec := &recorderStub{}
	router := gin.New()
	router.Use(OperationLoggerMiddleware(rec))
	router.POST("/api/users", func(c *gin.Context) {
		c.Set(utils.ContextUserKey, &utils.TokenClaims{UserID: "admin-001", Username: "admin", Roles: []string{"Super Admin"}})
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})
	router.POST("/api/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/booking/sessions", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.GET("/api/users", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.DELETE("/api/users/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	send := func(method, path, body string) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	send(http.MethodPost, "/api/users", `{"username":"ravi","password":"secret-pw"}`)
	send(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin12345"}`)
	send(http.MethodPost, "/api/booking/sessions", ``)
	send(http.MethodGet, "/api/users", ``)
	send(http.MethodDelete, "/api/users/nope", ``)

	require.Len(t, rec.logs, 2)

	created := rec.logs[0]
	assert.Equal(t, "/api/users", created.Path)
	assert.Equal(t, "admin", created.OperatorName)
	assert.Equal(t, http.StatusCreated, created.StatusCode)
	assert.True(t, created.Success)
	body := created.RequestBody.(map[string]interface{})
	assert.Equal(t, "ravi", body["username"])
	assert.Equal(t, "******", body["password"])

	deleted := rec.logs[1]
	assert.Equal(t, "anonymous", deleted.OperatorName)
	assert.False(t, deleted.Success)
}

func TestRequireCapability(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if roles := c.GetHeader("X-Roles"); roles != "" {
			c.Set(utils.ContextUserKey, &utils.TokenClaims{UserID: "u1", Username: "u1", Roles: strings.Split(roles, ",")})
		}
		c.Next()
	})
	router.GET("/finance", RequireCapability(models.CanManageFinance), func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		roles string
		want  int
	}{
		{"", http.StatusUnauthorized},
		{"Viewer", http.StatusForbidden},
		{"Viewer,Accountant", http.StatusOK},
		{"Super Admin", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/finance", nil)
		if tc.roles != "" {
			req.Header.Set("X-Roles", tc.roles)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "roles %q", tc.roles)
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	utils.SetJWTSecret("middleware-test")
	router := gin.New()
	router.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		user, err := utils.GetUser(c)
		require.NoError(t, err)
		c.String(http.StatusOK, user.Username)
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer not-a-jwt").Code)

	token, err := utils.GenerateToken("admin-001", "admin", []string{"Super Admin"})
	require.NoError(t, err)
	w := call("Bearer " + token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}
