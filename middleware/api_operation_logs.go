package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// OperationRecorder persists audit rows
type OperationRecorder interface {
	Record(ctx context.Context, log models.OperationLog) error
}

var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// the booking wizard is public and chatty; login bodies carry passwords
var excludedPrefixes = []string{
	"/api/auth/login",
	"/api/booking/",
	"/api/health",
	"/api/db-status",
}

// OperationLoggerMiddleware records every mutating admin call after it completes
func OperationLoggerMiddleware(recorder OperationRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()

		var requestBody interface{}
		if c.Request.Body != nil {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				utils.Logger.Error().Err(err).Msg("read request body for audit")
			} else {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
				if len(raw) > 0 {
					if err := json.Unmarshal(raw, &requestBody); err != nil {
						requestBody = string(raw)
					}
				}
			}
		}

		c.Next()

		entry := models.OperationLog{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			OperatorID:    "anonymous",
			OperatorName:  "anonymous",
			RequestBody:   sanitizeData(requestBody),
			StatusCode:    c.Writer.Status(),
			Success:       c.Writer.Status() < http.StatusBadRequest,
			OperationTime: startTime,
			ResponseTime:  time.Since(startTime).Milliseconds(),
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}
		if user, err := utils.GetUser(c); err == nil {
			entry.OperatorID, entry.OperatorName, entry.OperatorRoles = user.ID, user.Username, user.Roles
		}
		if len(c.Errors) > 0 {
			entry.ErrorMessage = c.Errors.String()
		}

		// the request context may already be cancelled once the response is out
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.Record(ctx, entry); err != nil {
			utils.Logger.Error().Err(err).Str("path", entry.Path).Msg("save operation log")
		}
	}
}

func shouldLogOperation(c *gin.Context) bool {
	path := c.Request.URL.Path
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return loggedMethods[c.Request.Method]
}

// sanitizeData masks secrets anywhere in a decoded JSON body
func sanitizeData(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		sanitized := make(map[string]interface{}, len(v))
		for k, val := range v {
			switch strings.ToLower(k) {
			case "password", "confirmpassword", "token", "authorization", "secret", "otp":
				sanitized[k] = "******"
			default:
				sanitized[k] = sanitizeData(val)
			}
		}
		return sanitized
	case []interface{}:
		sanitized := make([]interface{}, len(v))
		for i, val := range v {
			sanitized[i] = sanitizeData(val)
		}
		return sanitized
	}
	return data
}
