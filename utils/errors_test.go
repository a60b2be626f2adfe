package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	HandleError(c, err)
	return w
}

func TestHandleErrorRendersFieldErrors(t *testing.T) {
	w := render(FieldErrors{"mobile": "must be 10 digits"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeValidationFailed, body["code"])
	assert.Equal(t, map[string]interface{}{"mobile": "must be 10 digits"}, body["fields"])
}

func TestHandleErrorUnwrapsApiError(t *testing.T) {
	w := render(fmt.Errorf("deleting: %w", CreateDependencyError("category has items")))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), CodeHasDependents)
}

func TestHandleErrorHidesUnknownErrors(t *testing.T) {
	w := render(errors.New("mongo exploded"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo exploded")
}

func TestDuplicateErrorFlagsField(t *testing.T) {
	err := CreateDuplicateError("email", "a@b.c")

	assert.True(t, IsApiError(err, CodeDuplicateField))
	assert.Equal(t, []string{"email"}, err.Fields.Fields())
}
