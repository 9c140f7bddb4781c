package response

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

	"restaurant-catalog/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandleError(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/dishes/x", nil)

	HandleError(c, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperror.NotFound("Dish not found"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", apperror.NotFound("Dish not found")), http.StatusNotFound},
		{"illegal state", apperror.IllegalState("Cuisine is not valid"), http.StatusBadRequest},
		{"image upload", apperror.ImageUpload("Image must have name.", nil), http.StatusBadRequest},
		{"unauthorized", apperror.Unauthorized("Authentication required"), http.StatusUnauthorized},
		{"forbidden", apperror.Forbidden("Access denied"), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := runHandleError(t, tc.err)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestHandleError_ValidationCarriesFields(t *testing.T) {
	status, body := runHandleError(t, apperror.Validation("Validation failed", map[string]string{"price": "Price must be greater than 0"}))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "Price must be greater than 0", body.Errors["price"])
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	status, body := runHandleError(t, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal error", body.Message)
	assert.Nil(t, body.Errors)
}
