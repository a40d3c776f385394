package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abstratium/partner/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedRequest struct {
	Name    string `json:"tagName" binding:"required,max=5"`
	Color   string `json:"colorHex" binding:"omitempty,hexcolor"`
	Country string `json:"countryCode" binding:"omitempty,iso_country"`
}

func validationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, SetupValidator())
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req validatedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleValidationError(t *testing.T) {
	router := validationRouter(t)

	t.Run("field errors use json names", func(t *testing.T) {
		w := post(router, `{"tagName":"much too long","colorHex":"red","countryCode":"XX"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Must be at most 5 characters", fields["tagName"])
		assert.Equal(t, "Must be a hex color such as #FF0000", fields["colorHex"])
		assert.Equal(t, "Must be an ISO 3166-1 alpha-2 country code", fields["countryCode"])
	})

	t.Run("valid input passes", func(t *testing.T) {
		w := post(router, `{"tagName":"VIP","colorHex":"#00ff00","countryCode":"CH"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := post(router, `{"tagName":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidJSON)
	})
}
