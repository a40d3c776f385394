package testutil

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	assert.NotNil(t, mockDB.SqlDB)

	mockDB.ExpectationsWereMet(t)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("test-seed"), NewTestUUID("test-seed"))
	assert.NotEqual(t, NewTestUUID("test-seed"), NewTestUUID("different-seed"))
}

func TestRequests(t *testing.T) {
	f := gofakeit.New(42)

	person := PersonRequest(f)
	assert.NotEmpty(t, person["firstName"])
	assert.NotEmpty(t, person["lastName"])
	assert.NotContains(t, person, "legalName")

	company := CompanyRequest(f)
	assert.NotEmpty(t, company["legalName"])
	assert.Regexp(t, `^CHE-\d{3}\.\d{3}\.\d{3}$`, company["registrationNumber"])
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, 50*time.Millisecond)

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
}

func TestRequireEventually(t *testing.T) {
	var calls atomic.Int32
	RequireEventually(t, func() bool {
		return calls.Add(1) >= 3
	}, time.Second, time.Millisecond)

	assert.Equal(t, int32(3), calls.Load())
}

func newEchoEngine() *gin.Engine {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_INPUT"}})
			return
		}
		body["header"] = c.GetHeader("X-Request-ID")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})
	return engine
}

func TestClient(t *testing.T) {
	client := NewClient(t, newEchoEngine())

	t.Run("sends JSON and decodes data", func(t *testing.T) {
		w := client.WithHeader("X-Request-ID", "req-1").
			MustDo(http.MethodPost, "/echo", map[string]any{"name": "acme"}, http.StatusOK)

		got := Data[map[string]string](t, w)
		assert.Equal(t, "acme", got["name"])
		assert.Equal(t, "req-1", got["header"])
	})

	t.Run("WithHeader leaves the original untouched", func(t *testing.T) {
		w := client.MustDo(http.MethodPost, "/echo", map[string]any{}, http.StatusOK)
		assert.Empty(t, Data[map[string]string](t, w)["header"])
	})

	t.Run("decodes error codes", func(t *testing.T) {
		w := client.Do(http.MethodPost, "/echo", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", ErrorCode(t, w))
	})
}
