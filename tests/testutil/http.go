package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Client sends JSON requests to an in-process handler.
type Client struct {
	t       *testing.T
	handler http.Handler
	headers map[string]string
}

// NewClient creates a client for handler.
func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler, headers: map[string]string{}}
}

// WithHeader returns a copy of the client that sends an extra header.
func (c *Client) WithHeader(key, value string) *Client {
	headers := make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		headers[k] = v
	}
	headers[key] = value
	return &Client{t: c.t, handler: c.handler, headers: headers}
}

// Do sends body marshalled as JSON and records the response.
func (c *Client) Do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		reader = ToJSONReader(c.t, body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

// MustDo sends the request and requires the expected status.
func (c *Client) MustDo(method, path string, body any, expectedStatus int) *httptest.ResponseRecorder {
	c.t.Helper()
	w := c.Do(method, path, body)
	require.Equal(c.t, expectedStatus, w.Code, "%s %s: %s", method, path, w.Body.String())
	return w
}

// Data decodes the data field of a successful envelope.
func Data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	return envelope.Data
}

// ErrorCode returns the code of a failed envelope.
func ErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.False(t, envelope.Success, w.Body.String())
	require.NotNil(t, envelope.Error, w.Body.String())
	return envelope.Error.Code
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
