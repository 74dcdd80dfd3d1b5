package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var result ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestHealth(t *testing.T) {
	c, rec := setupEcho()

	require.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ok", result.Status)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		write   func(echo.Context) error
		status  int
		code    string
		message string
	}{
		{
			name:    "bad request",
			write:   func(c echo.Context) error { return BadRequest(c, "Invalid input") },
			status:  http.StatusBadRequest,
			code:    CodeInvalidRequest,
			message: "Invalid input",
		},
		{
			name:    "invalid body",
			write:   InvalidRequestBody,
			status:  http.StatusBadRequest,
			code:    CodeInvalidRequest,
			message: MsgInvalidRequestBody,
		},
		{
			name:    "validation message",
			write:   func(c echo.Context) error { return ValidationErrorWithMessage(c, "origin is required") },
			status:  http.StatusBadRequest,
			code:    CodeValidationError,
			message: "origin is required",
		},
		{
			name:    "service unavailable",
			write:   ServiceUnavailable,
			status:  http.StatusServiceUnavailable,
			code:    CodeServiceUnavailable,
			message: MsgServiceUnavailable,
		},
		{
			name:    "service unavailable with message",
			write:   func(c echo.Context) error { return ServiceUnavailableWithMessage(c, "maintenance") },
			status:  http.StatusServiceUnavailable,
			code:    CodeServiceUnavailable,
			message: "maintenance",
		},
		{
			name:    "gateway timeout",
			write:   GatewayTimeout,
			status:  http.StatusGatewayTimeout,
			code:    CodeTimeout,
			message: MsgTimeout,
		},
		{
			name:    "request cancelled",
			write:   RequestCancelled,
			status:  http.StatusGatewayTimeout,
			code:    CodeTimeout,
			message: MsgRequestCancelled,
		},
		{
			name:    "internal error",
			write:   InternalServerError,
			status:  http.StatusInternalServerError,
			code:    CodeInternalError,
			message: MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := setupEcho()

			require.NoError(t, tt.write(c))
			assert.Equal(t, tt.status, rec.Code)

			result := decodeError(t, rec)
			assert.Equal(t, tt.code, result.Code)
			assert.Equal(t, tt.message, result.Message)
			assert.Empty(t, result.Details)
		})
	}
}

func TestValidationError(t *testing.T) {
	c, rec := setupEcho()

	details := map[string]string{
		"origin":      "origin is required",
		"destination": "destination must be a valid 3-letter IATA airport code",
	}
	require.NoError(t, ValidationError(c, details))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	result := decodeError(t, rec)
	assert.Equal(t, CodeValidationError, result.Code)
	assert.Equal(t, MsgValidationFailed, result.Message)
	assert.Equal(t, details, result.Details)
}

func TestSearchResults(t *testing.T) {
	c, rec := setupEcho()

	results := struct {
		Items []string `json:"items"`
		Total int      `json:"total"`
	}{
		Items: []string{"a", "b", "c"},
		Total: 3,
	}

	require.NoError(t, SearchResults(c, results))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":["a","b","c"],"total":3}`, rec.Body.String())
}
