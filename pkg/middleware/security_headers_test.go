package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSecurityHeaders(t *testing.T, cfg SecurityHeadersConfig, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/industries", nil)
	rec := httptest.NewRecorder()
	err := SecurityHeaders(cfg)(next)(e.NewContext(req, rec))
	return rec, err
}

func TestSecurityHeaders_DefaultHeaders(t *testing.T) {
	rec, err := runSecurityHeaders(t, SecurityHeadersConfig{}, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{"count": 0})
	})
	require.NoError(t, err)

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'none'")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
	assert.Contains(t, rec.Header().Get("Permissions-Policy"), "geolocation=()")
}

func TestSecurityHeaders_PartialOverride(t *testing.T) {
	rec, err := runSecurityHeaders(t, SecurityHeadersConfig{ReferrerPolicy: "same-origin"}, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, err)

	assert.Equal(t, "same-origin", rec.Header().Get("Referrer-Policy"))
	// Unset fields keep their defaults
	assert.Equal(t, DefaultSecurityHeadersConfig().ContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, DefaultSecurityHeadersConfig().PermissionsPolicy, rec.Header().Get("Permissions-Policy"))
}

func TestSecurityHeaders_HandlerError(t *testing.T) {
	rec, err := runSecurityHeaders(t, SecurityHeadersConfig{}, func(c echo.Context) error {
		return echo.ErrInternalServerError
	})

	assert.Error(t, err)
	// Headers are set before the handler runs
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rec.Header().Get("Referrer-Policy"))
}
