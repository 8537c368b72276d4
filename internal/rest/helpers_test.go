package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kledje/domain"
	"kledje/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var (
	adminUser    = &domain.User{ID: "7b8e4c21-2a9d-4c1f-8e7b-1d2c3b4a5f60", Name: "Admin", Role: domain.RoleAdmin}
	customerUser = &domain.User{ID: "3f1c2b9e-6f0a-4a55-9a55-8d1c2f6e7a10", Name: "Mona", Role: domain.RoleUser}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(false)
	return e
}

// as stands in for the auth middleware and attaches u to the context.
func as(u *domain.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if u != nil {
				c.Set(middleware.ContextKeyUser, u)
			}
			return next(c)
		}
	}
}

func call(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Code != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}
