package rest

import (
	"context"
	"time"

	"kledje/internal/schema"

	"github.com/labstack/echo/v4"
)

const defaultTimeout = 10 * time.Second

// RequestValidator is satisfied by *schema.Validator.
type RequestValidator interface {
	Validate(name string, payload map[string]any) (map[string]any, error)
}

// validateBody reads the JSON body into a map and runs it through the named
// schema. The result carries defaults and coerced values.
func validateBody(c echo.Context, v RequestValidator, name string) (map[string]any, error) {
	payload := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &payload); err != nil {
		return nil, err
	}

	return v.Validate(name, payload)
}

// validateQuery uses the first value of each query parameter.
func validateQuery(c echo.Context, v RequestValidator, name string) (map[string]any, error) {
	payload := map[string]any{}
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	return v.Validate(name, payload)
}

func validateID(c echo.Context, v RequestValidator) (string, error) {
	if _, err := v.Validate(schema.ID, map[string]any{"id": c.Param("id")}); err != nil {
		return "", err
	}

	return c.Param("id"), nil
}

func decodeBody(c echo.Context, v RequestValidator, name string, dst any) error {
	normalized, err := validateBody(c, v, name)
	if err != nil {
		return err
	}

	return schema.Decode(normalized, dst)
}

func withTimeout(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}

// absoluteURL prefixes a root-relative URL with the request's scheme and host.
func absoluteURL(c echo.Context, url string) string {
	if len(url) == 0 || url[0] != '/' {
		return url
	}

	return c.Scheme() + "://" + c.Request().Host + url
}
