package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"kledje/domain"
	"kledje/pkg/logger"
	"kledje/pkg/response"
	"kledje/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// ErrorHandler is the terminal formatter for every error a handler or
// middleware returns. withStack adds the error chain to the body.
func ErrorHandler(withStack bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := Classify(err, c.Request().URL.RequestURI())

		if status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"error", err,
			)
		} else {
			logger.Debug("Request rejected",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"error", err,
			)
		}

		body := response.Error(message)
		if withStack {
			body.Stack = err.Error()
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("Failed to write error response", "error", writeErr)
		}
	}
}

// Classify maps an error to its status code and client message by shape.
func Classify(err error, uri string) (int, string) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Kind != domain.KindUpstreamStore {
		return appErr.StatusCode(), appErr.Message
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return http.StatusBadRequest, domain.MsgDuplicate
		}
		return http.StatusInternalServerError, domain.MsgDatabaseError
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusBadRequest, domain.MsgDuplicate
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, domain.MsgResourceNotFound
	}

	if appErr != nil {
		return appErr.StatusCode(), appErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound:
			return http.StatusNotFound, fmt.Sprintf(domain.MsgRouteNotFound, uri)
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, domain.MsgTooManyRequests
		default:
			if msg, ok := httpErr.Message.(string); ok {
				return httpErr.Code, msg
			}
			return httpErr.Code, http.StatusText(httpErr.Code)
		}
	}

	if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, utils.ErrTokenExpired) {
		return http.StatusUnauthorized, domain.MsgTokenExpired
	}

	if errors.Is(err, utils.ErrTokenInvalid) ||
		errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) {
		return http.StatusUnauthorized, domain.MsgInvalidToken
	}

	return http.StatusInternalServerError, domain.MsgServerError
}
