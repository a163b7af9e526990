package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sync/atomic"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/labstack/echo/v4"
)

// ReadOnlyMessage is the error returned for writes in fallback mode
const ReadOnlyMessage = "catalog is read-only: document store unavailable"

var current atomic.Value

func init() {
	current.Store(holder{logger.Default()})
}

type holder struct{ logger.Logger }

// SetLogger sets the logger the helpers report real errors to
func SetLogger(l logger.Logger) {
	if l == nil {
		l = logger.Discard()
	}
	current.Store(holder{l})
}

func log() logger.Logger {
	return current.Load().(holder).Logger
}

// captureException reports err to Sentry when the request carries a hub
func captureException(c echo.Context, err error) {
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log().Warn("validation error", "path", c.Request().URL.Path, "error", err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// MissingField reports a required body field that was absent or empty
func MissingField(c echo.Context, field string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "missing field " + field,
	})
}

// InvalidParameter reports a query parameter that could not be parsed
func InvalidParameter(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid parameter " + name,
		Message: fmt.Sprintf("%s must be a non-negative integer", name),
	})
}

// NotFoundError returns the not found envelope
func NotFoundError(c echo.Context) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: "not found",
	})
}

// ReadOnlyError rejects a write while only the fallback dataset is available
func ReadOnlyError(c echo.Context) error {
	log().Warn("write rejected in fallback mode", "path", c.Request().URL.Path, "method", c.Request().Method)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: ReadOnlyMessage,
	})
}

// DatabaseError returns a generic database error without exposing internal details
func DatabaseError(c echo.Context, err error) error {
	log().Error("database error", "path", c.Request().URL.Path, "error", err)
	captureException(c, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "database_error",
		Message: "A database error occurred. Please try again later.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log().Error("internal error", "path", c.Request().URL.Path, "error", err)
	captureException(c, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// HTTPErrorHandler renders errors that escape handlers (unknown routes,
// wrong methods, recovered panics) in the same envelope as every other failure
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !stderrors.As(err, &he) {
		_ = InternalError(c, err)
		return
	}

	resp := models.ErrorResponse{Error: http.StatusText(he.Code)}
	switch he.Code {
	case http.StatusNotFound:
		resp.Error = "not found"
	case http.StatusInternalServerError:
		log().Error("internal error", "path", c.Request().URL.Path, "error", err)
		captureException(c, err)
		resp.Error = "internal_error"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, resp)
}
