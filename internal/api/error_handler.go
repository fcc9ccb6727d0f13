package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dogwalk/marketplace/internal/core/domain"
)

// errorBody carries the message for rendered error envelopes.
type errorBody struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// errorResponse is the JSON envelope for read and validation failures.
type errorResponse struct {
	Error errorBody `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Renders mutation failures as a bare status code with an empty body,
//     and GET validation failures (400) as a JSON envelope.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		if c.Request().Method == http.MethodGet && code == http.StatusBadRequest {
			_ = c.JSON(code, errorResponse{Error: errorBody{Message: msg}})
			return
		}
		_ = c.NoContent(code)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// 401 — no session, bad session, or a valid session for the wrong user.
	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrUnknownSession),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrWrongUser),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotWalker):
		return http.StatusUnauthorized, err.Error()

	// 403 — the request is understood but the resource state refuses it.
	case errors.Is(err, domain.ErrJobConflict),
		errors.Is(err, domain.ErrDogInUse),
		errors.Is(err, domain.ErrDogNotOwned):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrDogNotFound),
		errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrNoCapabilities),
		errors.Is(err, domain.ErrEmptyUpdate):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
