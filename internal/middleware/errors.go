package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
	Kind   string `json:"kind"`
}

// ErrorResponse writes a JSON error body with the given status.
func ErrorResponse(c fiber.Ctx, status int, kind, detail string) error {
	return c.Status(status).JSON(ErrorBody{Detail: detail, Kind: kind})
}

// WriteError maps err to its status code and writes it. Internal errors are
// logged with their cause and reported without it.
func WriteError(c fiber.Ctx, err error) error {
	e := apperr.As(err)
	status := e.HTTPStatus()

	evt := Logger.Warn()
	if status >= fiber.StatusInternalServerError {
		evt = Logger.Error()
	}
	evt = evt.Err(err).
		Str("request_id", RequestID(c)).
		Str("kind", string(e.Kind))
	for k, v := range e.Context {
		evt = evt.Interface(k, v)
	}
	evt.Msg("request failed")

	detail := e.Message
	if e.Kind == apperr.KindInternal {
		detail = "internal server error"
	}
	return ErrorResponse(c, status, string(e.Kind), detail)
}

// ErrorHandler is the Fiber app error handler. Fiber's own errors (unknown
// route, method not allowed) keep their status.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := string(apperr.KindInternal)
		switch {
		case fe.Code == fiber.StatusNotFound:
			kind = string(apperr.KindNotFound)
		case fe.Code < fiber.StatusInternalServerError:
			kind = string(apperr.KindValidation)
		}
		return ErrorResponse(c, fe.Code, kind, fe.Message)
	}
	return WriteError(c, err)
}

// StatusFor returns the status a request will be answered with once err has
// gone through ErrorHandler. Middleware that runs before the error handler
// uses it instead of the response status, which is still unset.
func StatusFor(c fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperr.As(err).HTTPStatus()
}
