package middleware

import (
	"errors"
	"log"

	"lawjobs/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// AppError is returned by handlers and rendered by ErrorMiddleware. Messages
// of 5xx errors are replaced with a generic one unless Expose is set.
type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
	Expose     bool
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

func BadRequest(message string, cause error) *AppError {
	return NewAppError(fiber.StatusBadRequest, message, nil, cause)
}

func Unauthorized(message string, cause error) *AppError {
	return NewAppError(fiber.StatusUnauthorized, message, nil, cause)
}

func NotFound(message string, cause error) *AppError {
	return NewAppError(fiber.StatusNotFound, message, nil, cause)
}

func Conflict(message string, cause error) *AppError {
	return NewAppError(fiber.StatusConflict, message, nil, cause)
}

func Internal(cause error) *AppError {
	return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, cause)
}

// Exposed is a server-side failure whose message is meant for the user, such
// as "Failed to save favorite".
func Exposed(statusCode int, message string, cause error) *AppError {
	e := NewAppError(statusCode, message, nil, cause)
	e.Expose = true
	return e
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered | rid=%s method=%s path=%s panic=%v",
					requestID(c), c.Method(), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		if err = c.Next(); err == nil {
			return nil
		}

		status, msg, data := render(err)
		if status >= fiber.StatusInternalServerError {
			m.logger.Printf("request failed | rid=%s method=%s path=%s status=%d error=%v",
				requestID(c), c.Method(), c.Path(), status, err)
		}
		return response.Error(c, status, msg, data)
	}
}

// render maps err to the status, message and data written to the client.
func render(err error) (int, string, any) {
	status, msg, expose := fiber.StatusInternalServerError, "", false
	var data any

	var appErr *AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status, msg, data, expose = appErr.StatusCode, appErr.Message, appErr.Data, appErr.Expose
	case errors.As(err, &fiberErr):
		status, msg = fiberErr.Code, fiberErr.Message
	}

	if status < fiber.StatusBadRequest || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if status >= fiber.StatusInternalServerError && !expose {
		return status, response.DefaultMessage(status), nil
	}
	if msg == "" {
		msg = response.DefaultMessage(status)
	}
	return status, msg, data
}

func requestID(c fiber.Ctx) string {
	if rid := string(c.Response().Header.Peek(HeaderRequestID)); rid != "" {
		return rid
	}
	return "-"
}
