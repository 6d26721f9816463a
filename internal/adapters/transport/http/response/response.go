// Package response writes the service's JSON error payload from gin handlers.
package response

import (
	"net/http"

	authErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CodeValidation         = "validation_error"
	CodeDuplicateEmail     = "duplicate_email"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"
	CodeUnauthorized       = "unauthorized"
	CodeNotFound           = "not_found"
	CodeBadRequest         = "bad_request"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal"
)

type ErrorBody struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []authErrors.FieldError `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Abort writes the error payload and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string, fields []authErrors.FieldError) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: ErrorBody{
		Code:    code,
		Message: message,
		Fields:  fields,
	}})
}

// Status maps an error onto its HTTP status and public code.
func Status(err error) (int, string, string) {
	switch {
	case authErrors.IsInvalidArgument(err):
		return http.StatusUnprocessableEntity, CodeValidation, "validation failed"
	case authErrors.IsAlreadyExists(err):
		return http.StatusConflict, CodeDuplicateEmail, "email is already registered"
	case authErrors.IsInvalidCredentials(err):
		return http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password"
	case authErrors.IsInvalidToken(err):
		return http.StatusUnauthorized, CodeInvalidToken, "invalid token"
	case authErrors.IsNotFound(err):
		return http.StatusNotFound, CodeNotFound, "not found"
	default:
		return http.StatusInternalServerError, CodeInternal, "internal server error"
	}
}

// FromError translates err into a response. Internal errors are logged,
// never sent to the client.
func FromError(c *gin.Context, log *zap.Logger, err error) {
	status, code, msg := Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		if log != nil {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
	}
	Abort(c, status, code, msg, authErrors.Fields(err))
}
