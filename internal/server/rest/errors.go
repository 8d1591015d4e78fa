package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	codeValidation         = "VALIDATION_ERROR"
	codeEmailExists        = "EMAIL_EXISTS"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeUnauthenticated    = "UNAUTHENTICATED"
	codeNotFound           = "NOT_FOUND"
	codeForbidden          = "FORBIDDEN"
	codeInternal           = "INTERNAL_ERROR"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

// writeError maps a service error onto the HTTP error envelope. Unknown
// errors are logged and reported as INTERNAL_ERROR without detail.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		writeErrorCode(c, http.StatusBadRequest, codeEmailExists, "This email address is already in use")
	case errors.Is(err, common.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		writeErrorCode(c, http.StatusUnauthorized, codeInvalidCredentials, "Incorrect email or password")
	case errors.Is(err, common.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		writeErrorCode(c, http.StatusUnauthorized, codeUnauthenticated, "Could not validate credentials")
	case errors.Is(err, common.ErrorNotFound):
		writeErrorCode(c, http.StatusNotFound, codeNotFound, "Task not found")
	case errors.Is(err, common.ErrForbidden):
		writeErrorCode(c, http.StatusForbidden, codeForbidden, "You do not have permission to access this task")
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"request_id", c.GetString(requestIDKey),
			"error", err.Error(),
		)
		writeErrorCode(c, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// writeValidationError reports a binding failure as 422.
func writeValidationError(c *gin.Context, err error) {
	resp := errorResponse{Code: codeValidation, Message: "request validation failed"}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var numErr *strconv.NumError

	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field(), Message: describe(fe)})
		}
	case errors.As(err, &typeErr):
		resp.Fields = []fieldError{{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}}
	case errors.As(err, &numErr):
		resp.Message = "query parameters must be integers"
	case errors.As(err, &syntaxErr):
		resp.Message = "malformed JSON body"
	default:
		resp.Message = "malformed request body"
	}

	c.JSON(http.StatusUnprocessableEntity, resp)
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Code: code, Message: message})
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be greater than or equal to " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
