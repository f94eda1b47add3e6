package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// Machine readable error codes carried in Response.Code.
const (
	CodeValidation         = "validation_error"
	CodeDuplicateEmail     = "duplicate_email"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeNotFound           = "not_found"
	CodeProfileExists      = "profile_exists"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal_error"
)

func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

func Error(code, msg string) Response {
	return Response{
		Status: StatusError,
		Code:   code,
		Error:  msg,
	}
}

func Internal() Response {
	return Error(CodeInternal, "internal error")
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		case "notblank":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must not be blank", err.Field()))
		case "maxbytes":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be at most %s bytes", err.Field(), err.Param()))
		case "min", "max":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be %s %s characters", err.Field(), boundWord(err.ActualTag()), err.Param()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return Error(CodeValidation, strings.Join(errMsgs, ", "))
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}

	return "at most"
}
