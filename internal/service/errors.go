package service

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// APIError is an error with an HTTP status and a client-facing message.
// It is rendered as {"error": Message, "details": Details}.
type APIError struct {
	Code    int
	Message string
	Details any
	// Err is the underlying cause; it is logged, never sent to the client.
	Err error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates an APIError with no details.
func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// internalError hides err behind the generic 500 message.
func internalError(err error) *APIError {
	return &APIError{Code: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// FieldIssue describes one failed validation rule.
type FieldIssue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func invalidPayload(err error) *APIError {
	apiErr := &APIError{Code: http.StatusBadRequest, Message: "Invalid payload", Err: err}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]FieldIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, FieldIssue{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: issueMessage(fe),
			})
		}
		apiErr.Details = issues
		return apiErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		apiErr.Details = []FieldIssue{{Rule: "decode", Message: fmt.Sprint(httpErr.Message)}}
	}
	return apiErr
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " bytes"
		}
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "transaction_type":
		return "must be one of: recurring variable"
	default:
		return "failed " + fe.Tag()
	}
}

// bind decodes the JSON body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return invalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		return invalidPayload(err)
	}
	return nil
}

// pathID parses an integer path parameter, answering 400 with message otherwise.
// Ids are serial columns, so anything outside int32 is rejected here rather
// than by the database. Ids that parse but match nothing are left to the
// lookup's 404.
func pathID(c echo.Context, name, message string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		return 0, NewAPIError(http.StatusBadRequest, message)
	}
	return id, nil
}
