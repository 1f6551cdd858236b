package serrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure so presentation layers can render it distinctly.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindAlreadyExists
	KindPipelineFailure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failure"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "insufficient_permission"
	case KindAlreadyExists:
		return "already_exists"
	case KindPipelineFailure:
		return "pipeline_failure"
	default:
		return "unknown"
	}
}

// Code is the stable machine-readable code of the kind.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindForbidden:
		return "AUTHZ_FORBIDDEN"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindPipelineFailure:
		return "PIPELINE_FAILED"
	default:
		return "INTERNAL"
	}
}

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FieldError describes one violated input rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

type BaseError struct {
	Kind         Kind
	Code         string
	Message      string
	LocaleKey    string
	Fields       []FieldError
	TemplateData map[string]string
	Cause        error
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *BaseError) Unwrap() error { return e.Cause }

// Is matches another *BaseError of the same kind. A target carrying a code
// additionally requires the codes to match.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	e.TemplateData = data
	return e
}

func (e *BaseError) WithCause(err error) *BaseError {
	e.Cause = err
	return e
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrValidation      = &BaseError{Kind: KindValidation}
	ErrNotFound        = &BaseError{Kind: KindNotFound}
	ErrForbidden       = &BaseError{Kind: KindForbidden}
	ErrAlreadyExists   = &BaseError{Kind: KindAlreadyExists}
	ErrPipelineFailure = &BaseError{Kind: KindPipelineFailure}
)

func Validation(fields []FieldError) *BaseError {
	return &BaseError{
		Kind:      KindValidation,
		Code:      KindValidation.Code(),
		Message:   "validation failed",
		LocaleKey: "Errors.ValidationFailed",
		Fields:    fields,
	}
}

func NotFound(entity string) *BaseError {
	return &BaseError{
		Kind:         KindNotFound,
		Code:         KindNotFound.Code(),
		Message:      entity + " not found",
		LocaleKey:    "Errors.NotFound",
		TemplateData: map[string]string{"entity": entity},
	}
}

func Forbidden(reason string) *BaseError {
	return &BaseError{
		Kind:         KindForbidden,
		Code:         KindForbidden.Code(),
		Message:      "permission denied",
		LocaleKey:    "Authorization.PermissionDenied",
		TemplateData: map[string]string{"reason": reason},
	}
}

func AlreadyExists(entity, key string) *BaseError {
	return &BaseError{
		Kind:         KindAlreadyExists,
		Code:         KindAlreadyExists.Code(),
		Message:      fmt.Sprintf("%s already exists for %s", entity, key),
		LocaleKey:    "Errors.AlreadyExists",
		TemplateData: map[string]string{"entity": entity, "key": key},
	}
}

func PipelineFailure(cause error) *BaseError {
	return &BaseError{
		Kind:      KindPipelineFailure,
		Code:      KindPipelineFailure.Code(),
		Message:   "pipeline failed",
		LocaleKey: "Errors.PipelineFailed",
		Cause:     cause,
	}
}

// KindOf reports the kind of the outermost *BaseError in the chain.
func KindOf(err error) Kind {
	var be *BaseError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// HasKind reports whether any *BaseError in the chain has kind k.
func HasKind(err error, k Kind) bool {
	return errors.Is(err, &BaseError{Kind: k})
}

// FieldsOf returns the violated fields of a validation failure.
func FieldsOf(err error) []FieldError {
	var be *BaseError
	if errors.As(err, &be) && be.Kind == KindValidation {
		return be.Fields
	}
	return nil
}
