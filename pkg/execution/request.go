package execution

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/form"
	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/constants"
	"github.com/iota-uz/officelife/pkg/serrors"
)

// Scope is the acting context of a request.
type Scope struct {
	CompanyID uuid.UUID
	AuthorID  uint
}

// Request is any input that names its acting context.
type Request interface {
	Scope() Scope
}

// Base is embedded by every operation request.
type Base struct {
	CompanyID uuid.UUID `form:"company_id" validate:"required"`
	AuthorID  uint      `form:"author_id" validate:"required"`
}

func (b Base) Scope() Scope {
	return Scope{CompanyID: b.CompanyID, AuthorID: b.AuthorID}
}

var decoder = sync.OnceValue(func() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		if vals[0] == "" {
			return uuid.Nil, nil
		}
		return uuid.Parse(vals[0])
	}, uuid.UUID{})
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		if vals[0] == "" {
			return time.Time{}, nil
		}
		return time.Parse(constants.DateFormat, vals[0])
	}, time.Time{})
	return d
})

// DecodeRequest fills dst from flat key/value input. Values that cannot be
// converted are reported as validation failures.
func DecodeRequest(values url.Values, dst any) error {
	err := decoder().Decode(dst, values)
	if err == nil {
		return nil
	}
	decodeErrs, ok := err.(form.DecodeErrors)
	if !ok {
		return err
	}
	keys := make([]string, 0, len(decodeErrs))
	for k := range decodeErrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]serrors.FieldError, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, serrors.FieldError{
			Field:   k,
			Tag:     "type",
			Message: fmt.Sprintf("has an invalid value: %v", decodeErrs[k]),
		})
	}
	return serrors.Validation(fields)
}

// ParseArgs turns key=value pairs into url.Values.
func ParseArgs(args []string) (url.Values, error) {
	values := url.Values{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		values.Add(k, v)
	}
	return values, nil
}
