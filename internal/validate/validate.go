// Package validate checks request bodies and query strings at the HTTP boundary and
// reports failures as field-level errors.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"novadash/internal/services"
)

const validationMessage = "Validation error"

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reIndex = regexp.MustCompile(`\[(\d+)\]`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Money fields are compared as numbers by gte/lte.
	val.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(decimal.Decimal).InexactFloat64()
	}, decimal.Decimal{})
	return val
}

// ID validates a path identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

type trimmer interface{ trim() }

// Body decodes a JSON request body into dst, trims its string fields and runs the
// struct's validate tags. Failures are *services.Error with KindValidation.
func Body(raw []byte, dst any) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return decodeError(err)
	}
	if t, ok := dst.(trimmer); ok {
		t.trim()
	}
	return Struct(dst)
}

// Struct runs the validate tags on s.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]services.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, services.FieldError{Path: bodyPath(fe.Namespace()), Message: message(fe)})
	}
	return services.Validation(validationMessage, fields...)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return services.Validation(validationMessage, services.FieldError{
			Path:    "body." + typeErr.Field,
			Message: fmt.Sprintf("Expected %s", typeErr.Type.String()),
		})
	}
	return services.Validation("Invalid JSON body", services.FieldError{Path: "body", Message: "Malformed JSON"})
}

// bodyPath turns "customerCreate.items[0].quantity" into "body.items.0.quantity".
func bodyPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return "body." + reIndex.ReplaceAllString(ns, ".$1")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "uuid":
		return "Invalid id"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "gte":
		if isString(fe) {
			return "Must contain at least " + fe.Param() + " character(s)"
		}
		if fe.Kind() == reflect.Slice {
			return "Must contain at least " + fe.Param() + " item(s)"
		}
		return "Must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if isString(fe) {
			return "Must contain at most " + fe.Param() + " character(s)"
		}
		return "Must be less than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}

func isString(fe validator.FieldError) bool { return fe.Kind() == reflect.String }

func queryError(name, msg string) error {
	return services.Validation(validationMessage, services.FieldError{Path: "query." + name, Message: msg})
}

func parseBool(name, s string) (*bool, error) {
	switch s {
	case "":
		return nil, nil
	case "true", "false":
		b := s == "true"
		return &b, nil
	}
	return nil, queryError(name, "Must be one of: true, false")
}

// maxPaging bounds page and limit so offsets cannot overflow.
const maxPaging = math.MaxInt32

// positive reads a paging number; anything unparsable or < 1 yields 0 so the default applies.
// Values too large for an int saturate at maxPaging.
func positive(s string) int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return maxPaging
	}
	if err != nil || n < 1 {
		return 0
	}
	if n > maxPaging {
		return maxPaging
	}
	return int(n)
}
