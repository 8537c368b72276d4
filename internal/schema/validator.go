package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kledje/domain"

	"github.com/go-playground/validator/v10"
)

// EgyptMobilePattern matches the four Egyptian mobile operator prefixes.
const EgyptMobilePattern = `^(010|011|012|015)[0-9]{8}$`

var egyptMobile = regexp.MustCompile(EgyptMobilePattern)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock builds a Validator whose "future" rule compares against now().
func NewWithClock(now func() time.Time) *Validator {
	v := &Validator{
		validate: validator.New(),
		now:      now,
	}

	// Registration only fails on empty tags or nil funcs.
	_ = v.validate.RegisterValidation("egyptmobile", func(fl validator.FieldLevel) bool {
		return egyptMobile.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(v.now())
	})

	return v
}

// Validate applies the named schema to payload. Every violation is collected
// and the result is a single validation AppError whose message joins them
// with ", ". Keys absent from the schema are passed through untouched.
func (v *Validator) Validate(name string, payload map[string]any) (map[string]any, error) {
	s, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("schema %q is not registered", name)
	}

	if payload == nil {
		payload = map[string]any{}
	}

	var violations []string
	out := v.object(s.Fields, payload, "", &violations)
	if len(violations) > 0 {
		return nil, domain.NewValidationError(strings.Join(violations, ", "))
	}

	return out, nil
}

func (v *Validator) object(fields []Field, in map[string]any, prefix string, violations *[]string) map[string]any {
	out := make(map[string]any, len(in)+len(fields))
	for k, val := range in {
		out[k] = val
	}

	for _, f := range fields {
		label := f.Name
		if prefix != "" {
			label = prefix + "." + f.Name
		}

		raw, present := in[f.Name]
		if !present || raw == nil {
			switch {
			case f.Required:
				*violations = append(*violations, fmt.Sprintf(`"%s" is required`, label))
			case f.Default != nil:
				out[f.Name] = f.Default
			default:
				delete(out, f.Name)
			}
			continue
		}

		if val, ok := v.field(f, raw, label, violations); ok {
			out[f.Name] = val
		}
	}

	return out
}

func (v *Validator) field(f Field, raw any, label string, violations *[]string) (any, bool) {
	fail := func(format string, args ...any) (any, bool) {
		*violations = append(*violations, fmt.Sprintf(`"%s" `, label)+fmt.Sprintf(format, args...))
		return nil, false
	}

	var value any
	switch f.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return fail("must be a string")
		}
		if s == "" {
			return fail("is not allowed to be empty")
		}
		value = s
	case KindNumber:
		n, ok := toFloat(raw)
		if !ok {
			return fail("must be a number")
		}
		value = n
	case KindInteger:
		n, ok := toFloat(raw)
		if !ok {
			return fail("must be a number")
		}
		if n != math.Trunc(n) {
			return fail("must be an integer")
		}
		value = int(n)
	case KindBoolean:
		b, ok := toBool(raw)
		if !ok {
			return fail("must be a boolean")
		}
		value = b
	case KindDate:
		s, ok := raw.(string)
		if !ok {
			return fail("must be a valid date")
		}
		t, ok := parseISO(s)
		if !ok {
			return fail("must be in ISO 8601 date format")
		}
		value = t
	case KindArray:
		items, ok := raw.([]any)
		if !ok {
			return fail("must be an array")
		}
		if len(items) < f.MinItems {
			return fail("must contain at least %d items", f.MinItems)
		}
		if f.Items == nil {
			value = items
			break
		}
		normalized := make([]any, 0, len(items))
		valid := true
		for i, item := range items {
			val, ok := v.field(*f.Items, item, fmt.Sprintf("%s[%d]", label, i), violations)
			valid = valid && ok
			normalized = append(normalized, val)
		}
		if !valid {
			return nil, false
		}
		value = normalized
	case KindObject:
		m, ok := raw.(map[string]any)
		if !ok {
			return fail("must be of type object")
		}
		before := len(*violations)
		out := v.object(f.Fields, m, label, violations)
		return out, len(*violations) == before
	default:
		value = raw
	}

	if f.Tag == "" {
		return value, true
	}

	if err := v.validate.Var(value, f.Tag); err != nil {
		*violations = append(*violations, ruleMessage(label, f, err))
		return nil, false
	}

	return value, true
}

// ruleMessage renders the first failed validator tag in the wording clients
// of this API already parse.
func ruleMessage(label string, f Field, err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Sprintf(`"%s" is invalid`, label)
	}

	fe := fieldErrs[0]
	param := fe.Param()
	switch fe.Tag() {
	case "min":
		if f.Kind == KindString {
			return fmt.Sprintf(`"%s" length must be at least %s characters long`, label, param)
		}
		return fmt.Sprintf(`"%s" must be greater than or equal to %s`, label, param)
	case "max":
		if f.Kind == KindString {
			return fmt.Sprintf(`"%s" length must be less than or equal to %s characters long`, label, param)
		}
		return fmt.Sprintf(`"%s" must be less than or equal to %s`, label, param)
	case "gt":
		if param == "0" {
			return fmt.Sprintf(`"%s" must be a positive number`, label)
		}
		return fmt.Sprintf(`"%s" must be greater than %s`, label, param)
	case "oneof":
		return fmt.Sprintf(`"%s" must be one of [%s]`, label, strings.Join(strings.Fields(param), ", "))
	case "uuid":
		return fmt.Sprintf(`"%s" must be a valid GUID`, label)
	case "uri":
		return fmt.Sprintf(`"%s" must be a valid uri`, label)
	case "email":
		return fmt.Sprintf(`"%s" must be a valid email`, label)
	case "egyptmobile":
		return fmt.Sprintf(`"%s" with value "%v" fails to match the required pattern: /%s/`, label, fe.Value(), EgyptMobilePattern)
	case "future":
		return fmt.Sprintf(`"%s" must be greater than "now"`, label)
	default:
		return fmt.Sprintf(`"%s" failed on the %s rule`, label, fe.Tag())
	}
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toBool(raw any) (bool, bool) {
	switch b := raw.(type) {
	case bool:
		return b, true
	case string:
		switch {
		case strings.EqualFold(b, "true"):
			return true, true
		case strings.EqualFold(b, "false"):
			return false, true
		}
	}
	return false, false
}

func parseISO(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Decode copies a normalized payload into a typed request struct using its
// json tags.
func Decode(normalized map[string]any, dst any) error {
	raw, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	return nil
}
