package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formval/pkg/template"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const dateLayout = "2006-01-02"

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CheckField evaluates one field's value against its specification and
// returns every violation found. Pure function of its inputs; checks are all
// applied rather than short-circuited, and a missing constraint means "not
// applicable", never an error.
func CheckField(field template.Field, value any) []Violation {
	var out []Violation
	label := field.Label()
	text := Stringify(value)

	switch field.Spec.Type {
	case template.FieldTypeEmail:
		if !emailPattern.MatchString(text) {
			out = append(out, Violation{
				Field:   field.Name,
				Rule:    RuleType,
				Message: fmt.Sprintf("%s is not a valid email address", label),
			})
		}
	case template.FieldTypePhone:
		if !validPhone(text) {
			out = append(out, Violation{
				Field:   field.Name,
				Rule:    RuleType,
				Message: fmt.Sprintf("%s is not a valid phone number", label),
			})
		}
	case template.FieldTypeDate:
		if !validDate(text) {
			out = append(out, Violation{
				Field:   field.Name,
				Rule:    RuleType,
				Message: fmt.Sprintf("%s is not a valid date (expected YYYY-MM-DD)", label),
			})
		}
	case template.FieldTypeNumber:
		number, ok := numericValue(value)
		if !ok {
			out = append(out, Violation{
				Field:   field.Name,
				Rule:    RuleType,
				Message: fmt.Sprintf("%s must be a valid number", label),
			})
			break
		}
		// Bounds are inclusive and checked independently, one message each.
		if field.Spec.MinValue != nil && number < *field.Spec.MinValue {
			out = append(out, Violation{
				Field:   field.Name,
				Rule:    RuleRange,
				Message: fmt.Sprintf("%s is below the minimum value %s", label, formatNumber(*field.Spec.MinValue)),
			})
		}
		if field.Spec.MaxValue != nil && number > *field.Spec.MaxValue {
			out = append(out, Violation{
				Field:   field.Name,
				Rule:    RuleRange,
				Message: fmt.Sprintf("%s exceeds the maximum value %s", label, formatNumber(*field.Spec.MaxValue)),
			})
		}
	}

	if field.Spec.MaxLength > 0 && utf8.RuneCountInString(text) > field.Spec.MaxLength {
		out = append(out, Violation{
			Field:   field.Name,
			Rule:    RuleLength,
			Message: fmt.Sprintf("%s exceeds the maximum length of %d characters", label, field.Spec.MaxLength),
		})
	}

	if len(field.Spec.Options) > 0 && !containsString(field.Spec.Options, text) {
		out = append(out, Violation{
			Field:   field.Name,
			Rule:    RuleEnum,
			Message: fmt.Sprintf("%s must be one of: %s", label, strings.Join(field.Spec.Options, ", ")),
		})
	}

	if field.Spec.HasPattern() && !field.Spec.MatchesPattern(text) {
		out = append(out, Violation{
			Field:   field.Name,
			Rule:    RulePattern,
			Message: fmt.Sprintf("%s does not match the required format", label),
		})
	}

	return out
}

// Stringify converts a record scalar to its canonical string representation,
// the form used for length, enum, and pattern checks as well as statistics.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func validPhone(value string) bool {
	var digits strings.Builder
	for _, r := range value {
		switch r {
		case ' ', '-', '(', ')', '+':
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
		digits.WriteRune(r)
	}
	return digits.Len() >= 8
}

func validDate(value string) bool {
	// time.Parse tolerates missing leading zeros, so the shape is checked
	// first to enforce YYYY-MM-DD exactly.
	if !dateShape.MatchString(value) {
		return false
	}
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
