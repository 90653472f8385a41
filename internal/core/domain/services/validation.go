package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"checkout/internal/core/domain/model/step"
)

// Caller-visible format failure messages. Part of the external contract.
const (
	msgInvalidCardNumber = "Invalid card number"
	msgInvalidExpiry     = "Invalid expiry date format (MM/YY)"
	msgInvalidCVV        = "Invalid CVV format"
	msgInvalidEmail      = "Invalid email format"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cvvPattern   = regexp.MustCompile(`^\d{3,4}$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// formatValidators dispatches format rules by tag. Each validator takes the
// raw submitted value and returns an error message, or "" when the value is
// valid. New formats are added here without touching validation call sites.
var formatValidators = map[step.Format]func(value string) string{
	step.FormatCreditCard: validateCardNumber,
	step.FormatExpiry:     validateExpiry,
	step.FormatCVV:        validateCVV,
}

// ValidateStepData checks a submitted payload against a step definition's
// rules and returns per-field error messages. The result is empty (but
// non-nil) when the payload is valid. The function is pure: recording the
// outcome on the step instance is the caller's responsibility.
//
// Two rule classes apply:
//   - the cross-cutting email check, run on every step whenever an "email"
//     field is present in the payload
//   - the definition's own field rules: required presence (with the
//     definition's custom message when configured), numeric minimum, and
//     tagged format validation
func ValidateStepData(def step.Definition, data map[string]any) map[string][]string {
	failures := make(map[string][]string)

	if email, ok := data["email"]; ok && hasValue(email) {
		if !emailPattern.MatchString(stringValue(email)) {
			failures["email"] = append(failures["email"], msgInvalidEmail)
		}
	}

	rules := def.ValidationRules()
	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		rule := rules[field]
		value, present := data[field]

		if rule.Required && !hasValue(value) {
			message, ok := def.ErrorMessage(field)
			if !ok {
				message = fmt.Sprintf("%s is required", field)
			}
			failures[field] = append(failures[field], message)
			continue
		}

		if !present || !hasValue(value) {
			continue
		}

		if rule.Min != nil {
			if number, ok := numericValue(value); ok && number < *rule.Min {
				failures[field] = append(failures[field],
					fmt.Sprintf("%s must be at least %v", field, *rule.Min))
			}
		}

		if rule.Format != "" {
			validate, ok := formatValidators[rule.Format]
			if !ok {
				continue
			}
			if message := validate(stringValue(value)); message != "" {
				failures[field] = append(failures[field], message)
			}
		}
	}

	return failures
}

// hasValue reports whether a submitted field counts as present: not missing,
// not nil, and not a blank string.
func hasValue(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// stringValue renders a submitted value for format validation. Payloads
// arrive as decoded JSON, so card numbers occasionally show up as numbers
// rather than strings.
func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// numericValue extracts a float from the usual decoded-JSON numeric shapes.
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
	case string:
		number, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}

// validateCardNumber strips non-digits, bounds the length to 13-19 digits,
// and runs the mod-10 checksum: scanning right to left, every second digit
// is doubled, doubles above 9 have 9 subtracted, and the digit sum must be
// divisible by 10.
func validateCardNumber(value string) string {
	digits := nonDigits.ReplaceAllString(value, "")
	if len(digits) < 13 || len(digits) > 19 {
		return msgInvalidCardNumber
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	if sum%10 != 0 {
		return msgInvalidCardNumber
	}
	return ""
}

// validateExpiry accepts "MM/YY" where the month parses to 1-12. The year
// part is not range- or recency-checked.
// TODO: decide whether expired dates should be rejected here; clients
// currently rely on the gateway to decline expired cards.
func validateExpiry(value string) string {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return msgInvalidExpiry
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return msgInvalidExpiry
	}
	return ""
}

// validateCVV accepts exactly 3 or 4 digits.
func validateCVV(value string) string {
	if !cvvPattern.MatchString(value) {
		return msgInvalidCVV
	}
	return ""
}
