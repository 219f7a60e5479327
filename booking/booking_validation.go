package booking

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks a booking candidate before it is persisted. The date check
// is syntactic only, calendar validity is not enforced here.
func Validate(candidate Booking) error {
	required := []struct {
		name  string
		value string
	}{
		{"date", candidate.Date},
		{"name", candidate.Name},
		{"email", candidate.Email},
		{"eventType", candidate.EventType},
		{"venue", candidate.Venue},
	}

	var missing []string

	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Reason: fmt.Sprintf("Missing required fields: %v", strings.Join(missing, ", "))}
	}

	if !emailPattern.MatchString(candidate.Email) {
		return &ValidationError{Reason: "Invalid email format"}
	}

	if !datePattern.MatchString(candidate.Date) {
		return &ValidationError{Reason: "Invalid date format. Use YYYY-MM-DD"}
	}

	return nil
}
