package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Input length limits
const (
	MaxEmailLength   = 320
	MaxMessageLength = 10000
	MaxURLLength     = 2048
)

// ValidateEmailFormat validates the format of an email address.
func ValidateEmailFormat(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return fmt.Errorf("email exceeds maximum length of %d characters", MaxEmailLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

// ValidateMessageContent rejects blank or oversized message bodies.
func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content is required")
	}
	length := utf8.RuneCountInString(content)
	if length > MaxMessageLength {
		return fmt.Errorf("message content exceeds maximum length of %d characters (got %d)", MaxMessageLength, length)
	}
	return nil
}

// ValidateCoordinates checks that lat/lon are finite and within range.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return fmt.Errorf("coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90 (got %g)", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be between -180 and 180 (got %g)", lon)
	}
	return nil
}

// ParsePositiveInt parses a string as a positive integer ID.
// A leading '#' is accepted so "#12" and "12" are equivalent.
func ParsePositiveInt(s string, fieldName string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	id64, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", fieldName, err)
	}
	if id64 <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", fieldName)
	}
	return int(id64), nil
}
