// Package prompt turns raw user input into the typed values the cashbox accepts.
// Every driving adapter (shell, TUI, MCP) validates through this package so the
// core only ever sees well-formed passports, names, destinations and prices.
package prompt

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// Input limits.
const (
	PassportLength = 6
	NameMinLength  = 2
	NameMaxLength  = 50
)

// ValidationError is a user-facing rejection of a single input value.
// It matches domain.ErrInvalidInput under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers test for domain.ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// ParsePassport accepts exactly six digits.
func ParsePassport(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != PassportLength {
		return "", invalid("Passport number must contain exactly 6 digits")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", invalid("Passport number must contain exactly 6 digits")
		}
	}
	return s, nil
}

// ParseName validates a first or last name and capitalises each word.
// Words are delimited by spaces and hyphens: "anna-maria" becomes "Anna-Maria".
func ParseName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("Name can only contain letters, spaces and hyphens")
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return "", invalid("Name can only contain letters, spaces and hyphens")
		}
	}

	n := len([]rune(s))
	if n < NameMinLength {
		return "", invalid("Name must be at least 2 characters long")
	}
	if n > NameMaxLength {
		return "", invalid("Name is too long (max 50 characters)")
	}

	return capitalizeWords(s), nil
}

func capitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	next := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-':
			next = true
		case next && unicode.IsLetter(r):
			r = unicode.ToUpper(r)
			next = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseChoice accepts an integer in [lo, hi].
func ParseChoice(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < lo || n > hi {
		return 0, invalid("Enter a number from " + strconv.Itoa(lo) + " to " + strconv.Itoa(hi))
	}
	return n, nil
}

// ParseConfirm accepts y/yes or n/no in any case.
func ParseConfirm(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, invalid("Answer y or n")
}

// ParseDestination accepts a menu number 1..6.
func ParseDestination(s string) (domain.Destination, error) {
	n, err := ParseChoice(s, 1, domain.DestinationCount)
	if err != nil {
		return 0, err
	}
	return domain.DestinationFromSelector(n)
}

// ParsePrice accepts a number within the configured price bounds.
func ParsePrice(s string, pricing domain.PricingSettings) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || pricing.ValidatePrice(f) != nil {
		return 0, invalid("Enter a number from " + formatBound(pricing.MinPrice) + " to " + formatBound(pricing.MaxPrice))
	}
	return f, nil
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// PassengerIndex converts a 1-based selection into the 0-based registry index.
// The upper bound is not checked here; the cashbox reports an out-of-range index.
func PassengerIndex(n int) (int, error) {
	if n < 1 {
		return 0, invalid("Passenger number must be 1 or greater")
	}
	return n - 1, nil
}

// ParsePassengerIndex parses a 1-based selection into the 0-based registry index.
func ParsePassengerIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalid("Passenger number must be a whole number")
	}
	return PassengerIndex(n)
}
