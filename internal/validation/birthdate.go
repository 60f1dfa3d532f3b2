package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	MinimumAge = 18
	MaximumAge = 120
)

var birthDatePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ParseBirthDate parses a DD/MM/YYYY string in loc. It fails when the
// calendar date does not exist.
func ParseBirthDate(s string, loc *time.Location) (time.Time, error) {
	m := birthDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("date %q is not in DD/MM/YYYY format", s)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, fmt.Errorf("date %q does not exist", s)
	}

	return date, nil
}

// AgeAt returns the number of whole years between birth and now.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// ValidateBirthDate returns an error message for a DD/MM/YYYY date of
// birth, or "" if the date exists, is not in the future and yields an age
// between MinimumAge and MaximumAge as of now.
func ValidateBirthDate(s string, now time.Time) string {
	if s == "" {
		return "Enter your date of birth"
	}
	if !birthDatePattern.MatchString(s) {
		return "Use the DD/MM/YYYY format"
	}

	birth, err := ParseBirthDate(s, now.Location())
	if err != nil {
		return "Invalid date"
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if birth.After(today) {
		return "Date of birth cannot be in the future"
	}

	age := AgeAt(birth, now)
	if age < MinimumAge {
		return fmt.Sprintf("You must be at least %d years old", MinimumAge)
	}
	if age > MaximumAge {
		return "Invalid date of birth"
	}

	return ""
}

// ToISODate converts DD/MM/YYYY into YYYY-MM-DD. Input in any other shape
// yields "".
func ToISODate(s string) string {
	m := birthDatePattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[3] + "-" + m[2] + "-" + m[1]
}
