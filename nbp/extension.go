package nbp

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

var ErrEndBeforeStart = errors.New("end date must not be before start date")

const dateLayout = "2006-01-02"

// FormatCode normalizes a raw currency code by removing every whitespace
// rune (interior included) and upper-casing the remainder
func FormatCode(raw string) string {
	var sb strings.Builder

	sb.Grow(len(raw))

	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}

		sb.WriteRune(r)
	}

	return strings.ToUpper(sb.String())
}

// BuildExtension combines a date range and a currency code into the
// request suffix appended to the API base URL:
//
//	{CODE}/{start}/{end}?format=json
//
// Dates are compared and formatted at calendar-day resolution
func BuildExtension(start, end time.Time, code string) (string, error) {
	if dateOnly(end).Before(dateOnly(start)) {
		return "", ErrEndBeforeStart
	}

	return fmt.Sprintf(
		"%s/%s/%s?format=json",
		FormatCode(code),
		start.Format(dateLayout),
		end.Format(dateLayout),
	), nil
}

// dateOnly strips the clock component
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
