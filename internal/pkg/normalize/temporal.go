package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	brDateRegex   = regexp.MustCompile(`^\d{2}[/-]\d{2}[/-]\d{4}$`)
	dayMonthRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
)

// NormalizeDate canonicalizes a date value to YYYY-MM-DD. It accepts
// time.Time, ISO strings and DD/MM/YYYY or DD-MM-YYYY strings. Any other
// shape yields "" rather than an error; callers treat the record as
// dateless and drop or default it.
func NormalizeDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(isoDateLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(isoDateLayout)
	case string:
		return normalizeDateString(v)
	case fmt.Stringer:
		return normalizeDateString(v.String())
	default:
		return ""
	}
}

func normalizeDateString(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if isoDateRegex.MatchString(trimmed) {
		return trimmed
	}
	if brDateRegex.MatchString(trimmed) {
		parts := strings.FieldsFunc(trimmed, func(r rune) bool { return r == '/' || r == '-' })
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return ""
}

// NormalizeTime pads a clock reading to HH:MM. Strings with fewer than
// two colon-delimited parts pass through unchanged; that tolerance is
// deliberate, the raw value is still shown to operators.
func NormalizeTime(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) < 2 {
		return trimmed
	}
	return pad2(parts[0]) + ":" + pad2(parts[1])
}

// TimeToMinutes converts an HH:MM reading to minutes since midnight.
func TimeToMinutes(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// NormalizeDayMonth canonicalizes a schedule day header to DD/MM.
// Returns "" when the value does not look like a day/month pair.
func NormalizeDayMonth(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return ""
	}
	return pad2(parts[0]) + "/" + pad2(parts[1])
}

// ISOToDayMonth extracts the DD/MM portion of an ISO date.
func ISOToDayMonth(isoDate string) string {
	iso := NormalizeDate(isoDate)
	if iso == "" {
		return ""
	}
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "/" + parts[1]
}

// InferYear resolves a day/month schedule header to a full date by
// minimizing calendar distance to the reference date: a header month
// trailing the reference month by seven or more belongs to the next
// year, one leading by seven or more to the previous year. Known
// approximation near year boundaries; there is no ground truth in the
// data to do better. Returns false for malformed headers and days that
// do not exist in the inferred month.
func InferYear(dayMonth string, ref time.Time) (time.Time, bool) {
	match := dayMonthRegex.FindStringSubmatch(strings.TrimSpace(dayMonth))
	if match == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	year := ref.Year()
	diff := month - int(ref.Month())
	switch {
	case diff <= -7:
		year++
	case diff >= 7:
		year--
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return date, true
}

// FormatISO renders a time as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(isoDateLayout)
}

func pad2(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 1 {
		return "0" + trimmed
	}
	return trimmed
}
