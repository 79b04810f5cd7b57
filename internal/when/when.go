// Package when parses the human-friendly time expressions accepted by
// --since, --until and --time.
package when

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Matches: "2h ago", "30m ago", "1d ago", "2w ago", "1mo ago" and the French
// "il y a 2h".
var (
	agoRegex    = regexp.MustCompile(`^(\d+)\s*(mo|w|d|h|m)\s*ago$`)
	ilYaRegex   = regexp.MustCompile(`^il y a (\d+)\s*(mo|w|j|d|h|m|min)$`)
	clockRegex  = regexp.MustCompile(`^(\d{1,2})[:h](\d{2})?$`)
	layoutsDate = []string{"2006-01-02 15:04", "2006-01-02T15:04", "02/01/2006 15:04"}
)

// Parse resolves s relative to now. Supported forms: "today"/"aujourd'hui",
// "yesterday"/"hier", a weekday name (its most recent occurrence, today
// included), "2h ago", "il y a 2h", "08:30" or "8h30" (today), "2006-01-02",
// "02/01/2006", "2006-01-02 15:04" and RFC 3339.
func Parse(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}
	input := strings.ToLower(raw)

	switch input {
	case "now", "maintenant":
		return now, nil
	case "today", "aujourd'hui", "aujourdhui":
		return startOfDay(now), nil
	case "yesterday", "hier":
		return startOfDay(now).AddDate(0, 0, -1), nil
	}

	if t, ok := lastWeekday(input, now); ok {
		return t, nil
	}

	if m := agoRegex.FindStringSubmatch(input); m != nil {
		return ago(now, m[1], m[2], raw)
	}
	if m := ilYaRegex.FindStringSubmatch(input); m != nil {
		return ago(now, m[1], m[2], raw)
	}

	if m := clockRegex.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour > 23 || minute > 59 {
			return time.Time{}, fmt.Errorf("invalid time of day %q", raw)
		}
		return startOfDay(now).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return t, nil
		}
	}
	for _, layout := range layoutsDate {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time expression %q", raw)
}

// ParseTimestamp reads a backend timestamp. The backend emits RFC 3339,
// sometimes without a zone.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// lastWeekday returns the start of the most recent day named expr.
func lastWeekday(expr string, now time.Time) (time.Time, bool) {
	input := strings.TrimSpace(expr)
	last := false
	for _, prefix := range []string{"last ", "dernier ", "this "} {
		if strings.HasPrefix(input, prefix) {
			last = prefix != "this "
			input = strings.TrimSpace(strings.TrimPrefix(input, prefix))
		}
	}

	weekday, ok := weekdays[input]
	if !ok {
		return time.Time{}, false
	}

	base := startOfDay(now)
	delta := (int(base.Weekday()) - int(weekday) + 7) % 7
	if last && delta == 0 {
		delta = 7
	}
	return base.AddDate(0, 0, -delta), true
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday, "dimanche": time.Sunday,
	"mon": time.Monday, "monday": time.Monday, "lundi": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday, "mardi": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday, "mercredi": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday, "jeudi": time.Thursday,
	"fri": time.Friday, "friday": time.Friday, "vendredi": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday, "samedi": time.Saturday,
}

func ago(now time.Time, rawValue, unit, raw string) (time.Time, error) {
	value, err := strconv.Atoi(rawValue)
	if err != nil || value < 1 {
		return time.Time{}, fmt.Errorf("invalid relative time %q", raw)
	}
	switch unit {
	case "mo":
		return now.AddDate(0, -value, 0), nil
	case "w":
		return now.AddDate(0, 0, -7*value), nil
	case "d", "j":
		return now.AddDate(0, 0, -value), nil
	case "h":
		return now.Add(-time.Duration(value) * time.Hour), nil
	case "m", "min":
		return now.Add(-time.Duration(value) * time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("invalid relative time unit %q", unit)
}
