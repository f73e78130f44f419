package format

import (
	"fmt"
	"time"
)

// DateStyle selects how Date renders a calendar date.
type DateStyle string

const (
	StyleShort  DateStyle = "short"  // 02-01-2006
	StyleMedium DateStyle = "medium" // 02 ene 2006
	StyleLong   DateStyle = "long"   // lunes 02 de enero de 2006
)

// Spanish month and weekday names. golang.org/x/text covers number
// formatting but not date names, so these are carried as tables.
var (
	monthsShort = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
	monthsLong  = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	weekdays    = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
)

// dateLayouts are the layouts accepted by ParseDate, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02-01-2006",
	"02/01/2006",
}

// ParseDate parses a date string in any of the accepted layouts.
// ok is false when the value is empty or unparsable.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders a date string in the requested style using Spanish month and
// weekday names. Unparsable input renders as the empty string.
func Date(value string, style DateStyle) string {
	t, ok := ParseDate(value)
	if !ok {
		return ""
	}

	switch style {
	case StyleMedium:
		return fmt.Sprintf("%02d %s %d", t.Day(), monthsShort[t.Month()-1], t.Year())
	case StyleLong:
		return fmt.Sprintf("%s %02d de %s de %d", weekdays[t.Weekday()], t.Day(), monthsLong[t.Month()-1], t.Year())
	default:
		return fmt.Sprintf("%02d-%02d-%d", t.Day(), t.Month(), t.Year())
	}
}
