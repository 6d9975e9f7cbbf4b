package jsonutil

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldUndefined marks an XMLCalendar field that is absent from its lexical form.
const FieldUndefined = math.MinInt32

// XMLCalendar holds a value of one of the XML Schema date/time types
// (dateTime, date, time, gYearMonth, gYear, gMonthDay, gDay, gMonth).
// Fields that the type does not carry are FieldUndefined. The zero value is
// empty and encodes as null.
type XMLCalendar struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	// Fraction holds the fractional-second digits as written, without the dot.
	Fraction string

	// Timezone is the offset from UTC in minutes, or FieldUndefined.
	Timezone int
}

// NewXMLDateTime returns an xsd:dateTime value.
func NewXMLDateTime(year, month, day, hour, minute, second int, fraction string, timezone int) XMLCalendar {
	return XMLCalendar{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
		Fraction: fraction,
		Timezone: timezone,
	}
}

// NewXMLDate returns an xsd:date value.
func NewXMLDate(year, month, day, timezone int) XMLCalendar {
	return XMLCalendar{
		Year: year, Month: month, Day: day,
		Hour: FieldUndefined, Minute: FieldUndefined, Second: FieldUndefined,
		Timezone: timezone,
	}
}

// NewXMLTime returns an xsd:time value.
func NewXMLTime(hour, minute, second int, fraction string, timezone int) XMLCalendar {
	return XMLCalendar{
		Year: FieldUndefined, Month: FieldUndefined, Day: FieldUndefined,
		Hour: hour, Minute: minute, Second: second,
		Fraction: fraction,
		Timezone: timezone,
	}
}

// XMLCalendarOf returns t as an xsd:dateTime with t's offset.
func XMLCalendarOf(t time.Time) XMLCalendar {
	_, off := t.Zone()
	var fraction string
	if ns := t.Nanosecond(); ns != 0 {
		fraction = strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
	}
	return NewXMLDateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), fraction, off/60)
}

const xmlTZ = `(?P<tz>Z|[+-]\d{2}:\d{2})?`

// xmlLexical lists the lexical families in match order.
var xmlLexical = []struct {
	kind string
	re   *regexp.Regexp
}{
	{"dateTime", regexp.MustCompile(`^(?P<year>-?\d{4,})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})(?:\.(?P<fraction>\d+))?` + xmlTZ + `$`)},
	{"date", regexp.MustCompile(`^(?P<year>-?\d{4,})-(?P<month>\d{2})-(?P<day>\d{2})` + xmlTZ + `$`)},
	{"time", regexp.MustCompile(`^(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})(?:\.(?P<fraction>\d+))?` + xmlTZ + `$`)},
	{"gYearMonth", regexp.MustCompile(`^(?P<year>-?\d{4,})-(?P<month>\d{2})` + xmlTZ + `$`)},
	{"gYear", regexp.MustCompile(`^(?P<year>-?\d{4,})` + xmlTZ + `$`)},
	{"gMonthDay", regexp.MustCompile(`^--(?P<month>\d{2})-(?P<day>\d{2})` + xmlTZ + `$`)},
	{"gDay", regexp.MustCompile(`^---(?P<day>\d{2})` + xmlTZ + `$`)},
	{"gMonth", regexp.MustCompile(`^--(?P<month>\d{2})(?:--)?` + xmlTZ + `$`)},
}

var errXMLLexical = errors.New("not an XML Schema date/time lexical form")

// ParseXMLCalendar parses any XML Schema date/time lexical form.
func ParseXMLCalendar(text string) (XMLCalendar, error) {
	for _, lx := range xmlLexical {
		m := lx.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		c := XMLCalendar{
			Year: FieldUndefined, Month: FieldUndefined, Day: FieldUndefined,
			Hour: FieldUndefined, Minute: FieldUndefined, Second: FieldUndefined,
			Timezone: FieldUndefined,
		}
		group := func(name string) string {
			if i := lx.re.SubexpIndex(name); i > 0 {
				return m[i]
			}
			return ""
		}
		targets := []struct {
			name string
			dst  *int
		}{
			{"year", &c.Year},
			{"month", &c.Month},
			{"day", &c.Day},
			{"hour", &c.Hour},
			{"minute", &c.Minute},
			{"second", &c.Second},
		}
		for _, tg := range targets {
			s := group(tg.name)
			if s == "" {
				continue
			}
			if tg.name == "year" && !validYearText(s) {
				return XMLCalendar{}, fmt.Errorf("invalid year %q", s)
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return XMLCalendar{}, err
			}
			*tg.dst = n
		}
		c.Fraction = group("fraction")
		if tz := group("tz"); tz != "" {
			c.Timezone = parseXMLTimezone(tz)
		}
		if err := c.validate(); err != nil {
			return XMLCalendar{}, err
		}
		return c, nil
	}
	return XMLCalendar{}, errXMLLexical
}

// validYearText rejects year 0000 and leading zeros beyond four digits.
func validYearText(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 4 && digits[0] == '0' {
		return false
	}
	return strings.Trim(digits, "0") != ""
}

func parseXMLTimezone(tz string) int {
	if tz == "Z" {
		return 0
	}
	h, _ := strconv.Atoi(tz[1:3])
	m, _ := strconv.Atoi(tz[4:6])
	minutes := h*60 + m
	if tz[0] == '-' {
		return -minutes
	}
	return minutes
}

func (c XMLCalendar) validate() error {
	if c.Month != FieldUndefined && (c.Month < 1 || c.Month > 12) {
		return fmt.Errorf("month %d out of range", c.Month)
	}
	if c.Day != FieldUndefined {
		limit := 31
		if c.Month != FieldUndefined {
			year := 2000
			if c.Year != FieldUndefined {
				year = c.Year
			}
			limit = time.Date(year, time.Month(c.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
		}
		if c.Day < 1 || c.Day > limit {
			return fmt.Errorf("day %d out of range", c.Day)
		}
	}
	if c.Hour != FieldUndefined && (c.Hour < 0 || c.Hour > 23) {
		return fmt.Errorf("hour %d out of range", c.Hour)
	}
	if c.Minute != FieldUndefined && (c.Minute < 0 || c.Minute > 59) {
		return fmt.Errorf("minute %d out of range", c.Minute)
	}
	if c.Second != FieldUndefined && (c.Second < 0 || c.Second > 59) {
		return fmt.Errorf("second %d out of range", c.Second)
	}
	if c.Timezone != FieldUndefined && (c.Timezone < -14*60 || c.Timezone > 14*60) {
		return fmt.Errorf("timezone %d out of range", c.Timezone)
	}
	return nil
}

// Kind names the XML Schema type the defined fields describe.
func (c XMLCalendar) Kind() string {
	has := func(v int) bool { return v != FieldUndefined }
	switch {
	case c.IsZero():
		return ""
	case has(c.Year) && has(c.Month) && has(c.Day) && has(c.Hour):
		return "dateTime"
	case has(c.Year) && has(c.Month) && has(c.Day):
		return "date"
	case has(c.Hour):
		return "time"
	case has(c.Year) && has(c.Month):
		return "gYearMonth"
	case has(c.Year):
		return "gYear"
	case has(c.Month) && has(c.Day):
		return "gMonthDay"
	case has(c.Day):
		return "gDay"
	case has(c.Month):
		return "gMonth"
	}
	return ""
}

// IsZero reports whether c is the zero XMLCalendar, which encodes as null.
func (c XMLCalendar) IsZero() bool {
	return c == XMLCalendar{}
}

// Equal reports whether c and o have identical fields.
func (c XMLCalendar) Equal(o XMLCalendar) bool {
	return c == o
}

// String returns the canonical lexical form, or "" for the zero value.
func (c XMLCalendar) String() string {
	var b strings.Builder
	year := func() {
		if c.Year < 0 {
			fmt.Fprintf(&b, "-%04d", -c.Year)
		} else {
			fmt.Fprintf(&b, "%04d", c.Year)
		}
	}
	clock := func() {
		fmt.Fprintf(&b, "%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
		if c.Fraction != "" {
			b.WriteByte('.')
			b.WriteString(c.Fraction)
		}
	}

	switch c.Kind() {
	case "dateTime":
		year()
		fmt.Fprintf(&b, "-%02d-%02dT", c.Month, c.Day)
		clock()
	case "date":
		year()
		fmt.Fprintf(&b, "-%02d-%02d", c.Month, c.Day)
	case "time":
		clock()
	case "gYearMonth":
		year()
		fmt.Fprintf(&b, "-%02d", c.Month)
	case "gYear":
		year()
	case "gMonthDay":
		fmt.Fprintf(&b, "--%02d-%02d", c.Month, c.Day)
	case "gDay":
		fmt.Fprintf(&b, "---%02d", c.Day)
	case "gMonth":
		fmt.Fprintf(&b, "--%02d", c.Month)
	default:
		return ""
	}

	switch tz := c.Timezone; {
	case tz == FieldUndefined:
	case tz == 0:
		b.WriteByte('Z')
	default:
		sign := '+'
		if tz < 0 {
			sign, tz = '-', -tz
		}
		fmt.Fprintf(&b, "%c%02d:%02d", sign, tz/60, tz%60)
	}
	return b.String()
}
