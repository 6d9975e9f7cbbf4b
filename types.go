package jsonutil

import (
	"fmt"
	"time"
)

// Wire layouts of the time adapters.
const (
	DateLayout           = "2006-01-02T15:04:05"
	LocalDateLayout      = "2006-01-02"
	LocalDateTimeLayout  = "2006-01-02T15:04:05"
	OffsetDateTimeLayout = "2006-01-02T15:04:05.000-07:00"
)

// Date is an instant shown as a local wall-clock time with second precision.
// The date feature adapts it; without the feature it falls back to
// time.Time's own JSON form.
type Date struct {
	time.Time
}

// NewDate returns t as a Date in the local zone, truncated to the second.
func NewDate(t time.Time) Date {
	return Date{t.In(time.Local).Truncate(time.Second)}
}

// ParseDate parses text in DateLayout, interpreted in the local zone.
func ParseDate(text string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, text, time.Local)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// Equal reports whether d and o are the same instant.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// String formats d in DateLayout in the local zone.
func (d Date) String() string {
	return d.In(time.Local).Format(DateLayout)
}

// LocalDate is a calendar date without time or zone.
// Its field names match the legacy object form, so without the local_date
// feature it encodes as {"year":..., "monthValue":..., "dayOfMonth":...}.
type LocalDate struct {
	Year  int `json:"year"`
	Month int `json:"monthValue"`
	Day   int `json:"dayOfMonth"`
}

// NewLocalDate returns the date, normalizing out-of-range months and days
// the way time.Date does.
func NewLocalDate(year, month, day int) LocalDate {
	return LocalDateOf(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

// LocalDateOf returns the calendar date of t in t's own location.
func LocalDateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: int(m), Day: d}
}

// ParseLocalDate parses text in LocalDateLayout.
func ParseLocalDate(text string) (LocalDate, error) {
	t, err := time.Parse(LocalDateLayout, text)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDateOf(t), nil
}

// Time returns midnight UTC of d.
func (d LocalDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero LocalDate.
func (d LocalDate) IsZero() bool {
	return d == LocalDate{}
}

// Equal reports whether d and o are the same date.
func (d LocalDate) Equal(o LocalDate) bool {
	return d == o
}

// String formats d in LocalDateLayout.
func (d LocalDate) String() string {
	if d.Year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// LocalDateTime is a date and wall-clock time without zone.
// The wall clock is held in UTC; the offset carries no meaning.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime returns the given wall-clock time.
func NewLocalDateTime(year, month, day, hour, minute, second int) LocalDateTime {
	return LocalDateTime{time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)}
}

// LocalDateTimeOf keeps the wall clock of t and drops its zone.
func LocalDateTimeOf(t time.Time) LocalDateTime {
	return LocalDateTime{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// ParseLocalDateTime parses text in LocalDateTimeLayout.
func ParseLocalDateTime(text string) (LocalDateTime, error) {
	t, err := time.Parse(LocalDateTimeLayout, text)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{t}, nil
}

// Equal reports whether d and o have the same wall clock.
func (d LocalDateTime) Equal(o LocalDateTime) bool {
	return d.Time.Equal(o.Time)
}

// String formats d in LocalDateTimeLayout.
func (d LocalDateTime) String() string {
	return d.Format(LocalDateTimeLayout)
}

// OffsetDateTime is an instant with a fixed UTC offset.
// It is adapted by every compiled codec.
type OffsetDateTime struct {
	time.Time
}

// NewOffsetDateTime wraps t, keeping its offset.
func NewOffsetDateTime(t time.Time) OffsetDateTime {
	return OffsetDateTime{t}
}

// ParseOffsetDateTime parses an RFC 3339 timestamp; the offset is required.
func ParseOffsetDateTime(text string) (OffsetDateTime, error) {
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{t}, nil
}

// Offset returns the offset from UTC in seconds.
func (d OffsetDateTime) Offset() int {
	_, off := d.Zone()
	return off
}

// Equal reports whether d and o are the same instant at the same offset.
func (d OffsetDateTime) Equal(o OffsetDateTime) bool {
	return d.Time.Equal(o.Time) && d.Offset() == o.Offset()
}

// String formats d in OffsetDateTimeLayout.
func (d OffsetDateTime) String() string {
	return d.Format(OffsetDateTimeLayout)
}
