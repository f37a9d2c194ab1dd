package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultCutoff is the earliest begin date kept by the standard analysis.
// Storm Events coverage before 1996 only includes tornado, thunderstorm wind,
// and hail, so totals across all event types are not comparable to later years.
var DefaultCutoff = time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)

// beginDateLayout parses MM/DD/YYYY with or without zero padding.
const beginDateLayout = "1/2/2006"

// DamageMultiplier returns the dollar multiplier for a damage exponent code
// and whether the code is a recognized encoding. The mapping follows the
// documented Storm Data conventions:
//
//	"+"        -> 1
//	"0".."8"   -> 10
//	"H" / "h"  -> 100
//	"K" / "k"  -> 1,000
//	"M" / "m"  -> 1,000,000
//	"B" / "b"  -> 1,000,000,000
//
// A blank code means no damage was recorded and maps to 0 without being
// flagged. Any other code (e.g. "?", "-", "9") also maps to 0, but is
// reported as unrecognized so callers can surface the data-quality issue
// instead of zeroing it silently.
func DamageMultiplier(code string) (float64, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, true
	}
	if len(code) != 1 {
		return 0, false
	}

	c := code[0]
	if c == '+' {
		return 1, true
	}
	if c >= '0' && c <= '8' {
		return 10, true
	}

	switch c {
	case 'H', 'h':
		return 100, true
	case 'K', 'k':
		return 1e3, true
	case 'M', 'm':
		return 1e6, true
	case 'B', 'b':
		return 1e9, true
	}
	return 0, false
}

// NormalizeDamage converts a magnitude and its exponent code into absolute
// dollars. Unrecognized codes zero out the contribution; this never errors.
func NormalizeDamage(magnitude float64, code string) float64 {
	mult, _ := DamageMultiplier(code)
	return magnitude * mult
}

// ParseBeginDate parses a BGN_DATE value. The export writes dates as
// MM/DD/YYYY, usually followed by a zeroed time-of-day component
// ("4/18/1950 0:00:00") which is ignored.
func ParseBeginDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if i := strings.IndexByte(value, ' '); i >= 0 {
		value = value[:i]
	}

	t, err := time.Parse(beginDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse begin date %q: %w", value, err)
	}
	return t, nil
}

// DeriveImpact computes the per-record impact metrics. Numeric fields that are
// missing or unparseable contribute zero rather than failing the record; a
// begin date that cannot be parsed fails the record so the caller can drop
// and count it.
func DeriveImpact(rec RawRecord) (ImpactEvent, error) {
	begin, err := ParseBeginDate(rec.BeginDate)
	if err != nil {
		return ImpactEvent{}, err
	}

	fatalities := parseFloatOrZero(rec.Fatalities)
	injuries := parseFloatOrZero(rec.Injuries)
	property := NormalizeDamage(parseFloatOrZero(rec.PropDamage), rec.PropCode)
	crop := NormalizeDamage(parseFloatOrZero(rec.CropDamage), rec.CropCode)

	return ImpactEvent{
		BeginDate:      begin,
		EventType:      rec.EventType,
		Fatalities:     fatalities,
		Injuries:       injuries,
		PropertyValue:  property,
		CropValue:      crop,
		EconomicImpact: property + crop,
		HealthImpact:   fatalities + injuries,
	}, nil
}

// UnrecognizedDamageCodes returns the damage exponent codes on a record that
// are neither blank nor part of the documented encoding.
func UnrecognizedDamageCodes(rec RawRecord) []string {
	var codes []string
	for _, code := range []string{rec.PropCode, rec.CropCode} {
		if _, known := DamageMultiplier(code); !known {
			codes = append(codes, strings.TrimSpace(code))
		}
	}
	return codes
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
