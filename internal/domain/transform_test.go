package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamageMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		mult  float64
		known bool
	}{
		{"plus sign", "+", 1, true},
		{"digit zero", "0", 10, true},
		{"digit five", "5", 10, true},
		{"digit eight", "8", 10, true},
		{"digit nine is not an encoding", "9", 0, false},
		{"hundreds upper", "H", 100, true},
		{"hundreds lower", "h", 100, true},
		{"thousands upper", "K", 1e3, true},
		{"thousands lower", "k", 1e3, true},
		{"millions upper", "M", 1e6, true},
		{"millions lower", "m", 1e6, true},
		{"billions upper", "B", 1e9, true},
		{"billions lower", "b", 1e9, true},
		{"blank means no damage", "", 0, true},
		{"whitespace only", "  ", 0, true},
		{"question mark", "?", 0, false},
		{"dash", "-", 0, false},
		{"unrelated letter", "x", 0, false},
		{"multi-character", "KM", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mult, known := DamageMultiplier(tt.code)
			assert.Equal(t, tt.mult, mult)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestNormalizeDamage(t *testing.T) {
	assert.Equal(t, 100000.0, NormalizeDamage(100, "K"))
	assert.Equal(t, 2500000.0, NormalizeDamage(2.5, "M"))
	assert.Equal(t, 0.0, NormalizeDamage(5, "x"))
	assert.Equal(t, 25.0, NormalizeDamage(2.5, "3"))
	assert.Equal(t, 7.0, NormalizeDamage(7, "+"))
	assert.Equal(t, 0.0, NormalizeDamage(42, ""))
}

func TestParseBeginDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
		wantErr  bool
	}{
		{"zero padded", "01/01/1996", time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"unpadded", "4/18/1950", time.Date(1950, 4, 18, 0, 0, 0, 0, time.UTC), false},
		{"with time-of-day", "11/28/2011 0:00:00", time.Date(2011, 11, 28, 0, 0, 0, 0, time.UTC), false},
		{"surrounding whitespace", " 12/31/1995 ", time.Date(1995, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"not a date", "NOTADATE", time.Time{}, true},
		{"empty", "", time.Time{}, true},
		{"iso format rejected", "1996-01-01", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBeginDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDeriveImpact(t *testing.T) {
	t.Run("tornado with mixed damage codes", func(t *testing.T) {
		rec := RawRecord{
			BeginDate:  "5/22/2011 0:00:00",
			EventType:  "TORNADO",
			Fatalities: "158",
			Injuries:   "1150",
			PropDamage: "2.8",
			PropCode:   "B",
			CropDamage: "75",
			CropCode:   "K",
		}

		event, err := DeriveImpact(rec)
		require.NoError(t, err)
		assert.Equal(t, "TORNADO", event.EventType)
		assert.Equal(t, time.Date(2011, 5, 22, 0, 0, 0, 0, time.UTC), event.BeginDate)
		assert.Equal(t, 158.0, event.Fatalities)
		assert.Equal(t, 1150.0, event.Injuries)
		assert.Equal(t, 1308.0, event.HealthImpact)
		assert.Equal(t, 2.8e9, event.PropertyValue)
		assert.Equal(t, 75000.0, event.CropValue)
		assert.Equal(t, 2.8e9+75000, event.EconomicImpact)
	})

	t.Run("missing numeric fields contribute zero", func(t *testing.T) {
		rec := RawRecord{
			BeginDate:  "6/1/2000",
			EventType:  "FLOOD",
			Fatalities: "",
			Injuries:   "n/a",
			PropDamage: "",
			PropCode:   "K",
		}

		event, err := DeriveImpact(rec)
		require.NoError(t, err)
		assert.Equal(t, 0.0, event.HealthImpact)
		assert.Equal(t, 0.0, event.EconomicImpact)
	})

	t.Run("unrecognized damage code zeroes contribution", func(t *testing.T) {
		rec := RawRecord{
			BeginDate:  "6/1/2000",
			EventType:  "HAIL",
			PropDamage: "500",
			PropCode:   "?",
			CropDamage: "2",
			CropCode:   "M",
		}

		event, err := DeriveImpact(rec)
		require.NoError(t, err)
		assert.Equal(t, 0.0, event.PropertyValue)
		assert.Equal(t, 2e6, event.CropValue)
		assert.Equal(t, 2e6, event.EconomicImpact)
	})

	t.Run("label carried over verbatim", func(t *testing.T) {
		rec := RawRecord{BeginDate: "6/1/2000", EventType: "  Tstm Wind "}
		event, err := DeriveImpact(rec)
		require.NoError(t, err)
		assert.Equal(t, "  Tstm Wind ", event.EventType)
	})

	t.Run("unparseable date fails the record", func(t *testing.T) {
		rec := RawRecord{BeginDate: "NOTADATE", EventType: "TORNADO"}
		_, err := DeriveImpact(rec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse begin date")
	})
}

func TestUnrecognizedDamageCodes(t *testing.T) {
	tests := []struct {
		name     string
		rec      RawRecord
		expected []string
	}{
		{"both recognized", RawRecord{PropCode: "K", CropCode: "M"}, nil},
		{"both blank", RawRecord{}, nil},
		{"prop unrecognized", RawRecord{PropCode: "?", CropCode: "K"}, []string{"?"}},
		{"both unrecognized", RawRecord{PropCode: "-", CropCode: "9"}, []string{"-", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnrecognizedDamageCodes(tt.rec))
		})
	}
}

func TestParseFloatOrZero(t *testing.T) {
	assert.Equal(t, 1.25, parseFloatOrZero("1.25"))
	assert.Equal(t, 65.0, parseFloatOrZero(" 65 "))
	assert.Equal(t, 0.0, parseFloatOrZero(""))
	assert.Equal(t, 0.0, parseFloatOrZero("UNK"))
}
