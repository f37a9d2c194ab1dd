// Package domain models NOAA Storm Events records and their impact metrics.
//
// # Data Source
//
// Records come from the NOAA National Climatic Data Center Storm Events
// database, distributed as a comma-separated export with one row per recorded
// weather event. The columns this service consumes:
//
//	BGN_DATE    event begin date, "MM/DD/YYYY" optionally followed by a
//	            zeroed time-of-day ("4/18/1950 0:00:00")
//	EVTYPE      free-text event type label, e.g. "TORNADO". Labels are noisy
//	            ("TSTM WIND" vs "THUNDERSTORM WIND" vs "Tstm Wind") and are
//	            deliberately NOT normalized: groups follow the raw labels.
//	FATALITIES  direct fatalities for the event
//	INJURIES    direct injuries for the event
//	PROPDMG     property damage magnitude (see exponent codes below)
//	PROPDMGEXP  property damage exponent code
//	CROPDMG     crop damage magnitude
//	CROPDMGEXP  crop damage exponent code
//
// # Damage Exponent Codes
//
// Damage figures are split into a decimal magnitude and a one-character
// order-of-magnitude code. Absolute dollars = magnitude x multiplier:
//
//	"+"       x1
//	"0"-"8"   x10 (legacy numeric codes; all map to ten regardless of digit)
//	"H"/"h"   x100 (hundreds)
//	"K"/"k"   x1,000 (thousands)
//	"M"/"m"   x1,000,000 (millions)
//	"B"/"b"   x1,000,000,000 (billions)
//
// A blank code means no damage was recorded. Codes outside this table ("?",
// "-", "9", multi-character garbage) appear in the historical data; they zero
// out the contribution, and the pipeline counts them per code so the loss is
// visible instead of silent.
//
// # Derived Metrics
//
// Each record yields two scalar metrics, pure functions of the input fields:
//
//	health impact   = fatalities + injuries
//	economic impact = normalized property damage + normalized crop damage
//
// # 1996 Cutoff
//
// Before 1996 the database only tracked tornado, thunderstorm wind, and hail
// events, so cross-type totals over the full history are skewed toward those
// types. The standard analysis therefore keeps records beginning on or after
// 1996-01-01 ([DefaultCutoff]); the cutoff is configurable.
package domain
