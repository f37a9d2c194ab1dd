package domain

import "time"

// Column names of the NOAA Storm Events export this service consumes. The
// ingest layer refuses inputs missing any of these.
const (
	ColBeginDate  = "BGN_DATE"
	ColEventType  = "EVTYPE"
	ColFatalities = "FATALITIES"
	ColInjuries   = "INJURIES"
	ColPropDamage = "PROPDMG"
	ColPropCode   = "PROPDMGEXP"
	ColCropDamage = "CROPDMG"
	ColCropCode   = "CROPDMGEXP"
)

// RequiredColumns lists every column the pipeline needs, in export order.
var RequiredColumns = []string{
	ColBeginDate,
	ColEventType,
	ColFatalities,
	ColInjuries,
	ColPropDamage,
	ColPropCode,
	ColCropDamage,
	ColCropCode,
}

// RawRecord is one unprocessed row from the Storm Events table. All fields are
// kept as strings exactly as they appear in the source; parsing happens in
// DeriveImpact. Line is the 1-based source line, used only for diagnostics.
type RawRecord struct {
	Line       int
	BeginDate  string
	EventType  string
	Fatalities string
	Injuries   string
	PropDamage string
	PropCode   string
	CropDamage string
	CropCode   string
}

// ImpactEvent is the derived, immutable view of a record after magnitude
// normalization. EventType is carried over verbatim: the aggregation contract
// treats labels differing only in case or whitespace as distinct groups.
type ImpactEvent struct {
	BeginDate      time.Time
	EventType      string
	Fatalities     float64
	Injuries       float64
	PropertyValue  float64
	CropValue      float64
	EconomicImpact float64
	HealthImpact   float64
}
