// Command stormimpact computes ranked health and economic impact summaries
// from a NOAA Storm Events table.
//
// Usage:
//
//	stormimpact run --input data/storm_events.csv --output report.json
//	stormimpact serve --input data/storm_events.csv
//	stormimpact check --input data/storm_events.csv
//
// Configuration comes from STORM_-prefixed environment variables or a YAML
// file named by STORM_CONFIG; flags override both.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
