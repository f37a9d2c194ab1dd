// Command gensample generates a synthetic Storm Events CSV for demos and
// test fixtures. Output is deterministic for a given seed, so fixtures can be
// regenerated without churning test assertions.
//
// Usage:
//
//	go run ./cmd/gensample -out data/sample/storm_events.csv -rows 5000
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// eventCatalog mirrors the label noise of the real export: the same
// phenomenon appears under several spellings.
var eventCatalog = []string{
	"TORNADO",
	"TSTM WIND",
	"THUNDERSTORM WIND",
	"Tstm Wind",
	"HAIL",
	"FLOOD",
	"FLASH FLOOD",
	"EXCESSIVE HEAT",
	"HEAT",
	"LIGHTNING",
	"HIGH WIND",
	"WINTER STORM",
}

// damageCodes weights blank heaviest, matching the real data, and includes a
// few junk codes so the unknown-code accounting has something to count.
var damageCodes = []string{
	"", "", "", "", "", "",
	"K", "K", "K", "k",
	"M", "M", "m",
	"B",
	"H", "h",
	"+", "0", "5",
	"?", "-",
}

func main() {
	out := flag.String("out", "", "output CSV path")
	rows := flag.Int("rows", 2000, "number of data rows to generate")
	seed := flag.Int64("seed", 42, "random seed")
	badDates := flag.Int("bad-dates", 3, "number of rows with unparseable dates")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*out, *rows, *seed, *badDates); err != nil {
		log.Fatal(err)
	}
}

func run(out string, rows int, seed int64, badDates int) error {
	rng := rand.New(rand.NewSource(seed))

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(domain.RequiredColumns); err != nil {
		return err
	}

	start := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	spanDays := int(time.Date(2011, time.December, 1, 0, 0, 0, 0, time.UTC).Sub(start).Hours() / 24)

	for i := 0; i < rows; i++ {
		date := start.AddDate(0, 0, rng.Intn(spanDays))
		beginDate := fmt.Sprintf("%d/%d/%d 0:00:00", int(date.Month()), date.Day(), date.Year())
		if i < badDates {
			beginDate = "UNKNOWN"
		}

		row := []string{
			beginDate,
			eventCatalog[rng.Intn(len(eventCatalog))],
			strconv.Itoa(poissonish(rng, 0.02)),
			strconv.Itoa(poissonish(rng, 0.15)),
			formatMagnitude(rng),
			damageCodes[rng.Intn(len(damageCodes))],
			formatMagnitude(rng),
			damageCodes[rng.Intn(len(damageCodes))],
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	log.Printf("wrote %d rows (%d bad dates) to %s", rows, badDates, out)
	return nil
}

// poissonish draws small casualty counts: mostly zero, occasionally a burst.
func poissonish(rng *rand.Rand, rate float64) int {
	if rng.Float64() >= rate {
		return 0
	}
	return 1 + rng.Intn(25)
}

// formatMagnitude draws a damage magnitude in the style of the export:
// usually a small decimal, sometimes zero.
func formatMagnitude(rng *rand.Rand) string {
	if rng.Float64() < 0.5 {
		return "0"
	}
	return strconv.FormatFloat(float64(rng.Intn(1000))/4, 'f', 2, 64)
}
