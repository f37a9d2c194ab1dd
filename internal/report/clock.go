package report

import "github.com/jonboulle/clockwork"

// clock supplies GeneratedAt timestamps. Tests freeze it via SetClock for
// byte-stable report fixtures.
var clock = clockwork.NewRealClock()

// SetClock swaps the report time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
