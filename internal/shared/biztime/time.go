// Package biztime keeps all stored times in UTC and converts to the district's
// business timezone only when bucketing (dashboard months and weekdays, year
// filters).
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when server.timezone is unset.
const DefaultTimezone = "America/Los_Angeles"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init sets the business timezone. Only the first call has effect.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initializing the default if needed.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToBizTimezone converts t to the business timezone for display or bucketing.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// YearRangeUTC returns [start, end) of the business-timezone year in UTC.
func YearRangeUTC(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, Location())
	return start.UTC(), start.AddDate(1, 0, 0).UTC()
}

// FileStamp formats t as used in generated attachment names (YYYYmmdd-HHMMSS, UTC).
func FileStamp(t time.Time) string {
	return t.UTC().Format("20060102-150405")
}
