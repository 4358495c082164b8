package usecase

import (
	"fmt"
	"time"
)

// MarketHours decides whether the exchange is trading at a given
// instant. The window is inclusive on both ends and only applies on
// weekdays; the zone is a fixed UTC offset (IST has no DST).
type MarketHours struct {
	openSec  int
	closeSec int
	location *time.Location
}

// NewMarketHours parses "HH:MM" bounds against a fixed UTC offset.
func NewMarketHours(open, close string, utcOffset time.Duration) (MarketHours, error) {
	openSec, err := parseClock(open)
	if err != nil {
		return MarketHours{}, fmt.Errorf("market open: %w", err)
	}
	closeSec, err := parseClock(close)
	if err != nil {
		return MarketHours{}, fmt.Errorf("market close: %w", err)
	}
	if closeSec <= openSec {
		return MarketHours{}, fmt.Errorf("market close %q must be after open %q", close, open)
	}
	return MarketHours{
		openSec:  openSec,
		closeSec: closeSec,
		location: time.FixedZone("MKT", int(utcOffset/time.Second)),
	}, nil
}

func (h MarketHours) IsOpen(t time.Time) bool {
	local := t.In(h.location)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	seconds := local.Hour()*3600 + local.Minute()*60 + local.Second()
	return seconds >= h.openSec && seconds <= h.closeSec
}

func parseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	return parsed.Hour()*3600 + parsed.Minute()*60, nil
}
