package services

import (
	"time"
)

// DateKeyLayout is the calendar-day format used to bucket orders by business day.
const DateKeyLayout = "2006-01-02"

// DefaultBusinessTimezone is the restaurant's civil time zone. Cash closings
// are bucketed by this zone's calendar days, never by server local time.
const DefaultBusinessTimezone = "America/Bogota"

// DateKeyResolver converts instants to calendar-day keys in a fixed civil
// time zone, so a ticket printed at 23:59 local lands on the right business
// day no matter where the server runs.
type DateKeyResolver struct {
	loc *time.Location
}

// NewDateKeyResolver builds a resolver for the given zone; nil falls back to UTC.
func NewDateKeyResolver(loc *time.Location) *DateKeyResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &DateKeyResolver{loc: loc}
}

// LoadBusinessLocation resolves a zone name, defaulting when empty.
func LoadBusinessLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultBusinessTimezone
	}
	return time.LoadLocation(name)
}

// DateKey returns the YYYY-MM-DD calendar day of t in the business time zone.
func (r *DateKeyResolver) DateKey(t time.Time) string {
	return t.In(r.loc).Format(DateKeyLayout)
}
