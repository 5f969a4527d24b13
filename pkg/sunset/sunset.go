// Package sunset computes sunrise and sunset around a tide station.
package sunset

import (
	"math"
	"time"

	"github.com/keep94/sunrise"
)

// GetSunEvents returns a list of ordered sun events for each calendar day from
// start's day through duration in the given place. The first result is always
// a sunrise.
func GetSunEvents(start time.Time, duration time.Duration, place Place) SunEvents {
	local := start.In(place.Location)
	y, m, d := local.Date()

	numDays := int(math.Ceil(duration.Hours() / 24))
	if numDays < 1 {
		numDays = 1
	}

	ret := make(SunEvents, 0, numDays*2)
	for i := 0; i < numDays; i++ {
		// Noon is safely inside the day regardless of DST changes.
		var s sunrise.Sunrise
		s.Around(place.Lat, place.Long, time.Date(y, m, d+i, 12, 0, 0, 0, place.Location))
		ret = append(ret,
			SunEvent{s.Sunrise().In(place.Location), Sunrise},
			SunEvent{s.Sunset().In(place.Location), Sunset})
	}
	return ret
}

// Daylight reports whether the sun is up at t in the given place.
func Daylight(t time.Time, place Place) bool {
	events := GetSunEvents(t, 24*time.Hour, place)
	return !t.Before(events[0].Time) && t.Before(events[1].Time)
}
