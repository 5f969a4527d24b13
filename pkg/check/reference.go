package check

import (
	"errors"
	"fmt"
	"time"

	"github.com/spencer-p/tidepool/pkg/timetricks"
)

// defaultHour is used when a date is picked without a time.
const defaultHour = 9

// ErrBadPicker is wrapped by errors from ReferenceFromPicker.
var ErrBadPicker = errors.New("invalid date or time")

// ReferenceFromPicker turns date ("2006-01-02") and clock ("15:04") picker
// values into the day to fetch and the reference instant, both in loc.
//
// An empty date means right now, and the day is today at the station. A date
// without a clock means 9:00 AM that day.
func ReferenceFromPicker(date, clock string, loc *time.Location, now time.Time) (day, ref time.Time, err error) {
	if date == "" {
		now = now.In(loc)
		return timetricks.TrimClock(now), now, nil
	}

	day, err = timetricks.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrBadPicker, err)
	}

	hour, minute := time.Duration(defaultHour), time.Duration(0)
	if clock != "" {
		hour, minute, err = timetricks.ParseClock(clock)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrBadPicker, err)
		}
	}
	return day, timetricks.SetClock(day, hour, minute), nil
}
