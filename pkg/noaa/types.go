package noaa

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

const predTimeFormat = "2006-01-02 15:04"

// Prediction holds a single tide event prediction.
type Prediction struct {
	// Local time of tide prediction
	Time Time `json:"t"`
	// Height in feet above datum, may be negative
	Height Height `json:"v"`
	// High or Low tide, "H" or "L" when encoded
	Type Tide `json:"type"`
}

// Verify the custom types can be marshaled
var _ json.Marshaler = Time{}
var _ json.Marshaler = HighTide

// Predictions is a time series of Prediction for one day, in the order the
// service delivered them.
type Predictions []Prediction

// NOAAResult is the data type returned by the NOAA API. A missing predictions
// field decodes to nil, which is distinct from an empty list.
type NOAAResult struct {
	Predictions *[]rawPrediction `json:"predictions"`
	Error       *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// rawPrediction is a prediction exactly as it appears on the wire.
type rawPrediction struct {
	T    string `json:"t"`
	V    string `json:"v"`
	Type string `json:"type"`
}

type Station int

const (
	SantaCruz Station = 9413745
)

func (s Station) String() string {
	return strconv.Itoa(int(s))
}

type Time time.Time

// T casts away the NOAA type.
func (t Time) T() time.Time {
	return time.Time(t)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339))
}

// ParseTime parses a prediction timestamp in the station's location.
func ParseTime(s string, loc *time.Location) (Time, error) {
	parsed, err := time.ParseInLocation(predTimeFormat, s, loc)
	if err != nil {
		return Time{}, fmt.Errorf("prediction time %q not in fmt %q: %w", s, predTimeFormat, err)
	}
	return Time(parsed), nil
}

type Height float64

// ParseHeight parses a decimal water height. NaN and infinities are rejected.
func ParseHeight(s string) (Height, error) {
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("water height %q not a float: %w", s, err)
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("water height %q is not finite", s)
	}
	return Height(parsed), nil
}

type Tide uint

const (
	HighTide Tide = iota
	LowTide
)

func (t Tide) Valid() bool {
	return t == HighTide || t == LowTide
}

// ParseTide decodes a single character type code.
func ParseTide(s string) (Tide, error) {
	switch s {
	case "H":
		return HighTide, nil
	case "L":
		return LowTide, nil
	default:
		return 0, fmt.Errorf("invalid tide type %q", s)
	}
}

func (t Tide) String() string {
	switch t {
	case HighTide:
		return "H"
	case LowTide:
		return "L"
	default:
		return "invalid"
	}
}

// Name is the long form used in tables.
func (t Tide) Name() string {
	switch t {
	case HighTide:
		return "High"
	case LowTide:
		return "Low"
	default:
		return "Invalid"
	}
}

func (t Tide) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal tide %d", uint(t))
	}
	return json.Marshal(t.String())
}

func (p Prediction) String() string {
	return fmt.Sprintf("{t: %s, v: %f, type: %s}",
		time.Time(p.Time).Format(time.RFC822),
		p.Height,
		p.Type.String())
}

// T returns the time of the prediction.
func (p Prediction) T() time.Time {
	return time.Time(p.Time)
}

// Sorted returns a copy of preds ordered by time. Predictions at the same time
// keep their relative order.
func (preds Predictions) Sorted() Predictions {
	sorted := make(Predictions, len(preds))
	copy(sorted, preds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].T().Before(sorted[j].T())
	})
	return sorted
}

// normalize converts wire records to predictions. Any bad record fails the
// whole set.
func normalize(raws []rawPrediction, loc *time.Location) (Predictions, error) {
	preds := make(Predictions, 0, len(raws))
	for i, raw := range raws {
		t, err := ParseTime(raw.T, loc)
		if err != nil {
			return nil, &DataFormatError{Field: "t", Index: i, Err: err}
		}
		h, err := ParseHeight(raw.V)
		if err != nil {
			return nil, &DataFormatError{Field: "v", Index: i, Err: err}
		}
		tide, err := ParseTide(raw.Type)
		if err != nil {
			return nil, &DataFormatError{Field: "type", Index: i, Err: err}
		}
		preds = append(preds, Prediction{
			Time:   t,
			Height: h,
			Type:   tide,
		})
	}
	return preds, nil
}
