// Package noaa implements queries to NOAA to retrieve tide data. Tide data is
// requested one calendar day at a time for a single station (see
// PredictionQuery). A successful query returns the day's high and low tide
// predictions with time, height, and whether it is high or low. All times are
// local to the station.
//
// Failures are reported as *NetworkError when the service could not be reached
// or answered with a non-success status, and as *DataFormatError when the
// response could not be turned into predictions.
package noaa
