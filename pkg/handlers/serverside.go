package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/spencer-p/tidepool/pkg/check"
	"github.com/spencer-p/tidepool/pkg/sunset"
	"github.com/spencer-p/tidepool/pkg/timetricks"
	"github.com/spencer-p/tidepool/pkg/visualize"
)

const (
	timeFmt   = "3:04 PM"
	headerFmt = "January 2, 2006"
)

type TemplateInput struct {
	Station   string
	Header    string
	Verdict   string
	Safe      bool
	Note      string
	Error     string
	Rows      []Row
	TideImage template.HTML

	// Picker values to echo back into the form.
	Date string
	Time string
}

// Row is one line of the high/low table.
type Row struct {
	Time   string
	Height string
	Type   string
}

// makeServerSideIndex serves the tide page fully rendered on the server.
func makeServerSideIndex(s *server) http.Handler {
	indexTemplate := template.Must(template.ParseFS(content, "static/index.template.html"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tinput := TemplateInput{
			Station: s.opts.Station.String(),
			Header:  "Today's High/Low Tides",
			Date:    r.FormValue("date"),
			Time:    r.FormValue("time"),
		}

		code := http.StatusOK
		ref, report, err := s.run(r)
		if err != nil {
			code, tinput.Error = statusFor(err)
			log.Printf("Failed to check tides: %+v", err)
		} else {
			fillReport(&tinput, s, ref, report)
		}

		// Default the picker to the reference instant.
		if tinput.Date == "" && err == nil {
			tinput.Date = ref.Format(timetricks.DateFormat)
			tinput.Time = ref.Format(timetricks.ClockFormat)
		}

		w.Header().Add("Content-Type", "text/html")
		w.WriteHeader(code)
		if err := indexTemplate.Execute(w, tinput); err != nil {
			log.Printf("Failed to execute template: %v", err)
		}
	})
}

func fillReport(tinput *TemplateInput, s *server, ref time.Time, report *check.Report) {
	if tinput.Date != "" {
		tinput.Header = fmt.Sprintf("%s High/Low Tides", report.Date.Format(headerFmt))
	}

	res := report.Result
	tinput.Verdict = res.Verdict()
	tinput.Safe = res.Safe()
	if res.Found && !report.Daylight {
		tinput.Note = "That low tide is after dark."
	}
	if report.EstimatedHeight != nil {
		est := fmt.Sprintf("The water is about %.1f ft at %s.", *report.EstimatedHeight, ref.Format(timeFmt))
		if tinput.Note != "" {
			tinput.Note = est + " " + tinput.Note
		} else {
			tinput.Note = est
		}
	}

	for _, p := range report.Predictions {
		tinput.Rows = append(tinput.Rows, Row{
			Time:   p.T().Format(timeFmt),
			Height: fmt.Sprintf("%.2f ft", p.Height),
			Type:   p.Type.Name(),
		})
	}

	tinput.TideImage = template.HTML(imgToString(report, s.opts.Place, res.LookAhead, ref))
}

func imgToString(report *check.Report, place sunset.Place, lookAhead time.Duration, ref time.Time) string {
	var sunEvents sunset.SunEvents
	if place.Location != nil {
		sunEvents = sunset.GetSunEvents(report.Date, 24*time.Hour, place)
	}
	img := visualize.NewTidal(report.Predictions, sunEvents, report.Result.Threshold)
	img.SetDate(report.Date)
	img.SetWindow(ref, lookAhead)

	var b bytes.Buffer
	if _, err := img.Encode(&b); err != nil {
		log.Printf("Failed to draw tides: %v", err)
		return ""
	}
	return b.String()
}
