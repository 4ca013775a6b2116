package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
)

const msgInvalidDate = "Invalid Date"

// maxDateMillis bounds representable instants to ±100,000,000 days around
// the epoch, the range a JavaScript Date accepts.
const maxDateMillis = 8_640_000_000_000_000

// dateLayouts are tried in order for non-numeric inputs. Inputs without an
// explicit zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006-1-2",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	time.RubyDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Mon Jan 02 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"02 Jan 2006",
	"2 Jan 2006 15:04:05 MST",
}

// TimestampHandler converts dates to Unix milliseconds and UTC strings.
type TimestampHandler struct {
	clock clock.Clock
}

// NewTimestampHandler creates a timestamp handler reading the current time from clk.
func NewTimestampHandler(clk clock.Clock) *TimestampHandler {
	return &TimestampHandler{clock: clk}
}

func (h *TimestampHandler) Now(_ context.Context, _ *struct{}) (*TimestampResponse, error) {
	return timestampResponse(h.clock.Now()), nil
}

func (h *TimestampHandler) Parse(_ context.Context, req *DateRequest) (*TimestampResponse, error) {
	t, ok := ParseDate(req.Date)
	if !ok {
		resp := &TimestampResponse{}
		resp.Body.Error = msgInvalidDate

		return resp, nil
	}

	return timestampResponse(t), nil
}

// ParseDate interprets s as Unix milliseconds when it is a canonical integer
// string, otherwise as a date in one of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	if millis, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(millis, 10) == s {
		if millis > maxDateMillis || millis < -maxDateMillis {
			return time.Time{}, false
		}

		return time.UnixMilli(millis).UTC(), true
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

func timestampResponse(t time.Time) *TimestampResponse {
	unix := t.UnixMilli()

	resp := &TimestampResponse{}
	resp.Body.Unix = &unix
	resp.Body.UTC = t.UTC().Format(http.TimeFormat)

	return resp
}
