package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads and decodes a JSON request body into dst, rejecting
// unknown fields and oversized bodies.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// parsePeriod reads start/end query parameters (YYYY-MM-DD). Missing
// values default to the current month.
func parsePeriod(r *http.Request) (start, end time.Time, err error) {
	now := time.Now()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if v := strings.TrimSpace(r.URL.Query().Get("start")); v != "" {
		start, err = time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q", v)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("end")); v != "" {
		end, err = time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q", v)
		}
		// Make the end bound inclusive for the whole day.
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		return start, end, errors.New("end date before start date")
	}
	return start, end, nil
}
