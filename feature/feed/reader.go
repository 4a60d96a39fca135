package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Row is one raw feed record, keyed by header column name.
// Missing fields read as empty strings; validation happens in MapRow.
type Row map[string]string

// Rows is a lazy, forward-only cursor over the feed records.
// It is finite, yields rows in feed order, and is not restartable once
// exhausted.
type Rows struct {
	cr     *csv.Reader
	header []string
	closer io.Closer
}

// NewRows creates a cursor reading from an in-memory or arbitrary source.
// This is the injection point for deterministic tests without live network
// access.
func NewRows(r io.Reader, delimiter rune) (*Rows, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	// Ragged records are tolerated; short rows read as empty fields and the
	// row mapper decides whether the result is usable.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed header: %w", err)
	}

	// Some exports prepend a UTF-8 BOM to the first column name.
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return &Rows{cr: cr, header: header}, nil
}

// Header returns the column names from the feed's first line.
func (rs *Rows) Header() []string {
	return rs.header
}

// Next returns the next row in feed order, or io.EOF once exhausted.
func (rs *Rows) Next() (Row, error) {
	record, err := rs.cr.Read()
	if err != nil {
		return nil, err
	}

	row := make(Row, len(rs.header))
	for i, name := range rs.header {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row, nil
}

// Close releases the underlying network stream, if any.
func (rs *Rows) Close() error {
	if rs.closer != nil {
		return rs.closer.Close()
	}
	return nil
}

// UnavailableError reports that the remote feed could not be fetched.
// It is fatal to the whole run; no partial feed processing is attempted.
type UnavailableError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed unavailable: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("feed unavailable: %s returned status %d", e.URL, e.StatusCode)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Fetch performs one HTTP GET of the configured feed URL and returns a row
// cursor streaming from the response body. Callers must Close the cursor.
func Fetch(ctx context.Context, cfg Config) (*Rows, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, &UnavailableError{URL: cfg.URL, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &UnavailableError{URL: cfg.URL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, &UnavailableError{URL: cfg.URL, StatusCode: resp.StatusCode}
	}

	rows, err := NewRows(resp.Body, cfg.DelimiterRune())
	if err != nil {
		_ = resp.Body.Close()
		// A feed without a readable header line is as good as no feed.
		return nil, &UnavailableError{URL: cfg.URL, Err: err}
	}
	rows.closer = resp.Body

	return rows, nil
}
