// Package verify checks a sketch against a declarative table of expected
// hardware I/O operations.
package verify

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
)

// Entry is one row of the verification table: a function name and the pin
// it is expected to be called with. Pin stays textual; integer coercion
// happens during classification.
type Entry struct {
	Function string
	Pin      string
}

// LoadTable reads a CSV check table from a local path or afs URL.
// The first row is a header and is skipped.
func LoadTable(ctx context.Context, URL string) ([]Entry, error) {
	fs := afs.New()
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read check table %s: %w", URL, err)
	}
	return ParseTable(bytes.NewReader(content))
}

// ParseTable parses check rows. Rows with fewer than two fields are
// tolerated and skipped.
func ParseTable(reader io.Reader) ([]Entry, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse check table: %w", err)
	}

	var entries []Entry
	for i, record := range records {
		if i == 0 {
			// header row (function, pin)
			continue
		}
		if len(record) < 2 {
			continue
		}
		entries = append(entries, Entry{
			Function: strings.TrimSpace(record[0]),
			Pin:      strings.Trim(strings.TrimSpace(record[1]), `"`),
		})
	}
	return entries, nil
}
