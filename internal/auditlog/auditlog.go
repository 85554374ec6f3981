// Package auditlog records reassignments made by a fix-up run as rows in a
// CSV file, so a run's changes can be reviewed after the fact.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Entry is one reassignment.
type Entry struct {
	Timestamp   time.Time // when the fix-up ran
	Date        time.Time // the transaction's post date
	Description string
	FromAccount string
	ToAccount   string
	Pattern     string // the rule pattern that matched
}

// Header is the CSV header line.
const Header = "timestamp,date,description,from_account,to_account,pattern"

const (
	numFields      = 6
	colTimestamp   = 0
	colDate        = 1
	colDescription = 2
	colFrom        = 3
	colTo          = 4
	colPattern     = 5
)

const dateFormat = "2006-01-02"

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colDate] = e.Date.Format(dateFormat)
	row[colDescription] = e.Description
	row[colFrom] = e.FromAccount
	row[colTo] = e.ToAccount
	row[colPattern] = e.Pattern
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	return Entry{
		Timestamp:   ts,
		Date:        date,
		Description: record[colDescription],
		FromAccount: record[colFrom],
		ToAccount:   record[colTo],
		Pattern:     record[colPattern],
	}, nil
}

// Append writes entries to the audit file at path, creating it (with header)
// on first use.
func Append(path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from the audit file at path. A missing file yields
// an empty result.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	var entries []Entry
	for i, rec := range records {
		if i == 0 && rec[colTimestamp] == "timestamp" {
			continue // header
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
