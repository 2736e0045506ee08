// Package activitylog keeps an append-only CSV record of successful
// submissions. It is best-effort: callers log and ignore failures.
package activitylog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp time.Time
	Kind      string // "income" or "expense"
	Category  string
	Amount    float64
}

// Header is the CSV header for the activity log.
const Header = "timestamp,kind,category,amount"

const (
	numFields   = 4
	colTime     = 0
	colKind     = 1
	colCategory = 2
	colAmount   = 3
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colKind] = e.Kind
	row[colCategory] = e.Category
	row[colAmount] = strconv.FormatFloat(e.Amount, 'f', -1, 64)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	amount, err := strconv.ParseFloat(record[colAmount], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return Entry{
		Timestamp: ts,
		Kind:      record[colKind],
		Category:  record[colCategory],
		Amount:    amount,
	}, nil
}

// Append writes entries to the log at path, creating the file and
// header if needed.
func Append(path string, entries []Entry) error {
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
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

// Read returns all entries from the log at path. Returns an empty slice
// if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
