// Package activity records admin actions as a CSV audit trail.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Action names written to the log.
const (
	ActionLogin              = "login"
	ActionCardShown          = "kpi.show"
	ActionCardHidden         = "kpi.hide"
	ActionRatesImported      = "rates.import"
	ActionRateAdd            = "rate.add"
	ActionRateUpdate         = "rate.update"
	ActionRateDelete         = "rate.delete"
	ActionOptionAdd          = "option.add"
	ActionOptionUpdate       = "option.update"
	ActionOptionDelete       = "option.delete"
	ActionCompanyCreate      = "company.create"
	ActionCompanyUpdate      = "company.update"
	ActionCompanyClear       = "company.clear"
	ActionCompanyDelete      = "company.delete"
	ActionRegistrationCreate = "registration.create"
	ActionRefresh            = "company.refresh"
	ActionEnrich             = "enrich"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp time.Time
	Actor     string
	Action    string
	Details   string
	Subject   string
}

// Header is the CSV header for activity.csv.
const Header = "timestamp,actor,action,details,subject"

const (
	numFields    = 5
	logDir       = "logs"
	logFile      = "logs/activity.csv"
	colTimestamp = 0
	colActor     = 1
	colAction    = 2
	colDetails   = 3
	colSubject   = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colActor] = e.Actor
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colSubject] = e.Subject
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

	return Entry{
		Timestamp: ts,
		Actor:     record[colActor],
		Action:    record[colAction],
		Details:   record[colDetails],
		Subject:   record[colSubject],
	}, nil
}

// Log appends entries under a workspace directory, or keeps them in memory
// when the workspace is empty.
type Log struct {
	root   string
	memory []Entry
}

// New returns a log rooted at workspace. An empty workspace keeps entries in
// memory only.
func New(workspace string) *Log {
	return &Log{root: workspace}
}

// Path returns the log file path, or "" for an in-memory log.
func (l *Log) Path() string {
	if l.root == "" {
		return ""
	}
	return filepath.Join(l.root, logFile)
}

// Append records entries.
func (l *Log) Append(entries ...Entry) error {
	if l.root == "" {
		l.memory = append(l.memory, entries...)
		return nil
	}
	return Append(l.root, entries)
}

// Read returns every recorded entry, oldest first.
func (l *Log) Read() ([]Entry, error) {
	if l.root == "" {
		out := make([]Entry, len(l.memory))
		copy(out, l.memory)
		return out, nil
	}
	return Read(l.root)
}

// Append writes entries to <root>/logs/activity.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
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

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/activity.csv.
// Returns nil if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
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
