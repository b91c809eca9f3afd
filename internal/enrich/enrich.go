// Package enrich reads reference-keyed CSV files used to annotate companies
// with extra attributes.
package enrich

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openaccounting/oadmin/internal/model"
)

// DefaultKey names the value of a two-column row.
const DefaultKey = "value"

// Row is one enrichment line. Key is DefaultKey for reference,value lines.
type Row struct {
	Reference string
	Key       string
	Value     string
}

var headerCells = map[string]bool{
	"reference":          true,
	"customerref":        true,
	"customer_reference": true,
}

// ParseRows parses reference,value or reference,key,value lines. Blank lines,
// a header row and lines with fewer than two fields are skipped; it never
// fails. Fields past the third are folded back into the value. Only the first
// non-blank line can be a header.
func ParseRows(text string) []Row {
	rows, _ := parseRows(text)
	return rows
}

// parseRows also reports how many non-blank lines were too short to use.
func parseRows(text string) ([]Row, int) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var rows []Row
	skipped := 0
	first := true
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitLine(line)
		header := first && headerCells[strings.ToLower(cells[0])]
		first = false
		if header {
			continue
		}
		if len(cells) < 2 {
			skipped++
			continue
		}

		row := Row{Reference: cells[0], Key: DefaultKey, Value: cells[1]}
		if len(cells) >= 3 {
			row.Key = cells[1]
			row.Value = strings.Join(cells[2:], ",")
		}
		rows = append(rows, row)
	}
	return rows, skipped
}

// splitLine reads one CSV record, falling back to a plain comma split when the
// quoting is broken.
func splitLine(line string) []string {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cells, err := cr.Read()
	if err != nil {
		cells = strings.Split(line, ",")
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// Index groups row values by reference. Later rows overwrite earlier ones
// with the same key.
func Index(rows []Row) map[string]map[string]string {
	idx := make(map[string]map[string]string)
	for _, r := range rows {
		if r.Reference == "" {
			continue
		}
		vals, ok := idx[r.Reference]
		if !ok {
			vals = make(map[string]string)
			idx[r.Reference] = vals
		}
		vals[r.Key] = r.Value
	}
	return idx
}

// Match pairs a company with its enrichment values.
type Match struct {
	Company model.Company
	Values  map[string]string
}

// Apply matches indexed rows to companies by reference, case-insensitively.
// It returns matches in company order and the sorted references that matched
// nothing.
func Apply(companies []model.Company, idx map[string]map[string]string) ([]Match, []string) {
	byRef := make(map[string]string, len(idx))
	for ref := range idx {
		byRef[strings.ToLower(ref)] = ref
	}

	var matches []Match
	used := make(map[string]bool)
	for _, c := range companies {
		ref, ok := byRef[strings.ToLower(c.Reference)]
		if !ok {
			continue
		}
		used[ref] = true
		matches = append(matches, Match{Company: c, Values: idx[ref]})
	}

	var unmatched []string
	for ref := range idx {
		if !used[ref] {
			unmatched = append(unmatched, ref)
		}
	}
	sort.Strings(unmatched)
	return matches, unmatched
}

// FileInfo describes a CSV file waiting in an import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// ProcessedDir is the subdirectory enrichment files are moved to once read.
const ProcessedDir = "processed"

// Scan returns CSV files in dir. A missing directory yields no files.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// ReadFile parses an enrichment file from disk and reports how many lines
// were skipped as unusable.
func ReadFile(path string) ([]Row, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	rows, skipped := parseRows(string(data))
	return rows, skipped, nil
}

// MarkProcessed moves dir/fileName to dir/processed/fileName.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, ProcessedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(dir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
