// Package export writes call transcripts to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"callagent/internal/conversation"
)

const (
	// ContentType is the media type of exported files.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	fileExt      = ".xlsx"
	maxSheetName = 31
)

var (
	ErrInvalidFilename = errors.New("invalid export filename")
	ErrFileNotFound    = errors.New("export file not found")
)

var header = []any{"Timestamp", "Speaker", "Text"}

// Rows lays out a record as spreadsheet rows: header, one row per transcript
// entry, blank, summary, blank, call length and price. A record with n
// transcript entries always yields n+6 rows; blank rows are nil.
func Rows(record *conversation.CallRecord) [][]any {
	rows := make([][]any, 0, len(record.Transcripts)+6)
	rows = append(rows, header)
	for _, t := range record.Transcripts {
		rows = append(rows, []any{t.CreatedAt, t.User, t.Text})
	}
	rows = append(rows,
		nil,
		[]any{"Summary", record.Summary},
		nil,
		[]any{"Call Length", formatFloat(record.CallLength) + " minutes"},
		[]any{"Price", "$" + formatFloat(record.Price)},
	)
	return rows
}

// Filename is the deterministic export file name for a call id. Bytes outside
// [A-Za-z0-9.-] are written as _XX (uppercase hex), so distinct call ids never
// share a file and the name never leaves the export directory.
func Filename(callID string) string {
	var b strings.Builder
	b.WriteString("call_")
	for i := 0; i < len(callID); i++ {
		c := callID[i]
		if isPlain(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "_%02X", c)
	}
	b.WriteString(fileExt)
	return b.String()
}

// SheetName is the worksheet title for a call id, kept within the sheet
// name limits of the format.
func SheetName(callID string) string {
	name := "Call_" + strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']', '\'':
			return '_'
		}
		return r
	}, callID)

	runes := []rune(name)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return string(runes)
}

type Exporter struct {
	Dir string
}

func New(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{Dir: dir}
}

// Write saves the record as a one-sheet workbook and returns the file name.
// An existing export for the same call id is overwritten.
func (e *Exporter) Write(record *conversation.CallRecord) (string, error) {
	if record == nil || record.CallID == "" {
		return "", conversation.ErrMissingCallID
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(record.CallID)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return "", fmt.Errorf("name sheet %q: %w", sheet, err)
	}

	for i, row := range Rows(record) {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	filename := Filename(record.CallID)
	if err := f.SaveAs(filepath.Join(e.Dir, filename)); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}

	return filename, nil
}

// List returns the exported files in the export directory, sorted by name.
func (e *Exporter) List() ([]string, error) {
	entries, err := os.ReadDir(e.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), fileExt) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Path resolves a bare export file name to its location on disk.
func (e *Exporter) Path(filename string) (string, error) {
	if filename == "" ||
		filename != filepath.Base(filename) ||
		strings.ContainsAny(filename, `/\`) ||
		!strings.HasSuffix(filename, fileExt) {
		return "", ErrInvalidFilename
	}

	path := filepath.Join(e.Dir, filename)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrFileNotFound
	}
	return path, nil
}

func isPlain(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.' || c == '-'
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
