// Package source reads engineering database exports into raw tables.
package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jalad-shrimali/sector-kml/cells"
)

// Options tune how a file is read.
type Options struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
	// Name labels the resulting table (e.g. "4G").
	Name string
}

// Load reads path into a table based on its extension.
func Load(path string, opts Options) (*cells.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path, opts)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f, opts)
	}
	return nil, fmt.Errorf("%s: unsupported file type (want .xlsx, .xlsm or .csv)", path)
}

func loadWorkbook(path string, opts Options) (*cells.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()
	return ReadWorkbook(f, opts)
}

// ReadWorkbook reads the selected sheet of an open workbook. Cells come back
// as stored values, not their number-formatted display text.
func ReadWorkbook(f *excelize.File, opts Options) (*cells.Table, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("no sheets found in workbook")
		}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return tableFrom(opts.Name, rows)
}

// ReadCSV reads a comma separated export. Files that are not valid UTF-8 are
// decoded as windows-1250 when that code page explains every byte, otherwise
// as latin1.
func ReadCSV(r io.Reader, opts Options) (*cells.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return tableFrom(opts.Name, rows)
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	if s, err := charmap.Windows1250.NewDecoder().Bytes(raw); err == nil && !bytes.ContainsRune(s, utf8.RuneError) {
		return string(s), nil
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding csv: %w", err)
	}
	return string(s), nil
}

// tableFrom takes the first non-empty row as the header and pads every data
// row to the header width.
func tableFrom(name string, rows [][]string) (*cells.Table, error) {
	start := 0
	for start < len(rows) && emptyRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, fmt.Errorf("%s: no header row", tableName(name))
	}

	header := trimTrailing(rows[start])
	t := &cells.Table{Name: name, Header: header}
	for _, r := range rows[start+1:] {
		row := make([]string, len(header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func tableName(name string) string {
	if name == "" {
		return "table"
	}
	return name + " table"
}

func emptyRow(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimTrailing(r []string) []string {
	n := len(r)
	for n > 0 && strings.TrimSpace(r[n-1]) == "" {
		n--
	}
	out := make([]string, n)
	copy(out, r[:n])
	return out
}
