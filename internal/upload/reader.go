// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload reads a member spreadsheet and pushes person-creation
// calls to the remote API, one paced request per row.
package upload

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet data row keyed by lowercased header name, plus its
// 1-based line number for reporting.
type Row struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed cell under the given header, or "".
func (r Row) Get(name string) string {
	return strings.TrimSpace(r.Fields[name])
}

// ReadSheet loads the first worksheet of an xlsx file. The first row is the
// header; every following non-empty row becomes a Row.
func ReadSheet(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows found", path)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if isEmpty(rows[i]) {
			continue
		}
		fields := make(map[string]string, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			if j < len(rows[i]) {
				fields[name] = rows[i][j]
			}
		}
		out = append(out, Row{Line: i + 1, Fields: fields})
	}
	return out, nil
}

func isEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
