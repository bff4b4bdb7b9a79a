// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Members"

// XLSXSink writes the projected rows into a styled xlsx workbook: bold
// header with frozen top row, per-column widths, an autofilter, and a blank
// separator plus a bold group-name row between groups.
type XLSXSink struct {
	file    *excelize.File
	path    string
	nextRow int
	columns int

	headerStyle int
	groupStyle  int
}

// NewXLSXSink creates a workbook that will be saved to path on Close.
func NewXLSXSink(path string) (*XLSXSink, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	groupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "0000FF"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating group style: %w", err)
	}

	return &XLSXSink{
		file:        f,
		path:        path,
		nextRow:     1,
		headerStyle: headerStyle,
		groupStyle:  groupStyle,
	}, nil
}

// WriteHeader writes the styled column header row, applies the column
// widths, and freezes the top row.
func (s *XLSXSink) WriteHeader(columns []string, widths []float64) error {
	s.columns = len(columns)

	cells := make([]any, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	if err := s.file.SetSheetRow(sheetName, "A1", &cells); err != nil {
		return err
	}

	end, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := s.file.SetCellStyle(sheetName, "A1", end, s.headerStyle); err != nil {
		return err
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.file.SetColWidth(sheetName, col, col, w); err != nil {
			return err
		}
	}

	if err := s.file.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	s.nextRow = 2
	return nil
}

// WriteGroupHeader writes a blank separator row (after the first group) and
// a bold group-name row.
func (s *XLSXSink) WriteGroupHeader(name string) error {
	if s.nextRow > 2 {
		s.nextRow++ // blank separator row
	}

	cell, err := excelize.CoordinatesToCellName(1, s.nextRow)
	if err != nil {
		return err
	}
	if err := s.file.SetCellValue(sheetName, cell, name); err != nil {
		return err
	}
	if err := s.file.SetCellStyle(sheetName, cell, cell, s.groupStyle); err != nil {
		return err
	}

	s.nextRow++
	return nil
}

// WriteRow appends one data row.
func (s *XLSXSink) WriteRow(row []string) error {
	cell, err := excelize.CoordinatesToCellName(1, s.nextRow)
	if err != nil {
		return err
	}
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	if err := s.file.SetSheetRow(sheetName, cell, &cells); err != nil {
		return err
	}

	s.nextRow++
	return nil
}

// Close applies the autofilter and saves the workbook.
func (s *XLSXSink) Close() error {
	defer s.file.Close()

	if s.columns > 0 {
		end, err := excelize.CoordinatesToCellName(s.columns, 1)
		if err != nil {
			return err
		}
		if err := s.file.AutoFilter(sheetName, "A1:"+end, nil); err != nil {
			return fmt.Errorf("setting autofilter: %w", err)
		}
	}

	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	return nil
}
