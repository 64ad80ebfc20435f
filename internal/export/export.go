// Package export renders reports as CSV (gocsv) or XLSX (excelize) downloads.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
)

// Format is a download format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts json, csv or xlsx in any case. Empty means json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Filename is base with the format's extension.
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// sheet is one worksheet of a workbook: a gocsv-tagged row slice.
type sheet struct {
	name string
	rows interface{}
}

// recordCollector is a gocsv.CSVWriter that keeps records in memory.
type recordCollector struct {
	records [][]string
}

func (c *recordCollector) Write(row []string) error {
	c.records = append(c.records, append([]string(nil), row...))
	return nil
}

func (c *recordCollector) Flush()       {}
func (c *recordCollector) Error() error { return nil }

// records flattens a tagged row slice into a header line plus data lines.
func records(rows interface{}) ([][]string, error) {
	c := &recordCollector{}
	if err := gocsv.MarshalCSV(rows, c); err != nil {
		return nil, err
	}
	return c.records, nil
}

func writeCSV(w io.Writer, rows interface{}) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("could not write csv: %w", err)
	}
	return nil
}

// writeXLSX renders every sheet into one workbook. The first sheet replaces
// excelize's default Sheet1.
func writeXLSX(w io.Writer, sheets ...sheet) error {
	book := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			book.SetSheetName("Sheet1", s.name)
		} else {
			book.NewSheet(s.name)
		}
		recs, err := records(s.rows)
		if err != nil {
			return fmt.Errorf("could not build sheet %s: %w", s.name, err)
		}
		for r, rec := range recs {
			for c, value := range rec {
				book.SetCellValue(s.name, fmt.Sprintf("%s%d", excelize.ToAlphaString(c), r+1), value)
			}
		}
	}
	book.SetActiveSheet(1)
	if err := book.Write(w); err != nil {
		return fmt.Errorf("could not write xlsx: %w", err)
	}
	return nil
}
