package planning

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"FleetPlanOffice/internal/config"
)

// EmptyExportError aborts an export before any output exists.
type EmptyExportError struct{}

func (e *EmptyExportError) Error() string {
	return "no journal rows to export"
}

// ExportHeader is the fixed column set of both export formats.
var ExportHeader = []string{"No", "Date", "Status", "Note", "Debit Account", "Debit", "Credit Account", "Credit"}

var exportColWidths = []float64{6, 14, 12, 32, 28, 16, 28, 16}

// BuildExportTable rebuilds one tabular row per transaction from the
// journal display rows: the first-in-group row carries the debit leg and
// the shared fields, its sibling carries the credit leg. The same
// grouping output feeds the on-screen journal, so the two views cannot
// diverge.
func BuildExportTable(rows []DisplayRow) ([][]string, error) {
	siblings := make(map[string]DisplayRow, len(rows)/2)
	for _, r := range rows {
		if !r.IsFirstInGroup {
			siblings[r.GroupKey] = r
		}
	}

	table := [][]string{}
	no := 1
	for _, r := range rows {
		if !r.IsFirstInGroup {
			continue
		}
		creditRow := siblings[r.GroupKey]
		table = append(table, []string{
			fmt.Sprint(no),
			r.EntryDate.Format(config.ExportDateFormat),
			r.Status,
			r.Note,
			r.AccountLabel,
			r.Debit.String(),
			creditRow.AccountLabel,
			creditRow.Credit.String(),
		})
		no++
	}

	if len(table) == 0 {
		return nil, &EmptyExportError{}
	}
	return table, nil
}

// WriteCSV writes the header and table as UTF-8 CSV. encoding/csv quotes
// any field containing a comma, quote or newline and doubles internal
// quotes, which is exactly the escaping the consumers expect.
func WriteCSV(w io.Writer, table [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, row := range table {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildXLSX renders the same table as a single named sheet with fixed
// column widths.
func BuildXLSX(table [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := config.ExportSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, width := range exportColWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return nil, err
		}
	}

	for col, title := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range table {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

var disallowedNameChars = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// SanitizePlanningName strips everything outside [A-Za-z0-9 ], collapses
// whitespace runs to a single underscore and trims the ends.
func SanitizePlanningName(name string) string {
	cleaned := disallowedNameChars.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(cleaned), "_")
}

// ExportFilename builds "<name>_<from>_<to>_<today>.<ext>" with
// dd-MM-yyyy dates and "all" substituted for an absent bound.
func ExportFilename(planningName string, dateFrom, dateTo *time.Time, now time.Time, ext string) string {
	from := "all"
	if dateFrom != nil {
		from = dateFrom.Format(config.ExportDateFormat)
	}
	to := "all"
	if dateTo != nil {
		to = dateTo.Format(config.ExportDateFormat)
	}
	return fmt.Sprintf("%s_%s_%s_%s.%s", SanitizePlanningName(planningName), from, to, now.Format(config.ExportDateFormat), ext)
}
