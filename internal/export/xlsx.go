// Package export writes the scoreboard as a spreadsheet, a chart or a QR code.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/yachtscore/internal/players"
	"github.com/verte-zerg/yachtscore/internal/score"
)

// SheetName is the worksheet holding the scoreboard.
const SheetName = "Scoreboard"

// ErrNothingToExport is returned when there are no players.
var ErrNothingToExport = errors.New("no players to export")

type sheetRow struct {
	label string
	value func(score.Scoreboard) score.Slot
}

func sheetRows() []sheetRow {
	rows := make([]sheetRow, 0, 15)
	for _, c := range score.Categories() {
		if c == score.Choice {
			rows = append(rows,
				sheetRow{label: "Sum", value: func(sb score.Scoreboard) score.Slot { return score.Some(sb.NumbersSum) }},
				sheetRow{label: "Bonus", value: func(sb score.Scoreboard) score.Slot { return score.Some(sb.Bonus) }},
			)
		}
		rows = append(rows, sheetRow{label: c.Label(), value: func(sb score.Scoreboard) score.Slot { return sb.Slot(c) }})
	}
	return append(rows, sheetRow{label: "Total", value: func(sb score.Scoreboard) score.Slot { return score.Some(sb.TotalScore) }})
}

// WriteXLSX writes a workbook with one column per player. Unscored
// categories are left blank.
func WriteXLSX(w io.Writer, entries []players.Entry) (err error) {
	if len(entries) == 0 {
		return ErrNothingToExport
	}
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(entries)+1)
	header = append(header, "Category")
	for _, e := range entries {
		header = append(header, e.Name)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range sheetRows() {
		rowNum := i + 2
		labelCell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, labelCell, r.label); err != nil {
			return fmt.Errorf("failed to write %s: %w", labelCell, err)
		}
		for col, e := range entries {
			slot := r.value(e.Board)
			if !slot.Set {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, int(slot.Value)); err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(entries)+1, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
