package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"disruption-stats-go/internal/types"
)

const (
	SheetMonthly  = "Per maand"
	SheetCauses   = "Oorzaken"
	SheetPerMonth = "Oorzaken per maand"
)

// WriteWorkbook writes one sheet per chart series of a year as xlsx.
func WriteWorkbook(w io.Writer, year string, monthly, causes types.Series, perMonth types.MultiSeries) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMonthly); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSingle(f, SheetMonthly, "Maand "+year, monthly); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetCauses); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if err := writeSingle(f, SheetCauses, "Oorzaak "+year, causes); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetPerMonth); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if err := writeMulti(f, SheetPerMonth, perMonth); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSingle(f *excelize.File, sheet, keyHeader string, s types.Series) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{keyHeader, "Aantal storingen"}); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, label := range s.Labels {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{label, s.Values[i]}); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i, err)
		}
	}
	return nil
}

// writeMulti puts months across the columns and one cause per row.
func writeMulti(f *excelize.File, sheet string, ms types.MultiSeries) error {
	header := make([]any, 0, len(ms.Labels)+1)
	header = append(header, "Oorzaak")
	for _, l := range ms.Labels {
		header = append(header, l)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, ds := range ms.Datasets {
		row := make([]any, 0, len(ds.Data)+1)
		row = append(row, ds.Label)
		for _, v := range ds.Data {
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i, err)
		}
	}
	return nil
}
