package acario

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-acar/acar/sw"
)

// Sheet names used by WriteXLSX.
const (
	SheetConvolution = "convolution"
	SheetSW          = "sw"
)

// WriteXLSX writes t as a workbook. When results is not empty a second sheet
// holds the S/W window and parameters.
func WriteXLSX(w io.Writer, t Table, win sw.Window, results []sw.Result) error {
	if err := t.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetConvolution); err != nil {
		return fmt.Errorf("acario: xlsx: %w", err)
	}

	meta := [][]any{
		{"Input file", t.InputName},
		{"Date", t.Date.Format(dateLayout)},
	}
	for i, row := range meta {
		if err := setRow(f, SheetConvolution, 1, i+1, row); err != nil {
			return err
		}
	}

	const headerRow = 4
	labels := []any{""}
	titles := []any{t.momentumLabel()}
	for i, c := range t.Columns {
		labels = append(labels, fmt.Sprintf("FWHM%d=%0.3f", i+1, c.FWHM))
		titles = append(titles, rateLabel)
	}
	if err := setRow(f, SheetConvolution, 1, headerRow, labels); err != nil {
		return err
	}
	if err := setRow(f, SheetConvolution, 1, headerRow+1, titles); err != nil {
		return err
	}

	momentum := t.Columns[0].Density.Momentum()
	rates := make([][]float64, len(t.Columns))
	for i, c := range t.Columns {
		rates[i] = c.Density.Rate()
	}
	for i, q := range momentum {
		row := make([]any, 0, len(rates)+1)
		row = append(row, q)
		for _, r := range rates {
			row = append(row, r[i])
		}
		if err := setRow(f, SheetConvolution, 1, headerRow+2+i, row); err != nil {
			return err
		}
	}

	if len(results) > 0 {
		if _, err := f.NewSheet(SheetSW); err != nil {
			return fmt.Errorf("acario: xlsx: %w", err)
		}
		rows := [][]any{
			{"S cut", win.SCut},
			{"W min", win.WLow},
			{"W max", win.WHigh},
			{},
			{"", "S", "W"},
		}
		for i, r := range results {
			rows = append(rows, []any{fmt.Sprintf("FWHM%d=%0.3f", i+1, t.fwhmAt(i)), r.S, r.W})
		}
		for i, row := range rows {
			if err := setRow(f, SheetSW, 1, i+1, row); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("acario: xlsx: %w", err)
	}
	return nil
}

func (t Table) fwhmAt(i int) float64 {
	if i < len(t.Columns) {
		return t.Columns[i].FWHM
	}
	return 0
}

func setRow(f *excelize.File, sheet string, col, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("acario: xlsx: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("acario: xlsx: %w", err)
	}
	return nil
}
