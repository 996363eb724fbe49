package report

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// reportSheetName is the single sheet of the exported workbook.
const reportSheetName = "Ops_Report"

// WriteXLSX writes the hit list as an XLSX workbook.
func WriteXLSX(hl *HitList, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(reportSheetName)
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range hl.Columns {
		header.AddCell().SetString(col)
	}

	for _, rowData := range hl.Rows {
		row := sheet.AddRow()
		for _, cell := range rowData {
			row.AddCell().SetString(cell)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "report: save workbook")
	}
	return nil
}

// WriteCSV writes the hit list as a CSV file.
func WriteCSV(hl *HitList, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "report: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(hl.Columns); err != nil {
		return eris.Wrap(err, "report: write header")
	}
	for _, row := range hl.Rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "report: write row")
		}
	}

	return nil
}
