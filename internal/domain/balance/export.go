package balance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/xuri/excelize/v2"
)

func writeCSV(w io.Writer, sheet Sheet, scale int32) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, entry := range sheet.Entries {
		total := entry.TotalExpense.StringFixed(scale)
		for _, item := range entry.IndividualExpenses {
			record := []string{
				entry.UserID,
				entry.UserName,
				total,
				item.ID,
				item.Amount.StringFixed(scale),
				item.Method.String(),
				item.Description,
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeXLSX(w io.Writer, sheet Sheet, currency *money.Currency) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, title := range exportHeader {
		header[i] = title
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, entry := range sheet.Entries {
		for _, item := range entry.IndividualExpenses {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{
				entry.UserID,
				entry.UserName,
				entry.TotalExpense.InexactFloat64(),
				item.ID,
				item.Amount.InexactFloat64(),
				item.Method.String(),
				item.Description,
			}
			if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	numFmt := amountFormat(currency)
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}
	for _, col := range []string{"C", "E"} {
		if err := f.SetColStyle(sheetName, col, style); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetName, "A", "D", 38); err != nil {
		return err
	}

	return f.Write(w)
}

// amountFormat renders amounts with the currency symbol and minor unit,
// e.g. "$"#,##0.00 for USD.
func amountFormat(currency *money.Currency) string {
	format := "#,##0"
	if currency.Fraction > 0 {
		format += "." + strings.Repeat("0", currency.Fraction)
	}
	if currency.Grapheme == "" {
		return format
	}
	return fmt.Sprintf("%q%s", currency.Grapheme, format)
}
