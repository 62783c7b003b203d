package balance

import (
	"errors"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	sheetName    = "Balance Sheet"
	fileBaseName = "balance_sheet"
)

var exportHeader = []string{"User ID", "User Name", "Total Expense", "Expense ID", "Amount", "Method", "Description"}

// ParseFormat accepts a format name case-insensitively. An empty value
// selects CSV.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (f Format) Filename() string {
	return fileBaseName + "." + string(f)
}
