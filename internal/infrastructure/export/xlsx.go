package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"mailkeeper/internal/domain/credential"
)

const (
	SheetName   = "Emails"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FileName    = "emails.xlsx"
)

type column struct {
	header string
	width  float64
	value  func(credential.Credential) interface{}
}

var columns = []column{
	{header: "ID", width: 10, value: func(c credential.Credential) interface{} { return c.ID }},
	{header: "Email", width: 40, value: func(c credential.Credential) interface{} { return c.Email }},
	{header: "Password", width: 25, value: func(c credential.Credential) interface{} { return c.Password }},
	{header: "App Password", width: 25, value: func(c credential.Credential) interface{} { return optional(c.AppPassword) }},
	{header: "2FA", width: 40, value: func(c credential.Credential) interface{} { return optional(c.SecretKey) }},
	{header: "Recovery Email", width: 40, value: func(c credential.Credential) interface{} { return optional(c.RecoveryEmail) }},
}

// XLSX builds the whole workbook in memory.
type XLSX struct{}

func NewXLSX() *XLSX {
	return &XLSX{}
}

// Export writes a header row followed by one row per record, in input order.
func (x *XLSX) Export(records []credential.Credential) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col.header

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, col.width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, rec := range records {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = col.value(rec)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func optional(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
