// Package export genera libros xlsx.
package export

import (
	"bytes"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/inventory-management-api/internal/application/ports"
)

var _ ports.SpreadsheetExporter = (*XLSXExporter)(nil)

const defaultColWidth = 18

// XLSXExporter serializa hojas con la primera fila en negrita.
type XLSXExporter struct{}

// NewXLSXExporter crea el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Export(sheets ...ports.Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("export: sin hojas")
	}
	file := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := file.AddSheet(s.Name)
		if err != nil {
			return nil, fmt.Errorf("export: hoja %q: %w", s.Name, err)
		}
		header := sheet.AddRow()
		for _, h := range s.Headers {
			cell := header.AddCell()
			cell.Value = h
			cell.GetStyle().Font.Bold = true
		}
		for _, r := range s.Rows {
			row := sheet.AddRow()
			for _, v := range r {
				row.AddCell().Value = v
			}
		}
		if n := len(s.Headers); n > 0 {
			sheet.SetColWidth(1, n, defaultColWidth)
		}
	}
	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
