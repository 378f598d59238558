package ports

// Sheet tabla plana a exportar: encabezados y filas ya formateadas.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// SpreadsheetExporter serializa hojas a un libro de cálculo (xlsx).
type SpreadsheetExporter interface {
	Export(sheets ...Sheet) ([]byte, error)
}
