package ports

import "context"

// ReportCache guarda documentos generados (PDF) por clave.
type ReportCache interface {
	// Get retorna (nil, false, nil) en un miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}
