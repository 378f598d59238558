package ports

import (
	"context"
	"io"
)

// FileStorage define el puerto de salida para guardar adjuntos (disco local, S3).
type FileStorage interface {
	// Put guarda el contenido bajo key, reemplazando lo que hubiera.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get abre el objeto. Retorna domain.ErrNotFound si no existe; el caller cierra el reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete elimina el objeto; borrar una clave inexistente no es error.
	Delete(ctx context.Context, key string) error
}
