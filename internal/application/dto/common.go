package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProductSummary referencia corta a un producto.
type ProductSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategorySummary referencia corta a una categoría.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocatorSummary referencia corta a un localizador.
type LocatorSummary struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}
