package entity

// Tipos de entrada en el historial de stock. Cada transferencia completada aporta una
// salida desde el localizador origen y una entrada al destino.
const (
	MovementTypeIn  = "in"
	MovementTypeOut = "out"
)
