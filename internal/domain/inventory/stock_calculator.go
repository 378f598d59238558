package inventory

import (
	"fmt"

	"github.com/jhoicas/inventory-management-api/internal/domain"
)

// Withdraw calcula el stock resultante de retirar qty unidades.
// Nunca devuelve un valor negativo: si no alcanza retorna domain.ErrInsufficientStock.
func Withdraw(current, qty int) (int, error) {
	if qty <= 0 {
		return current, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if current < qty {
		return current, fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, qty, current)
	}
	return current - qty, nil
}

// Deposit calcula el stock resultante de ingresar qty unidades.
func Deposit(current, qty int) (int, error) {
	if qty <= 0 {
		return current, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return current + qty, nil
}

// EnsureAvailable verifica que haya al menos qty unidades sin modificar nada.
func EnsureAvailable(current, qty int) error {
	_, err := Withdraw(current, qty)
	return err
}
