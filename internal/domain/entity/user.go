package entity

import "time"

// Niveles de privilegio de User.
const (
	PrivilegeWorker      = 1
	PrivilegeStockKeeper = 2
	PrivilegeAdmin       = 3
)

// PrivilegeName devuelve el nombre legible del nivel ("" si no es válido).
func PrivilegeName(p int) string {
	switch p {
	case PrivilegeWorker:
		return "Worker"
	case PrivilegeStockKeeper:
		return "Stock Keeper"
	case PrivilegeAdmin:
		return "Admin"
	}
	return ""
}

// ValidPrivilege indica si p es un nivel conocido.
func ValidPrivilege(p int) bool {
	return PrivilegeName(p) != ""
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string // bcrypt
	Privileges   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SeesAllOrders indica si el usuario puede ver y eliminar órdenes de otros (encargado o admin).
func (u *User) SeesAllOrders() bool {
	return u.Privileges == PrivilegeWorker || u.Privileges == PrivilegeAdmin
}
