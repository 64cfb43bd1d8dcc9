package auth

// Role del usuario autenticado. Se asigna al registrarse y no cambia después.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleWalker Role = "walker"
)

// Claims representa la identidad que entrega la capa de autenticación.
// El core la toma como dada (no re-verifica contraseñas ni sesiones aquí).
type Claims struct {
	UserID string
	Role   Role
}
