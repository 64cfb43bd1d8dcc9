package users

import "time"

// Role define el rol del usuario.
// @Enum owner, walker
type Role string

const (
	RoleOwner  Role = "owner"
	RoleWalker Role = "walker"
)

// User representa una cuenta del marketplace. El rol es excluyente
// (owner o walker) y queda fijo al crearse.
type User struct {
	ID       string
	Username string
	Email    string
	Role     Role

	CreatedAt time.Time
}
