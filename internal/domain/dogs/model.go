package dogs

import "time"

// Size define los tamaños soportados.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Dog pertenece a exactamente un owner. Lo referencian las solicitudes
// de paseo, de ahí sale transitivamente el dueño de cada solicitud.
type Dog struct {
	ID      string
	OwnerID string

	Name string
	Size Size

	CreatedAt time.Time
}
