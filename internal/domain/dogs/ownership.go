package dogs

import "context"

// OwnerOf expone el ownerID de un perro.
// Se usa para evitar ciclos de imports entre módulos (dogs <-> walks/matching).
func (s *Service) OwnerOf(ctx context.Context, dogID string) (string, error) {
	d, err := s.GetByID(ctx, dogID)
	if err != nil {
		return "", err
	}
	return d.OwnerID, nil
}
