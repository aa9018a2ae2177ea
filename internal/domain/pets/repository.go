package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven todos los adapters cuando el id no existe.
var ErrNotFound = errors.New("pet not found")

type Repository interface {
	// List devuelve todas las mascotas en orden de almacenamiento (id asc).
	List(ctx context.Context) ([]Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	// Create asigna el ID y persiste con Available = true.
	Create(ctx context.Context, in NewPet) (Pet, error)
	// Update sobrescribe solo PhotoURL, Notes y Available.
	Update(ctx context.Context, id int64, ch Changes) (Pet, error)
}
