package memory

import (
	"context"
	"sync"

	"pet-adoption/internal/domain/pets"
)

type petRepo struct {
	mu     sync.RWMutex
	byID   map[int64]pets.Pet
	order  []int64
	nextID int64
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:   make(map[int64]pets.Pet),
		nextID: 1,
	}
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clonePet(r.byID[id]))
	}
	return out, nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) Create(ctx context.Context, in pets.NewPet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := pets.Pet{
		ID:        r.nextID,
		Name:      in.Name,
		Species:   in.Species,
		PhotoURL:  cloneStr(in.PhotoURL),
		Age:       cloneInt(in.Age),
		Notes:     cloneStr(in.Notes),
		Available: true,
	}
	r.nextID++

	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return clonePet(p), nil
}

func (r *petRepo) Update(ctx context.Context, id int64, ch pets.Changes) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}

	p.PhotoURL = cloneStr(ch.PhotoURL)
	p.Notes = cloneStr(ch.Notes)
	p.Available = ch.Available

	r.byID[id] = p
	return clonePet(p), nil
}

// Copias profundas de los punteros: nadie de afuera debe poder mutar el map.
func clonePet(p pets.Pet) pets.Pet {
	p.PhotoURL = cloneStr(p.PhotoURL)
	p.Age = cloneInt(p.Age)
	p.Notes = cloneStr(p.Notes)
	return p
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
