package pets

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Create valida el formulario completo antes de tocar el repo.
// Si algo falla devuelve ValidationErrors y no escribe nada.
func (s *Service) Create(ctx context.Context, f AddForm) (Pet, error) {
	in, errs := f.Validate()
	if len(errs) > 0 {
		return Pet{}, errs
	}

	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return Pet{}, fmt.Errorf("create pet: %w", err)
	}
	return p, nil
}

// Update solo cambia photo_url, notes y available.
// Name, species y age quedan fuera a propósito.
func (s *Service) Update(ctx context.Context, id int64, f EditForm) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}

	ch, errs := f.Validate()
	if len(errs) > 0 {
		return Pet{}, errs
	}

	p, err := s.repo.Update(ctx, id, ch)
	if err != nil {
		return Pet{}, fmt.Errorf("update pet %d: %w", id, err)
	}
	return p, nil
}
