// Package storagetest tiene el contrato común que cumple todo pets.Repository.
// Cada adapter lo corre desde su propio _test.go.
package storagetest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/pets"
)

// RunPetsRepo corre el contrato. newRepo debe devolver un repo vacío por llamada.
func RunPetsRepo(t *testing.T, newRepo func(t *testing.T) pets.Repository) {
	t.Helper()

	t.Run("create assigns id and defaults available", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p, err := repo.Create(ctx, pets.NewPet{Name: "Fido", Species: pets.SpeciesDog, Age: intPtr(5)})
		require.NoError(t, err)

		assert.NotZero(t, p.ID)
		assert.True(t, p.Available)
		assert.Nil(t, p.PhotoURL)
		assert.Nil(t, p.Notes)
		assert.Equal(t, pets.GenericImageURL, p.ImageURL())

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(p, got); diff != "" {
			t.Fatalf("stored pet mismatch (-created +got):\n%s", diff)
		}
	})

	t.Run("ids are unique", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Create(ctx, pets.NewPet{Name: "A", Species: pets.SpeciesCat})
		require.NoError(t, err)
		b, err := repo.Create(ctx, pets.NewPet{Name: "B", Species: pets.SpeciesCat})
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("list returns storage order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		empty, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		names := []string{"Whiskers", "Rex", "Spike"}
		species := []pets.Species{pets.SpeciesCat, pets.SpeciesDog, pets.SpeciesPorcupine}
		for i, n := range names {
			_, err := repo.Create(ctx, pets.NewPet{Name: n, Species: species[i]})
			require.NoError(t, err)
		}

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, p := range all {
			assert.Equal(t, names[i], p.Name)
			assert.Equal(t, species[i], p.Species)
		}
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(context.Background(), 4242)
		assert.ErrorIs(t, err, pets.ErrNotFound)
	})

	t.Run("update changes only mutable fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		before, err := repo.Create(ctx, pets.NewPet{
			Name:    "Fido",
			Species: pets.SpeciesDog,
			Age:     intPtr(5),
			Notes:   strPtr("likes long walks"),
		})
		require.NoError(t, err)

		after, err := repo.Update(ctx, before.ID, pets.Changes{
			PhotoURL:  strPtr("http://x.com/a.png"),
			Notes:     strPtr("ten+chars!"),
			Available: false,
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, before.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(after, got); diff != "" {
			t.Fatalf("update result differs from stored (-update +get):\n%s", diff)
		}

		assert.Equal(t, before.Name, got.Name)
		assert.Equal(t, before.Species, got.Species)
		assert.Equal(t, before.Age, got.Age)
		assert.Equal(t, strPtr("http://x.com/a.png"), got.PhotoURL)
		assert.Equal(t, strPtr("ten+chars!"), got.Notes)
		assert.False(t, got.Available)
	})

	t.Run("update can clear optional fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p, err := repo.Create(ctx, pets.NewPet{
			Name:     "Quill",
			Species:  pets.SpeciesPorcupine,
			PhotoURL: strPtr("https://example.com/quill.jpg"),
			Notes:    strPtr("very pointy friend"),
		})
		require.NoError(t, err)

		got, err := repo.Update(ctx, p.ID, pets.Changes{Available: true})
		require.NoError(t, err)

		assert.Nil(t, got.PhotoURL)
		assert.Nil(t, got.Notes)
		assert.True(t, got.Available)
		assert.Equal(t, pets.GenericImageURL, got.ImageURL())
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Update(context.Background(), 4242, pets.Changes{Available: true})
		assert.ErrorIs(t, err, pets.ErrNotFound)
	})
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
