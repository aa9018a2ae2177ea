package pets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/pets"
)

func TestService_Create_FidoScenario(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, pets.AddForm{Name: "Fido", Species: "dog", Age: "5"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fido", got.Name)
	assert.Equal(t, pets.SpeciesDog, got.Species)
	assert.Equal(t, intPtr(5), got.Age)
	assert.True(t, got.Available)
	assert.Nil(t, got.PhotoURL)
	assert.Equal(t, pets.GenericImageURL, got.ImageURL())
}

func TestService_Create_InvalidPersistsNothing(t *testing.T) {
	repo := memory.NewPetRepo()
	svc := pets.NewService(repo)
	ctx := context.Background()

	forms := []pets.AddForm{
		{Name: "Spot", Species: "iguana"},
		{Name: "Old", Species: "cat", Age: "31"},
		{Name: "Young", Species: "cat", Age: "-1"},
		{Name: "Brief", Species: "dog", Notes: "123456789"},
		{Name: "", Species: "dog"},
	}
	for _, f := range forms {
		_, err := svc.Create(ctx, f)

		var verrs pets.ValidationErrors
		require.True(t, errors.As(err, &verrs), "expected ValidationErrors for %+v, got %v", f, err)
		assert.NotEmpty(t, verrs)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_Update_OnlyMutableFields(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo())
	ctx := context.Background()

	before, err := svc.Create(ctx, pets.AddForm{Name: "Fido", Species: "dog", Age: "5"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, before.ID, pets.EditForm{
		PhotoURL:  "http://x.com/a.png",
		Notes:     "ten+chars!",
		Available: false,
	})
	require.NoError(t, err)

	after, err := svc.Get(ctx, before.ID)
	require.NoError(t, err)

	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Species, after.Species)
	assert.Equal(t, before.Age, after.Age)
	assert.Equal(t, strPtr("http://x.com/a.png"), after.PhotoURL)
	assert.Equal(t, strPtr("ten+chars!"), after.Notes)
	assert.False(t, after.Available)
	assert.Equal(t, "http://x.com/a.png", after.ImageURL())
}

func TestService_Update_InvalidLeavesPetUntouched(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo())
	ctx := context.Background()

	before, err := svc.Create(ctx, pets.AddForm{Name: "Milo", Species: "cat", Notes: "loves sunny windows"})
	require.NoError(t, err)

	// URL válida pero notes inválidas: no se aplica nada (todo o nada)
	_, err = svc.Update(ctx, before.ID, pets.EditForm{PhotoURL: "http://x.com/milo.png", Notes: "short", Available: false})
	var verrs pets.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	after, err := svc.Get(ctx, before.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestService_NotFound(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo())
	ctx := context.Background()

	for _, id := range []int64{0, -3, 77} {
		_, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, pets.ErrNotFound, "get %d", id)

		_, err = svc.Update(ctx, id, pets.EditForm{Available: true})
		assert.ErrorIs(t, err, pets.ErrNotFound, "update %d", id)
	}
}

func TestService_List_StorageOrder(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo())
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, pets.AddForm{Name: name, Species: "cat"})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Name, all[1].Name, all[2].Name})
}
