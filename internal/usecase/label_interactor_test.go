package usecase

import (
	"context"
	"testing"

	"github.com/GoArmGo/RecipeApp/internal/database/memory"
	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_CreateAndListSorted(t *testing.T) {
	store := memory.NewStore()
	uc := NewTagUseCase(store, testLogger())
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	for _, name := range []string{"Vegan", "Dessert", "Breakfast"} {
		_, err := uc.Create(ctx, owner, name)
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, other, "Foreign")
	require.NoError(t, err)

	tags, err := uc.List(ctx, owner)
	require.NoError(t, err)

	require.Len(t, tags, 3, "list is scoped to the caller")
	assert.Equal(t, "Breakfast", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
	assert.Equal(t, "Vegan", tags[2].Name)
}

func TestTags_CreateTrimsName(t *testing.T) {
	store := memory.NewStore()
	uc := NewTagUseCase(store, testLogger())

	tag, err := uc.Create(context.Background(), uuid.New(), "  Comfort food ")
	require.NoError(t, err)
	assert.Equal(t, "Comfort food", tag.Name)
	assert.NotZero(t, tag.ID)
}

func TestTags_CreateEmptyName(t *testing.T) {
	store := memory.NewStore()
	uc := NewTagUseCase(store, testLogger())

	_, err := uc.Create(context.Background(), uuid.New(), "   ")
	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Contains(t, ve.Fields, "name")
}

func TestTags_DuplicateNameSameOwner(t *testing.T) {
	store := memory.NewStore()
	uc := NewTagUseCase(store, testLogger())
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	_, err := uc.Create(ctx, owner, "Vegan")
	require.NoError(t, err)

	_, err = uc.Create(ctx, owner, "Vegan")
	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Contains(t, ve.Fields, "name")

	// Другой пользователь может завести тег с тем же именем
	_, err = uc.Create(ctx, other, "Vegan")
	assert.NoError(t, err)
}

func TestIngredients_CreateAndListSorted(t *testing.T) {
	store := memory.NewStore()
	uc := NewIngredientUseCase(store, testLogger())
	ctx := context.Background()
	owner := uuid.New()

	for _, name := range []string{"Salt", "Kale", "Pepper"} {
		_, err := uc.Create(ctx, owner, name)
		require.NoError(t, err)
	}

	ingredients, err := uc.List(ctx, owner)
	require.NoError(t, err)

	require.Len(t, ingredients, 3)
	assert.Equal(t, "Kale", ingredients[0].Name)
	assert.Equal(t, "Pepper", ingredients[1].Name)
	assert.Equal(t, "Salt", ingredients[2].Name)
}

func TestIngredients_Validation(t *testing.T) {
	store := memory.NewStore()
	uc := NewIngredientUseCase(store, testLogger())
	ctx := context.Background()
	owner := uuid.New()

	_, err := uc.Create(ctx, owner, "")
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "name")

	_, err = uc.Create(ctx, owner, "Salt")
	require.NoError(t, err)

	_, err = uc.Create(ctx, owner, "Salt")
	ve, ok = domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "name")
}
