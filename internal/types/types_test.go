package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerationRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := NewGenerationRequest([]string{"rice"}, "", "", 2, nil)
		require.NoError(t, err)
		assert.Equal(t, CuisineAny, req.Cuisine)
		assert.Equal(t, AudienceEveryone, req.Audience)
		assert.Equal(t, 2, req.Servings)
		assert.NotNil(t, req.TitlesToAvoid)
		assert.Empty(t, req.TitlesToAvoid)
	})

	t.Run("copies caller slices", func(t *testing.T) {
		ingredients := []string{"rice", "egg"}
		avoid := []string{"Beef Tacos"}
		req, err := NewGenerationRequest(ingredients, CuisineKorean, AudienceBaby9to12, 1, avoid)
		require.NoError(t, err)

		ingredients[0] = "changed"
		avoid[0] = "changed"
		assert.Equal(t, []string{"rice", "egg"}, req.Ingredients)
		assert.Equal(t, []string{"Beef Tacos"}, req.TitlesToAvoid)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewGenerationRequest(nil, CuisineAny, AudienceEveryone, 1, nil)
		assert.Error(t, err)
		_, err = NewGenerationRequest([]string{"rice"}, "Martian", AudienceEveryone, 1, nil)
		assert.Error(t, err)
		_, err = NewGenerationRequest([]string{"rice"}, CuisineAny, "Cats", 1, nil)
		assert.Error(t, err)
		_, err = NewGenerationRequest([]string{"rice"}, CuisineAny, AudienceEveryone, 0, nil)
		assert.Error(t, err)
	})
}

func TestAudience(t *testing.T) {
	assert.True(t, AudienceBaby6to8.IsBaby())
	assert.True(t, AudienceBaby12Plus.IsBaby())
	assert.False(t, AudienceEveryone.IsBaby())
	assert.True(t, Audience("Baby (9-12 months)").Valid())
	assert.False(t, Audience("baby").Valid())
}

func TestRecipeRequest(t *testing.T) {
	t.Run("merges the legacy avoid field", func(t *testing.T) {
		r := RecipeRequest{
			TitlesToAvoid: []string{"Beef Tacos", "", "Chicken Soup"},
			AvoidTitles:   []string{"Chicken Soup", "Pesto Pasta", "Beef Tacos"},
		}
		assert.Equal(t, []string{"Beef Tacos", "Chicken Soup", "Pesto Pasta"}, r.AvoidList())
	})

	t.Run("decodes and defaults servings", func(t *testing.T) {
		var r RecipeRequest
		require.NoError(t, json.Unmarshal([]byte(`{"ingredients":["rice"],"audience":"Baby (6-8 months)","avoidTitles":["Congee"]}`), &r))

		req, err := r.ToGenerationRequest()
		require.NoError(t, err)
		assert.Equal(t, 1, req.Servings)
		assert.Equal(t, AudienceBaby6to8, req.Audience)
		assert.Equal(t, []string{"Congee"}, req.TitlesToAvoid)
	})

	t.Run("explicit negative servings are rejected", func(t *testing.T) {
		r := RecipeRequest{Ingredients: []string{"rice"}, Servings: -1}
		_, err := r.ToGenerationRequest()
		assert.Error(t, err)
	})
}

func TestRecipeJSON(t *testing.T) {
	notes := "Serve warm."
	blob, err := json.Marshal(Recipe{
		Title:           "Congee",
		IngredientsUsed: []Ingredient{{Name: "rice", Quantity: "1", Unit: "cup"}},
		Instructions:    []string{"Simmer."},
		Notes:           &notes,
	})
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(blob, &fields))
	for _, key := range []string{"title", "description", "prepTime", "cookTime", "servings", "ingredientsUsed", "instructions", "notes"} {
		assert.Contains(t, fields, key)
	}

	blob, err = json.Marshal(GenerationError{Message: "nope"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"nope"}`, string(blob))
}
