package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pageza/recipify/backend/internal/types"
)

var fencePattern = regexp.MustCompile("(?s)^```(\\w+)?\\s*\\n?(.*?)\\n?```$")

// StripCodeFence removes surrounding whitespace and a ```lang fence if present
func StripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[2])
	}
	return raw
}

// recipePayload mirrors types.Recipe with pointer fields so missing keys can
// be told apart from empty strings.
type recipePayload struct {
	Title           *string              `json:"title"`
	Description     *string              `json:"description"`
	PrepTime        *string              `json:"prepTime"`
	CookTime        *string              `json:"cookTime"`
	Servings        *string              `json:"servings"`
	IngredientsUsed *[]ingredientPayload `json:"ingredientsUsed"`
	Instructions    *[]string            `json:"instructions"`
	Notes           *string              `json:"notes"`
}

type ingredientPayload struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
}

// ParseRecipeResponse validates raw model output. It returns exactly one of
// a recipe, a model-declared GenerationError, or an error wrapping
// ErrMalformedResponse.
func ParseRecipeResponse(raw string) (*types.Recipe, *types.GenerationError, error) {
	body := StripCodeFence(raw)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil, nil, fmt.Errorf("%w: bad json: %v", ErrMalformedResponse, err)
	}

	if rawErr, ok := obj["error"]; ok {
		var msg string
		if err := json.Unmarshal(rawErr, &msg); err != nil {
			return nil, nil, fmt.Errorf("%w: error field is not a string", ErrMalformedResponse)
		}
		return nil, &types.GenerationError{Message: msg}, nil
	}

	recipe, err := decodeRecipe([]byte(body))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: schema validation failed: %v", ErrMalformedResponse, err)
	}
	return recipe, nil, nil
}

func decodeRecipe(body []byte) (*types.Recipe, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var p recipePayload
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}

	required := []struct {
		name  string
		value *string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"prepTime", p.PrepTime},
		{"cookTime", p.CookTime},
		{"servings", p.Servings},
	}
	for _, f := range required {
		if f.value == nil {
			return nil, fmt.Errorf("missing field %q", f.name)
		}
	}
	if p.IngredientsUsed == nil {
		return nil, fmt.Errorf("missing field %q", "ingredientsUsed")
	}
	if p.Instructions == nil {
		return nil, fmt.Errorf("missing field %q", "instructions")
	}

	ingredients := make([]types.Ingredient, 0, len(*p.IngredientsUsed))
	for i, ing := range *p.IngredientsUsed {
		if ing.Name == nil || ing.Quantity == nil || ing.Unit == nil {
			return nil, fmt.Errorf("ingredientsUsed[%d]: name, quantity and unit are required", i)
		}
		ingredients = append(ingredients, types.Ingredient{
			Name:     *ing.Name,
			Quantity: *ing.Quantity,
			Unit:     *ing.Unit,
		})
	}

	return &types.Recipe{
		Title:           *p.Title,
		Description:     *p.Description,
		PrepTime:        *p.PrepTime,
		CookTime:        *p.CookTime,
		Servings:        *p.Servings,
		IngredientsUsed: ingredients,
		Instructions:    *p.Instructions,
		Notes:           p.Notes,
	}, nil
}
