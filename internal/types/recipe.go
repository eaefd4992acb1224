package types

import "fmt"

// Cuisine is the cuisine style requested for a generated recipe
type Cuisine string

const (
	CuisineAny      Cuisine = "Any"
	CuisineItalian  Cuisine = "Italian"
	CuisineMexican  Cuisine = "Mexican"
	CuisineKorean   Cuisine = "Korean"
	CuisineDessert  Cuisine = "Dessert"
	CuisineAmerican Cuisine = "American"
)

// Cuisines lists every accepted cuisine value
var Cuisines = []Cuisine{
	CuisineAny,
	CuisineItalian,
	CuisineMexican,
	CuisineKorean,
	CuisineDessert,
	CuisineAmerican,
}

// Valid reports whether c is one of the known cuisines
func (c Cuisine) Valid() bool {
	for _, known := range Cuisines {
		if c == known {
			return true
		}
	}
	return false
}

// Audience is who the recipe is being cooked for
type Audience string

const (
	AudienceEveryone   Audience = "Everyone"
	AudienceBaby6to8   Audience = "Baby (6-8 months)"
	AudienceBaby9to12  Audience = "Baby (9-12 months)"
	AudienceBaby12Plus Audience = "Baby (12+ months)"
)

// Audiences lists every accepted audience value
var Audiences = []Audience{
	AudienceEveryone,
	AudienceBaby6to8,
	AudienceBaby9to12,
	AudienceBaby12Plus,
}

// Valid reports whether a is one of the known audiences
func (a Audience) Valid() bool {
	for _, known := range Audiences {
		if a == known {
			return true
		}
	}
	return false
}

// IsBaby reports whether the audience is one of the baby age brackets
func (a Audience) IsBaby() bool {
	return a == AudienceBaby6to8 || a == AudienceBaby9to12 || a == AudienceBaby12Plus
}

// Ingredient is a single line of a generated recipe. Values are mirrored
// from model output and never parsed.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Recipe is a validated recipe produced by the model
type Recipe struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	PrepTime        string       `json:"prepTime"`
	CookTime        string       `json:"cookTime"`
	Servings        string       `json:"servings"`
	IngredientsUsed []Ingredient `json:"ingredientsUsed"`
	Instructions    []string     `json:"instructions"`
	Notes           *string      `json:"notes,omitempty"`
}

// GenerationError is a terminal, non-exceptional generation outcome: either
// the model declined or every attempt was rejected.
type GenerationError struct {
	Message string `json:"error"`
}

func (e *GenerationError) Error() string {
	return e.Message
}

// GenerationRequest carries everything needed to generate one recipe
type GenerationRequest struct {
	Ingredients   []string
	Cuisine       Cuisine
	Audience      Audience
	Servings      int
	TitlesToAvoid []string
}

// NewGenerationRequest validates the parameters, applies defaults and copies
// the slices so the request cannot be mutated by the caller afterwards.
func NewGenerationRequest(ingredients []string, cuisine Cuisine, audience Audience, servings int, titlesToAvoid []string) (GenerationRequest, error) {
	if len(ingredients) == 0 {
		return GenerationRequest{}, fmt.Errorf("at least one ingredient is required")
	}
	if cuisine == "" {
		cuisine = CuisineAny
	}
	if !cuisine.Valid() {
		return GenerationRequest{}, fmt.Errorf("unknown cuisine %q", cuisine)
	}
	if audience == "" {
		audience = AudienceEveryone
	}
	if !audience.Valid() {
		return GenerationRequest{}, fmt.Errorf("unknown audience %q", audience)
	}
	if servings <= 0 {
		return GenerationRequest{}, fmt.Errorf("servings must be positive, got %d", servings)
	}

	avoid := make([]string, len(titlesToAvoid))
	copy(avoid, titlesToAvoid)
	ings := make([]string, len(ingredients))
	copy(ings, ingredients)

	return GenerationRequest{
		Ingredients:   ings,
		Cuisine:       cuisine,
		Audience:      audience,
		Servings:      servings,
		TitlesToAvoid: avoid,
	}, nil
}
