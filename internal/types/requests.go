package types

// RecipeRequest is the request body for the recipe generation endpoints.
// AvoidTitles is the legacy name of TitlesToAvoid; both are accepted.
type RecipeRequest struct {
	Ingredients   []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Cuisine       Cuisine  `json:"cuisine"`
	Audience      Audience `json:"audience"`
	Servings      int      `json:"servings"`
	TitlesToAvoid []string `json:"titlesToAvoid"`
	AvoidTitles   []string `json:"avoidTitles"`
}

// AvoidList merges TitlesToAvoid and the legacy AvoidTitles field, keeping
// first-seen order and dropping blanks and exact duplicates.
func (r *RecipeRequest) AvoidList() []string {
	seen := make(map[string]struct{}, len(r.TitlesToAvoid)+len(r.AvoidTitles))
	merged := make([]string, 0, len(r.TitlesToAvoid)+len(r.AvoidTitles))
	for _, list := range [][]string{r.TitlesToAvoid, r.AvoidTitles} {
		for _, t := range list {
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	return merged
}

// ToGenerationRequest converts the body into a validated GenerationRequest.
// Servings defaults to 1 when omitted.
func (r *RecipeRequest) ToGenerationRequest() (GenerationRequest, error) {
	servings := r.Servings
	if servings == 0 {
		servings = 1
	}
	return NewGenerationRequest(r.Ingredients, r.Cuisine, r.Audience, servings, r.AvoidList())
}
