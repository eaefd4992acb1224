package service

import (
	"fmt"
	"strings"

	"github.com/pageza/recipify/backend/internal/types"
)

// assumedStaples are ingredients the user is expected to have on hand
const assumedStaples = "salt, black pepper, water, neutral cooking oil (e.g., vegetable, canola)"

const standardAudienceInstructions = "Standard seasoning and preparation."

const generalBabyInstructions = `**CRITICAL General Guidelines for ALL Baby Recipes (6-12+ months):**
- **Flavor Profile:** ABSOLUTELY NO added salt, NO added sugar, NO honey (especially under 1 year due to botulism risk). Focus on natural flavors. Avoid strong/hot spices (e.g., chili, excessive black pepper) and excessive citrus for younger babies.
- **Safety First:** ALWAYS prioritize avoiding choking hazards. Ensure foods are cooked to appropriate softness. Introduce common allergens cautiously, one at a time.
- **Forbidden Items:** NO honey (under 1 year). NO whole nuts or seeds. NO cow's milk as main drink (under 1 year; small amounts in cooking okay if appropriate). NO highly processed foods.`

var babyRules = map[types.Audience]string{
	types.AudienceBaby6to8: `
- **Texture:** SMOOTH PUREE, completely free of lumps. Easily spoon-fed.
- **Ingredients:** Simple combinations (1-2 ingredients are best) to monitor for allergies and aid digestion.
- **Preparation:** Steam, boil, or bake ingredients until very soft before pureeing.
`,
	types.AudienceBaby9to12: `
- **Texture:** Mashed foods with some soft lumps, or small, soft, melt-in-the-mouth finger foods.
- **Ingredients:** Can introduce more combinations of ingredients. Mild herbs (e.g., parsley, dill) are okay.
- **Preparation:** Ensure finger foods are soft, grabbable, and cut into safe shapes/sizes (e.g., pea-sized or thin strips).
`,
	types.AudienceBaby12Plus: `
- **Texture:** Soft, chopped, easily chewable, more varied. Can be similar to family meals but cut smaller and softer.
- **Flavor:** Still mild. Minimal salt if any, wider range of mild spices/herbs acceptable.
- **Preparation:** Cook soft, chop small. Vigilant about choking hazards (e.g., halve grapes).
`,
}

func audienceInstructions(audience types.Audience) string {
	rules, ok := babyRules[audience]
	if !ok {
		return standardAudienceInstructions
	}
	return generalBabyInstructions + "\n" + rules
}

func cuisineInstructions(cuisine types.Cuisine) string {
	if cuisine != types.CuisineAny {
		return fmt.Sprintf("The desired cuisine style is **%s**. Strive to create a recipe that authentically reflects this style, using appropriate flavor profiles and techniques.", cuisine)
	}
	return "The user has not specified a particular cuisine. You have flexibility, but ensure the dish is coherent and appealing based on the provided ingredients."
}

// BuildRecipePrompt renders the full generation prompt. It is deterministic
// for a given request and performs no I/O.
func BuildRecipePrompt(req types.GenerationRequest) string {
	ingredients := strings.Join(req.Ingredients, ", ")

	variety := "No specific meals to avoid were provided. Generate freely."
	avoidLine := ""
	if len(req.TitlesToAvoid) > 0 {
		avoid := `"` + strings.Join(req.TitlesToAvoid, "; ") + `"`
		variety = fmt.Sprintf("To provide variety, please try to AVOID generating recipes that are very similar to these titles: %s\n", avoid) +
			"Guidance: Aim for a fresh culinary experience. If ingredients strongly point to one of these, or creativity is limited, you may still suggest it, but ideally, offer a different dish or a new angle. Prioritize novelty."
		avoidLine = "Avoid these titles if possible: " + avoid
	}

	var b strings.Builder
	b.WriteString(`You are "Recipify AI Chef".
Your *entire response* MUST be *ONLY* a single JSON object. No other text, explanations, or conversational fluff before, after, or inside the JSON. Adhere strictly to JSON syntax.

### Expected JSON Output Structure:
If successful:
    {
      "title": "Recipe Title (e.g., 'Simple Chicken and Veggie Stir-fry')",
      "description": "A short, appealing description of the dish (1-2 sentences).",
      "prepTime": "e.g., '15 minutes'",
      "cookTime": "e.g., '25 minutes'",
`)
	fmt.Fprintf(&b, `      "servings": "e.g., '%d adult servings' or 'Approx. %d baby portions (6-8 months)'",
`, req.Servings, req.Servings)
	b.WriteString(`      "ingredientsUsed": [
        { "name": "Ingredient Name", "quantity": "Amount", "unit": "e.g., cups, grams, tbsp, or 'to taste' (if appropriate for audience)" }
      ],
      "instructions": [
        "Clear, step-by-step cooking instruction.",
        "Another step..."
      ],
      "notes": "Optional: cooking tips, storage advice, simple variations using ONLY provided ingredients or assumed staples. Notes must be age-appropriate for babies/toddlers."
    }

If a recipe cannot be generated due to constraints:
    {
      "error": "A polite and clear message explaining why a recipe cannot be generated. E.g., 'The ingredients (e.g., only chili peppers) are not suitable for a baby food recipe.' or 'With just water and salt, I can't create a full recipe.'"
    }

### Recipe Generation Rules:
1.  **Ingredients Source:**
`)
	fmt.Fprintf(&b, `    *   Primarily use a subset or all of the user-provided ingredients: "%s".
    *   **Assumed Staples:** You may assume the user has basic staples: **%s**.
`, ingredients, assumedStaples)
	b.WriteString(`    *   **CRITICAL:** If your recipe *requires* any of these assumed staples for a standard preparation, you **MUST include them in the "ingredientsUsed" list** with appropriate quantities (e.g., "1 tsp salt", "2 tbsp oil"). Do NOT introduce other ingredients.
    *   If a liquid base is needed (e.g., for a shake, soup) and not provided by user, 'Water' from assumed staples may be used if sensible, and MUST be listed in 'ingredientsUsed'.

2.  **Edibility & Sanity:** The recipe must be for an **edible dish** with **common and sensible ingredient combinations**. Avoid unsafe or bizarre pairings.

3.  **Sufficiency Check:** If provided ingredients (even with staples) are insufficient for ANY reasonable recipe (e.g., just "water"), nonsensical, or cannot form a coherent dish, respond with the error JSON.

`)
	fmt.Fprintf(&b, "4.  **Cuisine Style:** %s\n\n", cuisineInstructions(req.Cuisine))
	fmt.Fprintf(&b, `5.  **Audience & Servings:**
    *   Target Audience: **%s**. Adhere to the following guidelines:
        %s
    *   Desired Servings: Approximately **%d serving(s)**. Adjust ingredient quantities and "servings" field accordingly. Note: A "serving" for babies/toddlers is smaller than an adult's.

`, req.Audience, audienceInstructions(req.Audience), req.Servings)
	fmt.Fprintf(&b, "6.  **Recipe Variety:** %s\n\n", variety)
	b.WriteString(`7.  **No External Text:** Absolutely NO text or characters outside the main JSON object.
---
`)
	fmt.Fprintf(&b, `User provided ingredients: "%s"
Selected cuisine: "%s"
Selected audience: "%s"
Desired servings: %d
%s
---
Respond with ONLY the JSON object.`, ingredients, req.Cuisine, req.Audience, req.Servings, avoidLine)

	return strings.TrimSpace(b.String())
}
