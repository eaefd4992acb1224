package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipify/backend/internal/service"
	"github.com/pageza/recipify/backend/internal/types"
)

func sampleRecipe() *types.Recipe {
	return &types.Recipe{
		Title:           "Egg Fried Rice",
		Description:     "Quick weeknight rice.",
		PrepTime:        "10 minutes",
		CookTime:        "15 minutes",
		Servings:        "2 adult servings",
		IngredientsUsed: []types.Ingredient{{Name: "rice", Quantity: "2", Unit: "cups"}},
		Instructions:    []string{"Fry the rice."},
	}
}

func TestCreateRecipe(t *testing.T) {
	t.Run("success with defaults and merged avoid list", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		ts.generator.On("Generate", mock.Anything, mock.MatchedBy(func(req types.GenerationRequest) bool {
			return assert.ObjectsAreEqual([]string{"rice", "egg"}, req.Ingredients) &&
				req.Cuisine == types.CuisineAny &&
				req.Audience == types.AudienceEveryone &&
				req.Servings == 1 &&
				assert.ObjectsAreEqual([]string{"Beef Tacos", "Chicken Soup"}, req.TitlesToAvoid)
		})).Return(sampleRecipe(), nil, nil).Once()

		rr := ts.do(http.MethodPost, "/api/recipes/",
			`{"ingredients":["rice","egg"],"titlesToAvoid":["Beef Tacos"],"avoidTitles":["Beef Tacos","Chicken Soup"]}`, true)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Contains(t, rr.Body.String(), `"title":"Egg Fried Rice"`)
		assert.Contains(t, rr.Body.String(), `"ingredientsUsed":[{"name":"rice","quantity":"2","unit":"cups"}]`)
		assert.NotContains(t, rr.Body.String(), `"notes"`)
		ts.generator.AssertExpectations(t)
	})

	t.Run("generation error is a 400", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		ts.generator.On("Generate", mock.Anything, mock.Anything).
			Return(nil, &types.GenerationError{Message: "Could not generate a sufficiently different recipe title."}, nil).Once()

		rr := ts.do(http.MethodPost, "/api/recipes/", `{"ingredients":["rice"]}`, true)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Could not generate a sufficiently different recipe title."}`, rr.Body.String())
	})

	t.Run("upstream errors map to their status", func(t *testing.T) {
		cases := []struct {
			kind   service.ErrorKind
			status int
			body   string
		}{
			{service.KindRateLimited, http.StatusTooManyRequests, `{"error":"LLM rate limit/quota exceeded"}`},
			{service.KindAuth, http.StatusUnauthorized, `{"error":"Invalid or missing Gemini API key"}`},
			{service.KindClientUnavailable, http.StatusInternalServerError, `{"error":"Gemini client not initialized (check API key)"}`},
			{service.KindSafetyBlocked, http.StatusPreconditionFailed, `{"error":"Blocked by safety filters for this prompt"}`},
			{service.KindConnectivity, http.StatusServiceUnavailable, `{"error":"Upstream connectivity issue reaching Gemini"}`},
		}
		for _, tc := range cases {
			ts := setupTestServer(t, nil)
			ts.generator.On("Generate", mock.Anything, mock.Anything).
				Return(nil, nil, &service.UpstreamError{Kind: tc.kind}).Once()

			rr := ts.do(http.MethodPost, "/api/recipes/", `{"ingredients":["rice"]}`, true)
			assert.Equal(t, tc.status, rr.Code, tc.kind)
			assert.JSONEq(t, tc.body, rr.Body.String(), tc.kind)
		}
	})

	t.Run("invalid bodies are rejected before generation", func(t *testing.T) {
		bodies := []string{
			`{}`,
			`{"ingredients":[]}`,
			`{"ingredients":[""]}`,
			`{"ingredients":["rice"],"cuisine":"Martian"}`,
			`{"ingredients":["rice"],"audience":"Cats"}`,
			`{"ingredients":["rice"],"servings":-2}`,
			`not json`,
		}
		ts := setupTestServer(t, nil)
		for _, body := range bodies {
			rr := ts.do(http.MethodPost, "/api/recipes/", body, true)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, body)
		}
		ts.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

func TestStreamRecipe(t *testing.T) {
	t.Run("relays chunks as events", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		ts.generator.On("Stream", mock.Anything, mock.Anything).
			Return([]string{`{"title":`, `"Egg Fried Rice"}`}, nil).Once()

		rr := ts.do(http.MethodPost, "/api/recipes/stream", `{"ingredients":["rice"],"cuisine":"Korean"}`, true)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/event-stream"))

		body := rr.Body.String()
		assert.Equal(t, 2, strings.Count(body, "event:chunk"))
		assert.Contains(t, body, `data:{"title":`)
		assert.Contains(t, body, `data:"Egg Fried Rice"}`)
	})

	t.Run("failure before streaming", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		ts.generator.On("Stream", mock.Anything, mock.Anything).
			Return(nil, &service.UpstreamError{Kind: service.KindClientUnavailable}).Once()

		rr := ts.do(http.MethodPost, "/api/recipes/stream", `{"ingredients":["rice"]}`, true)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Gemini client not initialized (check API key)"}`, rr.Body.String())
	})
}
