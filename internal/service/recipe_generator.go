package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/recipify/backend/internal/cache"
	"github.com/pageza/recipify/backend/internal/metrics"
	"github.com/pageza/recipify/backend/internal/similarity"
	"github.com/pageza/recipify/backend/internal/types"
)

// MaxAttempts bounds the generate-validate-gate cycles per request
const MaxAttempts = 3

// GeneratorConfig tunes the diversity gate
type GeneratorConfig struct {
	// Temperature is the sampling temperature of the first attempt
	Temperature float64
	// SimilarityThreshold defaults to similarity.DefaultThreshold when zero
	SimilarityThreshold float64
}

// RecipeGenerator runs the diversity-gated generation loop
type RecipeGenerator struct {
	llm         LLMClient
	cache       cache.ResponseCache
	temperature float64
	threshold   float64
	logger      zerolog.Logger
}

// NewRecipeGenerator creates a RecipeGenerator. llm may be nil, in which case
// every call fails with KindClientUnavailable; responseCache may be nil.
func NewRecipeGenerator(llm LLMClient, responseCache cache.ResponseCache, cfg GeneratorConfig, logger zerolog.Logger) *RecipeGenerator {
	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = similarity.DefaultThreshold
	}
	return &RecipeGenerator{
		llm:         llm,
		cache:       responseCache,
		temperature: cfg.Temperature,
		threshold:   threshold,
		logger:      logger,
	}
}

// AttemptTemperatures returns the escalating temperature schedule
func AttemptTemperatures(base float64) []float64 {
	return []float64{
		base,
		math.Min(base+0.2, 1.1),
		math.Min(base+0.4, 1.2),
	}
}

// RequestKey fingerprints the generation parameters
func RequestKey(req types.GenerationRequest) string {
	avoid := req.TitlesToAvoid
	if avoid == nil {
		avoid = []string{}
	}
	blob, _ := json.Marshal([]interface{}{req.Ingredients, req.Cuisine, req.Audience, req.Servings, avoid})
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}

func attemptKey(base string, attempt int, temperature float64) string {
	return fmt.Sprintf("%s:%d:%.2f", base, attempt, temperature)
}

func (g *RecipeGenerator) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &g.logger
}

func (g *RecipeGenerator) unavailable() error {
	metrics.UpstreamErrors.WithLabelValues(string(KindClientUnavailable)).Inc()
	return &UpstreamError{Kind: KindClientUnavailable, Message: "no generation client configured"}
}

func (g *RecipeGenerator) call(ctx context.Context, key, prompt string, temperature float64) (string, error) {
	compute := func(ctx context.Context) (string, error) {
		return g.llm.GenerateContent(ctx, prompt, temperature)
	}
	if g.cache == nil {
		return compute(ctx)
	}

	raw, hit, err := g.cache.GetOrCompute(ctx, key, compute)
	if err != nil {
		return "", err
	}
	if hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	return raw, nil
}

// Generate returns the first recipe that passes validation and the
// diversity gate. A model refusal or exhausted attempts yield a
// GenerationError; classified client failures are returned as error and
// abort immediately.
func (g *RecipeGenerator) Generate(ctx context.Context, req types.GenerationRequest) (*types.Recipe, *types.GenerationError, error) {
	start := time.Now()
	result := "error"
	defer func() {
		metrics.GenerationResults.WithLabelValues(result).Inc()
		metrics.GenerationDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	if g.llm == nil {
		return nil, nil, g.unavailable()
	}

	logger := g.log(ctx)
	prompt := BuildRecipePrompt(req)
	baseKey := RequestKey(req)
	temps := AttemptTemperatures(g.temperature)

	var lastReason string
	for i, temp := range temps {
		attempt := i + 1

		raw, err := g.call(ctx, attemptKey(baseKey, attempt, temp), prompt, temp)
		if err != nil {
			ue := ClassifyGeminiError(err)
			metrics.GenerationAttempts.WithLabelValues("upstream_error").Inc()
			metrics.UpstreamErrors.WithLabelValues(string(ue.Kind)).Inc()
			logger.Error().Err(err).Str("kind", string(ue.Kind)).Int("attempt", attempt).Msg("generation aborted")
			return nil, nil, ue
		}

		recipe, modelErr, err := ParseRecipeResponse(raw)
		if err != nil {
			if !errors.Is(err, ErrMalformedResponse) {
				return nil, nil, err
			}
			metrics.GenerationAttempts.WithLabelValues("malformed").Inc()
			lastReason = err.Error()
			logger.Warn().Err(err).Int("attempt", attempt).Float64("temperature", temp).Msg("discarding malformed response")
			continue
		}

		if modelErr != nil {
			metrics.GenerationAttempts.WithLabelValues("model_error").Inc()
			result = "model_error"
			logger.Info().Str("reason", modelErr.Message).Msg("model declined to generate a recipe")
			return nil, modelErr, nil
		}

		verdict := similarity.TooSimilar(recipe.Title, req.TitlesToAvoid, g.threshold)
		techClose, labels := similarity.TechniqueTooClose(recipe.Title, req.TitlesToAvoid)
		if verdict.TooSimilar || techClose {
			metrics.GenerationAttempts.WithLabelValues("rejected").Inc()
			lastReason = fmt.Sprintf("similar to '%s' (sim=%.2f) or tech-close=%t", verdict.MatchedTitle, verdict.Score, techClose)
			logger.Info().
				Int("attempt", attempt).
				Int("max_attempts", len(temps)).
				Str("title", recipe.Title).
				Str("matched", verdict.MatchedTitle).
				Float64("similarity", verdict.Score).
				Bool("tech_close", techClose).
				Strs("labels", labels).
				Float64("temperature", temp).
				Msg("rejected near-duplicate recipe")
			continue
		}

		metrics.GenerationAttempts.WithLabelValues("accepted").Inc()
		result = "accepted"
		return recipe, nil, nil
	}

	result = "exhausted"
	msg := strings.TrimSpace("Could not generate a sufficiently different recipe title. " + lastReason)
	return nil, &types.GenerationError{Message: msg}, nil
}

// Stream returns the text fragments of a single generation at the base
// temperature. Streamed output is not validated or diversity-gated.
func (g *RecipeGenerator) Stream(ctx context.Context, req types.GenerationRequest) ([]string, error) {
	if g.llm == nil {
		return nil, g.unavailable()
	}

	chunks, err := g.llm.StreamContent(ctx, BuildRecipePrompt(req), g.temperature)
	if err != nil {
		ue := ClassifyGeminiError(err)
		metrics.UpstreamErrors.WithLabelValues(string(ue.Kind)).Inc()
		return nil, ue
	}
	return chunks, nil
}
