package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigramsCountWithoutOverlap(t *testing.T) {
	assert.Equal(t, map[string]int{"aba": 1, "bab": 1}, trigrams("ababa"))
	assert.Equal(t, map[string]int{"aaa": 1}, trigrams("aaaa"))
	assert.Equal(t, map[string]int{"ab_": 1, "b_a": 1, "_ab": 1}, trigrams("Ab Ab"))
	assert.Empty(t, trigrams("ab"))

	// Repeated patterns weigh the same as a single occurrence.
	assert.InDelta(t, 1.0, cosine(trigrams("ababa"), trigrams("abab")), 1e-9)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"chicken", "stir", "fry"}, Tokens("The Easy Chicken Stir-Fry"))
	assert.Equal(t, []string{"tomato", "soup"}, Tokens("Creamy Tomato Soup"))
	assert.Empty(t, Tokens("A Simple and Quick"))
	assert.Empty(t, Tokens(""))
}

func TestTitleSimilarity(t *testing.T) {
	t.Run("identical titles score one", func(t *testing.T) {
		for _, title := range []string{"Beef Tacos", "The Easy", "x", "Honey Garlic Chicken"} {
			assert.InDelta(t, 1.0, TitleSimilarity(title, title), 1e-9, title)
		}
	})

	t.Run("case is ignored", func(t *testing.T) {
		assert.InDelta(t, 1.0, TitleSimilarity("beef tacos", "BEEF TACOS"), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"Easy Chicken Stir Fry", "Simple Chicken Stir-fry"},
			{"Chicken Soup", "Chicken Noodle Soup"},
			{"Broccoli Beef", "Beef and Broccoli"},
			{"Mango Lassi Smoothie", "Beef Tacos"},
		}
		for _, p := range pairs {
			assert.InDelta(t, TitleSimilarity(p[0], p[1]), TitleSimilarity(p[1], p[0]), 1e-12)
		}
	})

	t.Run("near duplicate after normalization", func(t *testing.T) {
		score := TitleSimilarity("Easy Chicken Stir Fry", "Simple Chicken Stir-fry")
		assert.Greater(t, score, DefaultThreshold)
	})

	t.Run("unrelated titles score near zero", func(t *testing.T) {
		assert.Less(t, TitleSimilarity("Mango Lassi Smoothie", "Beef Tacos"), 0.05)
	})

	t.Run("short and empty titles", func(t *testing.T) {
		assert.Zero(t, TitleSimilarity("", ""))
		assert.Zero(t, TitleSimilarity("", "Beef Tacos"))
		assert.Zero(t, TitleSimilarity("a", "Beef Tacos"))
		assert.Zero(t, TitleSimilarity("Beef Tacos", "b"))
	})

	t.Run("score stays in range", func(t *testing.T) {
		s := TitleSimilarity("Honey Garlic Chicken", "Honey Garlic Chicken Thighs")
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	})
}

func TestTooSimilar(t *testing.T) {
	t.Run("empty avoid list", func(t *testing.T) {
		v := TooSimilar("Anything At All", nil, DefaultThreshold)
		assert.Equal(t, Verdict{}, v)
	})

	t.Run("trips on near duplicate", func(t *testing.T) {
		v := TooSimilar("Easy Chicken Stir Fry", []string{"Simple Chicken Stir-fry"}, DefaultThreshold)
		assert.True(t, v.TooSimilar)
		assert.Equal(t, "Simple Chicken Stir-fry", v.MatchedTitle)
		assert.Greater(t, v.Score, DefaultThreshold)
	})

	t.Run("does not trip on unrelated", func(t *testing.T) {
		v := TooSimilar("Mango Lassi Smoothie", []string{"Beef Tacos"}, DefaultThreshold)
		assert.False(t, v.TooSimilar)
		assert.Less(t, v.Score, 0.05)
	})

	t.Run("best match wins and ties keep first", func(t *testing.T) {
		avoid := []string{"Beef Tacos", "Chicken Noodle Soup", "chicken noodle soup"}
		v := TooSimilar("Chicken Noodle Soup", avoid, DefaultThreshold)
		assert.True(t, v.TooSimilar)
		assert.Equal(t, "Chicken Noodle Soup", v.MatchedTitle)
		assert.InDelta(t, 1.0, v.Score, 1e-9)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		score := TitleSimilarity("Chicken Soup", "Chicken Noodle Soup")
		v := TooSimilar("Chicken Soup", []string{"Chicken Noodle Soup"}, score)
		assert.True(t, v.TooSimilar)
	})
}

func TestTechniqueLabels(t *testing.T) {
	assert.Equal(t, []string{"grill"}, TechniqueLabels("Grilled Chicken Skewer"))
	assert.Equal(t, []string{"bake", "soup"}, TechniqueLabels("Roasted Tomato Soup"))
	assert.Equal(t, []string{"skillet"}, TechniqueLabels("Pan Seared Salmon"))
	assert.Equal(t, []string{Unspecified}, TechniqueLabels("Mango Lassi"))
}

func TestTechniqueTooClose(t *testing.T) {
	t.Run("empty avoid list is never close", func(t *testing.T) {
		tooClose, labels := TechniqueTooClose("Grilled Steak", nil)
		assert.False(t, tooClose)
		assert.Equal(t, []string{"grill"}, labels)
	})

	t.Run("shared technique across every avoided title", func(t *testing.T) {
		tooClose, _ := TechniqueTooClose("Grilled Halloumi", []string{"Grilled Steak", "Chicken Skewer Platter"})
		assert.True(t, tooClose)
	})

	t.Run("no label common to all avoided titles", func(t *testing.T) {
		tooClose, _ := TechniqueTooClose("Grilled Halloumi", []string{"Grilled Steak", "Baked Ziti"})
		assert.False(t, tooClose)
	})

	t.Run("common label not carried by candidate", func(t *testing.T) {
		tooClose, labels := TechniqueTooClose("Lentil Stew", []string{"Grilled Steak", "Grilled Corn"})
		assert.False(t, tooClose)
		assert.Equal(t, []string{"soup"}, labels)
	})

	t.Run("unlabelled titles share the unspecified label", func(t *testing.T) {
		tooClose, labels := TechniqueTooClose("Mango Lassi Smoothie", []string{"Beef Tacos"})
		assert.True(t, tooClose)
		assert.Equal(t, []string{Unspecified}, labels)
	})

	t.Run("blank avoided titles are ignored", func(t *testing.T) {
		tooClose, _ := TechniqueTooClose("Grilled Halloumi", []string{"", ""})
		assert.False(t, tooClose)
	})
}
