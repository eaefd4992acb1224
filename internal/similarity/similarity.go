// Package similarity scores how close a candidate recipe title is to titles
// that were already served, using token overlap, character trigrams, edit
// distance and a coarse cooking-technique classifier.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the blended score at or above which a title is a near duplicate
const DefaultThreshold = 0.62

const (
	tokenWeight   = 0.45
	trigramWeight = 0.45
	editWeight    = 0.10
)

// Unspecified labels a title that matches no technique bucket
const Unspecified = "unspecified"

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// stopWords are dropped before comparing token sets. Generic flavor
// adjectives are included so "Creamy Tomato Soup" and "Tomato Soup" collide.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "for": {}, "and": {}, "with": {},
	"to": {}, "on": {}, "in": {}, "easy": {}, "simple": {}, "quick": {},
	"creamy": {}, "savory": {}, "crispy": {},
}

var techniqueBuckets = map[string][]string{
	"skillet": {"skillet", "pan-seared", "pan", "stir-fry", "stirfry", "sauté", "saute", "sear"},
	"grill":   {"grill", "grilled", "skewer", "broil", "broiler"},
	"bake":    {"bake", "baked", "roast", "roasted", "sheet-pan", "sheetpan"},
	"mash":    {"mash", "puree", "purée", "whip"},
	"salad":   {"salad", "bowl", "cold"},
	"soup":    {"soup", "stew", "braise"},
	"wrap":    {"wrap", "taco", "sandwich", "pita"},
}

// Verdict is the outcome of comparing one candidate against an avoid-list
type Verdict struct {
	TooSimilar   bool
	MatchedTitle string
	Score        float64
}

// Tokens lowercases s, splits it into alphanumeric runs and drops stop words
func Tokens(s string) []string {
	words := wordPattern.FindAllString(strings.ToLower(s), -1)
	out := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Tokens(s) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// trigrams maps every character trigram of the lowercased title, with
// spaces replaced by underscores, to its non-overlapping occurrence count.
// "ababa" yields aba:1 and bab:1.
func trigrams(s string) map[string]int {
	t := strings.ReplaceAll(strings.ToLower(s), " ", "_")
	r := []rune(t)
	counts := make(map[string]int)
	for i := 0; i+3 <= len(r); i++ {
		g := string(r[i : i+3])
		if _, seen := counts[g]; !seen {
			counts[g] = strings.Count(t, g)
		}
	}
	return counts
}

func cosine(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for k, va := range a {
		na += float64(va * va)
		if vb, ok := b[k]; ok {
			dot += float64(va * vb)
		}
	}
	for _, vb := range b {
		nb += float64(vb * vb)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// editSimilarity is 1 - distance/max(len) over runes
func editSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(max(la, lb))
}

// TitleSimilarity blends token Jaccard, trigram cosine and edit similarity
// into a score in [0,1]. Identical titles (ignoring case) score 1; a title of
// one character or less scores 0 against anything else.
func TitleSimilarity(a, b string) float64 {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb && la != "" {
		return 1
	}
	if utf8.RuneCountInString(la) <= 1 || utf8.RuneCountInString(lb) <= 1 {
		return 0
	}

	j := jaccard(tokenSet(a), tokenSet(b))
	c := cosine(trigrams(a), trigrams(b))
	l := editSimilarity(la, lb)

	score := trigramWeight*c + tokenWeight*j + editWeight*l
	return math.Min(1, math.Max(0, score))
}

// TooSimilar returns the best match for candidate in avoid. The first title
// reaching the maximum score wins ties.
func TooSimilar(candidate string, avoid []string, threshold float64) Verdict {
	var v Verdict
	for _, t := range avoid {
		if s := TitleSimilarity(candidate, t); s > v.Score {
			v.Score = s
			v.MatchedTitle = t
		}
	}
	v.TooSimilar = len(avoid) > 0 && v.Score >= threshold
	return v
}

// TechniqueLabels classifies a title into technique buckets. A title with no
// technique keywords is labelled Unspecified.
func TechniqueLabels(title string) []string {
	words := tokenSet(title)
	var labels []string
	for label, keys := range techniqueBuckets {
		for _, k := range keys {
			if _, ok := words[k]; ok {
				labels = append(labels, label)
				break
			}
		}
	}
	if len(labels) == 0 {
		return []string{Unspecified}
	}
	sort.Strings(labels)
	return labels
}

// TechniqueTooClose reports whether every avoided title shares at least one
// technique label and the candidate carries one of those shared labels.
// The candidate's own labels are returned for logging.
func TechniqueTooClose(candidate string, avoid []string) (bool, []string) {
	cand := TechniqueLabels(candidate)

	var common map[string]struct{}
	for _, t := range avoid {
		if t == "" {
			continue
		}
		labels := TechniqueLabels(t)
		if common == nil {
			common = make(map[string]struct{}, len(labels))
			for _, l := range labels {
				common[l] = struct{}{}
			}
			continue
		}
		next := make(map[string]struct{})
		for _, l := range labels {
			if _, ok := common[l]; ok {
				next[l] = struct{}{}
			}
		}
		common = next
	}

	if len(common) == 0 {
		return false, cand
	}
	for _, l := range cand {
		if _, ok := common[l]; ok {
			return true, cand
		}
	}
	return false, cand
}
