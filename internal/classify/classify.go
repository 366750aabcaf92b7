// Package classify guesses an article category from its text. The importer
// uses it for feeds whose category is "auto".
package classify

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/veerladharma/news-aggregator/internal/news"
)

// Auto asks the importer to classify each item instead of using a fixed
// category.
const Auto = "auto"

// Fallback is returned when no keyword matches.
const Fallback = news.DefaultArticleCategory

var categoryKeywords = map[string][]string{
	"Technology": {
		"software", "ai", "artificial intelligence", "machine learning", "chip",
		"startup", "app", "smartphone", "cloud", "cyber", "robot", "computer",
		"internet", "open source", "programming", "silicon", "gadget",
	},
	"Health": {
		"health", "hospital", "vaccine", "disease", "medical", "doctor", "patient",
		"cancer", "virus", "mental health", "drug", "nutrition", "clinical", "nhs",
	},
	"Business": {
		"market", "stock", "economy", "inflation", "earnings", "revenue", "profit",
		"merger", "acquisition", "bank", "investor", "shares", "ceo", "trade", "tariff",
	},
	"Science": {
		"science", "research", "study", "scientist", "space", "nasa", "telescope",
		"physics", "biology", "chemistry", "planet", "asteroid", "genome", "quantum",
	},
	"Environment": {
		"climate", "environment", "emissions", "carbon", "wildlife", "pollution",
		"renewable", "solar", "wind power", "deforestation", "biodiversity", "flood", "drought",
	},
	"Politics": {
		"election", "government", "minister", "parliament", "senate", "congress",
		"president", "policy", "vote", "campaign", "law", "court", "diplomat",
	},
	"Sports": {
		"match", "league", "tournament", "championship", "football", "soccer",
		"cricket", "tennis", "olympic", "coach", "goal", "nba", "world cup",
	},
	"Entertainment": {
		"film", "movie", "music", "album", "celebrity", "tv", "series", "streaming",
		"box office", "concert", "festival", "actor", "netflix", "award",
	},
}

// aliases maps short CLI names to categories.
var aliases = map[string]string{
	"tech":    "Technology",
	"biz":     "Business",
	"sci":     "Science",
	"env":     "Environment",
	"pol":     "Politics",
	"sport":   "Sports",
	"ent":     "Entertainment",
	"fun":     "Entertainment",
	"medical": "Health",
}

// Resolve maps a user-supplied category, alias or "auto" to its canonical
// form. Matching is case-insensitive.
func Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, Auto) {
		return Auto, nil
	}
	if cat, ok := aliases[strings.ToLower(name)]; ok {
		return cat, nil
	}
	for _, cat := range news.ArticleCategories {
		if strings.EqualFold(cat, name) {
			return cat, nil
		}
	}
	valid := append([]string{Auto}, news.ArticleCategories...)
	return "", fmt.Errorf("unknown category %q (valid: %s)", name, strings.Join(valid, ", "))
}

// Classify picks the category whose keywords best match title and
// description. Title hits count double; ties go to the earlier category in
// news.ArticleCategories.
func Classify(title, description string) string {
	titleTokens := tokenize(title)
	descTokens := tokenize(description)
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	best, bestScore := "", 0
	for _, cat := range news.ArticleCategories {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(kw, " ") {
				if strings.Contains(titleLower, kw) {
					score += 2
				}
				if strings.Contains(descLower, kw) {
					score++
				}
				continue
			}
			if slices.Contains(titleTokens, kw) {
				score += 2
			}
			if slices.Contains(descTokens, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	if bestScore == 0 {
		return Fallback
	}
	return best
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
