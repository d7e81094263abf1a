package relevance

import (
	"log"
	"sort"
	"strings"

	"github.com/cryptolens/cryptolens/internal/model"
)

// Weights are the per-match score contributions. The values are tuning
// constants carried over from the original product; change them only with
// product guidance.
type Weights struct {
	Title    int
	Summary  int
	TagExact int
}

// DefaultWeights: +3 title substring, +2 summary substring, +5 exact tag match.
var DefaultWeights = Weights{Title: 3, Summary: 2, TagExact: 5}

// Scorer assigns each article a relevance score against a user's scoring
// vocabulary. Stateless and safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	if w == (Weights{}) {
		w = DefaultWeights
	}
	return &Scorer{weights: w}
}

// Score returns a copy of articles with RelevanceScore set, sorted by
// descending score. The sort is stable, so equal scores keep the input order
// (callers pass articles newest-first, degrading ties to recency). An empty
// vocabulary leaves every score at zero and the order untouched.
func (s *Scorer) Score(vocabulary []string, articles []model.Article) []model.Article {
	scored := make([]model.Article, len(articles))
	copy(scored, articles)

	for i := range scored {
		scored[i].RelevanceScore = s.scoreArticle(vocabulary, scored[i])
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	return scored
}

// scoreArticle computes one article's score. A panic while scoring degrades
// that article to zero so a single malformed record never aborts the batch.
func (s *Scorer) scoreArticle(vocabulary []string, article model.Article) (score int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error scoring article %s: %v", article.ID, r)
			score = 0
		}
	}()

	title := strings.ToLower(article.Title)
	summary := strings.ToLower(article.Summary)

	for _, kw := range vocabulary {
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) {
			score += s.weights.Title
		}
		if strings.Contains(summary, kw) {
			score += s.weights.Summary
		}
		for _, tag := range article.Tags {
			if strings.EqualFold(tag, kw) {
				score += s.weights.TagExact
				break
			}
		}
	}
	return score
}

// BuildVocabulary returns the deduplicated, lowercased union of the profile's
// interests, extracted keywords, and competitors, preserving that order.
func BuildVocabulary(profile model.UserProfile) []string {
	seen := make(map[string]struct{})
	var vocab []string

	add := func(terms []string) {
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			vocab = append(vocab, term)
		}
	}

	add(profile.Interests)
	add(profile.ExtractedKeywords)
	add(profile.Competitors)
	return vocab
}
