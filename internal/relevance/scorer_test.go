package relevance

import (
	"reflect"
	"testing"

	"github.com/cryptolens/cryptolens/internal/model"
)

func TestScoreArithmetic(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{{
		Title:   "Bitcoin rises",
		Summary: "market update",
		Tags:    []string{"Bitcoin"},
	}}

	scored := s.Score([]string{"bitcoin"}, articles)
	// +3 title substring, +0 summary, +5 exact tag match
	if scored[0].RelevanceScore != 8 {
		t.Errorf("Expected score 8, got %d", scored[0].RelevanceScore)
	}
}

func TestScoreTagMatchIsExact(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{{
		Title: "Market roundup",
		Tags:  []string{"bitcoin-cash"},
	}}

	scored := s.Score([]string{"bitcoin"}, articles)
	if scored[0].RelevanceScore != 0 {
		t.Errorf("Substring tag should not match, got score %d", scored[0].RelevanceScore)
	}
}

func TestScoreSummarySubstring(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{{
		Title:   "Weekly digest",
		Summary: "Ethereum gas fees drop after upgrade",
	}}

	scored := s.Score([]string{"ethereum"}, articles)
	if scored[0].RelevanceScore != 2 {
		t.Errorf("Expected score 2, got %d", scored[0].RelevanceScore)
	}
}

func TestScoreMultipleKeywordsAccumulate(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{{
		Title:   "Bitcoin and ethereum rally",
		Summary: "bitcoin leads the market",
		Tags:    []string{"Ethereum"},
	}}

	scored := s.Score([]string{"bitcoin", "ethereum"}, articles)
	// bitcoin: 3 (title) + 2 (summary); ethereum: 3 (title) + 5 (tag)
	if scored[0].RelevanceScore != 13 {
		t.Errorf("Expected score 13, got %d", scored[0].RelevanceScore)
	}
}

func TestScoreEmptyFieldsSafe(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{{}}
	scored := s.Score([]string{"bitcoin"}, articles)
	if scored[0].RelevanceScore != 0 {
		t.Errorf("Expected score 0 for empty article, got %d", scored[0].RelevanceScore)
	}
}

func TestScoreNilTagsSafe(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{{Title: "Bitcoin rises", Tags: nil}}
	scored := s.Score([]string{"bitcoin"}, articles)
	if scored[0].RelevanceScore != 3 {
		t.Errorf("Expected score 3, got %d", scored[0].RelevanceScore)
	}
}

func TestScoreSortsDescending(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{
		{ID: "low", Title: "Stocks climb"},
		{ID: "high", Title: "Bitcoin surges", Tags: []string{"bitcoin"}},
		{ID: "mid", Summary: "bitcoin mentioned in passing"},
	}

	scored := s.Score([]string{"bitcoin"}, articles)
	for i := 1; i < len(scored); i++ {
		if scored[i-1].RelevanceScore < scored[i].RelevanceScore {
			t.Errorf("Output not sorted descending at index %d", i)
		}
	}
	if scored[0].ID != "high" || scored[1].ID != "mid" || scored[2].ID != "low" {
		t.Errorf("Unexpected order: %s, %s, %s", scored[0].ID, scored[1].ID, scored[2].ID)
	}
}

func TestScoreTiesKeepInputOrder(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{
		{ID: "newest", Title: "Bitcoin news"},
		{ID: "older", Title: "Bitcoin update"},
	}

	scored := s.Score([]string{"bitcoin"}, articles)
	if scored[0].ID != "newest" || scored[1].ID != "older" {
		t.Errorf("Equal scores should keep input order, got %s then %s", scored[0].ID, scored[1].ID)
	}
}

func TestScoreEmptyVocabularyPassthrough(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{
		{ID: "a", Title: "Bitcoin"},
		{ID: "b", Title: "Ethereum"},
		{ID: "c", Title: "Solana"},
	}

	scored := s.Score(nil, articles)
	for i, a := range scored {
		if a.RelevanceScore != 0 {
			t.Errorf("Expected zero score, got %d", a.RelevanceScore)
		}
		if a.ID != articles[i].ID {
			t.Errorf("Expected input order preserved at %d, got %s", i, a.ID)
		}
	}
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	s := NewScorer(Weights{})

	articles := []model.Article{{ID: "a", Title: "Bitcoin"}}
	s.Score([]string{"bitcoin"}, articles)
	if articles[0].RelevanceScore != 0 {
		t.Error("Score mutated the input slice")
	}
}

func TestScoreCustomWeights(t *testing.T) {
	s := NewScorer(Weights{Title: 10, Summary: 1, TagExact: 100})

	articles := []model.Article{{
		Title:   "bitcoin",
		Summary: "bitcoin",
		Tags:    []string{"bitcoin"},
	}}

	scored := s.Score([]string{"bitcoin"}, articles)
	if scored[0].RelevanceScore != 111 {
		t.Errorf("Expected score 111, got %d", scored[0].RelevanceScore)
	}
}

func TestBuildVocabulary(t *testing.T) {
	profile := model.UserProfile{
		Interests:         []string{"Bitcoin", "DeFi"},
		ExtractedKeywords: []string{"bitcoin", "institutions"},
		Competitors:       []string{"Coinbase", " "},
	}

	got := BuildVocabulary(profile)
	want := []string{"bitcoin", "defi", "institutions", "coinbase"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildVocabulary = %v, want %v", got, want)
	}
}

func TestBuildVocabularyEmptyProfile(t *testing.T) {
	if got := BuildVocabulary(model.UserProfile{}); len(got) != 0 {
		t.Errorf("Expected empty vocabulary, got %v", got)
	}
}
