package search

import (
	"sort"
	"strings"

	"github.com/tordrt/ookcatalog/internal/catalog"
)

// MaxResults caps the number of search results returned. There is no
// pagination.
const MaxResults = 20

// Weights assigns each searchable field its contribution to a table's
// score. Higher means more important.
type Weights struct {
	TableName       float64
	TableComment    float64
	DescriptionLong float64
	ColumnName      float64
	ColumnComment   float64
}

// DefaultWeights mirrors the tiers of the original ts_rank weighting,
// with the table name on its own top tier.
var DefaultWeights = Weights{
	TableName:       1.0,
	TableComment:    0.7,
	DescriptionLong: 0.7,
	ColumnName:      0.5,
	ColumnComment:   0.2,
}

// Result is one ranked search hit.
type Result struct {
	Table catalog.Table
	Score float64
}

// Ranker scores tables against queries using a fixed field-to-weight
// mapping.
type Ranker struct {
	weights Weights
}

// NewRanker creates a ranker with the given weights.
func NewRanker(weights Weights) *Ranker {
	return &Ranker{weights: weights}
}

// Rank scores every table against query and returns at most MaxResults
// tables with a positive score, best first. A table's score sums the
// matches of its own fields and of every one of its columns, so many
// weakly matching columns can outweigh a single strong match
// elsewhere. Tables with equal scores keep the (schema, name) order of
// the input. An empty or whitespace-only query yields no results.
func (r *Ranker) Rank(tables []catalog.Table, query string) []Result {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var results []Result
	for _, t := range tables {
		if score := r.score(t, queryTokens); score > 0 {
			results = append(results, Result{Table: t, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func (r *Ranker) score(t catalog.Table, queryTokens []string) float64 {
	score := r.weights.TableName * matchCount(queryTokens, Tokenize(t.Identity.Name))
	score += r.weights.TableComment * matchCount(queryTokens, tokenizeText(t.Comment))
	score += r.weights.DescriptionLong * matchCount(queryTokens, tokenizeText(t.DescriptionLong))
	for _, col := range t.Columns {
		score += r.weights.ColumnName * matchCount(queryTokens, Tokenize(col.Name))
		score += r.weights.ColumnComment * matchCount(queryTokens, tokenizeText(col.Comment))
	}
	return score
}

func tokenizeText(s *string) []string {
	if s == nil {
		return nil
	}
	return Tokenize(*s)
}

// matchCount counts document tokens carrying a query token as prefix.
func matchCount(queryTokens, docTokens []string) float64 {
	var n int
	for _, q := range queryTokens {
		for _, d := range docTokens {
			if strings.HasPrefix(d, q) {
				n++
			}
		}
	}
	return float64(n)
}
