package services

import (
	"kayaai/career-navigator/internal/models"
)

// EmptyAggregateScore is returned when there is nothing to aggregate.
const EmptyAggregateScore = 60.0

type ScoreAggregator struct {
	parser *ResponseParser
}

func NewScoreAggregator(parser *ResponseParser) *ScoreAggregator {
	return &ScoreAggregator{parser: parser}
}

// Aggregate parses every response and averages the scores, unweighted, in
// input order.
func (a *ScoreAggregator) Aggregate(responses []models.ProviderResponse) models.AggregateResult {
	if len(responses) == 0 {
		return models.AggregateResult{
			FinalScore:         EmptyAggregateScore,
			PerProviderResults: []models.ProviderEvaluation{},
		}
	}

	results := make([]models.ProviderEvaluation, 0, len(responses))
	total := 0
	for _, r := range responses {
		parsed := a.parser.Parse(r.RawText)
		total += parsed.Score
		results = append(results, models.ProviderEvaluation{
			ProviderName: r.ProviderName,
			Evaluation:   parsed,
		})
	}

	final := float64(total) / float64(len(results))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	return models.AggregateResult{
		FinalScore:         final,
		PerProviderResults: results,
	}
}
