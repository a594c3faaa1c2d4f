package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kayaai/career-navigator/internal/models"
)

func TestScoreAggregator_Empty(t *testing.T) {
	result := NewScoreAggregator(NewResponseParser()).Aggregate(nil)

	assert.Equal(t, EmptyAggregateScore, result.FinalScore)
	assert.NotNil(t, result.PerProviderResults)
	assert.Empty(t, result.PerProviderResults)
}

func TestScoreAggregator_Single(t *testing.T) {
	result := NewScoreAggregator(NewResponseParser()).Aggregate([]models.ProviderResponse{
		{ProviderName: "Gemini", RawText: evaluationText("80", "• A gap long enough to keep", "• Keyword one", "• A recommendation long enough")},
	})

	assert.Equal(t, 80.0, result.FinalScore)
	require.Len(t, result.PerProviderResults, 1)
	assert.Equal(t, "Gemini", result.PerProviderResults[0].ProviderName)
}

func TestScoreAggregator_MeanKeepsOrder(t *testing.T) {
	responses := []models.ProviderResponse{
		{ProviderName: "Gemini", RawText: evaluationText("90", "• A gap long enough to keep", "• Keyword one", "• A recommendation long enough")},
		{ProviderName: "OpenRouter", RawText: evaluationText("70", "• A gap long enough to keep", "• Keyword one", "• A recommendation long enough")},
		{ProviderName: "Mistral", RawText: evaluationText("50", "• A gap long enough to keep", "• Keyword one", "• A recommendation long enough")},
	}

	result := NewScoreAggregator(NewResponseParser()).Aggregate(responses)

	assert.Equal(t, 70.0, result.FinalScore)
	require.Len(t, result.PerProviderResults, 3)
	for i, r := range responses {
		assert.Equal(t, r.ProviderName, result.PerProviderResults[i].ProviderName)
	}
	assert.Equal(t, 90, result.PerProviderResults[0].Evaluation.Score)
	assert.Equal(t, 50, result.PerProviderResults[2].Evaluation.Score)
}

func TestScoreAggregator_UnparseableResponseCountsAsSixty(t *testing.T) {
	result := NewScoreAggregator(NewResponseParser()).Aggregate([]models.ProviderResponse{
		{ProviderName: "Gemini", RawText: evaluationText("80", "• A gap long enough to keep", "• Keyword one", "• A recommendation long enough")},
		{ProviderName: "Mistral", RawText: "SCORE: 100\nGAPS: none\nMISSING_KEYWORDS: Go, SQL, Kafka"},
	})

	assert.Equal(t, 70.0, result.FinalScore)
	assert.Equal(t, UltimateFallbackScore, result.PerProviderResults[1].Evaluation.Score)
}

func TestScoreAggregator_MissingGapsKeepsScore(t *testing.T) {
	result := NewScoreAggregator(NewResponseParser()).Aggregate([]models.ProviderResponse{
		{ProviderName: "Gemini", RawText: "SCORE: 100"},
		{ProviderName: "Mistral", RawText: evaluationText("80", "• A gap long enough to keep", "• Keyword one", "• A recommendation long enough")},
	})

	assert.Equal(t, 90.0, result.FinalScore)
	assert.Equal(t, 100, result.PerProviderResults[0].Evaluation.Score)
}
