package models

import "time"

// FallbackAnalysisName labels the entry produced by the local heuristic
// analyzer when no provider returned a usable evaluation.
const FallbackAnalysisName = "Fallback Analysis"

type BenchmarkSource string

const (
	BenchmarkFromProvider BenchmarkSource = "provider"
	BenchmarkFromTemplate BenchmarkSource = "template"
)

// EvaluationRequest is everything the comparison prompt needs.
type EvaluationRequest struct {
	CandidateText string
	BenchmarkText string
	Company       string
	Role          string
}

// ProviderResponse is a usable raw answer from one provider.
type ProviderResponse struct {
	ProviderName string `json:"provider_name"`
	RawText      string `json:"raw_text"`
}

// ParsedEvaluation has no optional fields: every field has a deterministic
// fallback when it cannot be extracted.
type ParsedEvaluation struct {
	Score           int    `json:"score"`
	Gaps            string `json:"gaps"`
	MissingKeywords string `json:"missing_keywords"`
	Recommendations string `json:"recommendations"`
}

type ProviderEvaluation struct {
	ProviderName string           `json:"provider_name"`
	Evaluation   ParsedEvaluation `json:"evaluation"`
}

type AggregateResult struct {
	FinalScore         float64              `json:"final_score"`
	PerProviderResults []ProviderEvaluation `json:"per_provider_results"`
}

// AnalysisResult is what the results screen and the report are built from.
type AnalysisResult struct {
	Company         string               `json:"company"`
	Role            string               `json:"job_role"`
	Filename        string               `json:"filename"`
	BenchmarkText   string               `json:"ideal_resume"`
	BenchmarkHTML   string               `json:"ideal_resume_html"`
	BenchmarkSource BenchmarkSource      `json:"ideal_resume_source"`
	FinalScore      float64              `json:"final_score"`
	DisplayScore    float64              `json:"display_score"`
	Evaluations     []ProviderEvaluation `json:"evaluations"`
	Warnings        []string             `json:"warnings,omitempty"`
	CompletedAt     time.Time            `json:"completed_at"`
}
