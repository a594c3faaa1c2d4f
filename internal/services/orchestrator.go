package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"kayaai/career-navigator/internal/logging"
	"kayaai/career-navigator/internal/models"
)

// minEvaluationLength is the shortest trimmed provider answer kept as an
// evaluation.
const minEvaluationLength = 50

// Orchestrator runs the benchmark, evaluation and aggregation stages over the
// provider chain. Providers are called one after another, never in parallel.
type Orchestrator struct {
	providers     []Provider
	promptBuilder *PromptBuilder
	heuristic     *HeuristicAnalyzer
	aggregator    *ScoreAggregator
	renderer      *MarkdownRenderer
	logger        logging.Logger
	now           func() time.Time
}

func NewOrchestrator(providers []Provider, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		providers:     providers,
		promptBuilder: NewPromptBuilder(),
		heuristic:     NewHeuristicAnalyzer(),
		aggregator:    NewScoreAggregator(NewResponseParser()),
		renderer:      NewMarkdownRenderer(),
		logger:        logger,
		now:           time.Now,
	}
}

// GenerateBenchmark returns the first provider's ideal resume, or the
// built-in template when every provider is absent.
func (o *Orchestrator) GenerateBenchmark(ctx context.Context, company, role string) string {
	text, _ := o.generateBenchmark(ctx, company, role)
	return text
}

func (o *Orchestrator) generateBenchmark(ctx context.Context, company, role string) (string, models.BenchmarkSource) {
	prompt := o.promptBuilder.BuildBenchmarkPrompt(company, role)

	for _, p := range o.providers {
		if text, ok := p.Generate(ctx, prompt); ok {
			o.logger.Infof("🎯 Benchmark generated by %s", p.Name())
			return text, models.BenchmarkFromProvider
		}
	}

	o.logger.Warnf("⚠️  No provider produced a benchmark, using template")
	return o.promptBuilder.BuildFallbackBenchmark(company, role), models.BenchmarkFromTemplate
}

// Evaluate asks every provider to compare the resume with the benchmark. The
// result is never empty.
func (o *Orchestrator) Evaluate(ctx context.Context, req models.EvaluationRequest) []models.ProviderResponse {
	responses, _ := o.evaluate(ctx, req)
	return responses
}

// evaluate also returns the names of providers whose answer was dropped.
func (o *Orchestrator) evaluate(ctx context.Context, req models.EvaluationRequest) ([]models.ProviderResponse, []string) {
	prompt := o.promptBuilder.BuildComparisonPrompt(req)

	responses := make([]models.ProviderResponse, 0, len(o.providers))
	var dropped []string

	for _, p := range o.providers {
		text, ok := p.Generate(ctx, prompt)
		if !ok || utf8.RuneCountInString(strings.TrimSpace(text)) < minEvaluationLength {
			dropped = append(dropped, p.Name())
			continue
		}
		responses = append(responses, models.ProviderResponse{
			ProviderName: p.Name(),
			RawText:      text,
		})
	}

	if len(responses) == 0 {
		o.logger.Warnf("⚠️  No usable evaluation from any provider, running heuristic analysis")
		responses = append(responses, models.ProviderResponse{
			ProviderName: models.FallbackAnalysisName,
			RawText:      o.heuristic.Analyze(req.CandidateText, req.Role, req.Company),
		})
	}

	return responses, dropped
}

// Analyze runs the whole pipeline for one submitted input.
func (o *Orchestrator) Analyze(ctx context.Context, input models.AnalysisInput) *models.AnalysisResult {
	o.logger.Infof("🔄 Starting analysis for %s at %s", input.Role, input.Company)

	o.logger.Infof("🎯 Generating ideal resume benchmark...")
	benchmark, source := o.generateBenchmark(ctx, input.Company, input.Role)

	o.logger.Infof("🔍 Multi-AI evaluation in progress...")
	responses, dropped := o.evaluate(ctx, models.EvaluationRequest{
		CandidateText: input.ResumeText,
		BenchmarkText: benchmark,
		Company:       input.Company,
		Role:          input.Role,
	})

	o.logger.Infof("📊 Calculating final scores...")
	aggregate := o.aggregator.Aggregate(responses)

	var warnings []string
	for _, name := range dropped {
		warnings = append(warnings, fmt.Sprintf("%s API temporarily unavailable", name))
	}
	if source == models.BenchmarkFromTemplate {
		warnings = append(warnings, "Ideal resume generated from the built-in template")
	}
	if len(responses) == 1 && responses[0].ProviderName == models.FallbackAnalysisName {
		warnings = append(warnings, "All AI providers unavailable, showing fallback analysis")
	}

	result := &models.AnalysisResult{
		Company:         input.Company,
		Role:            input.Role,
		Filename:        input.Filename,
		BenchmarkText:   benchmark,
		BenchmarkHTML:   o.renderer.Render(benchmark),
		BenchmarkSource: source,
		FinalScore:      aggregate.FinalScore,
		DisplayScore:    DisplayScore(aggregate.FinalScore),
		Evaluations:     aggregate.PerProviderResults,
		Warnings:        warnings,
		CompletedAt:     o.now(),
	}

	o.logger.Infof("✅ Analysis completed: %.1f/100 from %d evaluation(s)", result.FinalScore, len(result.Evaluations))
	return result
}

// DisplayScore is the 0-10 score shown to users, rounded to one decimal.
// Exact halves round to even, so 72.5 shows as 7.2.
func DisplayScore(finalScore float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(finalScore/10, 'f', 1, 64), 64)
	if err != nil {
		return math.Round(finalScore) / 10
	}
	return rounded
}

// BuildTestResume lays out the quick resume form as plain text. Empty fields
// take the form's defaults.
func (o *Orchestrator) BuildTestResume(req models.TestResumeRequest) string {
	return fmt.Sprintf(`
%s
Email: %s | Phone: %s

PROFESSIONAL SUMMARY
%s

WORK EXPERIENCE
%s

EDUCATION
%s

SKILLS
%s
`,
		orDefault(req.Name, "John Smith"),
		orDefault(req.Email, "john.smith@email.com"),
		orDefault(req.Phone, "+1-555-0123"),
		orDefault(req.Summary, "Experienced software engineer with 3+ years in full-stack development"),
		orDefault(req.Experience, "Software Engineer at ABC Corp (2021-2024)\n- Developed web applications using React and Node.js\n- Improved system performance by 25%"),
		orDefault(req.Education, "BS Computer Science, University of Technology (2017-2021)"),
		orDefault(req.Skills, "JavaScript, Python, React, Node.js, SQL, Git"),
	)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
