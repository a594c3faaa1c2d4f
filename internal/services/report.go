package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"kayaai/career-navigator/internal/models"
)

const reportTimeLayout = "2006-01-02 15:04:05"

var unsafeFilenameChars = regexp.MustCompile(`[\s/\\:*?"<>|]+`)

type ReportBuilder struct{}

func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Build renders the plain-text report offered for download.
func (b *ReportBuilder) Build(result *models.AnalysisResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("KAYA AI RESUME ANALYSIS REPORT\n")
	sb.WriteString("====================================\n")
	fmt.Fprintf(&sb, "Analysis Date: %s\n", now.Format(reportTimeLayout))
	fmt.Fprintf(&sb, "Position: %s at %s\n", result.Role, result.Company)
	fmt.Fprintf(&sb, "Resume File: %s\n\n", result.Filename)
	fmt.Fprintf(&sb, "OVERALL SCORE: %.1f/10 (%s/100)\n\n", result.DisplayScore, formatFinalScore(result.FinalScore))

	sb.WriteString("DETAILED ANALYSIS:\n")
	lines := make([]string, len(result.Evaluations))
	for i, e := range result.Evaluations {
		lines[i] = fmt.Sprintf("%s: %d/100", e.ProviderName, e.Evaluation.Score)
	}
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")

	sb.WriteString("IDEAL RESUME BENCHMARK:\n")
	sb.WriteString(result.BenchmarkText)
	sb.WriteString("\n\nGenerated by Kaya AI - Career Navigator\n")

	return sb.String()
}

// BuildPDF renders the same report as a PDF document.
func (b *ReportBuilder) BuildPDF(result *models.AnalysisResult, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Kaya AI Resume Analysis Report", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "KAYA AI RESUME ANALYSIS REPORT", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Courier", "", 9)
	body := strings.TrimPrefix(b.Build(result, now), "KAYA AI RESUME ANALYSIS REPORT\n====================================\n")
	for _, line := range strings.Split(body, "\n") {
		pdf.MultiCell(0, 4.5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}

	return buf.Bytes(), nil
}

// formatFinalScore prints the unrounded mean, keeping ".0" on whole numbers.
func formatFinalScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Filename is kaya_ai_analysis_<company>_<role> with the given extension,
// with whitespace and path separators replaced.
func (b *ReportBuilder) Filename(company, role, ext string) string {
	name := fmt.Sprintf("kaya_ai_analysis_%s_%s", company, role)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return name + "." + ext
}
