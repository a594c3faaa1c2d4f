package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"kayaai/career-navigator/internal/models"
)

const (
	// DefaultScore is used when a response has no SCORE marker.
	DefaultScore = 65
	// UltimateFallbackScore is used when parsing fails outright.
	UltimateFallbackScore = 60

	minGapsLength            = 20
	minKeywordsLength        = 10
	minRecommendationsLength = 20
)

var (
	scorePattern           = regexp.MustCompile(`(?i)SCORE:\s*(\d+)`)
	gapsPattern            = regexp.MustCompile(`(?is)GAPS:\s*(.*?)(?:MISSING_KEYWORDS|$)`)
	keywordsPattern        = regexp.MustCompile(`(?is)MISSING_KEYWORDS:\s*(.*?)(?:RECOMMENDATIONS|$)`)
	recommendationsPattern = regexp.MustCompile(`(?is)RECOMMENDATIONS:\s*(.*)$`)
	blankLinesPattern      = regexp.MustCompile(`\n\s*\n`)

	errScoreBucket = errors.New("score outside gap buckets")
)

// gapAreas is indexed by score / 25.
var gapAreas = []string{
	"technical skills",
	"quantified achievements",
	"industry keywords",
	"leadership experience",
}

const (
	missingGapsFallback = "• Technical skills need strengthening\n• Add more quantified achievements\n• Include relevant industry keywords"

	shortKeywordsFallback   = "• Python, JavaScript, AWS\n• Docker, Kubernetes, Git\n• Machine Learning, APIs\n• Agile, Leadership, Analytics"
	missingKeywordsFallback = "• Modern programming languages\n• Cloud technologies\n• DevOps tools\n• Project management skills"

	shortRecommendationsFallback   = "• Add specific metrics and achievements\n• Include relevant technical skills\n• Highlight leadership and teamwork\n• Tailor content to job requirements"
	missingRecommendationsFallback = "• Quantify your achievements with specific metrics\n• Add relevant technical skills and certifications\n• Include leadership and collaboration examples\n• Customize resume for target role"
)

// UltimateFallback is returned whenever parsing fails for any reason.
func UltimateFallback() models.ParsedEvaluation {
	return models.ParsedEvaluation{
		Score:           UltimateFallbackScore,
		Gaps:            "• Add more quantified achievements\n• Include relevant technical skills\n• Strengthen professional summary\n• Add industry-specific keywords",
		MissingKeywords: "• Programming languages\n• Cloud technologies\n• Project management\n• Industry frameworks",
		Recommendations: "• Quantify all achievements with metrics\n• Add technical skills section\n• Include leadership examples\n• Tailor to specific job requirements",
	}
}

// ResponseParser turns a free-text provider answer into a ParsedEvaluation.
type ResponseParser struct{}

func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// Parse never fails; see UltimateFallback.
func (p *ResponseParser) Parse(raw string) models.ParsedEvaluation {
	parsed, err := p.parse(raw)
	if err != nil {
		return UltimateFallback()
	}
	return parsed
}

func (p *ResponseParser) parse(raw string) (parsed models.ParsedEvaluation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while parsing: %v", r)
		}
	}()

	score := DefaultScore
	if m := scorePattern.FindStringSubmatch(raw); m != nil {
		score, err = strconv.Atoi(m[1])
		if err != nil {
			return models.ParsedEvaluation{}, fmt.Errorf("invalid score %q: %w", m[1], err)
		}
	}

	gaps := missingGapsFallback
	if m := gapsPattern.FindStringSubmatch(raw); m != nil {
		gaps = blankLinesPattern.ReplaceAllString(strings.TrimSpace(m[1]), "\n")
		if charCount(gaps) < minGapsLength {
			gaps, err = gapsFallback(score)
			if err != nil {
				return models.ParsedEvaluation{}, err
			}
		}
	}

	keywords := missingKeywordsFallback
	if m := keywordsPattern.FindStringSubmatch(raw); m != nil {
		keywords = strings.TrimSpace(m[1])
		if charCount(keywords) < minKeywordsLength {
			keywords = shortKeywordsFallback
		}
	}

	recommendations := missingRecommendationsFallback
	if m := recommendationsPattern.FindStringSubmatch(raw); m != nil {
		recommendations = strings.TrimSpace(m[1])
		if charCount(recommendations) < minRecommendationsLength {
			recommendations = shortRecommendationsFallback
		}
	}

	return models.ParsedEvaluation{
		Score:           clampScore(score),
		Gaps:            gaps,
		MissingKeywords: keywords,
		Recommendations: recommendations,
	}, nil
}

// gapsFallback buckets the raw, unclamped score; 100 and above has no bucket.
func gapsFallback(score int) (string, error) {
	bucket := score / 25
	if bucket < 0 || bucket >= len(gapAreas) {
		return "", fmt.Errorf("%w: %d", errScoreBucket, score)
	}
	return fmt.Sprintf("• Needs improvement in %s\n• Consider adding more specific examples\n• Enhance professional summary section", gapAreas[bucket]), nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
