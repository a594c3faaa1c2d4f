package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	heuristicMinScore = 45
	heuristicMaxScore = 85
)

type RoleBundle string

const (
	BundleTechnical  RoleBundle = "technical"
	BundleData       RoleBundle = "data"
	BundleManagement RoleBundle = "management"
	BundleGeneric    RoleBundle = "generic"
)

type heuristicBundle struct {
	gaps            []string
	keywords        []string
	recommendations []string
}

// HeuristicAnalyzer produces an evaluation without any provider. Its output
// always matches the layout ResponseParser expects.
type HeuristicAnalyzer struct{}

func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

// Score is one point per 50 characters of resume, clamped to [45, 85].
func (h *HeuristicAnalyzer) Score(candidateText string) int {
	score := utf8.RuneCountInString(candidateText) / 50
	if score < heuristicMinScore {
		return heuristicMinScore
	}
	if score > heuristicMaxScore {
		return heuristicMaxScore
	}
	return score
}

// SelectBundle checks engineer/developer first, then data, then manager, so
// "Engineering Manager" is a technical role.
func (h *HeuristicAnalyzer) SelectBundle(role string) RoleBundle {
	r := strings.ToLower(role)
	switch {
	case strings.Contains(r, "engineer") || strings.Contains(r, "developer"):
		return BundleTechnical
	case strings.Contains(r, "data"):
		return BundleData
	case strings.Contains(r, "manager"):
		return BundleManagement
	default:
		return BundleGeneric
	}
}

func (h *HeuristicAnalyzer) Analyze(candidateText, role, company string) string {
	score := h.Score(candidateText)
	bundle := h.bundle(h.SelectBundle(role), role, company)

	return fmt.Sprintf(`
SCORE: %d

GAPS:
%s

MISSING_KEYWORDS:
%s

RECOMMENDATIONS:
%s
`, score, bulletList(bundle.gaps), bulletList(bundle.keywords), bulletList(bundle.recommendations))
}

func (h *HeuristicAnalyzer) bundle(kind RoleBundle, role, company string) heuristicBundle {
	switch kind {
	case BundleTechnical:
		return heuristicBundle{
			gaps: []string{
				"Technical skills section needs more specific programming languages and frameworks",
				"Missing quantified achievements showing code impact and system improvements",
				"Lack of collaboration and version control experience (Git, team projects)",
				"No mention of testing, deployment, or DevOps practices",
			},
			keywords: []string{"Python", "JavaScript", "React", "Node.js", "AWS", "Docker", "Git", "APIs"},
			recommendations: []string{
				"Add specific programming languages and frameworks you've used",
				"Include metrics like 'improved performance by X%' or 'reduced load time by Y seconds'",
				"Highlight team collaboration and code review experience",
				"Mention any cloud platforms, databases, or development tools you've worked with",
			},
		}
	case BundleData:
		return heuristicBundle{
			gaps: []string{
				"Missing data analysis tools and statistical software experience",
				"No quantified business impact from data insights or models",
				"Lack of visualization and presentation skills demonstration",
				"Limited mention of data pipeline or ETL experience",
			},
			keywords: []string{"Python", "SQL", "Machine Learning", "Pandas", "Tableau", "Statistics", "TensorFlow", "R"},
			recommendations: []string{
				"List specific data analysis tools (Python, R, SQL, Tableau)",
				"Include metrics showing business impact of your analysis",
				"Highlight data visualization and storytelling abilities",
				"Mention experience with large datasets and data cleaning processes",
			},
		}
	case BundleManagement:
		return heuristicBundle{
			gaps: []string{
				"Limited evidence of team leadership and people management",
				"Missing strategic planning and business outcome achievements",
				"No clear demonstration of stakeholder communication skills",
				"Lack of budget or resource management experience",
			},
			keywords: []string{"Leadership", "Strategy", "Team Management", "Budget", "Stakeholder", "ROI", "KPIs", "Planning"},
			recommendations: []string{
				"Quantify team size and management scope in previous roles",
				"Include strategic initiatives you've led and their business outcomes",
				"Highlight cross-functional collaboration and stakeholder management",
				"Add examples of budget management or resource optimization",
			},
		}
	default:
		return heuristicBundle{
			gaps: []string{
				fmt.Sprintf("Resume doesn't clearly align with %s requirements", role),
				fmt.Sprintf("Missing %s-specific skills and industry knowledge", company),
				"Achievements lack quantification and business impact metrics",
				"Professional summary could be more targeted to the role",
			},
			keywords: []string{"Innovation", "Leadership", "Collaboration", "Results-driven", "Strategic", "Growth"},
			recommendations: []string{
				fmt.Sprintf("Tailor your professional summary specifically to %s at %s", role, company),
				"Add quantified achievements with specific percentages and dollar amounts",
				"Research and include industry-specific keywords and technologies",
				"Highlight transferable skills that directly relate to the target role",
			},
		}
	}
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
