package services

import (
	"fmt"
	"strings"

	"kayaai/career-navigator/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildBenchmarkPrompt asks for an ideal resume for the company/role pair.
func (pb *PromptBuilder) BuildBenchmarkPrompt(company, role string) string {
	return fmt.Sprintf(`Generate a highly optimized, professional resume for the position of %s at %s.

This should be a comprehensive, detailed resume that includes:
1. Professional Summary (3-4 lines)
2. Key Skills and Technologies (8-10 skills)
3. Work Experience with quantified achievements (2-3 positions)
4. Education and Certifications
5. Projects and Technical Expertise (2-3 projects)
6. Industry-specific keywords

Make it specific to %s's requirements and %s expectations.
Format it as a complete, professional resume with proper sections and bullet points.`,
		role, company, company, role)
}

// BuildComparisonPrompt asks a provider to compare the candidate resume
// against the benchmark and answer in the section layout ResponseParser
// understands.
func (pb *PromptBuilder) BuildComparisonPrompt(req models.EvaluationRequest) string {
	return fmt.Sprintf(`You are an expert resume analyst. Compare the user's resume against the ideal resume for %s at %s.

USER RESUME:
%s

IDEAL RESUME (BENCHMARK):
%s

Please provide a detailed analysis in this EXACT format:

SCORE: [number between 0-100]

GAPS:
• [Specific gap 1 - be detailed]
• [Specific gap 2 - be detailed]
• [Specific gap 3 - be detailed]

MISSING_KEYWORDS:
• [Important keyword 1]
• [Important keyword 2]
• [Important keyword 3]
• [Important keyword 4]

RECOMMENDATIONS:
• [Actionable recommendation 1 - be specific]
• [Actionable recommendation 2 - be specific]
• [Actionable recommendation 3 - be specific]
• [Actionable recommendation 4 - be specific]

Make sure to provide specific, actionable feedback.`,
		req.Role, req.Company, req.CandidateText, req.BenchmarkText)
}

// BuildFallbackBenchmark is the benchmark used when every provider is absent.
func (pb *PromptBuilder) BuildFallbackBenchmark(company, role string) string {
	return fmt.Sprintf(`**%[1]s RESUME - OPTIMIZED FOR %[2]s**

**PROFESSIONAL SUMMARY**
Experienced %[3]s with 5+ years of expertise in cutting-edge technologies. Proven track record of delivering high-impact solutions that drive business growth and technical innovation. Strong background in software development, system architecture, and cross-functional collaboration.

**KEY SKILLS**
• Advanced programming languages (Python, JavaScript, Java, C++)
• Cloud platforms (AWS, Google Cloud, Azure)
• Machine Learning and AI frameworks
• Database design and optimization
• DevOps and CI/CD pipelines
• Agile development methodologies
• System architecture and scalability
• Data structures and algorithms

**PROFESSIONAL EXPERIENCE**

**Senior %[3]s | Tech Innovation Corp | 2021-2024**
• Led development of scalable applications serving 1M+ users
• Improved system performance by 40%% through optimization
• Mentored team of 5 junior developers
• Implemented ML models increasing accuracy by 25%%

**%[3]s | Digital Solutions Inc | 2019-2021**
• Developed 15+ production applications using modern frameworks
• Reduced deployment time by 60%% through automation
• Collaborated with product teams to deliver user-centric solutions

**EDUCATION**
• Master of Science in Computer Science | Top University | 2019
• Bachelor of Engineering | Technology Institute | 2017

**CERTIFICATIONS**
• AWS Certified Solutions Architect
• Google Cloud Professional Developer
• Certified Kubernetes Administrator

**KEY PROJECTS**
• AI-Powered Analytics Platform: Built ML pipeline processing 100GB+ daily data
• Real-time Collaboration Tool: Developed scalable WebSocket architecture
• E-commerce Optimization Engine: Created recommendation system improving sales by 30%%`,
		strings.ToUpper(role), strings.ToUpper(company), role)
}
