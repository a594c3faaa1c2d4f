package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Page string

const (
	PageHome     Page = "home"
	PageInput    Page = "input"
	PageAnalysis Page = "analysis"
	PageResults  Page = "results"
)

const TestResumeFilename = "Test Resume"

// AnalysisInput is the data collected on the input screen.
type AnalysisInput struct {
	Company    string `json:"company"`
	Role       string `json:"job_role"`
	ResumeText string `json:"-"`
	Filename   string `json:"filename"`
	TestResume string `json:"-"`
}

// Session is the state of one user's walk through the four screens. All
// mutation goes through the transition methods below.
type Session struct {
	ID               uuid.UUID       `json:"id"`
	Page             Page            `json:"page"`
	Input            AnalysisInput   `json:"input"`
	Result           *AnalysisResult `json:"-"`
	AnalysisComplete bool            `json:"analysis_complete"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Page:      PageHome,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Start moves from the landing screen to the input screen.
func (s *Session) Start() error {
	return s.advance(PageHome, PageInput)
}

// BackToHome returns from the input screen to the landing screen.
func (s *Session) BackToHome() error {
	return s.advance(PageInput, PageHome)
}

// SetTestResume stores a generated resume to use when no file is uploaded.
func (s *Session) SetTestResume(text string) error {
	if s.Page != PageInput {
		return s.invalid("set test resume")
	}
	s.Input.TestResume = text
	s.touch()
	return nil
}

// SubmitInput validates the input screen and moves to the analysis screen.
// An empty resumeText falls back to the stored test resume.
func (s *Session) SubmitInput(company, role, resumeText, filename string) error {
	if s.Page != PageInput {
		return s.invalid("submit input")
	}

	company = strings.TrimSpace(company)
	role = strings.TrimSpace(role)
	if company == "" || role == "" {
		return NewValidationError("Please select both company and job role.")
	}

	if strings.TrimSpace(resumeText) == "" {
		if strings.TrimSpace(s.Input.TestResume) == "" {
			return NewValidationError("Please upload a resume or create a test resume.")
		}
		resumeText = s.Input.TestResume
		filename = TestResumeFilename
	}

	s.Input.Company = company
	s.Input.Role = role
	s.Input.ResumeText = resumeText
	s.Input.Filename = filename
	s.Page = PageAnalysis
	s.touch()
	return nil
}

// CompleteAnalysis stores the result, sets the completion flag and moves to
// the results screen.
func (s *Session) CompleteAnalysis(result *AnalysisResult) error {
	if s.Page != PageAnalysis {
		return s.invalid("complete analysis")
	}
	s.Result = result
	s.AnalysisComplete = true
	s.Page = PageResults
	s.touch()
	return nil
}

// Reset clears everything collected so far and returns to the input screen.
func (s *Session) Reset() error {
	if s.Page != PageResults {
		return s.invalid("reset analysis")
	}
	s.Input = AnalysisInput{}
	s.Result = nil
	s.AnalysisComplete = false
	s.Page = PageInput
	s.touch()
	return nil
}

func (s *Session) advance(from, to Page) error {
	if s.Page != from {
		return s.invalid(fmt.Sprintf("move to %s", to))
	}
	s.Page = to
	s.touch()
	return nil
}

func (s *Session) invalid(action string) error {
	return fmt.Errorf("%w: cannot %s from %s page", ErrInvalidTransition, action, s.Page)
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// Clone returns a copy safe to hand out of a repository.
func (s *Session) Clone() *Session {
	c := *s
	if s.Result != nil {
		r := *s.Result
		r.Evaluations = append([]ProviderEvaluation(nil), s.Result.Evaluations...)
		r.Warnings = append([]string(nil), s.Result.Warnings...)
		c.Result = &r
	}
	return &c
}
