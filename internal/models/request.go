package models

import "time"

// InputRequest is the form posted from the input screen. The resume file
// itself travels as a multipart part named "resume".
type InputRequest struct {
	Company       string `form:"company" validate:"required"`
	CustomCompany string `form:"custom_company"`
	JobRole       string `form:"job_role" validate:"required"`
}

// TestResumeRequest mirrors the "Create Test Resume" form.
type TestResumeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Summary    string `json:"summary"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
}

type SessionResponse struct {
	ID               string    `json:"id"`
	Page             Page      `json:"page"`
	Company          string    `json:"company,omitempty"`
	JobRole          string    `json:"job_role,omitempty"`
	Filename         string    `json:"filename,omitempty"`
	HasTestResume    bool      `json:"has_test_resume"`
	AnalysisComplete bool      `json:"analysis_complete"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type TestResumeResponse struct {
	Message string `json:"message"`
	Resume  string `json:"resume"`
}

type CatalogResponse struct {
	Companies []string `json:"companies"`
	JobRoles  []string `json:"job_roles"`
}

func NewSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		ID:               s.ID.String(),
		Page:             s.Page,
		Company:          s.Input.Company,
		JobRole:          s.Input.Role,
		Filename:         s.Input.Filename,
		HasTestResume:    s.Input.TestResume != "",
		AnalysisComplete: s.AnalysisComplete,
		UpdatedAt:        s.UpdatedAt,
	}
}

// AnalysisResponse is returned by the analyze and results endpoints.
type AnalysisResponse struct {
	Session SessionResponse `json:"session"`
	Result  *AnalysisResult `json:"result"`
}
