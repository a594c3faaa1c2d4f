package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_HappyPath(t *testing.T) {
	s := NewSession()
	assert.Equal(t, PageHome, s.Page)

	require.NoError(t, s.Start())
	assert.Equal(t, PageInput, s.Page)

	require.NoError(t, s.SubmitInput(" Google ", "Software Engineer", "resume text", "cv.pdf"))
	assert.Equal(t, PageAnalysis, s.Page)
	assert.Equal(t, "Google", s.Input.Company)
	assert.Equal(t, "cv.pdf", s.Input.Filename)

	result := &AnalysisResult{FinalScore: 72}
	require.NoError(t, s.CompleteAnalysis(result))
	assert.Equal(t, PageResults, s.Page)
	assert.True(t, s.AnalysisComplete)
	assert.Same(t, result, s.Result)

	require.NoError(t, s.Reset())
	assert.Equal(t, PageInput, s.Page)
	assert.False(t, s.AnalysisComplete)
	assert.Nil(t, s.Result)
	assert.Empty(t, s.Input.Company)
}

func TestSession_SubmitInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		company string
		role    string
		resume  string
		message string
	}{
		{"missing company", "", "Data Analyst", "text", "Please select both company and job role."},
		{"blank role", "Google", "   ", "text", "Please select both company and job role."},
		{"missing resume", "Google", "Data Analyst", "  \n", "Please upload a resume or create a test resume."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			require.NoError(t, s.Start())

			err := s.SubmitInput(tt.company, tt.role, tt.resume, "cv.pdf")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, PageInput, s.Page)
		})
	}
}

func TestSession_SubmitInputFallsBackToTestResume(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start())
	require.NoError(t, s.SetTestResume("John Smith\nSKILLS\nGo"))

	require.NoError(t, s.SubmitInput("Google", "Backend Developer", "", "ignored.pdf"))
	assert.Equal(t, "John Smith\nSKILLS\nGo", s.Input.ResumeText)
	assert.Equal(t, TestResumeFilename, s.Input.Filename)
}

func TestSession_InvalidTransitions(t *testing.T) {
	s := NewSession()

	assert.ErrorIs(t, s.BackToHome(), ErrInvalidTransition)
	assert.ErrorIs(t, s.SubmitInput("a", "b", "c", "d"), ErrInvalidTransition)
	assert.ErrorIs(t, s.CompleteAnalysis(&AnalysisResult{}), ErrInvalidTransition)
	assert.ErrorIs(t, s.Reset(), ErrInvalidTransition)
	assert.ErrorIs(t, s.SetTestResume("x"), ErrInvalidTransition)

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	require.NoError(t, s.BackToHome())
	assert.Equal(t, PageHome, s.Page)
}

func TestSession_CloneIsIndependent(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start())
	require.NoError(t, s.SubmitInput("Google", "Data Analyst", "text", "cv.docx"))
	require.NoError(t, s.CompleteAnalysis(&AnalysisResult{
		Evaluations: []ProviderEvaluation{{ProviderName: "Gemini"}},
		Warnings:    []string{"w"},
	}))

	c := s.Clone()
	c.Result.Evaluations[0].ProviderName = "changed"
	c.Result.Warnings[0] = "changed"
	c.Page = PageHome

	assert.Equal(t, "Gemini", s.Result.Evaluations[0].ProviderName)
	assert.Equal(t, "w", s.Result.Warnings[0])
	assert.Equal(t, PageResults, s.Page)
}
