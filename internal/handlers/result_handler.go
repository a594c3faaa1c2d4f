package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"kayaai/career-navigator/internal/models"
	"kayaai/career-navigator/internal/repositories"
	"kayaai/career-navigator/internal/services"
)

type ResultHandler struct {
	sessions repositories.SessionRepository
	reports  *services.ReportBuilder
}

func NewResultHandler(sessions repositories.SessionRepository, reports *services.ReportBuilder) *ResultHandler {
	return &ResultHandler{
		sessions: sessions,
		reports:  reports,
	}
}

// HandleGetResults handles GET /sessions/:id/results
func (h *ResultHandler) HandleGetResults(c *fiber.Ctx) error {
	s, err := h.completedSession(c)
	if err != nil {
		return errorResponse(c, err)
	}
	if s == nil {
		return h.notReady(c)
	}

	return c.JSON(models.AnalysisResponse{
		Session: models.NewSessionResponse(s),
		Result:  s.Result,
	})
}

// HandleDownloadReport handles GET /sessions/:id/report?format=txt|pdf
func (h *ResultHandler) HandleDownloadReport(c *fiber.Ctx) error {
	format := c.Query("format", "txt")
	if format != "txt" && format != "pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be txt or pdf",
		})
	}

	s, err := h.completedSession(c)
	if err != nil {
		return errorResponse(c, err)
	}
	if s == nil {
		return h.notReady(c)
	}

	now := time.Now()
	c.Attachment(h.reports.Filename(s.Result.Company, s.Result.Role, format))

	if format == "pdf" {
		data, err := h.reports.BuildPDF(s.Result, now)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(data)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(h.reports.Build(s.Result, now))
}

// completedSession returns nil without error when the analysis is not done.
func (h *ResultHandler) completedSession(c *fiber.Ctx) (*models.Session, error) {
	id, err := sessionID(c)
	if err != nil {
		return nil, err
	}

	s, err := h.sessions.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !s.AnalysisComplete || s.Result == nil {
		return nil, nil
	}

	return s, nil
}

func (h *ResultHandler) notReady(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": "Analysis not complete",
	})
}
