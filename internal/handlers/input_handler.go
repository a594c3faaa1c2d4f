package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"kayaai/career-navigator/internal/logging"
	"kayaai/career-navigator/internal/models"
	"kayaai/career-navigator/internal/repositories"
	"kayaai/career-navigator/internal/services"
)

type InputHandler struct {
	sessions    repositories.SessionRepository
	extractor   services.DocumentExtractor
	maxFileSize int64
	logger      logging.Logger
}

func NewInputHandler(
	sessions repositories.SessionRepository,
	extractor services.DocumentExtractor,
	maxFileSize int64,
	logger logging.Logger,
) *InputHandler {
	return &InputHandler{
		sessions:    sessions,
		extractor:   extractor,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleSubmitInput handles POST /sessions/:id/input
func (h *InputHandler) HandleSubmitInput(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	s, err := h.sessions.FindByID(id)
	if err != nil {
		return errorResponse(c, err)
	}
	if s.Page != models.PageInput {
		return errorResponse(c, fmt.Errorf("%w: cannot submit input from %s page", models.ErrInvalidTransition, s.Page))
	}

	var req models.InputRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	company := strings.TrimSpace(req.Company)
	if company == models.CustomCompany {
		company = strings.TrimSpace(req.CustomCompany)
		req.Company = company
	}

	if err := validate.Struct(req); err != nil {
		return errorResponse(c, models.NewValidationError("Please select both company and job role."))
	}

	resumeText, filename, err := h.readResume(c)
	if err != nil {
		return errorResponse(c, err)
	}

	s, err = h.sessions.Update(id, func(s *models.Session) error {
		return s.SubmitInput(company, req.JobRole, resumeText, filename)
	})
	if err != nil {
		return errorResponse(c, err)
	}

	h.logger.Infof("📄 Input accepted for session %s: %s at %s (%s)", s.ID, s.Input.Role, s.Input.Company, s.Input.Filename)

	return c.JSON(models.NewSessionResponse(s))
}

// readResume returns empty text and no error when no file part was sent.
func (h *InputHandler) readResume(c *fiber.Ctx) (string, string, error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return "", "", nil
		}
		return "", "", models.NewValidationError("Failed to read uploaded resume.")
	}

	if fileHeader.Size > h.maxFileSize {
		return "", "", models.NewValidationError("Resume file too large. Max size: %d bytes", h.maxFileSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded resume: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read uploaded resume: %w", err)
	}

	format, err := h.extractor.DetectFormat(fileHeader.Header.Get("Content-Type"), fileHeader.Filename, data)
	if err != nil {
		return "", "", err
	}

	text, err := h.extractor.Extract(data, format)
	if err != nil {
		h.logger.Warnf("⚠️  %v", err)
		return "", "", models.NewValidationError("%s", err.Error())
	}

	return text, fileHeader.Filename, nil
}
