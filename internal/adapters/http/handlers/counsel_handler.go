package handlers

import (
	"errors"
	"strings"

	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/core/services"
	"lexconnect-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CounselHandler handles the document scanner and legal chat endpoints
type CounselHandler struct {
	counselService *services.CounselService
}

// NewCounselHandler creates a new counsel handler
func NewCounselHandler(counselService *services.CounselService) *CounselHandler {
	return &CounselHandler{counselService: counselService}
}

// AnalyzeRequest carries the extracted document text
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// Analyze runs the document scanner on submitted text
// @Summary Analyze a legal document
// @Tags Counsel
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Failure 504 {object} response.Response
// @Router /document-scanner/analyze [post]
func (h *CounselHandler) Analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Text) == "" {
		return response.BadRequest(c, "No document text provided")
	}

	analysis, err := h.counselService.AnalyzeDocument(c.Context(), req.Text)
	if err != nil {
		return counselError(c, err)
	}

	return response.Success(c, "Document analyzed", analysis)
}

// ChatRequest carries one chat message
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat answers a legal-information question
// @Summary Legal information chat
// @Tags Counsel
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Failure 504 {object} response.Response
// @Router /chat [post]
func (h *CounselHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Message) == "" {
		return response.BadRequest(c, "Message is required")
	}

	reply, err := h.counselService.Chat(c.Context(), req.Message)
	if err != nil {
		return counselError(c, err)
	}

	return response.Success(c, "Reply generated", fiber.Map{"reply": reply})
}

func counselError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return response.GatewayTimeout(c, "Upstream service timed out")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return response.BadGateway(c, "Upstream service unavailable")
	default:
		return response.InternalServerError(c, "Failed to process request")
	}
}
