package handlers

import (
	"errors"

	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/core/services"
	"lexconnect-api/internal/pkg/pagination"
	"lexconnect-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CaseHandler handles case endpoints
type CaseHandler struct {
	caseService *services.CaseService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *services.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// Create posts a new case for the authenticated client
// @Summary Create a case
// @Tags Cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /cases/{clientId}/create-case [post]
func (h *CaseHandler) Create(c *fiber.Ctx) error {
	clientID, err := c.ParamsInt("clientId")
	if err != nil || clientID < 1 {
		return response.Forbidden(c, "ID not found for client")
	}

	// The path identity must be the caller's own
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID != uint(clientID) {
		return response.Forbidden(c, "Cannot create a case for another client")
	}

	var req services.CreateCaseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" || req.Description == "" || req.Category == "" || req.Type == "" {
		return response.BadRequest(c, "All required fields are not provided")
	}
	if req.Type != domain.CaseTypePaid && req.Type != domain.CaseTypeProBono {
		return response.BadRequest(c, "Type must be paid or pro_bono")
	}
	if req.Type == domain.CaseTypePaid && req.Budget <= 0 {
		return response.BadRequest(c, "Paid cases require a budget")
	}

	created, err := h.caseService.Create(c.Context(), uint(clientID), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.Forbidden(c, "Client not found with this id")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only clients can create cases")
		default:
			return response.InternalServerError(c, "Case couldn't be saved")
		}
	}

	return response.Success(c, "Case has been created", created)
}

// ListClientCases lists the authenticated client's cases
// @Summary List a client's cases
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{clientId}/cases [get]
func (h *CaseHandler) ListClientCases(c *fiber.Ctx) error {
	clientID, err := c.ParamsInt("clientId")
	if err != nil || clientID < 1 {
		return response.Forbidden(c, "ID not received for client")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok || userID != uint(clientID) {
		return response.Forbidden(c, "Cannot view another client's cases")
	}

	cases, err := h.caseService.ListByClient(c.Context(), uint(clientID))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch cases")
	}
	if len(cases) == 0 {
		return response.NotFound(c, "No cases found for this client")
	}

	return response.Success(c, "Cases fetched successfully", cases)
}

// ListOpen lists open cases for the lawyer-facing feed
// @Summary List open cases
// @Tags Cases
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /cases [get]
func (h *CaseHandler) ListOpen(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	cases, total, err := h.caseService.ListOpen(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch cases")
	}

	return c.JSON(pagination.NewResponse(cases, params, total))
}

// GetByID returns a single case
// @Summary Get case by ID
// @Tags Cases
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{id} [get]
func (h *CaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, "Case not found")
	}

	result, err := h.caseService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrCaseNotFound) {
			return response.NotFound(c, "Case not found")
		}
		return response.InternalServerError(c, "Failed to fetch case")
	}

	return response.Success(c, "Case found", result)
}

// Assign claims an open case for the authenticated lawyer
// @Summary Assign a lawyer to a case
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /cases/{id}/assign [put]
func (h *CaseHandler) Assign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, "Case not found")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.caseService.Assign(c.Context(), uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotFound):
			return response.Forbidden(c, "Not authorized")
		case errors.Is(err, domain.ErrCaseNotFound):
			return response.NotFound(c, "Case not found")
		case errors.Is(err, domain.ErrCaseAlreadyAssigned):
			return response.Conflict(c, "Case already assigned")
		default:
			return response.InternalServerError(c, "Failed to assign case")
		}
	}

	return response.Success(c, "Case assigned", result)
}

// StatusRequest represents a status update
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus advances a case's lifecycle status
// @Summary Update case status
// @Tags Cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{id}/status [put]
func (h *CaseHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, "Case not found")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.caseService.UpdateStatus(c.Context(), uint(id), userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCaseNotFound):
			return response.NotFound(c, "Case not found")
		case errors.Is(err, domain.ErrNotParticipant):
			return response.Forbidden(c, "Not authorized")
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidCaseStatus):
			return response.BadRequest(c, "Invalid status")
		default:
			return response.InternalServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Status updated", result)
}
