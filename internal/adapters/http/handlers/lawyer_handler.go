package handlers

import (
	"errors"
	"strconv"

	"lexconnect-api/internal/adapters/persistence/repositories"
	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/core/services"
	"lexconnect-api/internal/pkg/pagination"
	"lexconnect-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LawyerHandler handles lawyer directory endpoints
type LawyerHandler struct {
	lawyerService *services.LawyerService
}

// NewLawyerHandler creates a new lawyer handler
func NewLawyerHandler(lawyerService *services.LawyerService) *LawyerHandler {
	return &LawyerHandler{lawyerService: lawyerService}
}

// GetLawyers lists lawyers matching the query filters
// @Summary Search lawyer directory
// @Tags Lawyers
// @Produce json
// @Security BearerAuth
// @Param specialization query string false "Specialization filter"
// @Param city query string false "City filter"
// @Param state query string false "State filter"
// @Param country query string false "Country filter"
// @Success 200 {object} pagination.Response
// @Failure 500 {object} response.Response
// @Router /lawyers/get-lawyers [get]
func (h *LawyerHandler) GetLawyers(c *fiber.Ctx) error {
	filter := repositories.LawyerFilter{
		Specialization: c.Query("specialization"),
		City:           c.Query("city"),
		State:          c.Query("state"),
		Country:        c.Query("country"),
	}
	if v := c.Query("pro_bono"); v != "" {
		proBono, err := strconv.ParseBool(v)
		if err != nil {
			return response.BadRequest(c, "pro_bono must be true or false")
		}
		filter.ProBono = &proBono
	}
	if v := c.Query("availability"); v != "" {
		availability, err := strconv.ParseBool(v)
		if err != nil {
			return response.BadRequest(c, "availability must be true or false")
		}
		filter.Availability = &availability
	}

	params := pagination.GetParams(c)

	lawyers, total, err := h.lawyerService.Search(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch lawyers")
	}

	return c.JSON(pagination.NewResponse(lawyers, params, total))
}

// GetProfile returns one lawyer profile by user ID
// @Summary Get lawyer profile
// @Tags Lawyers
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lawyers/profile/{id} [get]
func (h *LawyerHandler) GetProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, "Profile not found")
	}

	profile, err := h.lawyerService.GetProfile(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch profile")
	}

	return response.Success(c, "Lawyer found", profile)
}

// RateRequest represents a rating submission
type RateRequest struct {
	Rating float64 `json:"rating"`
}

// Rate updates a lawyer's running-average rating
// @Summary Rate a lawyer
// @Tags Lawyers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lawyers/rating/{id} [put]
func (h *LawyerHandler) Rate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, "Profile not found")
	}

	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.lawyerService.Rate(c.Context(), uint(id), req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Rating must be between 0 and 5")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Profile not found")
		default:
			return response.InternalServerError(c, "Failed to update rating")
		}
	}

	return response.Success(c, "Rating updated", profile)
}
