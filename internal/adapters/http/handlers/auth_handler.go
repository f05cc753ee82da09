package handlers

import (
	"errors"
	"strings"

	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/core/services"
	"lexconnect-api/internal/pkg/password"
	"lexconnect-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// FieldError describes a single failed validation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Register handles client/lawyer registration
// @Summary Register new user
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := validateRegister(&req); len(fieldErrors) > 0 {
		return response.ValidationFailed(c, "Validation failed", fieldErrors)
	}

	result, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "User already exists")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Success(c, "Registration successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Login handles user login
// @Summary Login user
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.BadRequest(c, "Invalid credentials")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Logout revokes the presented token
// @Summary Logout user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tokenString, ok := c.Locals("token").(string)
	if !ok || tokenString == "" {
		return response.BadRequest(c, "Token not found")
	}

	if err := h.authService.Logout(c.Context(), tokenString); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return response.BadRequest(c, "Token is not valid")
		}
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current authenticated identity, password excluded
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/user [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// LawyerRegister handles lawyer registration with profile fields
// @Summary Register new lawyer
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/lawyer-register [post]
func (h *AuthHandler) LawyerRegister(c *fiber.Ctx) error {
	var req services.LawyerRegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := validateLawyerRegister(&req); len(fieldErrors) > 0 {
		return response.ValidationFailed(c, "Validation failed", fieldErrors)
	}

	result, err := h.authService.RegisterLawyer(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "This email already exists, please login")
		default:
			return response.InternalServerError(c, "Failed to register lawyer")
		}
	}

	return response.Success(c, "Lawyer signup successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// LawyerLogin handles lawyer login. Same generic failure as Login: the
// response does not reveal whether the email or the password was wrong.
// @Summary Login lawyer
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/lawyer-login [post]
func (h *AuthHandler) LawyerLogin(c *fiber.Ctx) error {
	return h.Login(c)
}

func validateRegister(req *services.RegisterInput) []FieldError {
	var fieldErrors []FieldError

	if len(strings.TrimSpace(req.Name)) < 2 {
		fieldErrors = append(fieldErrors, FieldError{"name", "Name must be at least 2 characters long"})
	}
	if !validEmail(req.Email) {
		fieldErrors = append(fieldErrors, FieldError{"email", "Please enter a valid email"})
	}
	if !password.Validate(req.Password) {
		fieldErrors = append(fieldErrors, FieldError{"password", "Password must be at least 6 characters long"})
	}
	if !domain.Role(req.Role).Valid() {
		fieldErrors = append(fieldErrors, FieldError{"role", "Role must be either client or lawyer"})
	}

	return fieldErrors
}

func validateLawyerRegister(req *services.LawyerRegisterInput) []FieldError {
	var fieldErrors []FieldError

	if len(strings.TrimSpace(req.Name)) < 2 {
		fieldErrors = append(fieldErrors, FieldError{"name", "Name must be at least 2 characters long"})
	}
	if !validEmail(req.Email) {
		fieldErrors = append(fieldErrors, FieldError{"email", "Please enter a valid email"})
	}
	if !password.Validate(req.Password) {
		fieldErrors = append(fieldErrors, FieldError{"password", "Password must be at least 6 characters long"})
	}
	if !domain.ValidSpecialization(req.Specialization) {
		fieldErrors = append(fieldErrors, FieldError{"specialization", "Unknown specialization"})
	}
	if req.ExperienceYears < 0 {
		fieldErrors = append(fieldErrors, FieldError{"experience_years", "Experience must not be negative"})
	}

	return fieldErrors
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	dot := strings.LastIndex(email, ".")
	return dot > at+1 && dot < len(email)-1
}
