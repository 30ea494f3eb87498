package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Description Create a user and immediately establish a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,name=string} true "Registration request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.Register(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// Registration logs the user straight in, as the site always has.
	sess, err := s.sessions.Establish(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": sess.Token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Authenticate and return an opaque session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	sess, err := s.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.sessions.CurrentUser(c.UserContext(), sess.Token)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": sess.Token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Invalidate the session token; always succeeds
// @Tags auth
// @Produce json
// @Success 200 {object} object{status=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.sessions.Logout(c.UserContext(), sessionToken(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"status": "logged out"})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Description Resolve the session token to its user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.policy.RequireAuthenticated(c.UserContext(), sessionToken(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}
