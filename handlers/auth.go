package handlers

import (
	"github.com/biosecret/voice-todo/models"
	"github.com/biosecret/voice-todo/services"
	"github.com/gofiber/fiber/v2"
)

type TokenResponse struct {
	Token string `json:"token"`
}

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary  Register a new account
// @Tags     auth
// @Accept   json
// @Produce  plain
// @Param    credentials body models.Credentials true "Credentials"
// @Success  201 {string} string
// @Failure  400 {object} ErrorResponse
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in models.Credentials
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}

	if err := h.auth.Register(c.UserContext(), in.Email, in.Password); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).SendString("account registered")
}

// Login godoc
// @Summary  Log in and receive a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    credentials body models.Credentials true "Credentials"
// @Success  200 {object} TokenResponse
// @Failure  400 {object} ErrorResponse
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in models.Credentials
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}

	token, err := h.auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{Token: token})
}
