package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes login/logout HTTP endpoints.
type Handler struct {
	service *Service
	ttl     time.Duration
}

// NewHandler builds an auth HTTP handler. ttl controls the cookie
// lifetime and should match the session store's.
func NewHandler(service *Service, ttl time.Duration) *Handler {
	return &Handler{service: service, ttl: ttl}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login opens an admin session and sets the session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password are required")
	}

	session, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Expires:  time.Now().Add(h.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"email":      session.Email,
		"logged_in":  true,
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Logout closes the current session and clears the cookie.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext(), c.Cookies(SessionCookie)); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(http.StatusOK).JSON(fiber.Map{"logged_in": false})
}

// Current reports on the active session.
func (h *Handler) Current(c *fiber.Ctx) error {
	session, err := h.service.Validate(c.UserContext(), c.Cookies(SessionCookie))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fiber.NewError(http.StatusUnauthorized, "not authenticated")
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"email":      session.Email,
		"logged_in":  true,
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339),
	})
}
