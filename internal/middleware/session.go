package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/auth"
)

// RequireSession rejects requests that do not carry a valid admin
// session cookie. The resolved session is stored in locals under
// "session" for downstream handlers.
func RequireSession(service *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := service.Validate(c.UserContext(), c.Cookies(auth.SessionCookie))
		if err != nil {
			if errors.Is(err, auth.ErrSessionNotFound) {
				return fiber.NewError(http.StatusUnauthorized, "not authenticated")
			}
			return err
		}
		c.Locals("session", session)
		return c.Next()
	}
}
