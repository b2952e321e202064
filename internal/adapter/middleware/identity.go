package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// ActorIDHeader carries the authenticated actor id resolved by the
	// identity provider in front of this service.
	ActorIDHeader = "Ax-Actor-Id"
	// EmailVerifiedHeader is the identity provider's verification flag. The
	// core trusts it as a precondition for mutating calls and does not
	// manage verification itself.
	EmailVerifiedHeader = "Ax-Email-Verified"

	actorIDKey = "actor_id"
)

// Identity extracts the actor headers set by the identity provider. Reads
// pass through anonymously; mutating methods require a well-formed actor id
// and a verified email.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			actor := strings.TrimSpace(req.Header.Get(ActorIDHeader))
			if actor != "" {
				c.Set(actorIDKey, strings.ToLower(actor))
			}

			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			if actor == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + ActorIDHeader})
			}
			if !reHex32.MatchString(strings.ToLower(actor)) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid " + ActorIDHeader})
			}
			if !strings.EqualFold(strings.TrimSpace(req.Header.Get(EmailVerifiedHeader)), "true") {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "email not verified"})
			}
			return next(c)
		}
	}
}
