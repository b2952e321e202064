package http

import (
	"github.com/labstack/echo/v4"
)

// ActorIDKey is where the identity middleware stores the authenticated
// actor's id for handlers to read.
const ActorIDKey = "actor_id"

func actorID(c echo.Context) string {
	if v, ok := c.Get(ActorIDKey).(string); ok {
		return v
	}
	return ""
}
