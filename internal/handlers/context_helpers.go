package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/middleware"
)

// actorFrom builds the use-case actor from the resolved session. Routes
// are mounted behind RequireSession, so a miss is answered with 401.
func actorFrom(c *gin.Context) (domainAppointment.Actor, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
		return domainAppointment.Actor{}, false
	}

	actor := domainAppointment.Actor{
		UserID: id.UserID,
		Role:   id.Role,
	}
	if id.User != nil {
		actor.Name = id.User.Name
		actor.Email = id.User.Email
	}
	return actor, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if hasTag(err, "isodatetime") {
			httperr.BadRequest(c, "invalid_date", "date must be an ISO 8601 timestamp.")
			return false
		}
		httperr.BadRequest(c, "invalid_request", "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// hasTag reports whether binding failed on the given validator tag.
func hasTag(err error, tag string) bool {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

// pathOrBody prefers the :id path parameter and falls back to the id
// carried in the request body.
func pathOrBody(c *gin.Context, bodyID string) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return bodyID
}
