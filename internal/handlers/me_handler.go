package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medical-scheduler/internal/dto"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/medical-scheduler/internal/usecase/account"
)

type MeHandler struct {
	updateProfile *ucAccount.UpdateProfile
}

func NewMeHandler(updateProfile *ucAccount.UpdateProfile) *MeHandler {
	return &MeHandler{updateProfile: updateProfile}
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// GetMe never fails: anonymous callers get {"user": null}.
func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.User == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.FromUser(id.User)})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.updateProfile.Execute(c.Request.Context(), id.UserID, ucAccount.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.FromUser(user)})
}
