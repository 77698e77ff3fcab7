package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medical-scheduler/internal/dto"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
	"github.com/BruksfildServices01/medical-scheduler/internal/session"
	ucAccount "github.com/BruksfildServices01/medical-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
	sessions *session.Manager
	secure   bool
}

func NewAuthHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	sessions *session.Manager,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		sessions: sessions,
		secure:   secureCookies,
	}
}

// --------- Requests ---------

// Field presence and format are checked by the use case so that every
// failure carries a specific error code.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	// public sign-up always creates patients
	user, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RolePatient,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if !h.startSession(c, user) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": dto.FromUser(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if !h.startSession(c, user) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.FromUser(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session.ClearCookie(c, h.secure)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// --------- Session ---------

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) bool {
	token, _, err := h.sessions.Issue(user)
	if err != nil {
		httperr.Respond(c, err)
		return false
	}
	session.SetCookie(c, token, h.sessions.TTL(), h.secure)
	return true
}
