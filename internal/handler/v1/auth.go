package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ayursutra/ayursutra/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type signUpRequest struct {
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	ClinicName       string `json:"clinic_name" binding:"required"`
	PractitionerName string `json:"practitioner_name" binding:"required"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.svc.SignUp(c.Request.Context(), &service.SignUpCommand{
		Email:            req.Email,
		Password:         req.Password,
		ClinicName:       req.ClinicName,
		PractitionerName: req.PractitionerName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, pair)
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pair)
}

// Me echoes the authenticated identity from the token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	respondOK(c, claims)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pair)
}
