package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/profile"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
	"github.com/ayursutra/ayursutra/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, therapy.ErrTherapyNotFound),
		errors.Is(err, feedback.ErrFeedbackNotFound),
		errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, profile.ErrProfileAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, patient.ErrInvalidDosha),
		errors.Is(err, patient.ErrInvalidGender),
		errors.Is(err, patient.ErrInvalidStatus),
		errors.Is(err, therapy.ErrInvalidTherapyType),
		errors.Is(err, therapy.ErrInvalidStatus),
		errors.Is(err, therapy.ErrInvalidDuration),
		errors.Is(err, feedback.ErrInvalidRating),
		errors.Is(err, feedback.ErrCommentTooShort):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// claimsFromContext retrieves the identity set by the auth middleware.
func claimsFromContext(c *gin.Context) (domain.Claims, bool) {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing authentication")
		return domain.Claims{}, false
	}
	claims, ok := v.(domain.Claims)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing authentication")
		return domain.Claims{}, false
	}
	return claims, true
}
