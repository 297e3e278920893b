package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/savelxev/biteplan-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateProfile handles POST /profile (onboarding). Targets are computed
// locally and returned with the profile, so the client has numbers to show
// immediately.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	created, err := h.profileUseCase.CreateProfile(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "profile already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create profile"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetMyProfile handles GET /profile/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	p, err := h.profileUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PUT /profile/me. Any relevant edit recomputes the
// targets before the row is written.
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
