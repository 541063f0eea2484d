package handler

import (
	"net/http"

	"github.com/gdugdh24/matchdotcom-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateProfile handles POST /profiles
// @Summary Create profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body profile.CreateProfileRequest true "Profile data"
// @Success 201 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	created, err := h.profileUseCase.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to create profile")
		return
	}

	c.Header("Location", "/api/v1/profiles/"+created.Username)
	c.JSON(http.StatusCreated, created)
}

// ListProfiles handles GET /profiles
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Success 200 {array} domain.UserProfile
// @Router /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileUseCase.GetAllProfiles(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list profiles")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetProfile handles GET /profiles/:username
// @Summary Get profile by username
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{username} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profileUseCase.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfileByID handles GET /profiles/id/:id
// @Summary Get profile by ID
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profiles/id/{id} [get]
func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetProfileByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile handles PUT /profiles/:username
// @Summary Update profile
// @Description Partial update; a Username in the body must match the path
// @Tags profiles
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body profile.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{username} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), c.Param("username"), &req)
	if err != nil {
		respondError(c, err, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RefreshCoordinates handles POST /profiles/:username/geocode
// @Summary Re-geocode the profile address
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{username}/geocode [post]
func (h *ProfileHandler) RefreshCoordinates(c *gin.Context) {
	p, err := h.profileUseCase.RefreshCoordinates(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err, "failed to refresh coordinates")
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProfile handles DELETE /profiles/:username
// @Summary Delete profile by username
// @Tags profiles
// @Param username path string true "Username"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{username} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	deleted, err := h.profileUseCase.DeleteProfileByUsername(c.Request.Context(), c.Param("username"))
	respondDeleted(c, deleted, err)
}

// DeleteProfileByID handles DELETE /profiles/id/:id
// @Summary Delete profile by ID
// @Tags profiles
// @Param id path string true "Profile ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profiles/id/{id} [delete]
func (h *ProfileHandler) DeleteProfileByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.profileUseCase.DeleteProfileByID(c.Request.Context(), id)
	respondDeleted(c, deleted, err)
}

func respondDeleted(c *gin.Context, deleted bool, err error) {
	if err != nil {
		respondError(c, err, "failed to delete profile")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return uuid.Nil, false
	}
	return id, true
}
