package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/api/metrics"
	"github.com/expertbridge/marketplace-api/internal/api/middleware"
	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

// ProfileHandler serves the role-specific profile endpoints. A successful
// upsert also re-issues the session token so the profile_complete claim stops
// lagging behind the stored profile.
type ProfileHandler struct {
	profileService ports.ProfileService
	sessions       ports.SessionIssuer
}

func NewProfileHandler(profileService ports.ProfileService, sessions ports.SessionIssuer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, sessions: sessions}
}

// UpsertClientProfile creates or replaces the caller's client profile.
//
// @Summary      Create or update the client profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/client/profile [post]
func (h *ProfileHandler) UpsertClientProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req clientProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := h.profileService.UpsertClientProfile(c.Request().Context(), sess.Role, ports.ClientProfileInput{
		AccountID:   sess.AccountID,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Description: req.Description,
		Website:     req.Website,
		CompanySize: req.CompanySize,
		Location:    req.Location,
		Phone:       req.Phone,
	})
	if err != nil {
		return err
	}

	metrics.ProfileUpsertsTotal.WithLabelValues(string(domain.RoleClient)).Inc()
	return h.respondWithProfile(c, sess, profile, profile.Complete())
}

// GetClientProfile returns the caller's client profile.
//
// @Summary      Get the client profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ClientProfile
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/client/profile [get]
func (h *ProfileHandler) GetClientProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.GetClientProfile(c.Request().Context(), sess.Role, sess.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpsertExpertProfile creates or replaces the caller's expert profile.
//
// @Summary      Create or update the expert profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      expertProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/expert/profile [post]
func (h *ProfileHandler) UpsertExpertProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req expertProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := h.profileService.UpsertExpertProfile(c.Request().Context(), sess.Role, ports.ExpertProfileInput{
		AccountID:       sess.AccountID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Bio:             req.Bio,
		Expertise:       req.Expertise,
		YearsExperience: req.YearsExperience,
		HourlyRate:      req.HourlyRate,
		Location:        req.Location,
		Phone:           req.Phone,
		Website:         req.Website,
		LinkedIn:        req.LinkedIn,
	})
	if err != nil {
		return err
	}

	metrics.ProfileUpsertsTotal.WithLabelValues(string(domain.RoleExpert)).Inc()
	return h.respondWithProfile(c, sess, profile, profile.Complete())
}

// GetExpertProfile returns the caller's expert profile.
//
// @Summary      Get the expert profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ExpertProfile
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/expert/profile [get]
func (h *ProfileHandler) GetExpertProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.GetExpertProfile(c.Request().Context(), sess.Role, sess.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// respondWithProfile returns the stored profile and, when completion changed
// the claims, a fresh token the client should swap in. The old token stays
// valid until expiry; only its profile_complete claim is stale.
func (h *ProfileHandler) respondWithProfile(c echo.Context, sess *domain.Session, profile any, complete bool) error {
	resp := profileResponse{Profile: profile}
	if complete != sess.ProfileComplete {
		token, err := h.sessions.Issue(domain.Session{
			AccountID:       sess.AccountID,
			Email:           sess.Email,
			Role:            sess.Role,
			ProfileComplete: complete,
		})
		if err != nil {
			return err
		}
		resp.Token = token
		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
