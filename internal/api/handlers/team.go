package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/contentloom/contentloom/internal/api/dto"
	"github.com/contentloom/contentloom/internal/api/middleware"
	"github.com/contentloom/contentloom/internal/domain/quota"
	"github.com/contentloom/contentloom/internal/domain/user"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/utils"
	"github.com/contentloom/contentloom/internal/pkg/validator"
	"github.com/contentloom/contentloom/internal/services"
)

// TeamHandler handles team membership requests
type TeamHandler struct {
	authService *services.AuthService
	users       user.Repository
	guard       quota.Guard
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(authService *services.AuthService, users user.Repository, guard quota.Guard, log *logger.Logger, val *validator.Validator) *TeamHandler {
	return &TeamHandler{
		authService: authService,
		users:       users,
		guard:       guard,
		logger:      log,
		validator:   val,
	}
}

// ListMembers lists the team's members
// @Summary List team members
// @Description Retrieve all members of the authenticated team
// @Tags Team
// @Produce json
// @Success 200 {array} dto.UserDTO "Members"
// @Router /team/members [get]
// @Security BearerAuth
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	members, err := h.users.ListByTeam(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]*dto.UserDTO, 0, len(members))
	for _, m := range members {
		out = append(out, dto.FromUser(m))
	}
	utils.WriteSuccess(w, http.StatusOK, out)
}

// AddMember adds a member if the plan's member quota allows
// @Summary Add a team member
// @Description Create an additional member on the team, quota permitting
// @Tags Team
// @Accept json
// @Produce json
// @Param request body dto.AddMemberRequest true "Member details"
// @Success 201 {object} dto.UserDTO "Created member"
// @Failure 403 {object} utils.ErrorResponse "Quota exceeded"
// @Router /team/members [post]
// @Security BearerAuth
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	var req dto.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	decision, err := h.guard.CanAddMembers(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !decision.Allowed {
		utils.WriteError(w, errors.QuotaExceeded(decision.Reason, decision))
		return
	}

	member, err := h.authService.AddMember(r.Context(), teamID, req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.FromUser(member))
}
