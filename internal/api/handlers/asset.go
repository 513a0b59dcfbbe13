package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/contentloom/contentloom/internal/api/dto"
	"github.com/contentloom/contentloom/internal/api/middleware"
	"github.com/contentloom/contentloom/internal/domain/asset"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/utils"
	"github.com/contentloom/contentloom/internal/pkg/validator"
	"github.com/contentloom/contentloom/internal/services"
)

// AssetHandler handles brand, persona and theme requests. One handler
// serves all three kinds; the kind is fixed per route.
type AssetHandler struct {
	assets    *services.AssetService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets *services.AssetService, log *logger.Logger, val *validator.Validator) *AssetHandler {
	return &AssetHandler{
		assets:    assets,
		logger:    log,
		validator: val,
	}
}

// Create returns a kind-bound creation handler
// @Summary Create an asset
// @Description Create a brand, persona or theme if the plan's quota allows
// @Tags Assets
// @Accept json
// @Produce json
// @Param request body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetDTO "Created asset"
// @Failure 403 {object} utils.ErrorResponse "Quota exceeded"
// @Router /brands [post]
// @Security BearerAuth
func (h *AssetHandler) Create(kind asset.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := middleware.GetTeamID(r)
		if !ok {
			utils.WriteError(w, errors.Unauthorized("Not authenticated"))
			return
		}

		var req dto.CreateAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
		if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
			utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
			return
		}

		a := &asset.Asset{
			TeamID:      teamID,
			Kind:        kind,
			Name:        req.Name,
			Description: req.Description,
		}
		if err := h.assets.Create(r.Context(), a); err != nil {
			writeServiceError(w, err)
			return
		}

		utils.WriteSuccess(w, http.StatusCreated, dto.FromAsset(a))
	}
}

// List returns a kind-bound listing handler
// @Summary List assets
// @Description List the team's assets of one kind
// @Tags Assets
// @Produce json
// @Success 200 {array} dto.AssetDTO "Assets"
// @Router /brands [get]
// @Security BearerAuth
func (h *AssetHandler) List(kind asset.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := middleware.GetTeamID(r)
		if !ok {
			utils.WriteError(w, errors.Unauthorized("Not authenticated"))
			return
		}

		as, err := h.assets.List(r.Context(), teamID, kind)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		utils.WriteSuccess(w, http.StatusOK, dto.FromAssets(as))
	}
}

// Delete removes an asset owned by the team
// @Summary Delete an asset
// @Description Delete a brand, persona or theme by id
// @Tags Assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Router /brands/{id} [delete]
// @Security BearerAuth
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid asset id"))
		return
	}

	if err := h.assets.Delete(r.Context(), teamID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Asset deleted", nil)
}
