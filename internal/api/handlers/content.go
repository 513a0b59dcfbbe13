package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/contentloom/contentloom/internal/api/dto"
	"github.com/contentloom/contentloom/internal/api/middleware"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/utils"
	"github.com/contentloom/contentloom/internal/pkg/validator"
	"github.com/contentloom/contentloom/internal/services"
)

// ContentHandler handles content generation requests
type ContentHandler struct {
	content   *services.ContentService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewContentHandler creates a new content handler
func NewContentHandler(content *services.ContentService, log *logger.Logger, val *validator.Validator) *ContentHandler {
	return &ContentHandler{
		content:   content,
		logger:    log,
		validator: val,
	}
}

// Quick generates a short piece of content
// @Summary Quick content
// @Description Generate a short piece of content, debiting one quick-creation credit
// @Tags Content
// @Accept json
// @Produce json
// @Param request body dto.ContentRequest true "Prompt"
// @Success 200 {object} dto.ContentResponse "Generated content"
// @Failure 403 {object} utils.ErrorResponse "Quota exceeded"
// @Router /content/quick [post]
// @Security BearerAuth
func (h *ContentHandler) Quick(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.content.QuickContent)
}

// Suggestions generates content suggestions
// @Summary Content suggestions
// @Description Generate tailored content suggestions, debiting one suggestion credit
// @Tags Content
// @Accept json
// @Produce json
// @Param request body dto.ContentRequest true "Prompt"
// @Success 200 {object} dto.ContentResponse "Generated suggestions"
// @Failure 403 {object} utils.ErrorResponse "Quota exceeded"
// @Router /content/suggestions [post]
// @Security BearerAuth
func (h *ContentHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.content.Suggestions)
}

// Plan generates a content plan
// @Summary Content plan
// @Description Generate a multi-week content plan, debiting one plan credit
// @Tags Content
// @Accept json
// @Produce json
// @Param request body dto.ContentRequest true "Prompt"
// @Success 200 {object} dto.ContentResponse "Generated plan"
// @Failure 403 {object} utils.ErrorResponse "Quota exceeded"
// @Router /content/plans [post]
// @Security BearerAuth
func (h *ContentHandler) Plan(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.content.ContentPlan)
}

// Review reviews a content draft
// @Summary Content review
// @Description Review a draft and return feedback, debiting one review credit
// @Tags Content
// @Accept json
// @Produce json
// @Param request body dto.ContentRequest true "Draft"
// @Success 200 {object} dto.ContentResponse "Review feedback"
// @Failure 403 {object} utils.ErrorResponse "Quota exceeded"
// @Router /content/reviews [post]
// @Security BearerAuth
func (h *ContentHandler) Review(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.content.Review)
}

func (h *ContentHandler) generate(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, string) (*services.ContentResult, error)) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	var req dto.ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	res, err := op(r.Context(), teamID, req.Prompt)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromContentResult(res))
}
