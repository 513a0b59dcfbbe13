package handlers

import (
	"net/http"

	"github.com/contentloom/contentloom/internal/api/dto"
	"github.com/contentloom/contentloom/internal/api/middleware"
	"github.com/contentloom/contentloom/internal/domain/subscription"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/utils"
)

// SubscriptionHandler exposes the team's access status
type SubscriptionHandler struct {
	resolver subscription.Resolver
	logger   *logger.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(resolver subscription.Resolver, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		resolver: resolver,
		logger:   log,
	}
}

// Status resolves the authenticated team's subscription status
// @Summary Subscription status
// @Description Resolve whether the team may use the product, with trial details
// @Tags Subscription
// @Produce json
// @Success 200 {object} dto.SubscriptionStatusResponse "Resolved status"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Router /subscription/status [get]
// @Security BearerAuth
func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	st, err := h.resolver.Resolve(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromAccessStatus(st))
}
