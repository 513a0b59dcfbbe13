package handlers

import (
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

// BillingHandler handles plan listing, checkout and plan changes
type BillingHandler struct {
	billing   *services.BillingService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billing *services.BillingService, log *logger.Logger, val *validator.Validator) *BillingHandler {
	return &BillingHandler{
		billing:   billing,
		logger:    log,
		validator: val,
	}
}

// ListPlans returns the active plan catalog
// @Summary List plans
// @Description Retrieve all active plans for display
// @Tags Billing
// @Produce json
// @Success 200 {array} dto.PlanDTO "Active plans"
// @Router /billing/plans [get]
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.billing.ListPlans(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]*dto.PlanDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.FromPlan(p))
	}
	utils.WriteSuccess(w, http.StatusOK, out)
}

// Checkout opens a payment session for a paid plan
// @Summary Create checkout session
// @Description Open a Stripe Checkout session and return its redirect URL
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Plan to purchase"
// @Success 200 {object} dto.CheckoutResponse "Redirect URL"
// @Failure 402 {object} utils.ErrorResponse "Payment error"
// @Router /billing/checkout [post]
// @Security BearerAuth
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	url, err := h.billing.CreateCheckout(r.Context(), teamID, req.PlanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.CheckoutResponse{URL: url})
}

// StartTrial opens a trial subscription
// @Summary Start a trial
// @Description Open a TRIAL subscription on the named plan
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.StartTrialRequest true "Plan to trial"
// @Success 201 {object} dto.SubscriptionDTO "Trial subscription"
// @Router /billing/trial [post]
// @Security BearerAuth
func (h *BillingHandler) StartTrial(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	var req dto.StartTrialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	sub, err := h.billing.StartTrial(r.Context(), teamID, req.PlanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.FromSubscription(sub))
}

// ActivatePlan moves the team onto a plan after payment
// @Summary Activate a plan
// @Description Activate a plan for the team after a completed checkout
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.ActivatePlanRequest true "Plan to activate"
// @Success 200 {object} dto.SubscriptionDTO "Active subscription"
// @Router /billing/subscription [post]
// @Security BearerAuth
func (h *BillingHandler) ActivatePlan(w http.ResponseWriter, r *http.Request) {
	teamID, ok := middleware.GetTeamID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	var req dto.ActivatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	sub, err := h.billing.ActivatePlan(r.Context(), teamID, req.PlanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromSubscription(sub))
}
