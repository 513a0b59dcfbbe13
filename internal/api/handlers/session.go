package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/contentloom/contentloom/internal/api/dto"
	"github.com/contentloom/contentloom/internal/api/middleware"
	"github.com/contentloom/contentloom/internal/domain/session"
	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/utils"
	"github.com/contentloom/contentloom/internal/pkg/validator"
)

// SessionHandler handles usage-session tracking requests
type SessionHandler struct {
	sessions  session.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions session.Service, log *logger.Logger, val *validator.Validator) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		logger:    log,
		validator: val,
	}
}

// Start opens or returns the user's running session
// @Summary Start a usage session
// @Description Open the user's RUNNING session, returning the existing one on double-start
// @Tags Sessions
// @Produce json
// @Success 200 {object} dto.SessionDTO "Running session"
// @Router /usage-sessions/start [post]
// @Security BearerAuth
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	sess, err := h.sessions.Start(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromSession(sess))
}

// Pause folds the running stretch into accumulated time
// @Summary Pause a usage session
// @Description Pause the session, folding the running stretch into accumulated time
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Session id"
// @Success 200 {object} dto.SessionSecondsResponse "Accumulated seconds"
// @Router /usage-sessions/pause [post]
// @Security BearerAuth
func (h *SessionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	secs, err := h.sessions.Pause(r.Context(), userID, req.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.SessionSecondsResponse{
		SessionID:          req.SessionID,
		AccumulatedSeconds: secs,
	})
}

// Beacon is the unload-time pause. Browsers deliver it with no listener
// for the response, so it always answers 204 immediately and any failure
// is swallowed server-side.
// @Summary Beacon pause
// @Description Fire-and-forget pause used during page teardown; always responds 204
// @Tags Sessions
// @Accept json
// @Success 204 "Accepted"
// @Router /usage-sessions/beacon [post]
// @Security BearerAuth
func (h *SessionHandler) Beacon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var req dto.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.SessionID != "" {
		h.sessions.BestEffortPause(r.Context(), userID, req.SessionID)
	}

	w.WriteHeader(http.StatusNoContent)
}

// Resume restarts a paused session
// @Summary Resume a usage session
// @Description Resume a paused session; a reaped or ended session yields a fresh one
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Session id"
// @Success 200 {object} dto.SessionDTO "Running session, possibly with a new id"
// @Router /usage-sessions/resume [post]
// @Security BearerAuth
func (h *SessionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	sess, err := h.sessions.Resume(r.Context(), userID, req.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromSession(sess))
}

// Heartbeat extends the session's liveness window
// @Summary Session heartbeat
// @Description Extend the session's liveness window so the reaper leaves it alone
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Session id"
// @Success 200 {object} map[string]string "Acknowledged"
// @Router /usage-sessions/heartbeat [post]
// @Security BearerAuth
func (h *SessionHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Heartbeat(r.Context(), userID, req.SessionID); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// End finalizes the session
// @Summary End a usage session
// @Description Finalize the session and report the total accumulated seconds
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Session id"
// @Success 200 {object} dto.SessionSecondsResponse "Total accumulated seconds"
// @Router /usage-sessions/end [post]
// @Security BearerAuth
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	secs, err := h.sessions.End(r.Context(), userID, req.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.SessionSecondsResponse{
		SessionID:          req.SessionID,
		AccumulatedSeconds: secs,
	})
}

func (h *SessionHandler) sessionRequest(w http.ResponseWriter, r *http.Request) (int64, dto.SessionRequest, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return 0, dto.SessionRequest{}, false
	}

	var req dto.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return 0, dto.SessionRequest{}, false
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return 0, dto.SessionRequest{}, false
	}

	return userID, req, true
}
