package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/application/command"
	"github.com/seal-hub/seal-progress-hub/internal/application/query"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH
// ══════════════════════════════════════════════════════════════════════════════

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.Pinger != nil {
		if err := s.deps.Pinger.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"running": s.IsRunning(),
		"uptime":  s.Uptime().Round(time.Second).String(),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// AUTH
// ══════════════════════════════════════════════════════════════════════════════

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSignup handles POST /api/signup.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.RegisterUser.Handle(r.Context(), command.RegisterUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleLogin handles POST /api/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.LoginUser.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleLogout handles POST /api/logout.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Sessions.Revoke(r.Context(), bearerToken(r)); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ══════════════════════════════════════════════════════════════════════════════
// SEALS & PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

// handleListSeals handles GET /api/seals.
func (s *Server) handleListSeals(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	result, err := s.deps.ListSeals.Handle(r.Context(), query.ListSealsQuery{
		UserID: userID.String(),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetSeal handles GET /api/seals/{slug}.
func (s *Server) handleGetSeal(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	result, err := s.deps.GetSeal.Handle(r.Context(), query.GetSealQuery{
		UserID:   userID.String(),
		SealSlug: r.PathValue("slug"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCompleteObjective handles POST /api/objectives/{id}/complete.
// Idempotent: repeating the request returns the original record with 200.
// The body is optional; "completed": false asks for a downgrade, which is
// rejected with 409 because completion is monotonic.
func (s *Server) handleCompleteObjective(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	req := struct {
		Completed *bool `json:"completed"`
	}{}
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	result, err := s.deps.CompleteObjective.Handle(r.Context(), command.CompleteObjectiveCommand{
		UserID:      userID.String(),
		ObjectiveID: r.PathValue("id"),
		Revoke:      req.Completed != nil && !*req.Completed,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyCompleted {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

// handleConsumeNotification handles POST /api/seals/{slug}/notification.
func (s *Server) handleConsumeNotification(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	result, err := s.deps.ConsumeEarnedNotif.Handle(r.Context(), command.ConsumeEarnedNotificationCommand{
		UserID:   userID.String(),
		SealSlug: r.PathValue("slug"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleUserStats handles GET /api/me/stats.
func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	result, err := s.deps.GetUserStats.Handle(r.Context(), query.GetUserStatsQuery{
		UserID: userID.String(),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleLeaderboard handles GET /api/leaderboard.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSONError(w, http.StatusBadRequest, "validation", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	result, err := s.deps.GetLeaderboard.Handle(r.Context(), query.GetLeaderboardQuery{Limit: limit})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// writeDomainError maps domain errors to HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsUnauthenticated(err):
		writeJSONError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, "already_exists", err.Error())
	case shared.IsStateTransition(err):
		writeJSONError(w, http.StatusConflict, "invalid_transition", err.Error())
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation", err.Error())
	default:
		s.logger.Error("request failed", logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// decodeJSON decodes the request body, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return false
	}
	return true
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
