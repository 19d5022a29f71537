package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	ratingservice "expoawards/contexts/exhibition/rating-service"
	ratingerrors "expoawards/contexts/exhibition/rating-service/domain/errors"
	ratinghttp "expoawards/contexts/exhibition/rating-service/transport/http"
	winnersengine "expoawards/contexts/exhibition/winners-engine"
	winnerserrors "expoawards/contexts/exhibition/winners-engine/domain/errors"
	winnershttp "expoawards/contexts/exhibition/winners-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "expoawards/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	winners winnersengine.Module
	ratings ratingservice.Module
}

func New(
	winners winnersengine.Module,
	ratings ratingservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		winners: winners,
		ratings: ratings,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /admin/winners/prepare", s.handlePrepareWinners)
	s.mux.HandleFunc("GET /admin/winners/confirm", s.handleConfirmStats)
	s.mux.HandleFunc("POST /admin/winners/confirm", s.handleConfirmWinners)
	s.mux.HandleFunc("GET /exhibitions/{exhibition_id}/scoreboard", s.handleScoreboard)
	s.mux.HandleFunc("GET /exhibitions/{exhibition_id}/jury-report", s.handleJuryReport)

	s.mux.HandleFunc("POST /ratings", s.handleRate)
	s.mux.HandleFunc("GET /projects/{project_id}/rating-stats", s.handleRatingStats)
}

func (s *Server) handlePrepareWinners(w http.ResponseWriter, r *http.Request) {
	operatorID := r.Header.Get("X-Operator-Id")
	if operatorID == "" {
		writeWinnersError(w, http.StatusUnauthorized, "missing_operator", "X-Operator-Id header is required")
		return
	}

	var req winnershttp.PrepareWinnersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWinnersError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.winners.Handler.PrepareWinnersHandler(r.Context(), operatorID, req)
	if err != nil {
		writeWinnersDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConfirmStats(w http.ResponseWriter, r *http.Request) {
	operatorID := r.Header.Get("X-Operator-Id")
	if operatorID == "" {
		writeWinnersError(w, http.StatusUnauthorized, "missing_operator", "X-Operator-Id header is required")
		return
	}

	resp, err := s.winners.Handler.ConfirmStatsHandler(r.Context(), operatorID)
	if err != nil {
		writeWinnersDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConfirmWinners(w http.ResponseWriter, r *http.Request) {
	operatorID := r.Header.Get("X-Operator-Id")
	if operatorID == "" {
		writeWinnersError(w, http.StatusUnauthorized, "missing_operator", "X-Operator-Id header is required")
		return
	}

	var req winnershttp.ConfirmWinnersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWinnersError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.winners.Handler.ConfirmWinnersHandler(r.Context(), operatorID, req)
	if err != nil {
		writeWinnersDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	exhibitionID := r.PathValue("exhibition_id")
	resp, err := s.winners.Handler.ScoreboardHandler(r.Context(), exhibitionID)
	if err != nil {
		writeWinnersDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJuryReport(w http.ResponseWriter, r *http.Request) {
	exhibitionID := r.PathValue("exhibition_id")

	topN := 0
	if topRaw := r.URL.Query().Get("top"); topRaw != "" {
		top, err := strconv.Atoi(topRaw)
		if err != nil {
			writeWinnersError(w, http.StatusBadRequest, "invalid_top", "top must be an integer")
			return
		}
		topN = top
	}

	resp, err := s.winners.Handler.JuryReportHandler(r.Context(), exhibitionID, topN)
	if err != nil {
		writeWinnersDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeRatingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ratinghttp.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRatingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ratings.Handler.RateHandler(r.Context(), userID, req)
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRatingStats(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("project_id")
	userID := r.Header.Get("X-User-Id")

	resp, err := s.ratings.Handler.StatsHandler(r.Context(), projectID, userID)
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeWinnersDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, winnerserrors.ErrExhibitionNotFound):
		writeWinnersError(w, http.StatusNotFound, "exhibition_not_found", err.Error())
	case errors.Is(err, winnerserrors.ErrPreviewNotFound):
		writeWinnersError(w, http.StatusNotFound, "preview_not_found", err.Error())
	case errors.Is(err, winnerserrors.ErrOperatorRequired):
		writeWinnersError(w, http.StatusUnauthorized, "missing_operator", err.Error())
	case errors.Is(err, winnerserrors.ErrConflict):
		writeWinnersError(w, http.StatusConflict, "winners_conflict", err.Error())
	case errors.Is(err, winnerserrors.ErrInvalidWinnersInput):
		writeWinnersError(w, http.StatusBadRequest, "invalid_winners_input", err.Error())
	default:
		writeWinnersError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRatingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ratingerrors.ErrProjectNotFound):
		writeRatingError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrExhibitionNotFound):
		writeRatingError(w, http.StatusNotFound, "exhibition_not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrSelfRatingForbidden):
		writeRatingError(w, http.StatusForbidden, "self_rating_forbidden", err.Error())
	case errors.Is(err, ratingerrors.ErrJuryVotingClosed):
		writeRatingError(w, http.StatusForbidden, "jury_voting_closed", err.Error())
	case errors.Is(err, ratingerrors.ErrPublicVotingClosed):
		writeRatingError(w, http.StatusForbidden, "public_voting_closed", err.Error())
	case errors.Is(err, ratingerrors.ErrConflict):
		writeRatingError(w, http.StatusConflict, "rating_conflict", err.Error())
	case errors.Is(err, ratingerrors.ErrInvalidRatingInput):
		writeRatingError(w, http.StatusBadRequest, "invalid_rating_input", err.Error())
	default:
		writeRatingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWinnersError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, winnershttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeRatingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ratinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
