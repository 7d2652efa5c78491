package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pmackar/gamifyit/internal/league"
	"github.com/pmackar/gamifyit/internal/season"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.MetricsStore.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get stats from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) JoinLeagueHandler() http.HandlerFunc {
	type request struct {
		UserID string `json:"user_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		if req.UserID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		result, err := s.Store.EnsureMembership(req.UserID, time.Now())
		if err != nil {
			log.Error("Failed to join league", "error", err, "userID", req.UserID)
			http.Error(w, "Failed to join league", http.StatusInternalServerError)
			return
		}
		if result.IsNewlyJoined {
			s.Metrics.IncLeagueJoins()
			s.MetricsStore.Increment("league_joins")
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) AddScoreHandler() http.HandlerFunc {
	type request struct {
		UserID string `json:"user_id"`
		Amount int64  `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		if req.UserID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		err := s.Store.AddWeeklyScore(req.UserID, req.Amount, time.Now())
		if errors.Is(err, league.ErrNegativeAmount) {
			http.Error(w, "amount must be non-negative", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("Failed to add weekly score", "error", err, "userID", req.UserID)
			http.Error(w, "Failed to add weekly score", http.StatusInternalServerError)
			return
		}
		s.Metrics.IncScoreEvents()
		s.MetricsStore.Increment("score_events")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Score recorded.")
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := r.URL.Query().Get("league_id")
		if leagueID == "" {
			http.Error(w, "league_id is required", http.StatusBadRequest)
			return
		}

		standings, err := s.Store.GetStandings(leagueID)
		if errors.Is(err, league.ErrLeagueNotFound) {
			http.Error(w, "League not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to get standings", "error", err, "leagueID", leagueID)
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) LeagueStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		status, err := s.Store.GetUserStatus(userID, time.Now())
		if errors.Is(err, league.ErrNoMembership) {
			http.Error(w, "User has no league this week", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to get league status", "error", err, "userID", userID)
			http.Error(w, "Failed to get league status", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

func (s *Server) RolloverHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		summary, err := s.Processor.Run(time.Now(), isDryRun)
		if err != nil {
			http.Error(w, "Rollover failed", http.StatusInternalServerError)
			return
		}
		if !isDryRun {
			s.MetricsStore.Increment("rollover_runs")
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) SeasonXPHandler() http.HandlerFunc {
	type request struct {
		UserID string `json:"user_id"`
		Amount int64  `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		if req.UserID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		result, err := s.Seasons.AddXP(req.UserID, req.Amount, time.Now())
		if err != nil {
			respondSeasonError(w, err, req.UserID)
			return
		}
		s.MetricsStore.Increment("season_xp_events")
		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) SeasonProgressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		view, err := s.Seasons.GetProgress(userID, time.Now())
		if err != nil {
			respondSeasonError(w, err, userID)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

func (s *Server) ClaimRewardHandler() http.HandlerFunc {
	type request struct {
		UserID string `json:"user_id"`
		Tier   int    `json:"tier"`
		Track  string `json:"track"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		if req.UserID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}
		track := season.Track(req.Track)
		if track != season.TrackFree && track != season.TrackPremium {
			http.Error(w, "track must be 'free' or 'premium'", http.StatusBadRequest)
			return
		}

		reward, err := s.Seasons.Claim(req.UserID, req.Tier, track, time.Now())
		if err != nil {
			respondSeasonError(w, err, req.UserID)
			return
		}
		s.MetricsStore.Increment("season_claims")
		respondJSON(w, http.StatusOK, reward)
	}
}

func (s *Server) PremiumHandler() http.HandlerFunc {
	type request struct {
		UserID string `json:"user_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		if req.UserID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		if err := s.Seasons.ActivatePremium(req.UserID, time.Now()); err != nil {
			respondSeasonError(w, err, req.UserID)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Premium activated.")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondSeasonError maps the season business-rule errors onto HTTP statuses
// so clients can distinguish rejection reasons.
func respondSeasonError(w http.ResponseWriter, err error, userID string) {
	switch {
	case errors.Is(err, season.ErrNoActiveSeason):
		http.Error(w, "No active season", http.StatusNotFound)
	case errors.Is(err, season.ErrNotUnlocked):
		http.Error(w, "Tier not unlocked yet", http.StatusConflict)
	case errors.Is(err, season.ErrPremiumRequired):
		http.Error(w, "Premium pass required", http.StatusPaymentRequired)
	case errors.Is(err, season.ErrAlreadyClaimed):
		http.Error(w, "Reward already claimed", http.StatusConflict)
	case errors.Is(err, season.ErrNoReward):
		http.Error(w, "No reward for that tier and track", http.StatusNotFound)
	case errors.Is(err, season.ErrNegativeAmount):
		http.Error(w, "Amount must be non-negative", http.StatusBadRequest)
	default:
		log.Error("Season operation failed", "error", err, "userID", userID)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
