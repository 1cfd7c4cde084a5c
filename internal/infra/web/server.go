package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-dating-bot/internal/usecase"
)

// Server exposes the operational HTTP surface: health and Prometheus
// endpoints publicly, the admin stats API behind JWT auth.
type Server struct {
	statsUC usecase.StatsUseCase
	adminUC usecase.AdminUseCase
	auth    *AuthManager
	log     *zerolog.Logger
}

func NewServer(statsUC usecase.StatsUseCase, adminUC usecase.AdminUseCase, auth *AuthManager, logger *zerolog.Logger) *Server {
	return &Server{
		statsUC: statsUC,
		adminUC: adminUC,
		auth:    auth,
		log:     logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/stats", s.handleStats)
		r.Get("/users", s.handleUsersList)
	})

	return r
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsUC.Snapshot(r.Context(), 0)
	if err != nil {
		s.log.Error().Err(err).Msg("stats snapshot failed")
		http.Error(w, "Failed to get stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type userListItem struct {
	ID           string `json:"id"`
	TelegramID   int64  `json:"telegram_id"`
	Name         string `json:"name"`
	Coins        int    `json:"coins"`
	Premium      bool   `json:"premium"`
	Banned       bool   `json:"banned"`
	ReferralCode string `json:"referral_code"`
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 50
	}

	users, err := s.adminUC.ListUsers(r.Context(), offset, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("list users failed")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	items := make([]userListItem, 0, len(users))
	for _, u := range users {
		items = append(items, userListItem{
			ID:           u.ID,
			TelegramID:   u.TelegramID,
			Name:         u.Name,
			Coins:        u.Coins,
			Premium:      u.Premium(),
			Banned:       u.Banned,
			ReferralCode: u.ReferralCode,
		})
	}
	writeJSON(w, http.StatusOK, struct {
		Users []userListItem `json:"users"`
	}{Users: items})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
