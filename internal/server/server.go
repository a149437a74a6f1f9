package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"splendor/internal/store"
)

const (
	cleanupInterval = 10 * time.Minute
	lobbyMaxAge     = 6 * time.Hour
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	addr     string
	log      *zap.Logger
}

// New builds the server. st may be nil, in which case games are not
// persisted.
func New(addr string, st *store.Store, log *zap.Logger) *Server {
	return &Server{
		handlers: NewHandlers(st, log),
		addr:     addr,
		log:      log,
	}
}

func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handlers.HandleHealth)
	r.Get("/api/create", s.handlers.HandleCreateGame)
	r.Get("/api/qr", s.handlers.HandleQR)
	r.Get("/api/player-id", s.handlers.HandlePlayerID)
	r.Get("/ws", s.handlers.HandleWS)

	stop := s.handlers.LobbyMgr.CleanupLoop(cleanupInterval, lobbyMaxAge, s.handlers.DropGame)
	defer stop()

	s.log.Info("server listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, r)
}
