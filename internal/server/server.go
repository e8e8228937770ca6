package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mascotd/internal/keeper"
	"mascotd/internal/store"
)

// Server is the mascotd HTTP API server.
type Server struct {
	keeper  *keeper.Keeper
	db      *store.DB
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server around the keeper and database.
func New(k *keeper.Keeper, db *store.DB, version string) *Server {
	s := &Server{
		keeper:  k,
		db:      db,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/guilds/{guildID}", func(r chi.Router) {
			r.Get("/pet", s.handleStatus)
			r.Post("/pet/feed", s.handleCare(store.ActionFeed))
			r.Post("/pet/play", s.handleCare(store.ActionPlay))
			r.Post("/pet/clean", s.handleCare(store.ActionClean))
			r.Post("/pet/name", s.handleRename)
			r.Post("/pet/admin", s.handleAdmin)
			r.Get("/caretakers", s.handleCaretakers)
			r.Get("/deaths", s.handleDeaths)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}
