package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"copilot-replica/internal/handlers"
	"copilot-replica/internal/middleware"
	"copilot-replica/internal/websocket"
)

func New(
	chatHandler *handlers.ChatHandler,
	exchange *websocket.Exchange,
	submitLimiter *middleware.RateLimiter,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── WebSocket ────
	// Clients may connect to the bare address.
	r.Get("/", exchange.HandleWebSocket)
	r.Get("/ws", exchange.HandleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(15 * time.Second))

		// ──── Chat Routes ────
		r.Route("/messages", func(r chi.Router) {
			r.Get("/", chatHandler.List)
			r.With(submitLimiter.Middleware).Post("/", chatHandler.Submit)
		})

		r.Get("/thumbnails", chatHandler.Thumbnail)
	})

	return r
}
