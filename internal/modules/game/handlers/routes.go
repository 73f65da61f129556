package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all game routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/run", h.HandleRun)
		r.Get("/strategies", h.HandleGetStrategies)
		r.Get("/payoff-table", h.HandleGetPayoffTable)
	})
}
