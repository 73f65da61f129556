package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all experiment routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/experiments", func(r chi.Router) {
		r.Post("/sweep", h.HandleSweep)
		r.Get("/sweep/latest", h.HandleLatestSweep)
		r.Get("/sweep/ws", h.HandleSweepStream)
		r.Get("/equilibrium", h.HandleEquilibrium)
		r.Get("/runs", h.HandleListRuns)
		r.Get("/runs/{id}", h.HandleGetRun)
	})
}
