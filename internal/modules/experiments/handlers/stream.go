package handlers

import (
	"net/http"

	"github.com/aristath/qdilemma/internal/modules/experiments"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// sweepProgressMessage is one WebSocket frame of the streaming sweep: a
// progress frame per completed γ point, then a final frame with the full
// result.
type sweepProgressMessage struct {
	Type   string                   `json:"type"` // "progress" or "result"
	Index  int                      `json:"index,omitempty"`
	Total  int                      `json:"total,omitempty"`
	Point  *experiments.SweepPoint  `json:"point,omitempty"`
	Result *experiments.SweepResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// HandleSweepStream handles GET /api/experiments/sweep/ws. It runs a sweep
// and streams one message per completed point so the dashboard can draw a
// progress bar, mirroring the blocking POST endpoint otherwise.
func (h *Handler) HandleSweepStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	ctx := r.Context()

	points := experiments.DashboardSweepPoints
	shots := experiments.DashboardSweepShots

	progress := func(index, total int, point experiments.SweepPoint) {
		p := point
		msg := sweepProgressMessage{Type: "progress", Index: index, Total: total, Point: &p}
		if werr := wsjson.Write(ctx, conn, msg); werr != nil {
			h.log.Debug().Err(werr).Msg("Sweep progress write failed, client likely gone")
		}
	}

	result, err := h.service.Sweep(points, shots, progress)
	if err != nil {
		_ = wsjson.Write(ctx, conn, sweepProgressMessage{Type: "result", Error: err.Error()})
		conn.Close(websocket.StatusInternalError, "sweep failed")
		return
	}

	if err := wsjson.Write(ctx, conn, sweepProgressMessage{Type: "result", Result: result}); err != nil {
		h.log.Debug().Err(err).Msg("Final sweep result write failed")
		return
	}

	conn.Close(websocket.StatusNormalClosure, "")
}
