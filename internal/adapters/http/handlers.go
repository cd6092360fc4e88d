package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/render"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/solve", h.handleSolve)
}

// ---- Solve ----

type solveReq struct {
	Month     int    `json:"month,omitempty"`
	MonthName string `json:"monthName,omitempty"`
	Day       int    `json:"day"`
}

type solveResp struct {
	Placements []domain.Placement `json:"placements,omitempty"`
	Board      string             `json:"board,omitempty"`
	Attempts   int                `json:"attempts"`
	DurationMs int64              `json:"durationMs"`
	Error      string             `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	month := req.Month
	if month == 0 && req.MonthName != "" {
		m, ok := domain.ParseMonth(req.MonthName)
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(solveResp{Error: "unknown month: " + req.MonthName})
			return
		}
		month = m
	}

	sol, _, st, err := h.UC.SolveDate(r.Context(), month, req.Day)
	if err != nil {
		resp := solveResp{Error: err.Error(), Attempts: st.Attempts, DurationMs: st.Duration.Milliseconds()}
		switch {
		case errors.Is(err, domain.ErrInvalidTarget):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, domain.ErrNoSolution):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	board, err := render.Board(h.UC.Board, sol, month, req.Day)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(solveResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(solveResp{
		Placements: sol.ByPiece(),
		Board:      board,
		Attempts:   st.Attempts,
		DurationMs: st.Duration.Milliseconds(),
	})
}
