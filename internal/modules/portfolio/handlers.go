package portfolio

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/alphaforge/forge/internal/domain"
)

// Handler handles position and portfolio HTTP requests
type Handler struct {
	positionRepo *PositionRepository
	service      *Service
	log          zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(positionRepo *PositionRepository, service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		positionRepo: positionRepo,
		service:      service,
		log:          log.With().Str("handler", "portfolio").Logger(),
	}
}

// Routes registers portfolio routes on the router
func (h *Handler) Routes(r chi.Router) {
	r.Route("/positions", func(r chi.Router) {
		r.Get("/", h.HandleListPositions)
		r.Post("/", h.HandleCreatePosition)
		r.Get("/export", h.HandleExportCSV)
		r.Post("/import", h.HandleImportCSV)
		r.Put("/{id}", h.HandleUpdatePosition)
		r.Delete("/{id}", h.HandleDeletePosition)
	})
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/summary", h.HandleGetSummary)
		r.Get("/history", h.HandleGetHistory)
	})
}

// HandleListPositions returns all positions
func (h *Handler) HandleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionRepo.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if positions == nil {
		positions = []domain.Position{}
	}
	h.writeJSON(w, http.StatusOK, positions)
}

type positionRequest struct {
	Ticker   string           `json:"ticker"`
	Shares   float64          `json:"shares"`
	AvgPrice float64          `json:"avg_price"`
	Sector   string           `json:"sector"`
	Type     domain.AssetType `json:"type"`
}

func (req positionRequest) validate() string {
	if req.Ticker == "" {
		return "ticker is required"
	}
	if req.Shares <= 0 {
		return "shares must be positive"
	}
	if req.AvgPrice <= 0 {
		return "avg_price must be positive"
	}
	return ""
}

// HandleCreatePosition adds a position
func (h *Handler) HandleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}

	if req.Type == "" {
		req.Type = domain.AssetStock
	}

	pos, err := h.positionRepo.Create(domain.Position{
		Ticker:   req.Ticker,
		Shares:   req.Shares,
		AvgPrice: req.AvgPrice,
		Sector:   req.Sector,
		Type:     req.Type,
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, pos)
}

// HandleUpdatePosition edits a position's fields
func (h *Handler) HandleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid position id")
		return
	}

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := h.positionRepo.Get(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "position not found")
		return
	}

	existing.Ticker = req.Ticker
	existing.Shares = req.Shares
	existing.AvgPrice = req.AvgPrice
	existing.Sector = req.Sector
	if req.Type != "" {
		existing.Type = req.Type
	}

	if err := h.positionRepo.Update(existing); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, existing)
}

// HandleDeletePosition removes a position
func (h *Handler) HandleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid position id")
		return
	}

	if err := h.positionRepo.Delete(id); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleGetSummary returns the portfolio roll-up
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// HandleGetHistory returns daily value snapshots
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	history, err := h.service.GetHistory(limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []Snapshot{}
	}
	h.writeJSON(w, http.StatusOK, history)
}

// HandleExportCSV streams positions as CSV
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionRepo.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="positions.csv"`)
	if err := WriteCSV(w, positions); err != nil {
		h.log.Error().Err(err).Msg("Failed to write CSV export")
	}
}

// HandleImportCSV replaces all positions from an uploaded CSV
func (h *Handler) HandleImportCSV(w http.ResponseWriter, r *http.Request) {
	positions, err := ReadCSV(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.positionRepo.ReplaceAll(positions); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "imported",
		"imported": len(positions),
	})
}

// Helper methods

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
