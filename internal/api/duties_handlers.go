package api

import (
	"encoding/json"
	"net/http"
	"time"

	"southern-cross/frms/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ImportSectors handles POST /api/v1/duties/import
func (h *Handlers) ImportSectors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.ImportSectorsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PilotID == "" {
			respondWithError(w, http.StatusBadRequest, "pilot_id is required")
			return
		}
		if len(req.Sectors) == 0 {
			respondWithError(w, http.StatusBadRequest, "sectors list is empty")
			return
		}

		result, err := h.deps.Services.Import.ImportSectors(r.Context(), req.PilotID, req.Sectors)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		h.deps.Metrics.SectorsImportedTotal.Add(float64(result.Imported))
		h.deps.Metrics.SectorsSkippedTotal.Add(float64(result.Skipped))

		respondWithSuccess(w, http.StatusOK, result)
	}
}

// GetPilotDuties handles GET /api/v1/pilots/{pilot_id}/duties
func (h *Handlers) GetPilotDuties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pilotID := chi.URLParam(r, "pilot_id")
		if pilotID == "" {
			respondWithError(w, http.StatusBadRequest, "pilot_id is required")
			return
		}

		since := time.Now().AddDate(0, 0, -historyWindowDays)
		if raw := r.URL.Query().Get("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "since must be RFC3339")
				return
			}
			since = parsed
		}

		duties, err := h.deps.Services.Import.PilotDuties(r.Context(), pilotID, since)
		if err != nil {
			respondEngineError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.PilotDutiesResponse{
			PilotID: pilotID,
			Duties:  duties,
		})
	}
}

// GenerateReportLink handles POST /api/v1/pilots/{pilot_id}/report-link
func (h *Handlers) GenerateReportLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pilotID := chi.URLParam(r, "pilot_id")
		if pilotID == "" {
			respondWithError(w, http.StatusBadRequest, "pilot_id is required")
			return
		}

		var req dtos.ReportLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ttl := time.Duration(req.TTLMinutes) * time.Minute
		if ttl <= 0 || ttl > time.Hour {
			ttl = 15 * time.Minute
		}

		token, err := h.deps.Services.URLSigner.GenerateReportToken(pilotID, string(h.deps.Config.Fleet), ttl)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to generate report token")
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.ReportLinkResponse{
			Token:     token,
			ExpiresAt: time.Now().Add(ttl),
		})
	}
}

// PublicReport handles GET /public/report?token=...
// Validates a presigned token and returns the pilot's current totals.
func (h *Handlers) PublicReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			respondWithError(w, http.StatusBadRequest, "token is required")
			return
		}

		token, err := h.deps.Services.URLSigner.ValidateToken(r.Context(), tokenString)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if err := h.deps.Services.URLSigner.MarkTokenAsUsed(r.Context(), token.TokenID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to consume token")
			return
		}

		totals, err := h.totalsFor(r, token.PilotID, time.Now())
		if err != nil {
			respondEngineError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.TotalsResponse{
			PilotID: token.PilotID,
			Totals:  totals,
		})
	}
}
