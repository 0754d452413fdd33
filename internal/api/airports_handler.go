package api

import (
	"net/http"
	"time"

	"southern-cross/frms/internal/common"
	"southern-cross/frms/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// GetAirportTimezone handles GET /api/v1/airports/{code}/timezone
func (h *Handlers) GetAirportTimezone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if code == "" {
			respondWithError(w, http.StatusBadRequest, "airport code is required")
			return
		}

		at := time.Now()
		if raw := r.URL.Query().Get("at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "at must be RFC3339")
				return
			}
			at = parsed
		}

		loc, ok := h.deps.Services.Timezone.Location(r.Context(), code)
		if !ok {
			respondWithError(w, http.StatusNotFound, "unknown airport")
			return
		}
		offset, _ := h.deps.Services.Timezone.GetTimezoneOffsetHours(r.Context(), code, at)

		respondWithSuccess(w, http.StatusOK, &dtos.AirportTimezoneResponse{
			Code:        code,
			ICAO:        h.deps.Services.Timezone.ConvertToICAO(r.Context(), code),
			Timezone:    loc.String(),
			OffsetHours: offset,
		})
	}
}

// SyncAirportsHandler handles POST /api/v1/admin/data/sync-airports
func SyncAirportsHandler(loader *common.AirportLoaderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := loader.LoadAirportsFromRemote(r.Context())
		if err != nil {
			respondWithError(w, http.StatusBadGateway, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.AirportSyncResponse{
			Imported: count,
		})
	}
}
