package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"southern-cross/frms/internal/constants"
	"southern-cross/frms/internal/models"
	"southern-cross/frms/internal/models/dtos"
	"southern-cross/frms/internal/services"
)

// Handlers bundles every API handler with its dependencies
type Handlers struct {
	deps *Dependencies
}

func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{deps: deps}
}

// historyWindowDays covers the longest rolling window plus a margin for
// local-midnight alignment.
const historyWindowDays = 366

// totalsFor loads the pilot's stored history and folds it into cumulative
// totals as of the reference instant.
func (h *Handlers) totalsFor(r *http.Request, pilotID string, asOf time.Time) (models.CumulativeTotals, error) {
	ctx := r.Context()
	since := asOf.AddDate(0, 0, -historyWindowDays)

	duties, err := h.deps.Services.Import.PilotDuties(ctx, pilotID, since)
	if err != nil {
		return models.CumulativeTotals{}, err
	}
	sectors, err := h.deps.Services.Import.PilotSectors(ctx, pilotID, since.Format(models.SectorDateLayout))
	if err != nil {
		return models.CumulativeTotals{}, err
	}

	return h.deps.Services.Cumulative.Calculate(ctx, duties, sectors, asOf), nil
}

// GetTotals handles POST /api/v1/frms/totals
func (h *Handlers) GetTotals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.TotalsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PilotID == "" && len(req.Duties) == 0 {
			respondWithError(w, http.StatusBadRequest, "pilot_id or an inline duty history is required")
			return
		}
		asOf := req.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}

		start := time.Now()
		var totals models.CumulativeTotals
		if len(req.Duties) > 0 {
			totals = h.deps.Services.Cumulative.Calculate(r.Context(), req.Duties, req.Sectors, asOf)
		} else {
			var err error
			totals, err = h.totalsFor(r, req.PilotID, asOf)
			if err != nil {
				respondEngineError(w, err)
				return
			}
		}
		h.deps.Metrics.EngineCalcDuration.WithLabelValues("totals").Observe(time.Since(start).Seconds())

		respondWithSuccess(w, http.StatusOK, &dtos.TotalsResponse{
			PilotID: req.PilotID,
			Totals:  totals,
		})
	}
}

// GetMaxNextDuty handles POST /api/v1/frms/max-next-duty
func (h *Handlers) GetMaxNextDuty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.MaxNextDutyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PilotID == "" {
			respondWithError(w, http.StatusBadRequest, "pilot_id is required")
			return
		}
		asOf := req.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}

		limitType := models.LimitType(req.LimitType)
		if limitType == "" {
			limitType = models.LimitTypePlanning
		}
		crew := models.CrewComplement(req.CrewComplement)
		if crew == "" {
			crew = models.CrewTwoPilot
		}
		rest := models.RestFacility(req.RestFacility)
		if rest == "" {
			rest = models.RestFacilityNone
		}

		totals, err := h.totalsFor(r, req.PilotID, asOf)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		previous, err := h.deps.Services.Import.LatestDuty(r.Context(), req.PilotID)
		if err != nil {
			respondEngineError(w, err)
			return
		}

		start := time.Now()
		result, err := h.deps.Services.MaxDuty.Calculate(r.Context(), previous, totals, limitType, crew, rest)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		h.deps.Metrics.EngineCalcDuration.WithLabelValues("max_next_duty").Observe(time.Since(start).Seconds())

		if req.Trip != nil {
			turnaround, err := h.deps.Services.MBTT.Calculate(req.Trip.DaysAway, req.Trip.CreditedFlightHours, req.Trip.HadDutyOver18Hours)
			if err != nil {
				respondEngineError(w, err)
				return
			}
			result.BaseTurnaround = turnaround
		}

		respondWithSuccess(w, http.StatusOK, &dtos.MaxNextDutyResponse{
			PilotID: req.PilotID,
			Result:  *result,
		})
	}
}

// GetMBTT handles POST /api/v1/frms/mbtt
func (h *Handlers) GetMBTT() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.MBTTRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		requirement, err := h.deps.Services.MBTT.Calculate(req.DaysAway, req.CreditedFlightHours, req.HadDutyOver18Hours)
		if err != nil {
			respondEngineError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.MBTTResponse{
			Requirement: *requirement,
		})
	}
}

// CheckCompliance handles POST /api/v1/frms/compliance
func (h *Handlers) CheckCompliance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.ComplianceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PilotID == "" {
			respondWithError(w, http.StatusBadRequest, "pilot_id is required")
			return
		}
		if !req.Proposed.IsValid() {
			respondWithError(w, http.StatusBadRequest, "proposed duty is not internally consistent")
			return
		}
		asOf := req.AsOf
		if asOf.IsZero() {
			asOf = req.Proposed.SignOn
		}

		totals, err := h.totalsFor(r, req.PilotID, asOf)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		previous, err := h.deps.Services.Import.LatestDuty(r.Context(), req.PilotID)
		if err != nil {
			respondEngineError(w, err)
			return
		}

		result := h.deps.Services.Compliance.CheckCompliance(r.Context(), req.Proposed, previous, totals)
		h.deps.Metrics.ComplianceChecksTotal.WithLabelValues(string(result.Status)).Inc()

		respondWithSuccess(w, http.StatusOK, &dtos.ComplianceResponse{
			PilotID: req.PilotID,
			Result:  result,
		})
	}
}

// CheckWhatIf handles POST /api/v1/frms/what-if
func (h *Handlers) CheckWhatIf() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.WhatIfRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PilotID == "" {
			respondWithError(w, http.StatusBadRequest, "pilot_id is required")
			return
		}
		asOf := req.AsOf
		if asOf.IsZero() {
			asOf = req.Scenario.SignOn
		}
		if req.Scenario.CrewComplement == "" {
			req.Scenario.CrewComplement = models.CrewTwoPilot
		}
		if req.Scenario.RestFacility == "" {
			req.Scenario.RestFacility = models.RestFacilityNone
		}

		totals, err := h.totalsFor(r, req.PilotID, asOf)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		previous, err := h.deps.Services.Import.LatestDuty(r.Context(), req.PilotID)
		if err != nil {
			respondEngineError(w, err)
			return
		}

		result, err := h.deps.Services.Compliance.CheckWhatIfScenario(r.Context(), req.Scenario, previous, totals)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		h.deps.Metrics.WhatIfChecksTotal.WithLabelValues(string(result.Status)).Inc()

		respondWithSuccess(w, http.StatusOK, &dtos.ComplianceResponse{
			PilotID: req.PilotID,
			Result:  result,
		})
	}
}

// respondEngineError maps typed engine errors onto HTTP status codes.
func respondEngineError(w http.ResponseWriter, err error) {
	var engineErr *services.EngineError
	if !errors.As(err, &engineErr) {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch engineErr.Code {
	case constants.ErrCodeInvalidInput, constants.ErrCodeWrongFleet:
		status = http.StatusBadRequest
	case constants.ErrCodeNoMatch, constants.ErrCodeAirportUnknown:
		status = http.StatusNotFound
	case constants.ErrCodeAmbiguousMatch:
		status = http.StatusConflict
	}
	respondWithError(w, status, engineErr.Message)
}
