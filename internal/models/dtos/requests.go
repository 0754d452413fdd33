package dtos

import (
	"time"

	"southern-cross/frms/internal/models"
)

// --- FRMS engine endpoints ---

type TotalsRequest struct {
	PilotID string    `json:"pilot_id"`
	AsOf    time.Time `json:"as_of"`

	// Inline history; when Duties is non-empty the stored history is not
	// consulted, so planning tools can evaluate rosters that are not filed yet.
	Duties  []models.DutyRecord          `json:"duties,omitempty"`
	Sectors []models.FlightSectorSummary `json:"sectors,omitempty"`
}

type MaxNextDutyRequest struct {
	PilotID        string    `json:"pilot_id"`
	AsOf           time.Time `json:"as_of"`
	LimitType      string    `json:"limit_type"`
	CrewComplement string    `json:"crew_complement"`
	RestFacility   string    `json:"rest_facility"`

	// Trip attaches a base-turnaround requirement to the result (wide-body).
	Trip *MBTTRequest `json:"trip,omitempty"`
}

type MBTTRequest struct {
	DaysAway            int     `json:"days_away"`
	CreditedFlightHours float64 `json:"credited_flight_hours"`
	HadDutyOver18Hours  bool    `json:"had_duty_over_18_hours"`
}

type ComplianceRequest struct {
	PilotID  string            `json:"pilot_id"`
	AsOf     time.Time         `json:"as_of"`
	Proposed models.DutyRecord `json:"proposed_duty"`
}

type WhatIfRequest struct {
	PilotID  string                `json:"pilot_id"`
	AsOf     time.Time             `json:"as_of"`
	Scenario models.WhatIfScenario `json:"scenario"`
}

// --- Duty and sector import ---

type ImportSectorsRequest struct {
	PilotID string                       `json:"pilot_id"`
	Sectors []models.FlightSectorSummary `json:"sectors"`
}

type ReportLinkRequest struct {
	TTLMinutes int `json:"ttl_minutes"`
}
