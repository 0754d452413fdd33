package dtos

import (
	"time"

	"southern-cross/frms/internal/models"
)

type TotalsResponse struct {
	PilotID string                  `json:"pilot_id"`
	Totals  models.CumulativeTotals `json:"totals"`
}

type MaxNextDutyResponse struct {
	PilotID string                 `json:"pilot_id"`
	Result  models.MaximumNextDuty `json:"result"`
}

type MBTTResponse struct {
	Requirement models.MBTTRequirement `json:"requirement"`
}

type ComplianceResponse struct {
	PilotID string                  `json:"pilot_id"`
	Result  models.ComplianceResult `json:"result"`
}

type PilotDutiesResponse struct {
	PilotID string              `json:"pilot_id"`
	Duties  []models.DutyRecord `json:"duties"`
}

type AirportTimezoneResponse struct {
	Code        string  `json:"code"`
	ICAO        string  `json:"icao"`
	Timezone    string  `json:"timezone"`
	OffsetHours float64 `json:"offset_hours"`
}

type AirportSyncResponse struct {
	Imported int `json:"imported"`
}

type ReportLinkResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
