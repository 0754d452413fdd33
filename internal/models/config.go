package models

// FRMSConfiguration is the immutable per-crew-member configuration for a
// calculation run. Built once at startup (or per request) and injected;
// the engine never mutates it.
type FRMSConfiguration struct {
	Fleet               Fleet  `json:"fleet"`
	HomeBase            string `json:"home_base"` // ICAO code
	SignOnLeadMinutes   int    `json:"sign_on_lead_minutes"`
	SignOffTrailMinutes int    `json:"sign_off_trail_minutes"`
}
