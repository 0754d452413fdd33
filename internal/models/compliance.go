package models

import "time"

// ComplianceStatus is the overall verdict of a compliance or what-if check.
type ComplianceStatus string

const (
	ComplianceCompliant ComplianceStatus = "compliant"
	ComplianceWarning   ComplianceStatus = "warning"
	ComplianceViolation ComplianceStatus = "violation"
)

// ComplianceResult carries the verdict plus the human-readable messages
// assembled by the checker. How they surface is the caller's concern.
type ComplianceResult struct {
	Status     ComplianceStatus `json:"status"`
	Violations []string         `json:"violations,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// WhatIfScenario is a hypothetical duty to evaluate before it is rostered.
type WhatIfScenario struct {
	SignOn              time.Time      `json:"sign_on"`
	EstimatedDutyHours  float64        `json:"estimated_duty_hours"`
	EstimatedFlightTime float64        `json:"estimated_flight_time"`
	SectorCount         int            `json:"sector_count"`
	CrewComplement      CrewComplement `json:"crew_complement"`
	RestFacility        RestFacility   `json:"rest_facility"`
}
