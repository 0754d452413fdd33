package services

import (
	"context"
	"time"
)

// TimezoneLookup is the external airport/timezone collaborator. The engine
// consumes timezone information, never determines offsets itself. A lookup
// miss means "unknown" and callers fall back to the fixed default zone.
// Implementations must be side-effect-free and idempotent within a single
// calculation so derived local-time boundaries stay mutually consistent.
type TimezoneLookup interface {
	// GetTimezoneOffsetHours returns the signed UTC offset in hours for the
	// airport at the given instant (DST-aware), or false when unknown.
	GetTimezoneOffsetHours(ctx context.Context, code string, at time.Time) (float64, bool)

	// ConvertToICAO normalizes an IATA or ICAO code to ICAO.
	ConvertToICAO(ctx context.Context, code string) string

	// IsAustralianAirport reports whether the code is an Australian airport.
	IsAustralianAirport(ctx context.Context, code string) bool

	// Location returns the IANA location for the airport, or false when
	// unknown.
	Location(ctx context.Context, code string) (*time.Location, bool)
}

// DefaultHomeBaseZone is used whenever the timezone lookup cannot resolve
// the home base. Eastern-Australia standard time, no DST.
var DefaultHomeBaseZone = time.FixedZone("UTC+10", 10*3600)
