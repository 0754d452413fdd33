package common

import (
	"context"
	"strings"
	"time"

	"southern-cross/frms/internal/db/repositories"
	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/models/gorm"
	"southern-cross/frms/internal/services"

	"golang.org/x/sync/singleflight"
	gormlib "gorm.io/gorm"
)

const airportCacheTTL = 12 * time.Hour

// AirportTimezoneService resolves airport timezones and code conversions
// from the airports table, with a cache in front. It satisfies the engine's
// TimezoneLookup contract.
type AirportTimezoneService struct {
	repo  *repositories.AirportRepository
	cache CacheInterface
	group singleflight.Group
}

var _ services.TimezoneLookup = (*AirportTimezoneService)(nil)

func NewAirportTimezoneService(db *gormlib.DB, cache CacheInterface) *AirportTimezoneService {
	return &AirportTimezoneService{
		repo:  repositories.NewAirportRepository(db),
		cache: cache,
	}
}

// lookup fetches the airport by ICAO first, then IATA, through the cache.
// A miss (unknown code or storage failure) returns nil.
func (s *AirportTimezoneService) lookup(ctx context.Context, code string) *gorm.Airport {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}

	key := "airport:" + code
	if val, found := s.cache.Get(key); found {
		if airport, ok := val.(*gorm.Airport); ok {
			return airport
		}
	}

	// Collapse concurrent misses for the same code into one DB round trip
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		airport, err := s.repo.FindByICAO(ctx, code)
		if err != nil {
			return nil, err
		}
		if airport == nil && len(code) == 3 {
			airport, err = s.repo.FindByIATA(ctx, code)
			if err != nil {
				return nil, err
			}
		}
		return airport, nil
	})
	if err != nil {
		logging.Warn("airport lookup failed", "code", code, "error", err.Error())
		return nil
	}

	airport, _ := val.(*gorm.Airport)
	if airport == nil {
		return nil
	}

	s.cache.Set(key, airport, airportCacheTTL)
	return airport
}

// Location returns the IANA location for the airport, or false when the
// airport or its timezone is unknown.
func (s *AirportTimezoneService) Location(ctx context.Context, code string) (*time.Location, bool) {
	airport := s.lookup(ctx, code)
	if airport == nil || airport.Timezone == "" {
		return nil, false
	}

	loc, err := time.LoadLocation(airport.Timezone)
	if err != nil {
		logging.Warn("unknown airport timezone", "code", code, "timezone", airport.Timezone)
		return nil, false
	}
	return loc, true
}

// GetTimezoneOffsetHours returns the signed UTC offset in hours for the
// airport at the given instant, DST-aware.
func (s *AirportTimezoneService) GetTimezoneOffsetHours(ctx context.Context, code string, at time.Time) (float64, bool) {
	loc, ok := s.Location(ctx, code)
	if !ok {
		return 0, false
	}
	_, offsetSeconds := at.In(loc).Zone()
	return float64(offsetSeconds) / 3600, true
}

// ConvertToICAO normalizes an IATA or ICAO code to ICAO. Unknown codes pass
// through unchanged so callers can still record them.
func (s *AirportTimezoneService) ConvertToICAO(ctx context.Context, code string) string {
	airport := s.lookup(ctx, code)
	if airport == nil {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return airport.ICAO
}

// IsAustralianAirport reports whether the code is an Australian airport.
// Falls back to the Y ICAO prefix when the airport is not in the table.
func (s *AirportTimezoneService) IsAustralianAirport(ctx context.Context, code string) bool {
	airport := s.lookup(ctx, code)
	if airport != nil {
		return strings.EqualFold(airport.Country, "AU") || strings.EqualFold(airport.Country, "Australia")
	}
	icao := strings.ToUpper(strings.TrimSpace(code))
	return len(icao) == 4 && strings.HasPrefix(icao, "Y")
}
