package common

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"southern-cross/frms/internal/db/repositories"
	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AirportLoaderService handles loading airport data from JSON
type AirportLoaderService struct {
	repo *repositories.AirportRepository
}

// RawAirportData represents the structure of airport data from JSON
type RawAirportData struct {
	ICAO      string  `json:"icao"`
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Elevation int     `json:"elevation"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TZ        string  `json:"tz"`
}

// NewAirportLoaderService creates a new airport loader service
func NewAirportLoaderService(db *gormlib.DB) *AirportLoaderService {
	return &AirportLoaderService{
		repo: repositories.NewAirportRepository(db),
	}
}

// LoadFromJSON loads airports from a JSON reader
// Expected format: object with airport data as values
// Example: {"YSSY": {"icao": "YSSY", "name": "Sydney Kingsford Smith...", ...}}
func (s *AirportLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	var rawData map[string]RawAirportData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&rawData); err != nil {
		return 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if len(rawData) == 0 {
		return 0, fmt.Errorf("no airport data found in JSON")
	}

	logging.Info("Loaded airports from JSON", "count", len(rawData))

	// Convert to GORM models. Records without an ICAO or a timezone are of
	// no use to duty-time calculations and are skipped.
	airports := make([]gorm.Airport, 0, len(rawData))
	for _, rawAirport := range rawData {
		var elevation sql.NullInt64
		if rawAirport.Elevation > 0 {
			elevation = sql.NullInt64{Int64: int64(rawAirport.Elevation), Valid: true}
		}

		airport := gorm.Airport{
			ICAO:      strings.ToUpper(strings.TrimSpace(rawAirport.ICAO)),
			IATA:      strings.ToUpper(strings.TrimSpace(rawAirport.IATA)),
			Name:      strings.TrimSpace(rawAirport.Name),
			City:      strings.TrimSpace(rawAirport.City),
			Country:   strings.TrimSpace(rawAirport.Country),
			Elevation: elevation,
			Latitude:  rawAirport.Lat,
			Longitude: rawAirport.Lon,
			Timezone:  strings.TrimSpace(rawAirport.TZ),
		}

		if airport.ICAO == "" || airport.Timezone == "" {
			continue
		}

		airports = append(airports, airport)
	}

	if len(airports) == 0 {
		return 0, fmt.Errorf("no valid airports found after parsing")
	}

	logging.Info("Parsed valid airports", "count", len(airports))

	// Delete existing airports before importing
	if err := s.repo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete existing airports: %w", err)
	}

	if err := s.repo.BatchInsert(ctx, airports); err != nil {
		return 0, fmt.Errorf("failed to insert airports: %w", err)
	}

	logging.Info("Imported airports", "count", len(airports))

	return len(airports), nil
}

// GetStats returns statistics about loaded airports
func (s *AirportLoaderService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"total_airports": count,
	}

	return stats, nil
}

// LoadAirportsFromRemote loads airports from the mwgg/Airports GitHub
// repository. Used for initial setup via the admin API endpoint.
func (s *AirportLoaderService) LoadAirportsFromRemote(ctx context.Context) (int, error) {
	logging.Info("Fetching airports from GitHub")

	url := "https://raw.githubusercontent.com/mwgg/Airports/refs/heads/master/airports.json"
	resp, err := http.Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch airports from GitHub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch airports: HTTP %d", resp.StatusCode)
	}

	return s.LoadFromJSON(ctx, resp.Body)
}
