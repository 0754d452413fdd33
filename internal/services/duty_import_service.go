package services

import (
	"context"
	"fmt"
	"time"

	"southern-cross/frms/internal/constants"
	"southern-cross/frms/internal/db/repositories"
	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/models"
	gormModels "southern-cross/frms/internal/models/gorm"

	"github.com/google/uuid"
)

// ImportResult summarizes one logbook import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// DutyImportService persists imported flight sectors and the duty records
// derived from them. Sectors already on file for the same pilot, date and
// city pair are treated as duplicates and skipped.
type DutyImportService struct {
	sectors *repositories.SectorRepository
	duties  *repositories.DutyRepository
	factory *DutyFactory
}

func NewDutyImportService(sectors *repositories.SectorRepository, duties *repositories.DutyRepository, factory *DutyFactory) *DutyImportService {
	return &DutyImportService{
		sectors: sectors,
		duties:  duties,
		factory: factory,
	}
}

// ImportSectors stores each new sector along with its derived duty record.
// Individual failures are collected, not fatal: a partial import reports
// what it could not take.
func (s *DutyImportService) ImportSectors(ctx context.Context, pilotID string, sectors []models.FlightSectorSummary) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	for _, sector := range sectors {
		existing, err := s.sectors.FindMatching(ctx, pilotID, sector.Date, sector.Departure, sector.Arrival)
		if err != nil {
			return nil, &EngineError{
				Code:    constants.ErrCodeStorageFailure,
				Message: "failed to check for existing sectors",
				Err:     err,
			}
		}
		if len(existing) > 0 {
			result.Skipped++
			continue
		}

		duty, err := s.factory.CreateDutyFromSector(ctx, sector)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s %s-%s: %v", sector.Date, sector.Departure, sector.Arrival, err))
			continue
		}
		duty.ID = uuid.New().String()

		row := sectorToRow(pilotID, sector)
		if err := s.sectors.Insert(ctx, &row); err != nil {
			return nil, &EngineError{
				Code:    constants.ErrCodeStorageFailure,
				Message: "failed to store sector",
				Err:     err,
			}
		}

		dutyRow := dutyToRow(pilotID, duty)
		if err := s.duties.Insert(ctx, &dutyRow); err != nil {
			return nil, &EngineError{
				Code:    constants.ErrCodeStorageFailure,
				Message: "failed to store duty record",
				Err:     err,
			}
		}

		result.Imported++
	}

	logging.Info("sector import finished",
		"pilot_id", pilotID,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result, nil
}

// ResolveSector finds the single sector for a pilot, date and city pair.
// No match and more than one match are distinct error conditions so the
// caller can tell the pilot which input to fix.
func (s *DutyImportService) ResolveSector(ctx context.Context, pilotID, date, departure, arrival string) (*models.FlightSectorSummary, error) {
	matches, err := s.sectors.FindMatching(ctx, pilotID, date, departure, arrival)
	if err != nil {
		return nil, &EngineError{
			Code:    constants.ErrCodeStorageFailure,
			Message: "failed to search sectors",
			Err:     err,
		}
	}
	switch len(matches) {
	case 0:
		return nil, &EngineError{
			Code:    constants.ErrCodeNoMatch,
			Message: fmt.Sprintf("no sector on %s from %s to %s", date, departure, arrival),
		}
	case 1:
		summary := rowToSector(matches[0])
		return &summary, nil
	default:
		return nil, &EngineError{
			Code:    constants.ErrCodeAmbiguousMatch,
			Message: fmt.Sprintf("%d sectors on %s from %s to %s, cannot pick one", len(matches), date, departure, arrival),
		}
	}
}

// PilotDuties returns a pilot's stored duty records, oldest first, for the
// cumulative calculators.
func (s *DutyImportService) PilotDuties(ctx context.Context, pilotID string, since time.Time) ([]models.DutyRecord, error) {
	rows, err := s.duties.FindByPilotSince(ctx, pilotID, since)
	if err != nil {
		return nil, &EngineError{
			Code:    constants.ErrCodeStorageFailure,
			Message: "failed to load duty records",
			Err:     err,
		}
	}
	duties := make([]models.DutyRecord, 0, len(rows))
	for _, row := range rows {
		duties = append(duties, rowToDuty(row))
	}
	return duties, nil
}

// LatestDuty returns the pilot's most recent duty record, or nil when the
// pilot has no history.
func (s *DutyImportService) LatestDuty(ctx context.Context, pilotID string) (*models.DutyRecord, error) {
	row, err := s.duties.FindLatest(ctx, pilotID)
	if err != nil {
		return nil, &EngineError{
			Code:    constants.ErrCodeStorageFailure,
			Message: "failed to load latest duty",
			Err:     err,
		}
	}
	if row == nil {
		return nil, nil
	}
	duty := rowToDuty(*row)
	return &duty, nil
}

// PilotSectors returns a pilot's stored sectors flown on or after the date.
func (s *DutyImportService) PilotSectors(ctx context.Context, pilotID, sinceDate string) ([]models.FlightSectorSummary, error) {
	rows, err := s.sectors.FindByPilotSinceDate(ctx, pilotID, sinceDate)
	if err != nil {
		return nil, &EngineError{
			Code:    constants.ErrCodeStorageFailure,
			Message: "failed to load sectors",
			Err:     err,
		}
	}
	sectors := make([]models.FlightSectorSummary, 0, len(rows))
	for _, row := range rows {
		sectors = append(sectors, rowToSector(row))
	}
	return sectors, nil
}

func sectorToRow(pilotID string, sector models.FlightSectorSummary) gormModels.FlightSector {
	return gormModels.FlightSector{
		ID:                 uuid.New().String(),
		PilotID:            pilotID,
		Date:               sector.Date,
		Departure:          sector.Departure,
		Arrival:            sector.Arrival,
		BlockTime:          sector.BlockTime,
		SimTime:            sector.SimTime,
		Captain:            sector.Captain,
		FirstOfficer:       sector.FirstOfficer,
		SecondOfficer:      sector.SecondOfficer,
		IsPositioning:      sector.IsPositioning,
		ScheduledDeparture: sector.ScheduledDeparture,
		ActualArrival:      sector.ActualArrival,
	}
}

func rowToSector(row gormModels.FlightSector) models.FlightSectorSummary {
	return models.FlightSectorSummary{
		Date:               row.Date,
		Departure:          row.Departure,
		Arrival:            row.Arrival,
		BlockTime:          row.BlockTime,
		SimTime:            row.SimTime,
		Captain:            row.Captain,
		FirstOfficer:       row.FirstOfficer,
		SecondOfficer:      row.SecondOfficer,
		IsPositioning:      row.IsPositioning,
		ScheduledDeparture: row.ScheduledDeparture,
		ActualArrival:      row.ActualArrival,
	}
}

func dutyToRow(pilotID string, duty *models.DutyRecord) gormModels.DutyRecord {
	return gormModels.DutyRecord{
		ID:               duty.ID,
		PilotID:          pilotID,
		Date:             duty.Date,
		DutyType:         string(duty.DutyType),
		CrewComplement:   string(duty.CrewComplement),
		RestFacility:     string(duty.RestFacility),
		SignOn:           duty.SignOn,
		SignOff:          duty.SignOff,
		FlightTime:       duty.FlightTime,
		NightTime:        duty.NightTime,
		SectorCount:      duty.SectorCount,
		IsInternational:  duty.IsInternational,
		HomeBaseTimeZone: duty.HomeBaseTimeZone,
	}
}

func rowToDuty(row gormModels.DutyRecord) models.DutyRecord {
	return models.DutyRecord{
		ID:               row.ID,
		Date:             row.Date,
		DutyType:         models.DutyType(row.DutyType),
		CrewComplement:   models.CrewComplement(row.CrewComplement),
		RestFacility:     models.RestFacility(row.RestFacility),
		SignOn:           row.SignOn,
		SignOff:          row.SignOff,
		FlightTime:       row.FlightTime,
		NightTime:        row.NightTime,
		SectorCount:      row.SectorCount,
		IsInternational:  row.IsInternational,
		HomeBaseTimeZone: row.HomeBaseTimeZone,
	}
}
