package services

import (
	"fmt"

	"southern-cross/frms/internal/constants"
	"southern-cross/frms/internal/models"
	"southern-cross/frms/internal/rules"
)

// MBTTService computes the Minimum Base Turnaround Time after a trip:
// required local nights (or hours for single-day trips) at home base.
// Wide-body fleet only.
type MBTTService struct {
	cfg models.FRMSConfiguration
}

func NewMBTTService(cfg models.FRMSConfiguration) *MBTTService {
	return &MBTTService{cfg: cfg}
}

// Calculate applies the days-away tiers, the credited-flight-hours overrides
// and the >18-hour-duty surcharge. The most restrictive nights figure wins;
// once nights apply, any hours-only requirement is discarded.
func (s *MBTTService) Calculate(daysAway int, creditedFlightHours float64, hadDutyOver18Hours bool) (*models.MBTTRequirement, error) {
	if s.cfg.Fleet != models.FleetWideBody {
		return nil, &EngineError{
			Code:    constants.ErrCodeWrongFleet,
			Message: "minimum base turnaround time applies to the wide-body fleet only",
		}
	}
	if daysAway < 1 {
		return nil, &EngineError{
			Code:    constants.ErrCodeInvalidInput,
			Message: fmt.Sprintf("days away must be at least 1, got %d", daysAway),
		}
	}

	req := &models.MBTTRequirement{}

	for _, tier := range rules.MBTTTiers {
		if daysAway <= tier.DaysAwayUpTo {
			req.RequiredLocalNights = tier.Nights
			req.RequiredHours = tier.Hours
			req.Reasons = append(req.Reasons,
				fmt.Sprintf("%d days away requires %s", daysAway, nightsOrHours(tier.Nights, tier.Hours)))
			break
		}
	}

	for _, override := range rules.MBTTHoursOverrides {
		if creditedFlightHours > override.CreditedHoursOver && override.MinNights > req.RequiredLocalNights {
			req.RequiredLocalNights = override.MinNights
			req.Reasons = append(req.Reasons,
				fmt.Sprintf("over %.0f credited flight hours requires at least %d local nights",
					override.CreditedHoursOver, override.MinNights))
		}
	}

	if hadDutyOver18Hours {
		req.RequiredLocalNights++
		req.Reasons = append(req.Reasons, "trip contained a planned duty over 18 hours: one additional local night")
	}

	// Nights-based requirements discard any hours-only figure.
	if req.RequiredLocalNights > 0 {
		req.RequiredHours = 0
	}

	return req, nil
}

func nightsOrHours(nights int, hours float64) string {
	if nights > 0 {
		return fmt.Sprintf("%d local nights", nights)
	}
	return fmt.Sprintf("%.0f hours at base", hours)
}
