package utils

import (
	"fmt"
	"time"

	"wheelhub-backend/internal/domain"
)

const (
	DateLayout    = "2006-01-02"
	daysPerWeek   = 7
	daysPerMonth  = 30
	maxRentalDays = 365
)

// RentalCostBreakdown shows how a quote was composed for one unit.
type RentalCostBreakdown struct {
	RentalDays int   `json:"rental_days"`
	Months     int   `json:"months"`
	Weeks      int   `json:"weeks"`
	Days       int   `json:"days"`
	UnitPaisa  int64 `json:"unit_paisa"`
	Quantity   int32 `json:"quantity"`
	TotalPaisa int64 `json:"total_paisa"`
}

// ParseDateRange parses yyyy-mm-dd dates and returns the inclusive number of
// rental days: picking up and returning on the same day is one day.
func ParseDateRange(startDate, endDate string) (time.Time, time.Time, int, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid start date, expected yyyy-mm-dd")
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid end date, expected yyyy-mm-dd")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("end date must be >= start date")
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxRentalDays {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("rental cannot exceed %d days", maxRentalDays)
	}
	return start, end, days, nil
}

// CalculateRentalCost prices a rental with the cheapest mix of the monthly,
// weekly and daily rates the vehicle offers. A zero weekly or monthly rate
// means the tier is not offered.
func CalculateRentalCost(startDate, endDate string, v *domain.Vehicle, quantity int32) (RentalCostBreakdown, error) {
	if v.DailyRatePaisa <= 0 {
		return RentalCostBreakdown{}, fmt.Errorf("vehicle %d has no daily rate", v.ID)
	}
	if quantity < 1 {
		return RentalCostBreakdown{}, fmt.Errorf("quantity must be at least 1")
	}
	_, _, days, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return RentalCostBreakdown{}, err
	}

	best := cheapestWithoutMonths(days, v)
	if v.MonthlyRatePaisa > 0 {
		months := days / daysPerMonth
		rest := cheapestWithoutMonths(days%daysPerMonth, v)
		rest.Months = months
		rest.UnitPaisa += int64(months) * v.MonthlyRatePaisa
		if rest.UnitPaisa < best.UnitPaisa {
			best = rest
		}
		// a partial month can still be cheaper billed as a full one
		up := RentalCostBreakdown{Months: months + 1, UnitPaisa: int64(months+1) * v.MonthlyRatePaisa}
		if days%daysPerMonth != 0 && up.UnitPaisa < best.UnitPaisa {
			best = up
		}
	}

	best.RentalDays = days
	best.Quantity = quantity
	best.TotalPaisa = best.UnitPaisa * int64(quantity)
	return best, nil
}

func cheapestWithoutMonths(days int, v *domain.Vehicle) RentalCostBreakdown {
	best := RentalCostBreakdown{Days: days, UnitPaisa: int64(days) * v.DailyRatePaisa}
	if v.WeeklyRatePaisa <= 0 || days == 0 {
		return best
	}

	weeks := days / daysPerWeek
	mixed := RentalCostBreakdown{
		Weeks:     weeks,
		Days:      days % daysPerWeek,
		UnitPaisa: int64(weeks)*v.WeeklyRatePaisa + int64(days%daysPerWeek)*v.DailyRatePaisa,
	}
	if mixed.UnitPaisa < best.UnitPaisa {
		best = mixed
	}
	if days%daysPerWeek != 0 {
		up := RentalCostBreakdown{Weeks: weeks + 1, UnitPaisa: int64(weeks+1) * v.WeeklyRatePaisa}
		if up.UnitPaisa < best.UnitPaisa {
			best = up
		}
	}
	return best
}
