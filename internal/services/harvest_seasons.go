package services

import (
	"sort"
	"time"

	"github.com/plagiagia/OliveAIFarmer/internal/models"
)

// SeasonView is the grouped read model of one harvest year: every row
// sharing (farm, year) folded into a single logical season. It is computed
// from the full row set on every read; nothing here is stored.
type SeasonView struct {
	Year        int              `json:"year"`
	Collections []models.Harvest `json:"collections"`
	TotalYield  float64          `json:"totalYield"`
	TotalValue  float64          `json:"totalValue"`
	IsCompleted bool             `json:"isCompleted"`
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
}

// DerivedMetrics are the per-unit figures for a yield. A nil field means the
// denominator was zero or unknown and the metric is suppressed.
type DerivedMetrics struct {
	TotalYieldTons  float64  `json:"totalYieldTons"`
	YieldPerTree    *float64 `json:"yieldPerTree,omitempty"`
	YieldPerStremma *float64 `json:"yieldPerStremma,omitempty"`
}

// GroupSeasons folds harvest rows into one SeasonView per distinct year.
// Collections are sorted ascending by effective date (collection date, else
// start date); seasons are sorted most recent year first.
func GroupSeasons(rows []models.Harvest) []SeasonView {
	byYear := make(map[int][]models.Harvest)
	for _, h := range rows {
		byYear[h.Year] = append(byYear[h.Year], h)
	}

	seasons := make([]SeasonView, 0, len(byYear))
	for year, group := range byYear {
		sort.SliceStable(group, func(i, j int) bool {
			di, dj := group[i].EffectiveDate(), group[j].EffectiveDate()
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.Before(*dj)
		})

		season := SeasonView{
			Year:        year,
			Collections: group,
			IsCompleted: true,
		}
		for i := range group {
			h := &group[i]
			season.TotalYield += h.TotalYield
			if h.TotalValue != nil {
				season.TotalValue += *h.TotalValue
			}
			if !h.Completed {
				season.IsCompleted = false
			}
			if d := h.EffectiveDate(); d != nil {
				if season.StartDate == nil || d.Before(*season.StartDate) {
					season.StartDate = d
				}
			}
			if h.EndDate != nil {
				if season.EndDate == nil || h.EndDate.After(*season.EndDate) {
					season.EndDate = h.EndDate
				}
			}
		}
		seasons = append(seasons, season)
	}

	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].Year > seasons[j].Year
	})
	return seasons
}

// SeasonDateRange computes the effective range of a season from every row in
// the year group: earliest effective date to latest end date, falling back
// to the latest effective date, then to now. Used when completing a row to
// backfill unset dates.
func SeasonDateRange(rows []models.Harvest, now time.Time) (start, end time.Time) {
	for i := range rows {
		d := rows[i].EffectiveDate()
		if d == nil {
			continue
		}
		if start.IsZero() || d.Before(start) {
			start = *d
		}
		if end.IsZero() || d.After(end) {
			end = *d
		}
	}
	for i := range rows {
		if e := rows[i].EndDate; e != nil && e.After(end) {
			end = *e
		}
	}
	if start.IsZero() {
		start = now
	}
	if end.IsZero() {
		end = now
	}
	return start, end
}

// ComputeMetrics derives the per-unit figures for a yield in kilograms.
// Metrics with a zero or missing denominator are nil, never NaN or Inf.
func ComputeMetrics(totalYieldKg float64, treeCount int, areaStremmata *float64) DerivedMetrics {
	m := DerivedMetrics{TotalYieldTons: totalYieldKg / 1000}
	if treeCount > 0 {
		v := totalYieldKg / float64(treeCount)
		m.YieldPerTree = &v
	}
	if areaStremmata != nil && *areaStremmata > 0 {
		v := totalYieldKg / *areaStremmata
		m.YieldPerStremma = &v
	}
	return m
}

// ComputeTotalValue prices a kilogram yield using whichever price field the
// unit marks authoritative. Nil when no usable price is present.
func ComputeTotalValue(totalYieldKg float64, priceUnit string, pricePerKg, pricePerTon *float64) *float64 {
	switch priceUnit {
	case models.PricePerTon:
		if pricePerTon != nil && *pricePerTon > 0 {
			v := (totalYieldKg / 1000) * *pricePerTon
			return &v
		}
	default:
		if pricePerKg != nil && *pricePerKg > 0 {
			v := totalYieldKg * *pricePerKg
			return &v
		}
	}
	return nil
}

// FarmStats summarizes every season of a farm for the dashboard.
type FarmStats struct {
	SeasonCount  int     `json:"seasonCount"`
	TotalYield   float64 `json:"totalYield"`
	TotalValue   float64 `json:"totalValue"`
	AverageYield float64 `json:"averageYield"`
}

// ComputeFarmStats reduces grouped seasons into farm-level totals.
func ComputeFarmStats(seasons []SeasonView) FarmStats {
	stats := FarmStats{SeasonCount: len(seasons)}
	for _, s := range seasons {
		stats.TotalYield += s.TotalYield
		stats.TotalValue += s.TotalValue
	}
	if stats.SeasonCount > 0 {
		stats.AverageYield = stats.TotalYield / float64(stats.SeasonCount)
	}
	return stats
}
