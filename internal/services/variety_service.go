package services

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/plagiagia/OliveAIFarmer/internal/agronomy"
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"gorm.io/gorm"
)

// Greek month names as they appear in risk seasonality lists.
var greekMonths = [...]string{
	time.January:   "Ιανουάριος",
	time.February:  "Φεβρουάριος",
	time.March:     "Μάρτιος",
	time.April:     "Απρίλιος",
	time.May:       "Μάιος",
	time.June:      "Ιούνιος",
	time.July:      "Ιούλιος",
	time.August:    "Αύγουστος",
	time.September: "Σεπτέμβριος",
	time.October:   "Οκτώβριος",
	time.November:  "Νοέμβριος",
	time.December:  "Δεκέμβριος",
}

// GreekMonth returns the Greek name of a month.
func GreekMonth(m time.Month) string {
	return greekMonths[m]
}

var priorityRank = map[string]int{
	"CRITICAL": 3,
	"HIGH":     2,
	"MEDIUM":   1,
	"LOW":      0,
}

// MonthlyAdvice is a variety's care picture for one month.
type MonthlyAdvice struct {
	Variety         string                    `json:"variety"`
	Month           int                       `json:"month"`
	MonthName       string                    `json:"monthName"`
	Tasks           []models.MonthlyTask      `json:"tasks"`
	Risks           []models.RiskFactor       `json:"risks"`
	Recommendations []agronomy.Recommendation `json:"recommendations"`
}

// ListVarieties returns the variety knowledge base without its heavy
// association lists.
func ListVarieties(db *gorm.DB) ([]models.OliveVariety, error) {
	var varieties []models.OliveVariety
	if err := db.Order("name ASC").Find(&varieties).Error; err != nil {
		return nil, err
	}
	return varieties, nil
}

// GetVariety returns one variety with its tasks, risks and guidelines. The
// key may be the row id or the variety name.
func GetVariety(db *gorm.DB, key string) (*models.OliveVariety, error) {
	if key == "" {
		return nil, types.ValidationError("variety is required")
	}

	var variety models.OliveVariety
	err := db.Where("id = ? OR name = ?", key, key).
		Preload("MonthlyTasks").
		Preload("RiskFactors").
		Preload("CareGuidelines").
		First(&variety).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFoundError("variety %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return &variety, nil
}

// AdviceForMonth assembles a variety's tasks, in-season risks and rule-based
// recommendations for one month. Tasks come out highest priority first.
func AdviceForMonth(db *gorm.DB, key string, month time.Month) (*MonthlyAdvice, error) {
	if month < time.January || month > time.December {
		return nil, types.ValidationError("month must be between 1 and 12")
	}

	variety, err := GetVariety(db, key)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.MonthlyTask, 0)
	for _, t := range variety.MonthlyTasks {
		if t.Month == int(month) {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return priorityRank[tasks[i].Priority] > priorityRank[tasks[j].Priority]
	})

	monthName := GreekMonth(month)
	risks := make([]models.RiskFactor, 0)
	for _, r := range variety.RiskFactors {
		if riskInSeason(r, monthName) {
			risks = append(risks, r)
		}
	}

	return &MonthlyAdvice{
		Variety:         variety.Name,
		Month:           int(month),
		MonthName:       monthName,
		Tasks:           tasks,
		Risks:           risks,
		Recommendations: agronomy.Recommend(careProfile(variety), month),
	}, nil
}

// riskInSeason reports whether a risk's seasonality list names the month.
// An empty or unreadable list means year-round.
func riskInSeason(r models.RiskFactor, monthName string) bool {
	if len(r.Seasonality) == 0 {
		return true
	}
	var months []string
	if err := json.Unmarshal(r.Seasonality, &months); err != nil || len(months) == 0 {
		return true
	}
	for _, m := range months {
		if m == monthName {
			return true
		}
	}
	return false
}

// careProfile projects a variety row onto the rule engine's input. The peak
// harvest month falls back to the variety's peak task when one exists.
func careProfile(v *models.OliveVariety) agronomy.CareProfile {
	profile := agronomy.CareProfile{
		Name:             v.Name,
		WaterNeeds:       v.WaterNeeds,
		PruningNeeds:     v.PruningNeeds,
		FertilizingNeeds: v.FertilizingNeeds,
		WindTolerance:    v.WindTolerance,
	}
	for _, t := range v.MonthlyTasks {
		if t.TaskType == "HARVESTING" && t.Priority == "CRITICAL" {
			profile.PeakHarvestMonth = time.Month(t.Month)
			break
		}
	}
	return profile
}
