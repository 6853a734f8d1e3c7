package database

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/plagiagia/OliveAIFarmer/data"
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type seedVariety struct {
	Name               string          `json:"name"`
	ScientificName     string          `json:"scientificName"`
	AlternativeNames   json.RawMessage `json:"alternativeNames"`
	PrimaryRegions     json.RawMessage `json:"primaryRegions"`
	TreeSize           string          `json:"treeSize"`
	FruitType          string          `json:"fruitType"`
	OilContent         *float64        `json:"oilContent"`
	MaturityPeriod     string          `json:"maturityPeriod"`
	AvgYieldPerTree    *float64        `json:"avgYieldPerTree"`
	AvgYieldPerStremma *float64        `json:"avgYieldPerStremma"`
	ProductionStart    *int            `json:"productionStart"`
	PeakProduction     *int            `json:"peakProduction"`
	OilQuality         string          `json:"oilQuality"`
	Flavor             string          `json:"flavor"`
	StorageLife        string          `json:"storageLife"`
	ClimateNeeds       json.RawMessage `json:"climateNeeds"`
	SoilNeeds          json.RawMessage `json:"soilNeeds"`
	WaterNeeds         string          `json:"waterNeeds"`
	SunlightNeeds      string          `json:"sunlightNeeds"`
	WindTolerance      string          `json:"windTolerance"`
	DiseaseResistance  json.RawMessage `json:"diseaseResistance"`
	PestResistance     json.RawMessage `json:"pestResistance"`
	PruningNeeds       string          `json:"pruningNeeds"`
	FertilizingNeeds   string          `json:"fertilizingNeeds"`
	IrrigationNeeds    string          `json:"irrigationNeeds"`
}

type seedMonthlyTask struct {
	Month       int    `json:"month"`
	TaskType    string `json:"taskType"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type seedRiskFactor struct {
	RiskType    string          `json:"riskType"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    string          `json:"severity"`
	Seasonality json.RawMessage `json:"seasonality"`
	Prevention  string          `json:"prevention"`
	Treatment   string          `json:"treatment"`
}

type seedCareGuideline struct {
	Category   string `json:"category"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Importance string `json:"importance"`
}

type seedFile struct {
	Varieties      []seedVariety       `json:"varieties"`
	MonthlyTasks   []seedMonthlyTask   `json:"monthlyTasks"`
	RiskFactors    []seedRiskFactor    `json:"riskFactors"`
	CareGuidelines []seedCareGuideline `json:"careGuidelines"`
}

// SeedVarieties loads the embedded olive-variety knowledge base. Varieties
// already present (by name) are left untouched; the monthly-task calendar,
// risk factors and care guidelines are shared across all varieties.
func SeedVarieties(db *gorm.DB) error {
	var seed seedFile
	if err := json.Unmarshal(data.VarietiesJSON, &seed); err != nil {
		return fmt.Errorf("failed to parse variety seed data: %w", err)
	}

	seeded, failed := 0, 0
	for _, sv := range seed.Varieties {
		var count int64
		if err := db.Model(&models.OliveVariety{}).Where("name = ?", sv.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		variety := models.OliveVariety{
			Name:               sv.Name,
			ScientificName:     sv.ScientificName,
			AlternativeNames:   datatypes.JSON(sv.AlternativeNames),
			PrimaryRegions:     datatypes.JSON(sv.PrimaryRegions),
			TreeSize:           sv.TreeSize,
			FruitType:          sv.FruitType,
			OilContent:         sv.OilContent,
			MaturityPeriod:     sv.MaturityPeriod,
			AvgYieldPerTree:    sv.AvgYieldPerTree,
			AvgYieldPerStremma: sv.AvgYieldPerStremma,
			ProductionStart:    sv.ProductionStart,
			PeakProduction:     sv.PeakProduction,
			OilQuality:         sv.OilQuality,
			Flavor:             sv.Flavor,
			StorageLife:        sv.StorageLife,
			ClimateNeeds:       datatypes.JSON(sv.ClimateNeeds),
			SoilNeeds:          datatypes.JSON(sv.SoilNeeds),
			WaterNeeds:         sv.WaterNeeds,
			SunlightNeeds:      sv.SunlightNeeds,
			WindTolerance:      sv.WindTolerance,
			DiseaseResistance:  datatypes.JSON(sv.DiseaseResistance),
			PestResistance:     datatypes.JSON(sv.PestResistance),
			PruningNeeds:       sv.PruningNeeds,
			FertilizingNeeds:   sv.FertilizingNeeds,
			IrrigationNeeds:    sv.IrrigationNeeds,
		}

		for _, t := range seed.MonthlyTasks {
			variety.MonthlyTasks = append(variety.MonthlyTasks, models.MonthlyTask{
				Month:       t.Month,
				TaskType:    t.TaskType,
				Title:       t.Title,
				Description: t.Description,
				Priority:    t.Priority,
			})
		}
		for _, r := range seed.RiskFactors {
			variety.RiskFactors = append(variety.RiskFactors, models.RiskFactor{
				RiskType:    r.RiskType,
				Title:       r.Title,
				Description: r.Description,
				Severity:    r.Severity,
				Seasonality: datatypes.JSON(r.Seasonality),
				Prevention:  r.Prevention,
				Treatment:   r.Treatment,
			})
		}
		for _, g := range seed.CareGuidelines {
			variety.CareGuidelines = append(variety.CareGuidelines, models.CareGuideline{
				Category:   g.Category,
				Title:      g.Title,
				Content:    g.Content,
				Importance: g.Importance,
			})
		}

		// Each variety is an independent create: one failure does not stop
		// the rest, and a rerun of the idempotent seed retries the failed.
		if err := db.Create(&variety).Error; err != nil {
			log.Printf("Failed to seed variety %s: %v", sv.Name, err)
			failed++
			continue
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("Seeded %d olive varieties", seeded)
	}
	if failed > 0 {
		return types.PartialError(failed, seeded+failed, "variety seed")
	}
	return nil
}
