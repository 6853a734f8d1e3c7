package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OliveVariety is the static care profile of one cultivar. Seeded once from
// the embedded knowledge base and treated as read-only afterwards. The
// free-form agronomic blocks (climate, soil, resistances) are JSON columns.
type OliveVariety struct {
	ID                string `gorm:"type:char(36);primaryKey"`
	Name              string `gorm:"size:100;uniqueIndex;not null"`
	ScientificName    string `gorm:"size:150"`
	AlternativeNames  datatypes.JSON `gorm:"type:json"`
	PrimaryRegions    datatypes.JSON `gorm:"type:json"`
	TreeSize          string         `gorm:"size:20"`
	FruitType         string         `gorm:"size:20"`
	OilContent        *float64
	MaturityPeriod    string `gorm:"size:100"`
	AvgYieldPerTree   *float64
	AvgYieldPerStremma *float64
	ProductionStart   *int
	PeakProduction    *int
	OilQuality        string `gorm:"type:text"`
	Flavor            string `gorm:"type:text"`
	StorageLife       string `gorm:"size:255"`
	ClimateNeeds      datatypes.JSON `gorm:"type:json"`
	SoilNeeds         datatypes.JSON `gorm:"type:json"`
	WaterNeeds        string         `gorm:"size:20"`
	SunlightNeeds     string         `gorm:"size:20"`
	WindTolerance     string         `gorm:"size:20"`
	DiseaseResistance datatypes.JSON `gorm:"type:json"`
	PestResistance    datatypes.JSON `gorm:"type:json"`
	PruningNeeds      string `gorm:"size:20"`
	FertilizingNeeds  string `gorm:"size:20"`
	IrrigationNeeds   string `gorm:"size:20"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	MonthlyTasks      []MonthlyTask   `gorm:"foreignKey:VarietyID;constraint:OnDelete:CASCADE"`
	RiskFactors       []RiskFactor    `gorm:"foreignKey:VarietyID;constraint:OnDelete:CASCADE"`
	CareGuidelines    []CareGuideline `gorm:"foreignKey:VarietyID;constraint:OnDelete:CASCADE"`
}

// MonthlyTask is one recurring care task for a variety, keyed by month 1-12.
type MonthlyTask struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	VarietyID   string `gorm:"type:char(36);not null;index"`
	Month       int    `gorm:"not null;check:month >= 1 AND month <= 12"`
	TaskType    string `gorm:"size:50;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Priority    string `gorm:"size:20;default:MEDIUM"`
	CreatedAt   time.Time
}

// RiskFactor is a seasonal risk for a variety; Seasonality holds the Greek
// month names it applies to.
type RiskFactor struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	VarietyID   string         `gorm:"type:char(36);not null;index"`
	RiskType    string         `gorm:"size:20;not null"`
	Title       string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	Severity    string         `gorm:"size:20;default:MEDIUM"`
	Seasonality datatypes.JSON `gorm:"type:json"`
	Prevention  string         `gorm:"type:text"`
	Treatment   string         `gorm:"type:text"`
	CreatedAt   time.Time
}

// CareGuideline is a long-form care note for a variety.
type CareGuideline struct {
	ID         string `gorm:"type:char(36);primaryKey"`
	VarietyID  string `gorm:"type:char(36);not null;index"`
	Category   string `gorm:"size:50"`
	Title      string `gorm:"size:255;not null"`
	Content    string `gorm:"type:text"`
	Importance string `gorm:"size:20;default:MEDIUM"`
	CreatedAt  time.Time
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (v *OliveVariety) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (m *MonthlyTask) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (r *RiskFactor) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (c *CareGuideline) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for OliveVariety
func (OliveVariety) TableName() string {
	return "olive_varieties"
}

// TableName overrides the table name for MonthlyTask
func (MonthlyTask) TableName() string {
	return "monthly_tasks"
}

// TableName overrides the table name for RiskFactor
func (RiskFactor) TableName() string {
	return "risk_factors"
}

// TableName overrides the table name for CareGuideline
func (CareGuideline) TableName() string {
	return "care_guidelines"
}
