package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Price units: exactly one of the two price fields is authoritative per row.
const (
	PricePerKg  = "PER_KG"
	PricePerTon = "PER_TON"
)

// ValidPriceUnit reports whether s is a known price unit.
func ValidPriceUnit(s string) bool {
	return s == PricePerKg || s == PricePerTon
}

// Harvest is one harvest record. In daily-collection mode several rows share
// the same (FarmID, Year), each holding one day's picking; the year is
// grouped into a single season at read time. TotalYield is always kilograms.
type Harvest struct {
	ID              string `gorm:"type:char(36);primaryKey"`
	Year            int    `gorm:"not null;index:idx_farm_year"`
	StartDate       *time.Time
	EndDate         *time.Time
	CollectionDate  *time.Time
	TotalYield      float64 `gorm:"not null"`
	TotalYieldTons  float64
	PricePerKg      *float64
	PricePerTon     *float64
	PriceUnit       string `gorm:"size:10;default:PER_KG"`
	TotalValue      *float64
	YieldPerTree    *float64
	YieldPerStremma *float64
	QualityGrade    string `gorm:"size:50"`
	OilExtracted    *float64
	OilYieldPercent *float64
	Notes           string `gorm:"type:text"`
	Completed       bool   `gorm:"not null;default:false"`
	FarmID          string `gorm:"type:char(36);not null;index:idx_farm_year"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (h *Harvest) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Harvest
func (Harvest) TableName() string {
	return "harvests"
}

// EffectiveDate is the date a row represents within its season: the
// collection day when set, otherwise the start date.
func (h *Harvest) EffectiveDate() *time.Time {
	if h.CollectionDate != nil {
		return h.CollectionDate
	}
	return h.StartDate
}
