package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tree health states accepted from the UI.
const (
	HealthExcellent = "EXCELLENT"
	HealthGood      = "GOOD"
	HealthHealthy   = "HEALTHY"
	HealthFair      = "FAIR"
	HealthPoor      = "POOR"
	HealthSick      = "SICK"
)

// ValidHealth reports whether s is a known tree health state.
func ValidHealth(s string) bool {
	switch s {
	case HealthExcellent, HealthGood, HealthHealthy, HealthFair, HealthPoor, HealthSick:
		return true
	}
	return false
}

// Farm is an olive grove owned by exactly one user. TotalArea is stored in
// stremmata; Coordinates holds the raw "lat, lng" text the owner entered.
type Farm struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Location    string `gorm:"size:255;not null"`
	Coordinates string `gorm:"size:100"`
	TotalArea   *float64
	Description string `gorm:"type:text"`
	UserID      string `gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Sections    []Section   `gorm:"constraint:OnDelete:CASCADE"`
	Trees       []OliveTree `gorm:"constraint:OnDelete:CASCADE"`
	Activities  []Activity  `gorm:"constraint:OnDelete:CASCADE"`
	Harvests    []Harvest   `gorm:"constraint:OnDelete:CASCADE"`
}

// Section is a named part of a farm (soil type, elevation).
type Section struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Area        *float64
	SoilType    string `gorm:"size:100"`
	Elevation   *int
	Description string `gorm:"type:text"`
	FarmID      string `gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OliveTree is a single tree, labeled with a zero-padded TreeNumber unique
// within its farm.
type OliveTree struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	TreeNumber   string `gorm:"size:20;not null;index:idx_farm_tree_number,unique"`
	Variety      string `gorm:"size:100"`
	PlantingYear *int
	Age          *int
	Health       string  `gorm:"size:20;default:HEALTHY"`
	FarmID       string  `gorm:"type:char(36);not null;index:idx_farm_tree_number,unique"`
	SectionID    *string `gorm:"type:char(36);index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (f *Farm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (t *OliveTree) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Farm
func (Farm) TableName() string {
	return "farms"
}

// TableName overrides the table name for Section
func (Section) TableName() string {
	return "olive_sections"
}

// TableName overrides the table name for OliveTree
func (OliveTree) TableName() string {
	return "olive_trees"
}
