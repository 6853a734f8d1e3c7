package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity types accepted from the UI.
const (
	ActivityWatering    = "WATERING"
	ActivityPruning     = "PRUNING"
	ActivityFertilizing = "FERTILIZING"
	ActivityPestControl = "PEST_CONTROL"
	ActivitySoilWork    = "SOIL_WORK"
	ActivityHarvesting  = "HARVESTING"
	ActivityMaintenance = "MAINTENANCE"
	ActivityInspection  = "INSPECTION"
	ActivityOther       = "OTHER"
)

// ValidActivityType reports whether s is a known activity type.
func ValidActivityType(s string) bool {
	switch s {
	case ActivityWatering, ActivityPruning, ActivityFertilizing,
		ActivityPestControl, ActivitySoilWork, ActivityHarvesting,
		ActivityMaintenance, ActivityInspection, ActivityOther:
		return true
	}
	return false
}

// Activity is a care task on a farm, optionally linked to individual trees
// through TreeActivity join rows.
type Activity struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	Type           string    `gorm:"size:20;not null"`
	Title          string    `gorm:"size:255;not null"`
	Description    string    `gorm:"type:text"`
	Date           time.Time `gorm:"not null;index"`
	Duration       *int
	Cost           *float64
	Weather        string `gorm:"size:100"`
	Notes          string `gorm:"type:text"`
	Completed      bool   `gorm:"not null;default:false"`
	FarmID         string `gorm:"type:char(36);not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	TreeActivities []TreeActivity `gorm:"constraint:OnDelete:CASCADE"`
}

// TreeActivity links an activity to one tree, with per-tree notes.
type TreeActivity struct {
	ID         string `gorm:"type:char(36);primaryKey"`
	ActivityID string `gorm:"type:char(36);not null;index:idx_activity_tree,unique"`
	TreeID     string `gorm:"type:char(36);not null;index:idx_activity_tree,unique"`
	Notes      string `gorm:"type:text"`
	CreatedAt  time.Time
	Tree       *OliveTree `gorm:"foreignKey:TreeID"`
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (ta *TreeActivity) BeforeCreate(tx *gorm.DB) error {
	if ta.ID == "" {
		ta.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Activity
func (Activity) TableName() string {
	return "activities"
}

// TableName overrides the table name for TreeActivity
func (TreeActivity) TableName() string {
	return "tree_activities"
}
