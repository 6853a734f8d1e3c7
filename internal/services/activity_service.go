package services

import (
	"errors"
	"strings"

	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"gorm.io/gorm"
)

// CreateActivityInput carries caller-supplied activity fields. TreeIDs links
// the activity to individual trees on the same farm.
type CreateActivityInput struct {
	FarmID      string             `json:"farmId"`
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Date        types.FlexDate     `json:"date"`
	Duration    *types.FlexInt     `json:"duration"`
	Cost        *types.FlexFloat64 `json:"cost"`
	Weather     string             `json:"weather"`
	Notes       string             `json:"notes"`
	Completed   bool               `json:"completed"`
	TreeIDs     []string           `json:"treeIds"`
}

// UpdateActivityInput carries a partial activity update. A non-nil TreeIDs
// replaces the linked tree set wholesale.
type UpdateActivityInput struct {
	Type        *string            `json:"type"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Date        types.FlexDate     `json:"date"`
	Duration    *types.FlexInt     `json:"duration"`
	Cost        *types.FlexFloat64 `json:"cost"`
	Weather     *string            `json:"weather"`
	Notes       *string            `json:"notes"`
	Completed   *bool              `json:"completed"`
	TreeIDs     []string           `json:"treeIds"`
}

// ownedActivity loads an activity through farm ownership.
func ownedActivity(db *gorm.DB, activityID, userID string) (*models.Activity, error) {
	var activity models.Activity
	err := db.Joins("JOIN farms ON farms.id = activities.farm_id").
		Where("activities.id = ? AND farms.user_id = ?", activityID, userID).
		Preload("TreeActivities.Tree").
		First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFoundError("activity not found or access denied")
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// verifyTrees checks that every id names a tree on the given farm.
func verifyTrees(db *gorm.DB, farmID string, treeIDs []string) error {
	if len(treeIDs) == 0 {
		return nil
	}
	var count int64
	err := db.Model(&models.OliveTree{}).
		Where("farm_id = ? AND id IN ?", farmID, treeIDs).
		Count(&count).Error
	if err != nil {
		return err
	}
	if int(count) != len(treeIDs) {
		return types.ValidationError("one or more trees do not belong to this farm")
	}
	return nil
}

// ListActivities returns a farm's activities, newest first, with their
// linked trees.
func ListActivities(db *gorm.DB, userID, farmID string, activityType string) ([]models.Activity, error) {
	if farmID == "" {
		return nil, types.ValidationError("farmId is required")
	}
	if _, err := ownedFarm(db, farmID, userID); err != nil {
		return nil, err
	}

	query := db.Where("farm_id = ?", farmID)
	if activityType != "" {
		if !models.ValidActivityType(activityType) {
			return nil, types.ValidationError("invalid activity type %q", activityType)
		}
		query = query.Where("type = ?", activityType)
	}

	var activities []models.Activity
	err := query.Preload("TreeActivities.Tree").Order("date DESC").Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateActivity records a care task and links it to the named trees in one
// transaction.
func CreateActivity(db *gorm.DB, userID string, input CreateActivityInput) (*models.Activity, error) {
	if input.FarmID == "" {
		return nil, types.ValidationError("farmId is required")
	}
	if !models.ValidActivityType(input.Type) {
		return nil, types.ValidationError("invalid activity type %q", input.Type)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, types.ValidationError("title is required")
	}
	if input.Date.IsZero() {
		return nil, types.ValidationError("date is required")
	}

	farm, err := ownedFarm(db, input.FarmID, userID)
	if err != nil {
		return nil, err
	}
	if err := verifyTrees(db, farm.ID, input.TreeIDs); err != nil {
		return nil, err
	}

	activity := models.Activity{
		Type:        input.Type,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        input.Date.Time,
		Weather:     input.Weather,
		Notes:       input.Notes,
		Completed:   input.Completed,
		FarmID:      farm.ID,
	}
	if input.Duration != nil {
		d := input.Duration.Int()
		activity.Duration = &d
	}
	if input.Cost != nil {
		c := input.Cost.Float64()
		activity.Cost = &c
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		return linkTrees(tx, activity.ID, input.TreeIDs)
	})
	if err != nil {
		return nil, err
	}

	return ownedActivity(db, activity.ID, userID)
}

// UpdateActivity applies a partial update; when TreeIDs is non-nil the tree
// links are replaced with the new set.
func UpdateActivity(db *gorm.DB, userID, activityID string, input UpdateActivityInput) (*models.Activity, error) {
	activity, err := ownedActivity(db, activityID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Type != nil {
		if !models.ValidActivityType(*input.Type) {
			return nil, types.ValidationError("invalid activity type %q", *input.Type)
		}
		updates["type"] = *input.Type
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, types.ValidationError("title cannot be empty")
		}
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if !input.Date.IsZero() {
		updates["date"] = input.Date.Time
	}
	if input.Duration != nil {
		updates["duration"] = input.Duration.Int()
	}
	if input.Cost != nil {
		updates["cost"] = input.Cost.Float64()
	}
	if input.Weather != nil {
		updates["weather"] = *input.Weather
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.Completed != nil {
		updates["completed"] = *input.Completed
	}

	if input.TreeIDs != nil {
		if err := verifyTrees(db, activity.FarmID, input.TreeIDs); err != nil {
			return nil, err
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(activity).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.TreeIDs != nil {
			if err := tx.Where("activity_id = ?", activity.ID).
				Delete(&models.TreeActivity{}).Error; err != nil {
				return err
			}
			return linkTrees(tx, activity.ID, input.TreeIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ownedActivity(db, activityID, userID)
}

// DeleteActivity removes an activity and its tree links.
func DeleteActivity(db *gorm.DB, userID, activityID string) error {
	activity, err := ownedActivity(db, activityID, userID)
	if err != nil {
		return err
	}
	return db.Select("TreeActivities").Delete(activity).Error
}

func linkTrees(tx *gorm.DB, activityID string, treeIDs []string) error {
	if len(treeIDs) == 0 {
		return nil
	}
	links := make([]models.TreeActivity, 0, len(treeIDs))
	for _, id := range treeIDs {
		links = append(links, models.TreeActivity{ActivityID: activityID, TreeID: id})
	}
	return tx.Create(&links).Error
}
