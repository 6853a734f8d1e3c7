package services

import (
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"gorm.io/gorm"
)

// DeleteHarvest removes one harvest row.
func DeleteHarvest(db *gorm.DB, userID, harvestID string) error {
	harvest, err := ownedHarvest(db, harvestID, userID)
	if err != nil {
		return err
	}
	return db.Delete(harvest).Error
}

// DeleteHarvestYear removes every row of a season in one transaction and
// returns the number of rows removed. An empty season is a not-found.
func DeleteHarvestYear(db *gorm.DB, userID, farmID string, year int) (int, error) {
	if farmID == "" {
		return 0, types.ValidationError("farmId is required")
	}
	if _, err := ownedFarm(db, farmID, userID); err != nil {
		return 0, err
	}

	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("farm_id = ? AND year = ?", farmID, year).Delete(&models.Harvest{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return types.NotFoundError("no harvests for year %d", year)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}
