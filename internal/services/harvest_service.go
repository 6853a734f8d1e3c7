package services

import (
	"errors"
	"time"

	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"github.com/plagiagia/OliveAIFarmer/internal/units"
	"gorm.io/gorm"
)

// CreateHarvestInput carries caller-supplied harvest fields. Numeric and
// date fields arrive as JSON strings or numbers; nothing here is trusted.
type CreateHarvestInput struct {
	FarmID         string             `json:"farmId"`
	Year           types.FlexInt      `json:"year"`
	StartDate      types.FlexDate     `json:"startDate"`
	EndDate        types.FlexDate     `json:"endDate"`
	CollectionDate types.FlexDate     `json:"collectionDate"`
	TotalYield     *types.FlexFloat64 `json:"totalYield"`
	TotalYieldUnit string             `json:"totalYieldUnit"`
	PricePerKg     *types.FlexFloat64 `json:"pricePerKg"`
	PricePerTon    *types.FlexFloat64 `json:"pricePerTon"`
	PriceUnit      string             `json:"priceUnit"`
	QualityGrade   string             `json:"qualityGrade"`
	OilExtracted   *types.FlexFloat64 `json:"oilExtracted"`
	Notes          string             `json:"notes"`
	Completed      bool               `json:"completed"`
}

// UpdateHarvestInput carries a partial update for one harvest row. Nil
// pointers mean "leave unchanged"; absence is never a reset.
type UpdateHarvestInput struct {
	HarvestID      string             `json:"harvestId"`
	Year           *types.FlexInt     `json:"year"`
	StartDate      types.FlexDate     `json:"startDate"`
	EndDate        types.FlexDate     `json:"endDate"`
	CollectionDate types.FlexDate     `json:"collectionDate"`
	TotalYield     *types.FlexFloat64 `json:"totalYield"`
	TotalYieldUnit string             `json:"totalYieldUnit"`
	PricePerKg     *types.FlexFloat64 `json:"pricePerKg"`
	PricePerTon    *types.FlexFloat64 `json:"pricePerTon"`
	PriceUnit      string             `json:"priceUnit"`
	QualityGrade   *string            `json:"qualityGrade"`
	OilExtracted   *types.FlexFloat64 `json:"oilExtracted"`
	Notes          *string            `json:"notes"`
	Completed      *bool              `json:"completed"`
}

// ownedFarm loads a farm constrained to its owner. A farm belonging to
// someone else is indistinguishable from a missing one.
func ownedFarm(db *gorm.DB, farmID, userID string) (*models.Farm, error) {
	var farm models.Farm
	err := db.Where("id = ? AND user_id = ?", farmID, userID).First(&farm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFoundError("farm not found or access denied")
	}
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

// ownedHarvest loads a harvest row through farm ownership.
func ownedHarvest(db *gorm.DB, harvestID, userID string) (*models.Harvest, error) {
	var harvest models.Harvest
	err := db.Joins("JOIN farms ON farms.id = harvests.farm_id").
		Where("harvests.id = ? AND farms.user_id = ?", harvestID, userID).
		First(&harvest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFoundError("harvest not found or access denied")
	}
	if err != nil {
		return nil, err
	}
	return &harvest, nil
}

// ListHarvests returns a farm's harvest rows, most recent year first. Year
// and incomplete filters are optional.
func ListHarvests(db *gorm.DB, userID, farmID string, year *int, incompleteOnly bool) ([]models.Harvest, error) {
	if farmID == "" {
		return nil, types.ValidationError("farmId is required")
	}
	if _, err := ownedFarm(db, farmID, userID); err != nil {
		return nil, err
	}

	query := db.Where("farm_id = ?", farmID)
	if year != nil {
		query = query.Where("year = ?", *year)
	}
	if incompleteOnly {
		query = query.Where("completed = ?", false)
	}

	var harvests []models.Harvest
	if err := query.Order("year DESC, start_date DESC").Find(&harvests).Error; err != nil {
		return nil, err
	}
	return harvests, nil
}

// GroupedHarvests returns a farm's harvests as season views, one per year.
func GroupedHarvests(db *gorm.DB, userID, farmID string) ([]SeasonView, error) {
	rows, err := ListHarvests(db, userID, farmID, nil, false)
	if err != nil {
		return nil, err
	}
	return GroupSeasons(rows), nil
}

// CreateHarvest records a harvest. When an open season already exists for
// the (farm, year) the new row joins it as a daily collection, inheriting
// the season's price fields unless the caller overrides them. Without an
// open season this is a single-entry create, and a year that already has
// rows is a conflict.
func CreateHarvest(db *gorm.DB, userID string, input CreateHarvestInput) (*models.Harvest, error) {
	if input.FarmID == "" {
		return nil, types.ValidationError("farmId is required")
	}
	year := input.Year.Int()
	if year < 1900 || year > time.Now().Year()+1 {
		return nil, types.ValidationError("year %d is out of range", year)
	}
	if input.TotalYield == nil || input.TotalYield.Float64() <= 0 {
		return nil, types.ValidationError("totalYield must be a positive number")
	}
	if input.StartDate.IsZero() && input.CollectionDate.IsZero() {
		return nil, types.ValidationError("startDate or collectionDate is required")
	}
	if !input.EndDate.IsZero() && !input.StartDate.IsZero() && input.EndDate.Before(input.StartDate.Time) {
		return nil, types.ValidationError("endDate cannot be before startDate")
	}

	yieldUnit := units.Kilograms
	if input.TotalYieldUnit != "" {
		var err error
		if yieldUnit, err = units.ParseYieldUnit(input.TotalYieldUnit); err != nil {
			return nil, types.ValidationError("invalid yield unit %q", input.TotalYieldUnit)
		}
	}
	priceUnit := input.PriceUnit
	if priceUnit == "" {
		priceUnit = models.PricePerKg
	}
	if !models.ValidPriceUnit(priceUnit) {
		return nil, types.ValidationError("invalid price unit %q", input.PriceUnit)
	}

	farm, err := ownedFarm(db, input.FarmID, userID)
	if err != nil {
		return nil, err
	}

	// Is there an open season to append to?
	var siblings []models.Harvest
	if err := db.Where("farm_id = ? AND year = ?", farm.ID, year).Find(&siblings).Error; err != nil {
		return nil, err
	}
	var openSeason *models.Harvest
	for i := range siblings {
		if !siblings[i].Completed {
			openSeason = &siblings[i]
			break
		}
	}
	if len(siblings) > 0 && openSeason == nil {
		return nil, types.ConflictError("a harvest for year %d already exists on this farm", year)
	}
	daily := openSeason != nil

	if daily && input.CollectionDate.IsZero() {
		return nil, types.ValidationError("collectionDate is required for a daily collection")
	}

	totalYieldKg, err := units.ToKilograms(input.TotalYield.Float64(), yieldUnit)
	if err != nil {
		return nil, types.ValidationError("invalid yield unit %q", input.TotalYieldUnit)
	}

	pricePerKg := flexPtr(input.PricePerKg)
	pricePerTon := flexPtr(input.PricePerTon)
	if daily {
		// All rows of a season converge on one price basis unless overridden.
		if pricePerKg == nil && pricePerTon == nil {
			pricePerKg = openSeason.PricePerKg
			pricePerTon = openSeason.PricePerTon
			if input.PriceUnit == "" {
				priceUnit = openSeason.PriceUnit
			}
		}
	}

	treeCount, err := countTrees(db, farm.ID)
	if err != nil {
		return nil, err
	}
	metrics := ComputeMetrics(totalYieldKg, treeCount, farm.TotalArea)

	startDate := input.StartDate.Ptr()
	if startDate == nil {
		startDate = input.CollectionDate.Ptr()
	}

	harvest := models.Harvest{
		FarmID:          farm.ID,
		Year:            year,
		StartDate:       startDate,
		EndDate:         input.EndDate.Ptr(),
		CollectionDate:  input.CollectionDate.Ptr(),
		TotalYield:      totalYieldKg,
		TotalYieldTons:  metrics.TotalYieldTons,
		PricePerKg:      pricePerKg,
		PricePerTon:     pricePerTon,
		PriceUnit:       priceUnit,
		TotalValue:      ComputeTotalValue(totalYieldKg, priceUnit, pricePerKg, pricePerTon),
		YieldPerTree:    metrics.YieldPerTree,
		YieldPerStremma: metrics.YieldPerStremma,
		QualityGrade:    input.QualityGrade,
		OilExtracted:    flexPtr(input.OilExtracted),
		Notes:           input.Notes,
		Completed:       input.Completed,
	}
	if harvest.OilExtracted != nil && totalYieldKg > 0 {
		pct := *harvest.OilExtracted / totalYieldKg * 100
		harvest.OilYieldPercent = &pct
	}

	if err := db.Create(&harvest).Error; err != nil {
		return nil, err
	}
	return &harvest, nil
}

// UpdateHarvest applies a partial update to one row. Price-field changes
// propagate to every sibling row of the same (farm, year) in the same
// transaction; sibling totals and dates are left alone.
func UpdateHarvest(db *gorm.DB, userID string, input UpdateHarvestInput) (*models.Harvest, error) {
	if input.HarvestID == "" {
		return nil, types.ValidationError("harvestId is required")
	}

	harvest, err := ownedHarvest(db, input.HarvestID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Year != nil {
		y := input.Year.Int()
		if y < 1900 || y > time.Now().Year()+1 {
			return nil, types.ValidationError("year %d is out of range", y)
		}
		updates["year"] = y
	}
	if !input.StartDate.IsZero() {
		updates["start_date"] = input.StartDate.Time
	}
	if !input.EndDate.IsZero() {
		updates["end_date"] = input.EndDate.Time
	}
	// Date ordering holds over the effective values, not just the supplied
	// ones: an update may not slide endDate before the persisted startDate.
	effStart, effEnd := harvest.StartDate, harvest.EndDate
	if !input.StartDate.IsZero() {
		effStart = &input.StartDate.Time
	}
	if !input.EndDate.IsZero() {
		effEnd = &input.EndDate.Time
	}
	if effStart != nil && effEnd != nil && effEnd.Before(*effStart) {
		return nil, types.ValidationError("endDate cannot be before startDate")
	}
	if !input.CollectionDate.IsZero() {
		updates["collection_date"] = input.CollectionDate.Time
	}
	if input.TotalYield != nil {
		if input.TotalYield.Float64() <= 0 {
			return nil, types.ValidationError("totalYield must be a positive number")
		}
		yieldUnit := units.Kilograms
		if input.TotalYieldUnit != "" {
			if yieldUnit, err = units.ParseYieldUnit(input.TotalYieldUnit); err != nil {
				return nil, types.ValidationError("invalid yield unit %q", input.TotalYieldUnit)
			}
		}
		kg, convErr := units.ToKilograms(input.TotalYield.Float64(), yieldUnit)
		if convErr != nil {
			return nil, types.ValidationError("invalid yield unit %q", input.TotalYieldUnit)
		}
		updates["total_yield"] = kg
		updates["total_yield_tons"] = kg / 1000
	}

	priceUpdates := map[string]interface{}{}
	if input.PricePerKg != nil {
		priceUpdates["price_per_kg"] = input.PricePerKg.Float64()
	}
	if input.PricePerTon != nil {
		priceUpdates["price_per_ton"] = input.PricePerTon.Float64()
	}
	if input.PriceUnit != "" {
		if !models.ValidPriceUnit(input.PriceUnit) {
			return nil, types.ValidationError("invalid price unit %q", input.PriceUnit)
		}
		priceUpdates["price_unit"] = input.PriceUnit
	}

	if input.QualityGrade != nil {
		updates["quality_grade"] = *input.QualityGrade
	}
	if input.OilExtracted != nil {
		updates["oil_extracted"] = input.OilExtracted.Float64()
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.Completed != nil {
		// Completion is one-way; a completed row never reopens.
		if harvest.Completed && !*input.Completed {
			return nil, types.ValidationError("a completed harvest cannot be reopened")
		}
		updates["completed"] = *input.Completed
	}

	// Re-derive the stored metrics from the effective values of this row.
	// Siblings keep their own totals; only price fields are season-wide.
	yieldKg := harvest.TotalYield
	if v, ok := updates["total_yield"]; ok {
		yieldKg = v.(float64)
	}
	if input.TotalYield != nil || len(priceUpdates) > 0 {
		priceUnit := harvest.PriceUnit
		if v, ok := priceUpdates["price_unit"]; ok {
			priceUnit = v.(string)
		}
		perKg := harvest.PricePerKg
		if v, ok := priceUpdates["price_per_kg"]; ok {
			f := v.(float64)
			perKg = &f
		}
		perTon := harvest.PricePerTon
		if v, ok := priceUpdates["price_per_ton"]; ok {
			f := v.(float64)
			perTon = &f
		}
		updates["total_value"] = ComputeTotalValue(yieldKg, priceUnit, perKg, perTon)
	}
	if input.TotalYield != nil {
		var farm models.Farm
		if err := db.First(&farm, "id = ?", harvest.FarmID).Error; err != nil {
			return nil, err
		}
		treeCount, err := countTrees(db, harvest.FarmID)
		if err != nil {
			return nil, err
		}
		metrics := ComputeMetrics(yieldKg, treeCount, farm.TotalArea)
		updates["yield_per_tree"] = metrics.YieldPerTree
		updates["yield_per_stremma"] = metrics.YieldPerStremma
	}
	if input.OilExtracted != nil || input.TotalYield != nil {
		oil := harvest.OilExtracted
		if input.OilExtracted != nil {
			oil = flexPtr(input.OilExtracted)
		}
		if oil != nil && yieldKg > 0 {
			updates["oil_yield_percent"] = *oil / yieldKg * 100
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for k, v := range priceUpdates {
			updates[k] = v
		}
		if len(updates) > 0 {
			if err := tx.Model(harvest).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Price is a season-level property: push it to the siblings.
		if len(priceUpdates) > 0 {
			if err := tx.Model(&models.Harvest{}).
				Where("farm_id = ? AND year = ? AND id <> ?", harvest.FarmID, harvest.Year, harvest.ID).
				Updates(priceUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ownedHarvest(db, input.HarvestID, userID)
}

// CompleteHarvest marks one row completed and backfills its date range from
// every row of the same season: earliest collection/start date to the latest
// end date, defaulting to now. Sibling rows are not completed by this.
func CompleteHarvest(db *gorm.DB, userID, harvestID string, now time.Time) (*models.Harvest, error) {
	if harvestID == "" {
		return nil, types.ValidationError("harvestId is required")
	}

	harvest, err := ownedHarvest(db, harvestID, userID)
	if err != nil {
		return nil, err
	}

	var group []models.Harvest
	if err := db.Where("farm_id = ? AND year = ?", harvest.FarmID, harvest.Year).
		Order("start_date ASC, collection_date ASC").
		Find(&group).Error; err != nil {
		return nil, err
	}

	seasonStart, seasonEnd := SeasonDateRange(group, now)

	updates := map[string]interface{}{
		"completed": true,
		"end_date":  seasonEnd,
	}
	if harvest.StartDate == nil {
		updates["start_date"] = seasonStart
	}
	if err := db.Model(harvest).Updates(updates).Error; err != nil {
		return nil, err
	}

	return ownedHarvest(db, harvestID, userID)
}

// CompleteHarvestYear completes every open row of a season in one
// transaction and reports how many rows it touched.
func CompleteHarvestYear(db *gorm.DB, userID, farmID string, year int, now time.Time) (int, error) {
	if _, err := ownedFarm(db, farmID, userID); err != nil {
		return 0, err
	}

	var group []models.Harvest
	if err := db.Where("farm_id = ? AND year = ?", farmID, year).Find(&group).Error; err != nil {
		return 0, err
	}

	open := 0
	for i := range group {
		if !group[i].Completed {
			open++
		}
	}
	if open == 0 {
		return 0, types.NotFoundError("no open collections for year %d", year)
	}

	seasonStart, seasonEnd := SeasonDateRange(group, now)

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range group {
			if group[i].Completed {
				continue
			}
			updates := map[string]interface{}{
				"completed": true,
				"end_date":  seasonEnd,
			}
			if group[i].StartDate == nil {
				updates["start_date"] = seasonStart
			}
			if err := tx.Model(&group[i]).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return open, nil
}

// countTrees counts a farm's trees for the per-tree metric.
func countTrees(db *gorm.DB, farmID string) (int, error) {
	var count int64
	if err := db.Model(&models.OliveTree{}).Where("farm_id = ?", farmID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// flexPtr converts an optional flexible number to a plain *float64.
func flexPtr(f *types.FlexFloat64) *float64 {
	if f == nil {
		return nil
	}
	v := f.Float64()
	return &v
}
