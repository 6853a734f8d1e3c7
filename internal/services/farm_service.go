package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/plagiagia/OliveAIFarmer/internal/geo"
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"github.com/plagiagia/OliveAIFarmer/internal/units"
	"gorm.io/gorm"
)

// CreateFarmInput carries caller-supplied farm fields. Area arrives in
// whatever unit the owner works in and is stored in stremmata.
type CreateFarmInput struct {
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	Coordinates string             `json:"coordinates"`
	TotalArea   *types.FlexFloat64 `json:"totalArea"`
	AreaUnit    string             `json:"areaUnit"`
	Description string             `json:"description"`
	TreeCount   *types.FlexInt     `json:"treeCount"`
	Variety     string             `json:"variety"`
}

// UpdateFarmInput carries a partial farm update. Nil means "leave unchanged".
type UpdateFarmInput struct {
	Name        *string            `json:"name"`
	Location    *string            `json:"location"`
	Coordinates *string            `json:"coordinates"`
	TotalArea   *types.FlexFloat64 `json:"totalArea"`
	AreaUnit    string             `json:"areaUnit"`
	Description *string            `json:"description"`
	TreeCount   *types.FlexInt     `json:"treeCount"`
}

// FarmView is a farm with its derived numbers attached.
type FarmView struct {
	models.Farm
	TreeCount int       `json:"treeCount"`
	Stats     FarmStats `json:"stats"`
}

// normalizeCoordinates validates a coordinate string against the Greek
// bounding box and returns it in canonical "lat, lng" form. Empty input is
// allowed; a pin is optional.
func normalizeCoordinates(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	p, ok := geo.ParseCoordinates(raw)
	if !ok {
		return "", types.ValidationError("coordinates %q are not a valid location in Greece", raw)
	}
	return geo.FormatCoordinates(p.Lng, p.Lat, 6), nil
}

// normalizeArea converts an optional area to stremmata.
func normalizeArea(area *types.FlexFloat64, unit string) (*float64, error) {
	if area == nil {
		return nil, nil
	}
	v := area.Float64()
	if v <= 0 {
		return nil, types.ValidationError("totalArea must be a positive number")
	}
	from := units.Stremmata
	if unit != "" {
		var err error
		if from, err = units.ParseAreaUnit(unit); err != nil {
			return nil, types.ValidationError("invalid area unit %q", unit)
		}
	}
	str, err := units.ToStremmata(v, from)
	if err != nil {
		return nil, types.ValidationError("invalid area unit %q", unit)
	}
	return &str, nil
}

// CreateFarm registers a farm and optionally plants its initial trees,
// numbered 001 upward.
func CreateFarm(db *gorm.DB, userID string, input CreateFarmInput) (*models.Farm, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, types.ValidationError("name is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, types.ValidationError("location is required")
	}

	coords, err := normalizeCoordinates(input.Coordinates)
	if err != nil {
		return nil, err
	}
	area, err := normalizeArea(input.TotalArea, input.AreaUnit)
	if err != nil {
		return nil, err
	}

	farm := models.Farm{
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Coordinates: coords,
		TotalArea:   area,
		Description: input.Description,
		UserID:      userID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&farm).Error; err != nil {
			return err
		}
		if input.TreeCount != nil && input.TreeCount.Int() > 0 {
			return growTrees(tx, farm.ID, input.TreeCount.Int(), input.Variety)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

// ListFarms returns the user's farms with tree counts, newest first.
func ListFarms(db *gorm.DB, userID string) ([]FarmView, error) {
	var farms []models.Farm
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&farms).Error
	if err != nil {
		return nil, err
	}

	views := make([]FarmView, 0, len(farms))
	for i := range farms {
		count, err := countTrees(db, farms[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, FarmView{Farm: farms[i], TreeCount: count})
	}
	return views, nil
}

// GetFarm returns one farm with its sections, trees in label order, and
// lifetime harvest stats.
func GetFarm(db *gorm.DB, userID, farmID string) (*FarmView, error) {
	var farm models.Farm
	err := db.Preload("Sections").
		Preload("Trees", func(tx *gorm.DB) *gorm.DB { return tx.Order("tree_number ASC") }).
		Where("id = ? AND user_id = ?", farmID, userID).
		First(&farm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFoundError("farm not found or access denied")
	}
	if err != nil {
		return nil, err
	}

	var harvests []models.Harvest
	if err := db.Where("farm_id = ?", farm.ID).Find(&harvests).Error; err != nil {
		return nil, err
	}

	return &FarmView{
		Farm:      farm,
		TreeCount: len(farm.Trees),
		Stats:     ComputeFarmStats(GroupSeasons(harvests)),
	}, nil
}

// GetFarmStats recomputes the farm's lifetime harvest stats from the full
// current row set.
func GetFarmStats(db *gorm.DB, userID, farmID string) (*FarmStats, error) {
	farm, err := ownedFarm(db, farmID, userID)
	if err != nil {
		return nil, err
	}

	var harvests []models.Harvest
	if err := db.Where("farm_id = ?", farm.ID).Find(&harvests).Error; err != nil {
		return nil, err
	}

	stats := ComputeFarmStats(GroupSeasons(harvests))
	return &stats, nil
}

// UpdateFarm applies a partial update. A tree count change grows or shrinks
// the tree set in the same transaction.
func UpdateFarm(db *gorm.DB, userID, farmID string, input UpdateFarmInput) (*models.Farm, error) {
	farm, err := ownedFarm(db, farmID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, types.ValidationError("name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		if strings.TrimSpace(*input.Location) == "" {
			return nil, types.ValidationError("location cannot be empty")
		}
		updates["location"] = strings.TrimSpace(*input.Location)
	}
	if input.Coordinates != nil {
		coords, err := normalizeCoordinates(*input.Coordinates)
		if err != nil {
			return nil, err
		}
		updates["coordinates"] = coords
	}
	if input.TotalArea != nil {
		area, err := normalizeArea(input.TotalArea, input.AreaUnit)
		if err != nil {
			return nil, err
		}
		updates["total_area"] = *area
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(farm).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.TreeCount != nil {
			return syncTreeCount(tx, farm.ID, input.TreeCount.Int())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ownedFarm(db, farmID, userID)
}

// DeleteFarm removes a farm; sections, trees, activities and harvests go
// with it through the cascade constraints.
func DeleteFarm(db *gorm.DB, userID, farmID string) error {
	farm, err := ownedFarm(db, farmID, userID)
	if err != nil {
		return err
	}
	return db.Select("Sections", "Trees", "Activities", "Harvests").Delete(farm).Error
}

// syncTreeCount reconciles the stored tree rows with a target count. Growth
// appends numbered trees after the current maximum; shrinking removes the
// highest-numbered trees first so established trees keep their labels.
func syncTreeCount(tx *gorm.DB, farmID string, target int) error {
	if target < 0 {
		return types.ValidationError("treeCount cannot be negative")
	}

	var trees []models.OliveTree
	if err := tx.Where("farm_id = ?", farmID).Order("tree_number ASC").Find(&trees).Error; err != nil {
		return err
	}

	switch {
	case target > len(trees):
		return growTreesFrom(tx, farmID, target-len(trees), maxTreeNumber(trees), "")
	case target < len(trees):
		doomed := trees[target:]
		ids := make([]string, 0, len(doomed))
		for i := range doomed {
			ids = append(ids, doomed[i].ID)
		}
		return tx.Where("id IN ?", ids).Delete(&models.OliveTree{}).Error
	}
	return nil
}

// growTrees plants n trees on an empty or fresh farm starting at 001.
func growTrees(tx *gorm.DB, farmID string, n int, variety string) error {
	return growTreesFrom(tx, farmID, n, 0, variety)
}

func growTreesFrom(tx *gorm.DB, farmID string, n, after int, variety string) error {
	trees := make([]models.OliveTree, 0, n)
	for i := 1; i <= n; i++ {
		trees = append(trees, models.OliveTree{
			TreeNumber: fmt.Sprintf("%03d", after+i),
			Variety:    variety,
			Health:     models.HealthHealthy,
			FarmID:     farmID,
		})
	}
	return tx.Create(&trees).Error
}

// maxTreeNumber finds the highest numeric tree label, tolerating labels
// that were hand-edited into something non-numeric.
func maxTreeNumber(trees []models.OliveTree) int {
	max := 0
	for i := range trees {
		if n, err := strconv.Atoi(trees[i].TreeNumber); err == nil && n > max {
			max = n
		}
	}
	return max
}

// CurrentUser resolves the authenticated identity to a local user row,
// creating it on first sight.
func CurrentUser(db *gorm.DB, authzID, email, firstName, lastName string) (*models.User, error) {
	if authzID == "" {
		return nil, types.ValidationError("missing authenticated user id")
	}

	var user models.User
	err := db.Where("authz_id = ?", authzID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		AuthzID:   authzID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
