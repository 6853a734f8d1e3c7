package services_test

import (
	"testing"
	"time"

	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
)

func flexFloat(v float64) *types.FlexFloat64 {
	f := types.FlexFloat64(v)
	return &f
}

func flexDate(t *testing.T, s string) types.FlexDate {
	t.Helper()
	var d types.FlexDate
	if err := d.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestCreateHarvestSingleEntry(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, floatPtr(20))

	harvest, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:         farm.ID,
		Year:           types.FlexInt(2024),
		StartDate:      flexDate(t, "2024-11-01"),
		TotalYield:     flexFloat(2),
		TotalYieldUnit: "ton",
		PricePerKg:     flexFloat(4.5),
	})
	if err != nil {
		t.Fatalf("CreateHarvest: %v", err)
	}

	if harvest.TotalYield != 2000 {
		t.Errorf("TotalYield = %v, want 2000 kg", harvest.TotalYield)
	}
	if harvest.TotalYieldTons != 2 {
		t.Errorf("TotalYieldTons = %v, want 2", harvest.TotalYieldTons)
	}
	if harvest.TotalValue == nil || *harvest.TotalValue != 9000 {
		t.Errorf("TotalValue = %v, want 9000", harvest.TotalValue)
	}
	if harvest.YieldPerStremma == nil || *harvest.YieldPerStremma != 100 {
		t.Errorf("YieldPerStremma = %v, want 100", harvest.YieldPerStremma)
	}
	if harvest.YieldPerTree != nil {
		t.Errorf("YieldPerTree = %v, want nil for a farm with no trees", harvest.YieldPerTree)
	}
}

func TestCreateHarvestDuplicateYearConflict(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	first := services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2024),
		StartDate:  flexDate(t, "2024-11-01"),
		TotalYield: flexFloat(500),
		Completed:  true,
	}
	if _, err := services.CreateHarvest(db, user.ID, first); err != nil {
		t.Fatalf("first CreateHarvest: %v", err)
	}

	_, err := services.CreateHarvest(db, user.ID, first)
	customErr, ok := err.(*types.CustomError)
	if !ok || customErr.Type != types.ErrTypeConflict {
		t.Fatalf("expected conflict error for duplicate completed year, got %v", err)
	}
}

func TestCreateHarvestDailyCollectionInheritsPrice(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	_, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2024),
		StartDate:  flexDate(t, "2024-11-01"),
		TotalYield: flexFloat(500),
		PricePerKg: flexFloat(5),
	})
	if err != nil {
		t.Fatalf("open season CreateHarvest: %v", err)
	}

	daily, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:         farm.ID,
		Year:           types.FlexInt(2024),
		CollectionDate: flexDate(t, "2024-11-03"),
		TotalYield:     flexFloat(200),
	})
	if err != nil {
		t.Fatalf("daily CreateHarvest: %v", err)
	}

	if daily.PricePerKg == nil || *daily.PricePerKg != 5 {
		t.Errorf("daily PricePerKg = %v, want inherited 5", daily.PricePerKg)
	}
	if daily.TotalValue == nil || *daily.TotalValue != 1000 {
		t.Errorf("daily TotalValue = %v, want 1000", daily.TotalValue)
	}
	if daily.StartDate == nil || daily.CollectionDate == nil || !daily.StartDate.Equal(*daily.CollectionDate) {
		t.Errorf("daily StartDate should mirror CollectionDate, got %v", daily.StartDate)
	}
}

func TestCreateHarvestDailyRequiresCollectionDate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	_, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2024),
		StartDate:  flexDate(t, "2024-11-01"),
		TotalYield: flexFloat(500),
	})
	if err != nil {
		t.Fatalf("open season CreateHarvest: %v", err)
	}

	_, err = services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2024),
		StartDate:  flexDate(t, "2024-11-02"),
		TotalYield: flexFloat(100),
	})
	customErr, ok := err.(*types.CustomError)
	if !ok || customErr.Type != types.ErrTypeValidation {
		t.Fatalf("expected validation error without collectionDate, got %v", err)
	}
}

func TestCreateHarvestValidation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	cases := []struct {
		name  string
		input services.CreateHarvestInput
	}{
		{"missing farm", services.CreateHarvestInput{
			Year: types.FlexInt(2024), StartDate: flexDate(t, "2024-11-01"), TotalYield: flexFloat(1),
		}},
		{"year out of range", services.CreateHarvestInput{
			FarmID: farm.ID, Year: types.FlexInt(1800), StartDate: flexDate(t, "2024-11-01"), TotalYield: flexFloat(1),
		}},
		{"zero yield", services.CreateHarvestInput{
			FarmID: farm.ID, Year: types.FlexInt(2024), StartDate: flexDate(t, "2024-11-01"), TotalYield: flexFloat(0),
		}},
		{"no dates", services.CreateHarvestInput{
			FarmID: farm.ID, Year: types.FlexInt(2024), TotalYield: flexFloat(1),
		}},
		{"bad yield unit", services.CreateHarvestInput{
			FarmID: farm.ID, Year: types.FlexInt(2024), StartDate: flexDate(t, "2024-11-01"),
			TotalYield: flexFloat(1), TotalYieldUnit: "bushels",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := services.CreateHarvest(db, user.ID, tc.input); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestUpdateHarvestPropagatesPrice(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	first, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2024),
		StartDate:  flexDate(t, "2024-11-01"),
		TotalYield: flexFloat(500),
	})
	if err != nil {
		t.Fatalf("CreateHarvest: %v", err)
	}
	second, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:         farm.ID,
		Year:           types.FlexInt(2024),
		CollectionDate: flexDate(t, "2024-11-03"),
		TotalYield:     flexFloat(300),
	})
	if err != nil {
		t.Fatalf("daily CreateHarvest: %v", err)
	}

	_, err = services.UpdateHarvest(db, user.ID, services.UpdateHarvestInput{
		HarvestID:  first.ID,
		PricePerKg: flexFloat(6),
	})
	if err != nil {
		t.Fatalf("UpdateHarvest: %v", err)
	}

	var sibling models.Harvest
	if err := db.First(&sibling, "id = ?", second.ID).Error; err != nil {
		t.Fatalf("reload sibling: %v", err)
	}
	if sibling.PricePerKg == nil || *sibling.PricePerKg != 6 {
		t.Errorf("sibling PricePerKg = %v, want propagated 6", sibling.PricePerKg)
	}
	if sibling.TotalYield != 300 {
		t.Errorf("sibling TotalYield = %v, must be untouched", sibling.TotalYield)
	}
}

func TestUpdateHarvestRejectsReopen(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	harvest, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2023),
		StartDate:  flexDate(t, "2023-11-01"),
		TotalYield: flexFloat(500),
		Completed:  true,
	})
	if err != nil {
		t.Fatalf("CreateHarvest: %v", err)
	}

	reopen := false
	_, err = services.UpdateHarvest(db, user.ID, services.UpdateHarvestInput{
		HarvestID: harvest.ID,
		Completed: &reopen,
	})
	customErr, ok := err.(*types.CustomError)
	if !ok || customErr.Type != types.ErrTypeValidation {
		t.Fatalf("expected validation error for reopening a completed row, got %v", err)
	}

	var reloaded models.Harvest
	if err := db.First(&reloaded, "id = ?", harvest.ID).Error; err != nil {
		t.Fatalf("reload harvest: %v", err)
	}
	if !reloaded.Completed {
		t.Error("completed row must stay completed")
	}
}

func TestUpdateHarvestRejectsEndBeforeStart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	harvest, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2024),
		StartDate:  flexDate(t, "2024-11-10"),
		TotalYield: flexFloat(500),
	})
	if err != nil {
		t.Fatalf("CreateHarvest: %v", err)
	}

	_, err = services.UpdateHarvest(db, user.ID, services.UpdateHarvestInput{
		HarvestID: harvest.ID,
		EndDate:   flexDate(t, "2024-10-01"),
	})
	customErr, ok := err.(*types.CustomError)
	if !ok || customErr.Type != types.ErrTypeValidation {
		t.Fatalf("expected validation error for endDate before the persisted startDate, got %v", err)
	}

	var reloaded models.Harvest
	if err := db.First(&reloaded, "id = ?", harvest.ID).Error; err != nil {
		t.Fatalf("reload harvest: %v", err)
	}
	if reloaded.EndDate != nil {
		t.Errorf("EndDate = %v, must stay unset after a rejected update", reloaded.EndDate)
	}
}

func TestUpdateHarvestOwnershipMiss(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db)
	farm := seedFarm(t, db, owner.ID, nil)

	harvest, err := services.CreateHarvest(db, owner.ID, services.CreateHarvestInput{
		FarmID:     farm.ID,
		Year:       types.FlexInt(2024),
		StartDate:  flexDate(t, "2024-11-01"),
		TotalYield: flexFloat(500),
	})
	if err != nil {
		t.Fatalf("CreateHarvest: %v", err)
	}

	intruder := models.User{AuthzID: "authz-intruder", Email: "other@example.com"}
	if err := db.Create(&intruder).Error; err != nil {
		t.Fatalf("create intruder: %v", err)
	}

	notes := "stolen"
	_, err = services.UpdateHarvest(db, intruder.ID, services.UpdateHarvestInput{
		HarvestID: harvest.ID,
		Notes:     &notes,
	})
	customErr, ok := err.(*types.CustomError)
	if !ok || customErr.Type != types.ErrTypeNotFound {
		t.Fatalf("expected not-found for foreign harvest, got %v", err)
	}
}

func TestCompleteHarvestBackfillsDates(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	first, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:         farm.ID,
		Year:           types.FlexInt(2024),
		StartDate:      flexDate(t, "2024-11-01"),
		CollectionDate: flexDate(t, "2024-11-01"),
		TotalYield:     flexFloat(500),
	})
	if err != nil {
		t.Fatalf("CreateHarvest: %v", err)
	}
	if _, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
		FarmID:         farm.ID,
		Year:           types.FlexInt(2024),
		CollectionDate: flexDate(t, "2024-11-07"),
		TotalYield:     flexFloat(300),
	}); err != nil {
		t.Fatalf("daily CreateHarvest: %v", err)
	}

	now := time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC)
	completed, err := services.CompleteHarvest(db, user.ID, first.ID, now)
	if err != nil {
		t.Fatalf("CompleteHarvest: %v", err)
	}

	if !completed.Completed {
		t.Error("row must be completed")
	}
	if completed.StartDate == nil || completed.StartDate.Day() != 1 {
		t.Errorf("StartDate = %v, want the row's own start kept", completed.StartDate)
	}
	if completed.EndDate == nil || completed.EndDate.Day() != 7 {
		t.Errorf("EndDate = %v, want season's latest collection day 7", completed.EndDate)
	}
}

func TestCompleteHarvestYear(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	for _, day := range []string{"2024-11-01", "2024-11-03", "2024-11-05"} {
		input := services.CreateHarvestInput{
			FarmID:         farm.ID,
			Year:           types.FlexInt(2024),
			TotalYield:     flexFloat(100),
			CollectionDate: flexDate(t, day),
		}
		if day == "2024-11-01" {
			input.StartDate = flexDate(t, day)
		}
		if _, err := services.CreateHarvest(db, user.ID, input); err != nil {
			t.Fatalf("CreateHarvest %s: %v", day, err)
		}
	}

	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	count, err := services.CompleteHarvestYear(db, user.ID, farm.ID, 2024, now)
	if err != nil {
		t.Fatalf("CompleteHarvestYear: %v", err)
	}
	if count != 3 {
		t.Errorf("completed %d rows, want 3", count)
	}

	var open int64
	db.Model(&models.Harvest{}).Where("farm_id = ? AND completed = ?", farm.ID, false).Count(&open)
	if open != 0 {
		t.Errorf("%d rows still open", open)
	}

	// Nothing left to complete
	if _, err := services.CompleteHarvestYear(db, user.ID, farm.ID, 2024, now); err == nil {
		t.Error("expected not-found when no open rows remain")
	}
}

func TestDeleteHarvestYear(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	for _, day := range []string{"2024-11-01", "2024-11-03"} {
		if _, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
			FarmID:         farm.ID,
			Year:           types.FlexInt(2024),
			TotalYield:     flexFloat(100),
			StartDate:      flexDate(t, "2024-11-01"),
			CollectionDate: flexDate(t, day),
		}); err != nil {
			t.Fatalf("CreateHarvest %s: %v", day, err)
		}
	}

	deleted, err := services.DeleteHarvestYear(db, user.ID, farm.ID, 2024)
	if err != nil {
		t.Fatalf("DeleteHarvestYear: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted %d rows, want 2", deleted)
	}

	if _, err := services.DeleteHarvestYear(db, user.ID, farm.ID, 2024); err == nil {
		t.Error("expected not-found for an empty season")
	}
}

func TestListHarvestsFilters(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	farm := seedFarm(t, db, user.ID, nil)

	years := []struct {
		year      int
		completed bool
	}{{2023, true}, {2024, false}}
	for _, y := range years {
		if _, err := services.CreateHarvest(db, user.ID, services.CreateHarvestInput{
			FarmID:     farm.ID,
			Year:       types.FlexInt(y.year),
			StartDate:  flexDate(t, "2024-11-01"),
			TotalYield: flexFloat(100),
			Completed:  y.completed,
		}); err != nil {
			t.Fatalf("CreateHarvest %d: %v", y.year, err)
		}
	}

	all, err := services.ListHarvests(db, user.ID, farm.ID, nil, false)
	if err != nil {
		t.Fatalf("ListHarvests: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
	if all[0].Year != 2024 {
		t.Errorf("most recent year first, got %d", all[0].Year)
	}

	year := 2023
	filtered, err := services.ListHarvests(db, user.ID, farm.ID, &year, false)
	if err != nil {
		t.Fatalf("ListHarvests year filter: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Year != 2023 {
		t.Errorf("year filter got %d rows", len(filtered))
	}

	open, err := services.ListHarvests(db, user.ID, farm.ID, nil, true)
	if err != nil {
		t.Fatalf("ListHarvests incomplete filter: %v", err)
	}
	if len(open) != 1 || open[0].Year != 2024 {
		t.Errorf("incomplete filter got %d rows", len(open))
	}
}
