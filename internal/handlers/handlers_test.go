package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/database"
	"github.com/plagiagia/OliveAIFarmer/internal/handlers"
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Farm{},
		&models.Section{},
		&models.OliveTree{},
		&models.Activity{},
		&models.TreeActivity{},
		&models.Harvest{},
		&models.OliveVariety{},
		&models.MonthlyTask{},
		&models.RiskFactor{},
		&models.CareGuideline{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupApp wires a fiber app with a stubbed session identity in place of
// the Authorizer middleware.
func setupApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &services.SessionUser{
			ID:        "authz-test",
			Email:     "farmer@example.com",
			GivenName: "Γιώργος",
		})
		return c.Next()
	})

	farmHandler := &handlers.FarmHandler{DB: db}
	harvestHandler := &handlers.HarvestHandler{DB: db}
	activityHandler := &handlers.ActivityHandler{DB: db}
	varietyHandler := &handlers.VarietyHandler{DB: db}

	api := app.Group("/api")
	api.Get("/farms", farmHandler.ListFarms)
	api.Post("/farms", farmHandler.CreateFarm)
	api.Get("/farms/:farmId/stats", farmHandler.GetFarmStats)
	api.Get("/farms/:farmId", farmHandler.GetFarm)
	api.Put("/farms/:farmId", farmHandler.UpdateFarm)
	api.Delete("/farms/:farmId", farmHandler.DeleteFarm)
	api.Get("/harvests", harvestHandler.ListHarvests)
	api.Get("/harvests/grouped", harvestHandler.GroupedHarvests)
	api.Post("/harvests", harvestHandler.CreateHarvest)
	api.Post("/harvests/complete-year", harvestHandler.CompleteHarvestYear)
	api.Post("/harvests/:harvestId/complete", harvestHandler.CompleteHarvest)
	api.Put("/harvests/:harvestId", harvestHandler.UpdateHarvest)
	api.Delete("/harvests/:harvestId", harvestHandler.DeleteHarvest)
	api.Delete("/harvests", harvestHandler.DeleteHarvestYear)
	api.Get("/activities", activityHandler.ListActivities)
	api.Post("/activities", activityHandler.CreateActivity)
	api.Get("/varieties", varietyHandler.ListVarieties)
	api.Get("/varieties/:variety/recommendations", varietyHandler.GetRecommendations)
	api.Get("/varieties/:variety", varietyHandler.GetVariety)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func doJSONList(t *testing.T, app *fiber.App, path string) (int, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	var result []map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestCreateAndGetFarm(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	status, farm := doJSON(t, app, "POST", "/api/farms", fiber.Map{
		"name":      "Ελαιώνας Καλαμάτας",
		"location":  "Καλαμάτα",
		"totalArea": "15",
		"treeCount": 4,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("POST /api/farms status = %d, body %v", status, farm)
	}

	farmID, _ := farm["ID"].(string)
	if farmID == "" {
		t.Fatalf("farm id missing in response: %v", farm)
	}

	status, view := doJSON(t, app, "GET", "/api/farms/"+farmID, nil)
	if status != fiber.StatusOK {
		t.Fatalf("GET /api/farms/:id status = %d", status)
	}
	if count, _ := view["treeCount"].(float64); count != 4 {
		t.Errorf("treeCount = %v, want 4", view["treeCount"])
	}
}

func TestHarvestSeasonFlow(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	_, farm := doJSON(t, app, "POST", "/api/farms", fiber.Map{
		"name":     "Ελαιώνας",
		"location": "Λακωνία",
	})
	farmID := farm["ID"].(string)

	// Open the season
	status, _ := doJSON(t, app, "POST", "/api/harvests", fiber.Map{
		"farmId":     farmID,
		"year":       2024,
		"startDate":  "2024-11-01",
		"totalYield": 500,
		"pricePerKg": 4.5,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("first harvest status = %d", status)
	}

	// Daily collection joins it
	status, _ = doJSON(t, app, "POST", "/api/harvests", fiber.Map{
		"farmId":         farmID,
		"year":           2024,
		"collectionDate": "2024-11-03",
		"totalYield":     "300",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("daily harvest status = %d", status)
	}

	// Grouped view folds both rows into one season
	status, seasons := doJSONList(t, app, "/api/harvests/grouped?farmId="+farmID)
	if status != fiber.StatusOK {
		t.Fatalf("grouped status = %d", status)
	}
	if len(seasons) != 1 {
		t.Fatalf("len(seasons) = %d, want 1", len(seasons))
	}
	if yield, _ := seasons[0]["totalYield"].(float64); yield != 800 {
		t.Errorf("season totalYield = %v, want 800", seasons[0]["totalYield"])
	}
	if completed, _ := seasons[0]["isCompleted"].(bool); completed {
		t.Error("season must be open")
	}

	// Close the year
	status, body := doJSON(t, app, "POST", "/api/harvests/complete-year", fiber.Map{
		"farmId": farmID,
		"year":   2024,
	})
	if status != fiber.StatusOK {
		t.Fatalf("complete-year status = %d, body %v", status, body)
	}
	if rows, _ := body["affectedRows"].(float64); rows != 2 {
		t.Errorf("affectedRows = %v, want 2", body["affectedRows"])
	}

	// Farm stats fold the completed season
	status, stats := doJSON(t, app, "GET", "/api/farms/"+farmID+"/stats", nil)
	if status != fiber.StatusOK {
		t.Fatalf("farm stats status = %d", status)
	}
	if yield, _ := stats["totalYield"].(float64); yield != 800 {
		t.Errorf("stats totalYield = %v, want 800", stats["totalYield"])
	}
	if count, _ := stats["seasonCount"].(float64); count != 1 {
		t.Errorf("stats seasonCount = %v, want 1", stats["seasonCount"])
	}

	// And delete it
	status, body = doJSON(t, app, "DELETE", "/api/harvests?farmId="+farmID+"&year=2024", nil)
	if status != fiber.StatusOK {
		t.Fatalf("season delete status = %d, body %v", status, body)
	}
	if rows, _ := body["affectedRows"].(float64); rows != 2 {
		t.Errorf("deleted affectedRows = %v, want 2", body["affectedRows"])
	}
}

func TestCreateHarvestErrorEnvelope(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	status, body := doJSON(t, app, "POST", "/api/harvests", fiber.Map{
		"year":       2024,
		"startDate":  "2024-11-01",
		"totalYield": 500,
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if ok, _ := body["ok"].(bool); ok {
		t.Error("error envelope must carry ok=false")
	}
	if body["type"] != "validation" {
		t.Errorf("type = %v, want validation", body["type"])
	}
	if body["url"] == "" || body["timestamp"] == "" {
		t.Error("error envelope must carry url and timestamp")
	}
}

func TestVarietyRecommendationsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	if err := database.SeedVarieties(db); err != nil {
		t.Fatalf("SeedVarieties: %v", err)
	}
	app := setupApp(db)

	status, varieties := doJSONList(t, app, "/api/varieties")
	if status != fiber.StatusOK || len(varieties) == 0 {
		t.Fatalf("list varieties status = %d, count %d", status, len(varieties))
	}
	varietyID := varieties[0]["ID"].(string)

	status, advice := doJSON(t, app, "GET", "/api/varieties/"+varietyID+"/recommendations?month=10", nil)
	if status != fiber.StatusOK {
		t.Fatalf("recommendations status = %d, body %v", status, advice)
	}
	if advice["monthName"] != "Οκτώβριος" {
		t.Errorf("monthName = %v", advice["monthName"])
	}
	if tasks, _ := advice["tasks"].([]interface{}); len(tasks) == 0 {
		t.Error("October must carry tasks")
	}

	status, _ = doJSON(t, app, "GET", "/api/varieties/Picual", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("unknown variety status = %d, want 404", status)
	}
}
