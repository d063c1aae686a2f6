package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/recipekit/recipedb/internal/handlers"
	"github.com/recipekit/recipedb/internal/models"
	"github.com/recipekit/recipedb/internal/viewmodels"
	"github.com/recipekit/recipedb/tests/helpers"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing. Foreign key
// enforcement is off by default in SQLite and the delete cascades depend on it.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	err = db.AutoMigrate(
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestApp wires every route the server exposes onto a bare Fiber app
func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	ingredientHandler := &handlers.IngredientHandler{DB: db}
	recipeHandler := &handlers.RecipeHandler{DB: db}

	api := app.Group("/api")

	api.Get("/ingredient", ingredientHandler.GetIngredients)
	api.Post("/ingredient", ingredientHandler.CreateIngredient)
	api.Get("/ingredient/:id", ingredientHandler.GetIngredient)
	api.Put("/ingredient/:id", ingredientHandler.UpdateIngredient)
	api.Delete("/ingredient/:id", ingredientHandler.DeleteIngredient)
	api.Get("/ingredient/:id/recipe", ingredientHandler.GetIngredientRecipes)

	api.Get("/recipe", recipeHandler.GetRecipes)
	api.Post("/recipe", recipeHandler.CreateRecipe)
	api.Get("/recipe/:id", recipeHandler.GetRecipe)
	api.Put("/recipe/:id", recipeHandler.UpdateRecipe)
	api.Delete("/recipe/:id", recipeHandler.DeleteRecipe)
	api.Get("/recipe/:id/ingredient", recipeHandler.GetRecipeIngredients)
	api.Post("/recipe/:id/ingredient", recipeHandler.CreateRecipeIngredient)
	api.Get("/recipe/:id/ingredient/:ingredientId", recipeHandler.GetRecipeIngredient)
	api.Put("/recipe/:id/ingredient/:ingredientId", recipeHandler.UpdateRecipeIngredient)
	api.Delete("/recipe/:id/ingredient/:ingredientId", recipeHandler.DeleteRecipeIngredient)

	return app
}

// jsonRequest builds a request with an optional JSON body
func jsonRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, url, nil)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestCreateAndGetIngredient tests POST then GET round trip
func TestCreateAndGetIngredient(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	req := jsonRequest(t, "POST", "/api/ingredient", map[string]interface{}{
		"name":     "Flour",
		"category": "grain",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	location := resp.Header.Get("Location")
	if location == "" {
		t.Fatal("Expected Location header on 201")
	}

	var created viewmodels.IngredientVM
	helpers.ParseJSON(t, resp, &created)
	if created.ID == 0 {
		t.Error("Expected server-assigned id in response")
	}

	// Read back through the Location header
	req = jsonRequest(t, "GET", location, nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var fetched viewmodels.IngredientVM
	helpers.ParseJSON(t, resp, &fetched)
	if fetched.Name != "Flour" || fetched.Category != "grain" {
		t.Errorf("Round trip lost fields: %+v", fetched)
	}
}

// TestCreateIngredientValidation tests rejected bodies
func TestCreateIngredientValidation(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"category": "grain"}},
		{"unknown category", map[string]interface{}{"name": "Flour", "category": "mineral"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := jsonRequest(t, "POST", "/api/ingredient", tc.body)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to execute request: %v", err)
			}
			helpers.AssertStatus(t, resp, 400)

			var result map[string]interface{}
			helpers.ParseJSON(t, resp, &result)
			if result["ok"] != false {
				t.Error("Expected ok=false in error response")
			}
		})
	}
}

// TestGetIngredientNotFound tests 404 for an absent id
func TestGetIngredientNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	req := jsonRequest(t, "GET", "/api/ingredient/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

// TestUpdateIngredient tests that PUT overwrites every mutable field
func TestUpdateIngredient(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	ingredient := helpers.CreateTestIngredient(t, db, "Flour", "grain")

	req := jsonRequest(t, "PUT", "/api/ingredient/1", map[string]interface{}{
		"name": "Whole Wheat Flour",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 204)
	helpers.AssertNoContent(t, resp)

	var updated models.Ingredient
	if err := db.First(&updated, ingredient.ID).Error; err != nil {
		t.Fatalf("Failed to read updated ingredient: %v", err)
	}
	if updated.Name != "Whole Wheat Flour" {
		t.Errorf("Expected name replaced, got %s", updated.Name)
	}
	// The category was not in the body, a replace clears it
	if updated.Category != "" {
		t.Errorf("Expected category cleared by replace, got %s", updated.Category)
	}
}

// TestUpdateIngredientNotFound tests 404 on PUT for an absent id
func TestUpdateIngredientNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	req := jsonRequest(t, "PUT", "/api/ingredient/999", map[string]interface{}{
		"name": "Ghost",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

// TestDeleteIngredientAbsent tests 404 on DELETE for an absent id
func TestDeleteIngredientAbsent(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	req := jsonRequest(t, "DELETE", "/api/ingredient/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

// TestDeleteIngredientCascade tests that deleting an ingredient removes its
// links but leaves the recipes that used it intact
func TestDeleteIngredientCascade(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	ingredient := helpers.CreateTestIngredient(t, db, "Butter", "fat")
	recipe := helpers.CreateTestRecipe(t, db, "Croissants")
	helpers.LinkTestIngredient(t, db, recipe.ID, ingredient.ID, "200 g", helpers.IntPtr(1434))

	req := jsonRequest(t, "DELETE", "/api/ingredient/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 204)

	if count := helpers.CountLinks(t, db, recipe.ID); count != 0 {
		t.Errorf("Expected links removed by cascade, found %d", count)
	}

	var survivor models.Recipe
	if err := db.First(&survivor, recipe.ID).Error; err != nil {
		t.Errorf("Expected recipe to survive ingredient delete: %v", err)
	}
}

// TestGetIngredientRecipes tests the reverse listing of recipes by ingredient
func TestGetIngredientRecipes(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	ingredient := helpers.CreateTestIngredient(t, db, "Egg", "egg")
	pancakes := helpers.CreateTestRecipe(t, db, "Pancakes")
	quiche := helpers.CreateTestRecipe(t, db, "Quiche")
	helpers.LinkTestIngredient(t, db, pancakes.ID, ingredient.ID, "2", nil)
	helpers.LinkTestIngredient(t, db, quiche.ID, ingredient.ID, "4", nil)

	req := jsonRequest(t, "GET", "/api/ingredient/1/recipe", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var summaries []viewmodels.RecipeSummaryVM
	helpers.ParseJSON(t, resp, &summaries)
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(summaries))
	}
	names := map[string]bool{summaries[0].Name: true, summaries[1].Name: true}
	if !names["Pancakes"] || !names["Quiche"] {
		t.Errorf("Unexpected recipe names: %v", names)
	}
}

// TestListIngredientsEmpty tests that an empty store lists as an empty array
func TestListIngredientsEmpty(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	req := jsonRequest(t, "GET", "/api/ingredient", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result []viewmodels.IngredientVM
	helpers.ParseJSON(t, resp, &result)
	if len(result) != 0 {
		t.Errorf("Expected empty list, got %d items", len(result))
	}
}
