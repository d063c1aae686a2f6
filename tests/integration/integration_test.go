package integration_test

import (
	"testing"

	"github.com/recipekit/recipedb/internal/config"
	"github.com/recipekit/recipedb/internal/database"
	"github.com/recipekit/recipedb/internal/models"
	"github.com/recipekit/recipedb/internal/services"
	"github.com/recipekit/recipedb/tests/helpers"
	"gorm.io/gorm"
)

// TestWithMariaDB tests the service layer against a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dc := helpers.StartMariaDB(t)
	defer dc.Terminate(t)

	db, err := database.Connect(dc.Config)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	runServiceTests(t, db, dc.Config)
}

// TestWithPostgreSQL tests the service layer against a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dc := helpers.StartPostgres(t)
	defer dc.Terminate(t)

	db, err := database.Connect(dc.Config)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	runServiceTests(t, db, dc.Config)
}

func runServiceTests(t *testing.T, db *gorm.DB, cfg *config.Config) {
	t.Run("IngredientCRUD", func(t *testing.T) {
		testIngredientCRUD(t, db)
	})
	t.Run("LinkLifecycle", func(t *testing.T) {
		testLinkLifecycle(t, db)
	})
	t.Run("CascadeDeletes", func(t *testing.T) {
		testCascadeDeletes(t, db)
	})
	t.Run("Seed", func(t *testing.T) {
		testSeed(t, db)
	})
	t.Run("HealthCheck", func(t *testing.T) {
		testHealthCheck(t, db, cfg)
	})
}

// testIngredientCRUD creates, reads, updates, and deletes one ingredient
func testIngredientCRUD(t *testing.T, db *gorm.DB) {
	ingredient := models.Ingredient{Name: "Basil", Category: "herb"}
	if err := services.CreateIngredient(db, &ingredient); err != nil {
		t.Fatalf("Failed to create ingredient: %v", err)
	}
	if ingredient.ID == 0 {
		t.Fatal("Expected assigned id after create")
	}

	fetched, err := services.GetIngredient(db, ingredient.ID)
	if err != nil {
		t.Fatalf("Failed to read ingredient: %v", err)
	}
	if fetched.Name != "Basil" || fetched.Category != "herb" {
		t.Errorf("Round trip lost fields: %+v", fetched)
	}

	if _, err := services.UpdateIngredient(db, ingredient.ID, &models.Ingredient{Name: "Thai Basil", Category: "herb"}); err != nil {
		t.Fatalf("Failed to update ingredient: %v", err)
	}
	fetched, err = services.GetIngredient(db, ingredient.ID)
	if err != nil {
		t.Fatalf("Failed to re-read ingredient: %v", err)
	}
	if fetched.Name != "Thai Basil" {
		t.Errorf("Expected updated name, got %s", fetched.Name)
	}

	deleted, err := services.DeleteIngredient(db, ingredient.ID)
	if err != nil {
		t.Fatalf("Failed to delete ingredient: %v", err)
	}
	if !deleted {
		t.Error("Expected delete to report true")
	}

	// Deleting again reports false without error
	deleted, err = services.DeleteIngredient(db, ingredient.ID)
	if err != nil {
		t.Fatalf("Unexpected error deleting absent ingredient: %v", err)
	}
	if deleted {
		t.Error("Expected delete of absent ingredient to report false")
	}
}

// testLinkLifecycle exercises the two-phase link create and the pair-addressed
// operations
func testLinkLifecycle(t *testing.T, db *gorm.DB) {
	flour := helpers.CreateTestIngredient(t, db, "Flour", "grain")
	pie := helpers.CreateTestRecipe(t, db, "Pie")

	// Phase one creates the bare link
	link, err := services.CreateRecipeIngredient(db, pie.ID, flour.ID)
	if err != nil {
		t.Fatalf("Failed to create link: %v", err)
	}
	if link == nil {
		t.Fatal("Expected link for existing parents")
	}
	if link.Amount != "" || link.Calories != nil {
		t.Errorf("Expected bare link, got %+v", link)
	}

	// Phase two fills in the attributes
	calories := 910
	link, err = services.UpdateRecipeIngredient(db, pie.ID, flour.ID, &models.RecipeIngredient{
		Amount:   "2 cups",
		Calories: &calories,
	})
	if err != nil {
		t.Fatalf("Failed to update link: %v", err)
	}
	if link.Amount != "2 cups" || link.Calories == nil || *link.Calories != 910 {
		t.Errorf("Expected attributes applied, got %+v", link)
	}

	// A second create for the same pair yields nil without error
	dup, err := services.CreateRecipeIngredient(db, pie.ID, flour.ID)
	if err != nil {
		t.Fatalf("Unexpected error on duplicate create: %v", err)
	}
	if dup != nil {
		t.Error("Expected nil for duplicate pair")
	}

	// Creates against missing parents yield nil without error
	missing, err := services.CreateRecipeIngredient(db, pie.ID, 99999)
	if err != nil {
		t.Fatalf("Unexpected error linking missing ingredient: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for missing ingredient")
	}

	deleted, err := services.DeleteRecipeIngredient(db, pie.ID, flour.ID)
	if err != nil {
		t.Fatalf("Failed to delete link: %v", err)
	}
	if !deleted {
		t.Error("Expected delete to report true")
	}

	// Cleanup for the next subtest
	if _, err := services.DeleteRecipe(db, pie.ID); err != nil {
		t.Fatalf("Failed to clean up recipe: %v", err)
	}
	if _, err := services.DeleteIngredient(db, flour.ID); err != nil {
		t.Fatalf("Failed to clean up ingredient: %v", err)
	}
}

// testCascadeDeletes verifies the store-level cascades in both directions
func testCascadeDeletes(t *testing.T, db *gorm.DB) {
	flour := helpers.CreateTestIngredient(t, db, "Cascade Flour", "grain")
	sugar := helpers.CreateTestIngredient(t, db, "Cascade Sugar", "seasoning")
	cake := helpers.CreateTestRecipe(t, db, "Cascade Cake")
	bread := helpers.CreateTestRecipe(t, db, "Cascade Bread")
	helpers.LinkTestIngredient(t, db, cake.ID, flour.ID, "300 g", nil)
	helpers.LinkTestIngredient(t, db, cake.ID, sugar.ID, "150 g", nil)
	helpers.LinkTestIngredient(t, db, bread.ID, flour.ID, "500 g", nil)

	// Recipe delete removes only its own links
	if _, err := services.DeleteRecipe(db, cake.ID); err != nil {
		t.Fatalf("Failed to delete recipe: %v", err)
	}
	if count := helpers.CountLinks(t, db, cake.ID); count != 0 {
		t.Errorf("Expected cake links removed, found %d", count)
	}
	if count := helpers.CountLinks(t, db, bread.ID); count != 1 {
		t.Errorf("Expected bread link untouched, found %d", count)
	}

	// Ingredient delete removes its links from the surviving recipe
	if _, err := services.DeleteIngredient(db, flour.ID); err != nil {
		t.Fatalf("Failed to delete ingredient: %v", err)
	}
	if count := helpers.CountLinks(t, db, bread.ID); count != 0 {
		t.Errorf("Expected bread links removed with flour, found %d", count)
	}
	if _, err := services.GetRecipe(db, bread.ID); err != nil {
		t.Errorf("Expected bread to survive ingredient delete: %v", err)
	}

	// Cleanup
	if _, err := services.DeleteRecipe(db, bread.ID); err != nil {
		t.Fatalf("Failed to clean up recipe: %v", err)
	}
	if _, err := services.DeleteIngredient(db, sugar.ID); err != nil {
		t.Fatalf("Failed to clean up ingredient: %v", err)
	}
}

// testSeed resets the store with the embedded fixtures on a real engine
func testSeed(t *testing.T, db *gorm.DB) {
	if err := services.Seed(db); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	recipes, err := services.GetRecipes(db)
	if err != nil {
		t.Fatalf("Failed to read seeded recipes: %v", err)
	}
	if len(recipes) == 0 {
		t.Fatal("Expected seeded recipes")
	}
	for _, recipe := range recipes {
		if len(recipe.Ingredients) == 0 {
			t.Errorf("Recipe %s has no links", recipe.Name)
		}
	}
}

// testHealthCheck verifies the store reports healthy over a live connection
func testHealthCheck(t *testing.T, db *gorm.DB, cfg *config.Config) {
	result := services.HealthCheck(cfg, db)

	if result.Status != "healthy" {
		t.Errorf("Expected healthy, got %s (%s)", result.Status, result.ErrorMessage)
	}
	if result.Database != "ok" {
		t.Errorf("Expected database ok, got %s", result.Database)
	}
}
