package handlers_test

import (
	"testing"

	"github.com/recipekit/recipedb/internal/models"
	"github.com/recipekit/recipedb/internal/services"
	"github.com/recipekit/recipedb/tests/helpers"
)

// TestSeed tests that seeding populates the store from the embedded fixtures
func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	if err := services.Seed(db); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	var ingredientCount, recipeCount int64
	db.Model(&models.Ingredient{}).Count(&ingredientCount)
	db.Model(&models.Recipe{}).Count(&recipeCount)

	if ingredientCount == 0 {
		t.Error("Expected seeded ingredients")
	}
	if recipeCount == 0 {
		t.Error("Expected seeded recipes")
	}
	if count := helpers.CountLinks(t, db, 0); count == 0 {
		t.Error("Expected seeded links")
	}

	// Every recipe resolves with its links and denormalized ingredients
	recipes, err := services.GetRecipes(db)
	if err != nil {
		t.Fatalf("Failed to read seeded recipes: %v", err)
	}
	for _, recipe := range recipes {
		if len(recipe.Ingredients) == 0 {
			t.Errorf("Recipe %s has no links", recipe.Name)
		}
		for _, link := range recipe.Ingredients {
			if link.Ingredient == nil {
				t.Errorf("Recipe %s has a link without its ingredient", recipe.Name)
				continue
			}
			if link.Amount == "" {
				t.Errorf("Link %s/%s has no amount", recipe.Name, link.Ingredient.Name)
			}
		}
	}
}

// TestSeedResets tests that seeding twice leaves one copy of the data
func TestSeedResets(t *testing.T) {
	db := setupTestDB(t)

	if err := services.Seed(db); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	var firstCount int64
	db.Model(&models.Ingredient{}).Count(&firstCount)

	if err := services.Seed(db); err != nil {
		t.Fatalf("Failed to seed a second time: %v", err)
	}

	var secondCount int64
	db.Model(&models.Ingredient{}).Count(&secondCount)

	if firstCount != secondCount {
		t.Errorf("Expected reset before reseed, counts %d then %d", firstCount, secondCount)
	}
}
