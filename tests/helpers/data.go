package helpers

import (
	"testing"

	"github.com/recipekit/recipedb/internal/models"
	"gorm.io/gorm"
)

// CreateTestIngredient creates an ingredient directly in the store
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, category string) *models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{
		Name:     name,
		Category: category,
	}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("Failed to create ingredient %s: %v", name, err)
	}
	return &ingredient
}

// CreateTestRecipe creates a recipe directly in the store
func CreateTestRecipe(t *testing.T, db *gorm.DB, name string) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		Name:         name,
		Description:  "A test recipe",
		Instructions: "Combine everything and cook.",
		PrepTime:     10,
		CookTime:     20,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("Failed to create recipe %s: %v", name, err)
	}
	return &recipe
}

// LinkTestIngredient links a recipe and an ingredient directly in the store
func LinkTestIngredient(t *testing.T, db *gorm.DB, recipeID, ingredientID uint, amount string, calories *int) *models.RecipeIngredient {
	t.Helper()
	link := models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Amount:       amount,
		Calories:     calories,
	}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("Failed to link recipe %d and ingredient %d: %v", recipeID, ingredientID, err)
	}
	return &link
}

// CountLinks counts the stored links for a recipe id, 0 for all recipes
func CountLinks(t *testing.T, db *gorm.DB, recipeID uint) int64 {
	t.Helper()
	var count int64
	q := db.Model(&models.RecipeIngredient{})
	if recipeID != 0 {
		q = q.Where("recipe_id = ?", recipeID)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("Failed to count links: %v", err)
	}
	return count
}

// IntPtr returns a pointer to the given int, for optional calories values
func IntPtr(v int) *int {
	return &v
}
