package services

import (
	"errors"
	"fmt"

	"github.com/recipekit/recipedb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateIngredient persists a new ingredient and fills in its assigned id.
// Validation is the caller's responsibility; a uniqueness violation on the
// name surfaces as a store error.
func CreateIngredient(db *gorm.DB, ingredient *models.Ingredient) error {
	if err := db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// GetIngredients retrieves all ingredients without their recipe links
func GetIngredients(db *gorm.DB) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := db.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}
	return ingredients, nil
}

// GetIngredient retrieves a single ingredient with its recipe links and, for
// each link, the recipe using it. The two-level eager load lets callers list
// "recipes using this ingredient" without another round trip.
func GetIngredient(db *gorm.DB, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Preload("Recipes").
		Preload("Recipes.Recipe").
		First(&ingredient, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read ingredient %d: %w", id, err)
	}

	return &ingredient, nil
}

// UpdateIngredient overwrites the mutable fields of an existing ingredient
// (name and category) and returns the updated record.
func UpdateIngredient(db *gorm.DB, id uint, updated *models.Ingredient) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		First(&ingredient, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read ingredient %d: %w", id, err)
	}

	ingredient.Name = updated.Name
	ingredient.Category = updated.Category

	// Select forces both columns to write even when category is cleared
	if err := db.Model(&ingredient).Select("name", "category").Updates(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to update ingredient %d: %w", id, err)
	}

	return &ingredient, nil
}

// DeleteIngredient removes an ingredient by id. Returns false without error
// when no such record exists. The store cascade removes all recipe links
// referencing the ingredient.
func DeleteIngredient(db *gorm.DB, id uint) (bool, error) {
	var ingredient models.Ingredient
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		First(&ingredient, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read ingredient %d: %w", id, err)
	}

	if err := db.Delete(&ingredient).Error; err != nil {
		return false, fmt.Errorf("failed to delete ingredient %d: %w", id, err)
	}

	return true, nil
}
