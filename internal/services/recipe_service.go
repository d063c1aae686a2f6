package services

import (
	"errors"
	"fmt"

	"github.com/recipekit/recipedb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateRecipe persists a new recipe and fills in its assigned id
func CreateRecipe(db *gorm.DB, recipe *models.Recipe) error {
	if err := db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetRecipes retrieves all recipes with their ingredient links and, for each
// link, the linked ingredient. The two-level eager load lets a recipe list
// render ingredient names without N further queries.
func GetRecipes(db *gorm.DB) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := db.Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a single recipe with the same two-level eager load as
// GetRecipes.
func GetRecipe(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read recipe %d: %w", id, err)
	}

	return &recipe, nil
}

// UpdateRecipe overwrites the scalar fields of an existing recipe and replaces
// its ingredient link collection wholesale with whatever collection is passed.
// Callers must pass the complete desired set of links, or the original
// unmodified set to leave associations untouched.
func UpdateRecipe(db *gorm.DB, id uint, updated *models.Recipe) (*models.Recipe, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read recipe %d: %w", id, err)
		}

		recipe.Name = updated.Name
		recipe.Description = updated.Description
		recipe.Instructions = updated.Instructions
		recipe.PrepTime = updated.PrepTime
		recipe.CookTime = updated.CookTime

		if err := tx.Model(&recipe).
			Select("name", "description", "instructions", "prep_time", "cook_time").
			Updates(&recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe %d: %w", id, err)
		}

		// Full replace of the link collection: drop everything the recipe
		// owns, then re-insert the passed set. A link id is only kept when
		// it belonged to this recipe, so passing the set from a prior read
		// leaves the associations identical while a foreign id cannot
		// collide with another recipe's links.
		var owned []models.RecipeIngredient
		if err := tx.Where("recipe_id = ?", id).
			Find(&owned).Error; err != nil {
			return fmt.Errorf("failed to read recipe %d links: %w", id, err)
		}
		ownedIDs := make(map[uint]bool, len(owned))
		for _, link := range owned {
			ownedIDs[link.ID] = true
		}

		if err := tx.Where("recipe_id = ?", id).
			Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe %d links: %w", id, err)
		}

		for i := range updated.Ingredients {
			link := updated.Ingredients[i]
			if !ownedIDs[link.ID] {
				link.ID = 0
			}
			link.RecipeID = id
			link.Recipe = nil
			link.Ingredient = nil
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to replace recipe %d links: %w", id, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return GetRecipe(db, id)
}

// DeleteRecipe removes a recipe by id. Returns false without error when no
// such record exists. The store cascade removes all links the recipe owns.
func DeleteRecipe(db *gorm.DB, id uint) (bool, error) {
	var recipe models.Recipe
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		First(&recipe, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read recipe %d: %w", id, err)
	}

	if err := db.Delete(&recipe).Error; err != nil {
		return false, fmt.Errorf("failed to delete recipe %d: %w", id, err)
	}

	return true, nil
}

// CreateRecipeIngredient links a recipe with an ingredient. Both parents must
// already exist; when either is missing, or a link for the pair already
// exists, it returns nil without error and no link is created. The link is
// created bare (empty amount, no calories); attributes are filled in by a
// follow-up UpdateRecipeIngredient.
func CreateRecipeIngredient(db *gorm.DB, recipeID, ingredientID uint) (*models.RecipeIngredient, error) {
	var link *models.RecipeIngredient

	err := db.Transaction(func(tx *gorm.DB) error {
		silent := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})

		var recipe models.Recipe
		if err := silent.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to read recipe %d: %w", recipeID, err)
		}

		var ingredient models.Ingredient
		if err := silent.First(&ingredient, ingredientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to read ingredient %d: %w", ingredientID, err)
		}

		// The pair is unique; a second link would be unreachable through the
		// pair-addressed read/update/delete operations.
		var count int64
		if err := tx.Model(&models.RecipeIngredient{}).
			Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing link: %w", err)
		}
		if count > 0 {
			return nil
		}

		created := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredientID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create link: %w", err)
		}

		link = &created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return link, nil
}

// GetRecipeIngredient retrieves the link between a recipe and an ingredient,
// with the linked ingredient eagerly loaded for display denormalization.
func GetRecipeIngredient(db *gorm.DB, recipeID, ingredientID uint) (*models.RecipeIngredient, error) {
	var link models.RecipeIngredient
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Preload("Ingredient").
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		First(&link).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read link %d/%d: %w", recipeID, ingredientID, err)
	}

	return &link, nil
}

// UpdateRecipeIngredient overwrites the attributes of an existing link
// (amount and calories). Which recipe and ingredient the link points to never
// changes after creation.
func UpdateRecipeIngredient(db *gorm.DB, recipeID, ingredientID uint, updated *models.RecipeIngredient) (*models.RecipeIngredient, error) {
	link, err := GetRecipeIngredient(db, recipeID, ingredientID)
	if err != nil {
		return nil, err
	}

	link.Amount = updated.Amount
	link.Calories = updated.Calories

	// A map update writes NULL when calories is cleared
	err = db.Model(link).Updates(map[string]interface{}{
		"amount":   link.Amount,
		"calories": link.Calories,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update link %d/%d: %w", recipeID, ingredientID, err)
	}

	return link, nil
}

// DeleteRecipeIngredient removes the link between a recipe and an ingredient.
// Returns false without error when no link exists for the pair.
func DeleteRecipeIngredient(db *gorm.DB, recipeID, ingredientID uint) (bool, error) {
	result := db.Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		Delete(&models.RecipeIngredient{})

	if result.Error != nil {
		return false, fmt.Errorf("failed to delete link %d/%d: %w", recipeID, ingredientID, result.Error)
	}

	return result.RowsAffected > 0, nil
}
