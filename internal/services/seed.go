package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/recipekit/recipedb/data"
	"github.com/recipekit/recipedb/internal/models"
	"gorm.io/gorm"
)

// seedFixtures mirrors the embedded fixture file layout
type seedFixtures struct {
	Ingredients []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"ingredients"`
	Recipes []struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		Instructions string `json:"instructions"`
		PrepTime     int    `json:"prepTime"`
		CookTime     int    `json:"cookTime"`
		Ingredients  []struct {
			Ingredient string `json:"ingredient"`
			Amount     string `json:"amount"`
			Calories   *int   `json:"calories"`
		} `json:"ingredients"`
	} `json:"recipes"`
}

// Seed resets the store and populates it with the embedded example data.
// The reset drops and recreates the three tables, so all existing data is
// lost. Writes go through the same service operations the API uses, including
// the two-phase link create.
func Seed(db *gorm.DB) error {
	var fixtures seedFixtures
	if err := json.Unmarshal([]byte(data.SeedFixtures), &fixtures); err != nil {
		return fmt.Errorf("failed to decode seed fixtures: %w", err)
	}

	// Drop and recreate. Links go first so the parent tables drop cleanly on
	// engines that check constraints at drop time.
	migrator := db.Migrator()
	for _, table := range []interface{}{
		&models.RecipeIngredient{}, &models.Recipe{}, &models.Ingredient{},
	} {
		if migrator.HasTable(table) {
			if err := migrator.DropTable(table); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(
		&models.Ingredient{}, &models.Recipe{}, &models.RecipeIngredient{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	ingredientIDs := make(map[string]uint, len(fixtures.Ingredients))
	for _, fixture := range fixtures.Ingredients {
		ingredient := models.Ingredient{
			Name:     fixture.Name,
			Category: fixture.Category,
		}
		if err := CreateIngredient(db, &ingredient); err != nil {
			return err
		}
		ingredientIDs[fixture.Name] = ingredient.ID
	}

	linkCount := 0
	for _, fixture := range fixtures.Recipes {
		recipe := models.Recipe{
			Name:         fixture.Name,
			Description:  fixture.Description,
			Instructions: fixture.Instructions,
			PrepTime:     fixture.PrepTime,
			CookTime:     fixture.CookTime,
		}
		if err := CreateRecipe(db, &recipe); err != nil {
			return err
		}

		for _, item := range fixture.Ingredients {
			ingredientID, ok := ingredientIDs[item.Ingredient]
			if !ok {
				return fmt.Errorf("seed fixture references unknown ingredient %q", item.Ingredient)
			}

			link, err := CreateRecipeIngredient(db, recipe.ID, ingredientID)
			if err != nil {
				return err
			}
			if link == nil {
				return fmt.Errorf("seed fixture could not link %q to %q", fixture.Name, item.Ingredient)
			}

			if _, err := UpdateRecipeIngredient(db, recipe.ID, ingredientID, &models.RecipeIngredient{
				Amount:   item.Amount,
				Calories: item.Calories,
			}); err != nil {
				return err
			}
			linkCount++
		}
	}

	log.Printf("Seeded %d ingredients, %d recipes, %d links",
		len(fixtures.Ingredients), len(fixtures.Recipes), linkCount)

	return nil
}
