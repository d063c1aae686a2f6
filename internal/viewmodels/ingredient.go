package viewmodels

import (
	"fmt"

	"github.com/recipekit/recipedb/internal/models"
)

// IngredientVM is the wire shape for an ingredient
type IngredientVM struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// RecipeSummaryVM is the wire shape for a recipe referenced from an
// ingredient's "used by" listing. It carries no ingredient links.
type RecipeSummaryVM struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PrepTime    int    `json:"prepTime"`
	CookTime    int    `json:"cookTime"`
}

// NewIngredientVM creates a view model from a stored ingredient
func NewIngredientVM(ingredient *models.Ingredient) IngredientVM {
	return IngredientVM{
		ID:       ingredient.ID,
		Name:     ingredient.Name,
		Category: ingredient.Category,
	}
}

// NewRecipeSummaryVMs projects the recipes using an ingredient from its
// eagerly loaded links. Links whose recipe did not load are skipped.
func NewRecipeSummaryVMs(ingredient *models.Ingredient) []RecipeSummaryVM {
	summaries := make([]RecipeSummaryVM, 0, len(ingredient.Recipes))
	for _, link := range ingredient.Recipes {
		if link.Recipe == nil {
			continue
		}
		summaries = append(summaries, RecipeSummaryVM{
			ID:          link.Recipe.ID,
			Name:        link.Recipe.Name,
			Description: link.Recipe.Description,
			PrepTime:    link.Recipe.PrepTime,
			CookTime:    link.Recipe.CookTime,
		})
	}
	return summaries
}

// Validate checks the view model against its declared constraints. It runs
// before translation; translation assumes valid input.
func (vm *IngredientVM) Validate() error {
	if vm.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(vm.Name) > 64 {
		return fmt.Errorf("name must be at most 64 characters")
	}
	if !models.ValidCategory(vm.Category) {
		return fmt.Errorf("unknown category %q", vm.Category)
	}
	return nil
}

// ToEntity creates an ingredient entity from the client-settable fields of
// the view model. The server-assigned id is never copied.
func (vm *IngredientVM) ToEntity() models.Ingredient {
	return models.Ingredient{
		Name:     vm.Name,
		Category: vm.Category,
	}
}
