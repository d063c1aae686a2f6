package viewmodels

import (
	"fmt"

	"github.com/recipekit/recipedb/internal/models"
	"github.com/recipekit/recipedb/internal/types"
)

// RecipeIngredientVM is the wire shape for a recipe-ingredient link. The
// ingredient's name and category are denormalized onto the link so a UI need
// not join client-side. Inbound, ingredientId tolerates string form values.
type RecipeIngredientVM struct {
	ID             uint             `json:"id"`
	IngredientID   types.FlexUint64 `json:"ingredientId"`
	IngredientName string           `json:"ingredientName,omitempty"`
	Category       string           `json:"category,omitempty"`
	Amount         string           `json:"amount"`
	Calories       *int             `json:"calories"`
}

// NewRecipeIngredientVM creates a view model from a stored link
func NewRecipeIngredientVM(link *models.RecipeIngredient) RecipeIngredientVM {
	vm := RecipeIngredientVM{
		ID:           link.ID,
		IngredientID: types.FlexUint64(link.IngredientID),
		Amount:       link.Amount,
		Calories:     link.Calories,
	}
	if link.Ingredient != nil {
		vm.IngredientName = link.Ingredient.Name
		vm.Category = link.Ingredient.Category
	}
	return vm
}

// Validate checks the link attributes against their declared constraints
func (vm *RecipeIngredientVM) Validate() error {
	if len(vm.Amount) > 64 {
		return fmt.Errorf("amount must be at most 64 characters")
	}
	return nil
}

// ValidateCreate additionally requires the ingredient reference, which only
// the link-create path takes from the body.
func (vm *RecipeIngredientVM) ValidateCreate() error {
	if vm.IngredientID == 0 {
		return fmt.Errorf("ingredientId is required")
	}
	return vm.Validate()
}

// ToEntity creates a link entity from the client-settable attributes. The
// foreign keys are never taken from the body; the association's identity is
// fixed at link creation from the path parameters.
func (vm *RecipeIngredientVM) ToEntity() models.RecipeIngredient {
	return models.RecipeIngredient{
		Amount:   vm.Amount,
		Calories: vm.Calories,
	}
}
