package viewmodels

import (
	"fmt"

	"github.com/recipekit/recipedb/internal/models"
	"github.com/recipekit/recipedb/internal/types"
)

// RecipeVM is the wire shape for a recipe, with its links nested as
// RecipeIngredientVMs. Inbound, the links tolerate a single object in place
// of an array.
type RecipeVM struct {
	ID           uint                               `json:"id"`
	Name         string                             `json:"name"`
	Description  string                             `json:"description,omitempty"`
	Instructions string                             `json:"instructions"`
	PrepTime     int                                `json:"prepTime"`
	CookTime     int                                `json:"cookTime"`
	Ingredients  types.FlexList[RecipeIngredientVM] `json:"ingredients"`
}

// NewRecipeVM creates a view model from a stored recipe, mapping its eagerly
// loaded links
func NewRecipeVM(recipe *models.Recipe) RecipeVM {
	vm := RecipeVM{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Description:  recipe.Description,
		Instructions: recipe.Instructions,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Ingredients:  make(types.FlexList[RecipeIngredientVM], 0, len(recipe.Ingredients)),
	}
	for i := range recipe.Ingredients {
		vm.Ingredients = append(vm.Ingredients, NewRecipeIngredientVM(&recipe.Ingredients[i]))
	}
	return vm
}

// Validate checks the view model against its declared constraints
func (vm *RecipeVM) Validate() error {
	if vm.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(vm.Name) > 64 {
		return fmt.Errorf("name must be at most 64 characters")
	}
	if len(vm.Description) > 2048 {
		return fmt.Errorf("description must be at most 2048 characters")
	}
	if vm.Instructions == "" {
		return fmt.Errorf("instructions are required")
	}
	if len(vm.Instructions) > 8192 {
		return fmt.Errorf("instructions must be at most 8192 characters")
	}
	if vm.PrepTime < 0 {
		return fmt.Errorf("prepTime must not be negative")
	}
	if vm.CookTime < 0 {
		return fmt.Errorf("cookTime must not be negative")
	}
	for i := range vm.Ingredients {
		if err := vm.Ingredients[i].ValidateCreate(); err != nil {
			return err
		}
	}
	return nil
}

// ToEntity creates a recipe entity from the client-settable scalar fields.
// The server-assigned id is never copied and the link collection is handled
// separately (see LinkEntities).
func (vm *RecipeVM) ToEntity() models.Recipe {
	return models.Recipe{
		Name:         vm.Name,
		Description:  vm.Description,
		Instructions: vm.Instructions,
		PrepTime:     vm.PrepTime,
		CookTime:     vm.CookTime,
	}
}

// LinkEntities converts the nested link view models into link entities for
// the wholesale-replace update path. Link ids carried by the client are
// preserved so that passing back an unmodified read leaves the stored links
// identical; the owning recipe id comes from the caller's path parameter.
func (vm *RecipeVM) LinkEntities() []models.RecipeIngredient {
	links := make([]models.RecipeIngredient, 0, len(vm.Ingredients))
	for _, item := range vm.Ingredients {
		links = append(links, models.RecipeIngredient{
			ID:           item.ID,
			IngredientID: uint(item.IngredientID),
			Amount:       item.Amount,
			Calories:     item.Calories,
		})
	}
	return links
}
