package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/recipekit/recipedb/internal/services"
	"github.com/recipekit/recipedb/internal/utils"
	"github.com/recipekit/recipedb/internal/viewmodels"
	"gorm.io/gorm"
)

// RecipeHandler handles recipe routes, including the recipe-ingredient
// association routes (see recipe_ingredients.go)
type RecipeHandler struct {
	DB *gorm.DB
}

// GetRecipes handles GET /api/recipe
// @Summary List recipes
// @Description Get all recipes with their ingredient links
// @Tags Recipes
// @Produce json
// @Success 200 {array} viewmodels.RecipeVM
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe [get]
func (h *RecipeHandler) GetRecipes(c *fiber.Ctx) error {
	recipes, err := services.GetRecipes(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getRecipes")
	}

	result := make([]viewmodels.RecipeVM, 0, len(recipes))
	for i := range recipes {
		result = append(result, viewmodels.NewRecipeVM(&recipes[i]))
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetRecipe handles GET /api/recipe/:id
// @Summary Get recipe
// @Description Get a single recipe with its ingredient links
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} viewmodels.RecipeVM
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id} [get]
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	recipe, err := services.GetRecipe(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("No recipe was found with id %d", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(viewmodels.NewRecipeVM(recipe))
}

// CreateRecipe handles POST /api/recipe
// @Summary Create recipe
// @Description Create a new recipe. Ingredient links are not handled here and
// @Description must be added through the recipe's ingredient routes.
// @Tags Recipes
// @Accept json
// @Produce json
// @Param body body viewmodels.RecipeVM true "Recipe to create"
// @Success 201 {object} viewmodels.RecipeVM
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe [post]
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var vm viewmodels.RecipeVM
	if err := c.BodyParser(&vm); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipes.validation.input")
	}
	if err := vm.Validate(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.input")
	}

	recipe := vm.ToEntity()
	if err := services.CreateRecipe(h.DB, &recipe); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createRecipe")
	}

	location := fmt.Sprintf("/api/recipe/%d", recipe.ID)
	return utils.CreatedResponse(c, location, viewmodels.NewRecipeVM(&recipe))
}

// UpdateRecipe handles PUT /api/recipe/:id
// @Summary Replace recipe
// @Description Replace a recipe's fields and its entire ingredient link
// @Description collection with the passed values
// @Tags Recipes
// @Accept json
// @Param id path int true "Recipe ID"
// @Param body body viewmodels.RecipeVM true "New recipe values"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	var vm viewmodels.RecipeVM
	if err := c.BodyParser(&vm); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipes.validation.input")
	}
	if err := vm.Validate(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.input")
	}

	recipe := vm.ToEntity()
	recipe.Ingredients = vm.LinkEntities()
	if _, err := services.UpdateRecipe(h.DB, id, &recipe); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("No recipe was found with id %d", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateRecipe")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteRecipe handles DELETE /api/recipe/:id
// @Summary Delete recipe
// @Description Delete a recipe and all ingredient links it owns
// @Tags Recipes
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	deleted, err := services.DeleteRecipe(h.DB, id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteRecipe")
	}
	if !deleted {
		return utils.NotFoundResponse(c, fmt.Sprintf("No recipe was found with id %d", id))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
