package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/recipekit/recipedb/internal/services"
	"github.com/recipekit/recipedb/internal/utils"
	"github.com/recipekit/recipedb/internal/viewmodels"
)

// GetRecipeIngredients handles GET /api/recipe/:id/ingredient
// @Summary List a recipe's ingredient links
// @Description Get all ingredient links owned by a recipe
// @Tags RecipeIngredients
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} viewmodels.RecipeIngredientVM
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id}/ingredient [get]
func (h *RecipeHandler) GetRecipeIngredients(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	recipe, err := services.GetRecipe(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("No recipe was found with id %d", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getRecipeIngredients")
	}

	result := make([]viewmodels.RecipeIngredientVM, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		result = append(result, viewmodels.NewRecipeIngredientVM(&recipe.Ingredients[i]))
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetRecipeIngredient handles GET /api/recipe/:id/ingredient/:ingredientId
// @Summary Get one ingredient link
// @Description Get the link between a recipe and an ingredient
// @Tags RecipeIngredients
// @Produce json
// @Param id path int true "Recipe ID"
// @Param ingredientId path int true "Ingredient ID"
// @Success 200 {object} viewmodels.RecipeIngredientVM
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id}/ingredient/{ingredientId} [get]
func (h *RecipeHandler) GetRecipeIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}
	ingredientID, err := parseID(c, "ingredientId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	link, err := services.GetRecipeIngredient(h.DB, id, ingredientID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "No link was found with the given combination of ids")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getRecipeIngredient")
	}

	return c.Status(fiber.StatusOK).JSON(viewmodels.NewRecipeIngredientVM(link))
}

// CreateRecipeIngredient handles POST /api/recipe/:id/ingredient
// @Summary Create ingredient link
// @Description Link an ingredient to a recipe. The body carries the
// @Description ingredientId plus the link attributes; the link is created
// @Description bare first, then its attributes are applied.
// @Tags RecipeIngredients
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body viewmodels.RecipeIngredientVM true "Link to create"
// @Success 201 {object} viewmodels.RecipeIngredientVM
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id}/ingredient [post]
func (h *RecipeHandler) CreateRecipeIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	var vm viewmodels.RecipeIngredientVM
	if err := c.BodyParser(&vm); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipes.validation.input")
	}
	if err := vm.ValidateCreate(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.input")
	}

	ingredientID := uint(vm.IngredientID)

	// Two-phase create: establish the bare link, then apply its attributes
	link, err := services.CreateRecipeIngredient(h.DB, id, ingredientID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createRecipeIngredient")
	}
	if link == nil {
		return utils.ErrorResponse(c, "The link cannot be created with the given combination of ids",
			fiber.StatusBadRequest, "recipes.validation.link")
	}

	attrs := vm.ToEntity()
	link, err = services.UpdateRecipeIngredient(h.DB, id, ingredientID, &attrs)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createRecipeIngredient")
	}

	location := fmt.Sprintf("/api/recipe/%d/ingredient/%d", id, ingredientID)
	return utils.CreatedResponse(c, location, viewmodels.NewRecipeIngredientVM(link))
}

// UpdateRecipeIngredient handles PUT /api/recipe/:id/ingredient/:ingredientId
// @Summary Replace ingredient link attributes
// @Description Replace a link's amount and calories. The recipe and
// @Description ingredient the link points to never change.
// @Tags RecipeIngredients
// @Accept json
// @Param id path int true "Recipe ID"
// @Param ingredientId path int true "Ingredient ID"
// @Param body body viewmodels.RecipeIngredientVM true "New link attributes"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id}/ingredient/{ingredientId} [put]
func (h *RecipeHandler) UpdateRecipeIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}
	ingredientID, err := parseID(c, "ingredientId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	var vm viewmodels.RecipeIngredientVM
	if err := c.BodyParser(&vm); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipes.validation.input")
	}
	if err := vm.Validate(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.input")
	}

	attrs := vm.ToEntity()
	if _, err := services.UpdateRecipeIngredient(h.DB, id, ingredientID, &attrs); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "No link was found with the given combination of ids")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateRecipeIngredient")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteRecipeIngredient handles DELETE /api/recipe/:id/ingredient/:ingredientId
// @Summary Delete ingredient link
// @Description Delete the link between a recipe and an ingredient
// @Tags RecipeIngredients
// @Param id path int true "Recipe ID"
// @Param ingredientId path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipe/{id}/ingredient/{ingredientId} [delete]
func (h *RecipeHandler) DeleteRecipeIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}
	ingredientID, err := parseID(c, "ingredientId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.id")
	}

	deleted, err := services.DeleteRecipeIngredient(h.DB, id, ingredientID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteRecipeIngredient")
	}
	if !deleted {
		return utils.NotFoundResponse(c, "No link was found with the given combination of ids")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
