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

// IngredientHandler handles ingredient routes
type IngredientHandler struct {
	DB *gorm.DB
}

// GetIngredients handles GET /api/ingredient
// @Summary List ingredients
// @Description Get all ingredients
// @Tags Ingredients
// @Produce json
// @Success 200 {array} viewmodels.IngredientVM
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredient [get]
func (h *IngredientHandler) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := services.GetIngredients(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getIngredients")
	}

	result := make([]viewmodels.IngredientVM, 0, len(ingredients))
	for i := range ingredients {
		result = append(result, viewmodels.NewIngredientVM(&ingredients[i]))
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetIngredient handles GET /api/ingredient/:id
// @Summary Get ingredient
// @Description Get a single ingredient by id
// @Tags Ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} viewmodels.IngredientVM
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredient/{id} [get]
func (h *IngredientHandler) GetIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "ingredients.validation.id")
	}

	ingredient, err := services.GetIngredient(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("No ingredient was found with id %d", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getIngredient")
	}

	return c.Status(fiber.StatusOK).JSON(viewmodels.NewIngredientVM(ingredient))
}

// GetIngredientRecipes handles GET /api/ingredient/:id/recipe
// @Summary List recipes using an ingredient
// @Description Get all recipes that reference the ingredient
// @Tags Ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {array} viewmodels.RecipeSummaryVM
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredient/{id}/recipe [get]
func (h *IngredientHandler) GetIngredientRecipes(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "ingredients.validation.id")
	}

	ingredient, err := services.GetIngredient(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("No ingredient was found with id %d", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getIngredientRecipes")
	}

	return c.Status(fiber.StatusOK).JSON(viewmodels.NewRecipeSummaryVMs(ingredient))
}

// CreateIngredient handles POST /api/ingredient
// @Summary Create ingredient
// @Description Create a new ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Param body body viewmodels.IngredientVM true "Ingredient to create"
// @Success 201 {object} viewmodels.IngredientVM
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredient [post]
func (h *IngredientHandler) CreateIngredient(c *fiber.Ctx) error {
	var vm viewmodels.IngredientVM
	if err := c.BodyParser(&vm); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "ingredients.validation.input")
	}
	if err := vm.Validate(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "ingredients.validation.input")
	}

	ingredient := vm.ToEntity()
	if err := services.CreateIngredient(h.DB, &ingredient); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createIngredient")
	}

	location := fmt.Sprintf("/api/ingredient/%d", ingredient.ID)
	return utils.CreatedResponse(c, location, viewmodels.NewIngredientVM(&ingredient))
}

// UpdateIngredient handles PUT /api/ingredient/:id
// @Summary Replace ingredient
// @Description Replace the mutable fields of an ingredient
// @Tags Ingredients
// @Accept json
// @Param id path int true "Ingredient ID"
// @Param body body viewmodels.IngredientVM true "New ingredient values"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredient/{id} [put]
func (h *IngredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "ingredients.validation.id")
	}

	var vm viewmodels.IngredientVM
	if err := c.BodyParser(&vm); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "ingredients.validation.input")
	}
	if err := vm.Validate(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "ingredients.validation.input")
	}

	ingredient := vm.ToEntity()
	if _, err := services.UpdateIngredient(h.DB, id, &ingredient); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("No ingredient was found with id %d", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateIngredient")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteIngredient handles DELETE /api/ingredient/:id
// @Summary Delete ingredient
// @Description Delete an ingredient and all recipe links referencing it
// @Tags Ingredients
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredient/{id} [delete]
func (h *IngredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "ingredients.validation.id")
	}

	deleted, err := services.DeleteIngredient(h.DB, id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteIngredient")
	}
	if !deleted {
		return utils.NotFoundResponse(c, fmt.Sprintf("No ingredient was found with id %d", id))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
