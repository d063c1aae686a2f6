package models

// RecipeIngredient links a recipe with an ingredient and carries the
// link-specific attributes (amount used, calories contributed).
//
// The (RecipeID, IngredientID) pair is unique: every read/update/delete path
// addresses a link by the pair, so a second row for the same pair would be
// unreachable.
type RecipeIngredient struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID     uint   `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipeId"`
	IngredientID uint   `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredientId"`
	Amount       string `gorm:"size:64" json:"amount"`
	Calories     *int   `json:"calories"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// TableName overrides the table name for RecipeIngredient
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
