package models

// Recipe represents a recipe with its ingredient links
type Recipe struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:64;not null" json:"name"`
	Description  string `gorm:"size:2048" json:"description"`
	Instructions string `gorm:"type:text;not null" json:"instructions"`
	PrepTime     int    `gorm:"not null" json:"prepTime"`
	CookTime     int    `gorm:"not null" json:"cookTime"`

	// Links owned by this recipe. Deleting the recipe cascades to the links.
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}
