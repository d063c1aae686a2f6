package models

// Ingredient represents a single ingredient that recipes can reference
type Ingredient struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Category string `gorm:"size:32" json:"category"`

	// Links back to the recipes that use this ingredient.
	Recipes []RecipeIngredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"recipes,omitempty"`
}

// TableName overrides the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// IngredientCategories is the closed set of valid ingredient categories.
// An empty category means uncategorized.
var IngredientCategories = []string{
	"fruit",
	"vegetable",
	"grain",
	"bean",
	"meat",
	"nut",
	"seafood",
	"egg",
	"dairy",
	"seed",
	"herb",
	"spice",
	"seasoning",
	"condiment",
	"fat",
}

// ValidCategory reports whether a category string is empty or a member of
// IngredientCategories.
func ValidCategory(category string) bool {
	if category == "" {
		return true
	}
	for _, c := range IngredientCategories {
		if c == category {
			return true
		}
	}
	return false
}
