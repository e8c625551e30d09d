package llm

import "github.com/ddebortoli/darwin-ia-challenge/models"

// Classify maps the model's proposed category onto the fixed set. It is
// total: anything outside the set, including an empty proposal, falls back
// to Other. Identical input always yields the same category.
func Classify(proposed string) models.Category {
	if category, ok := models.ParseCategory(proposed); ok {
		return category
	}
	return models.CategoryOther
}
