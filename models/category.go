package models

import "strings"

// Category is one of the fixed set of expense categories.
type Category string

const (
	CategoryHousing        Category = "Housing"
	CategoryTransportation Category = "Transportation"
	CategoryFood           Category = "Food"
	CategoryUtilities      Category = "Utilities"
	CategoryInsurance      Category = "Insurance"
	CategoryMedical        Category = "Medical/Healthcare"
	CategorySavings        Category = "Savings"
	CategoryDebt           Category = "Debt"
	CategoryEducation      Category = "Education"
	CategoryEntertainment  Category = "Entertainment"
	CategoryOther          Category = "Other"
)

var categories = []Category{
	CategoryHousing,
	CategoryTransportation,
	CategoryFood,
	CategoryUtilities,
	CategoryInsurance,
	CategoryMedical,
	CategorySavings,
	CategoryDebt,
	CategoryEducation,
	CategoryEntertainment,
	CategoryOther,
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryNames returns the category set as plain strings.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return names
}

// ParseCategory matches s against the fixed set, ignoring case and
// surrounding whitespace. The second return value reports whether a
// category matched.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return CategoryOther, false
}
