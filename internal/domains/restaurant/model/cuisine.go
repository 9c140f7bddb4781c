package model

import "strings"

// Cuisine is one entry of the allow-list accepted on create and update
type Cuisine struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

var cuisines = []Cuisine{
	{"ITALIAN", "Итальянская"},
	{"JAPANESE", "Японская"},
	{"AMERICAN", "Американская"},
	{"MEXICAN", "Мексиканская"},
	{"INDIAN", "Индийская"},
	{"RUSSIAN", "Русская"},
	{"CHINESE", "Китайская"},
	{"FRENCH", "Французская"},
	{"THAI", "Тайская"},
	{"GEORGIAN", "Грузинская"},
	{"VEGETARIAN", "Вегетарианская"},
}

// Cuisines returns a copy of the allow-list in declaration order
func Cuisines() []Cuisine {
	out := make([]Cuisine, len(cuisines))
	copy(out, cuisines)
	return out
}

// IsValidCuisine matches value against keys and display names, ignoring case.
// Blank values are never valid.
func IsValidCuisine(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, c := range cuisines {
		if strings.EqualFold(c.Key, value) || strings.EqualFold(c.DisplayName, value) {
			return true
		}
	}
	return false
}
