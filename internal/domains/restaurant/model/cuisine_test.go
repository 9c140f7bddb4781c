package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCuisine(t *testing.T) {
	valid := []string{"ITALIAN", "italian", "Italian", "Итальянская", "итальянская", "VEGETARIAN", "georgian"}
	for _, v := range valid {
		assert.True(t, IsValidCuisine(v), v)
	}

	invalid := []string{"", "   ", "ITALIAN ", "Martian", "ITALIANO"}
	for _, v := range invalid {
		assert.False(t, IsValidCuisine(v), v)
	}
}

func TestCuisines_ReturnsCopy(t *testing.T) {
	list := Cuisines()
	assert.Len(t, list, 11)
	assert.Equal(t, "ITALIAN", list[0].Key)

	list[0].Key = "CHANGED"
	assert.Equal(t, "ITALIAN", Cuisines()[0].Key)
}
