package model

import "restaurant-catalog/internal/shared/apperror"

var (
	ErrRestaurantNotFound = apperror.NotFound("Restaurant not found")
	ErrImageNotOwned      = apperror.Forbidden("Access denied: image does not belong to this restaurant")
)

// InvalidCuisine is returned before anything is persisted
func InvalidCuisine(value string) error {
	return apperror.IllegalState("Invalid cuisine: " + value)
}
