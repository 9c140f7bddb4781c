package model

import "restaurant-catalog/internal/shared/apperror"

var (
	ErrDishNotFound   = apperror.NotFound("Dish not found")
	ErrImageNotOwned  = apperror.Forbidden("Access denied: image does not belong to this dish")
	ErrFileNameNeeded = apperror.Validation("Validation failed", map[string]string{"file_name": "File name must be not blank"})
)
