package image

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"restaurant-catalog/internal/shared/validator"
)

// RegisterRequest - PUT /api/v1/dishes/:id/images
type RegisterRequest struct {
	Images []string `json:"images"`
}

func (r RegisterRequest) Validate() error {
	return validator.Check(
		validator.F("images", r.Images,
			validation.NotNil.Error("Image must be not null"),
			validation.Each(validator.NotBlank("Image name must be not blank")),
		),
	)
}
