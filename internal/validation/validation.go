package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// imageKeyRegex accepts plain image file names: no path separators, a single
// extension, the characters catalog files actually use.
var imageKeyRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+\.(png|jpg|jpeg|tif|tiff|bmp)$`)

// Validator wraps go-playground validator with the service's custom rules
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator with the image_key rule registered
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("image_key", validateImageKey)

	return &Validator{validate: v}
}

// Validate validates a struct
func (cv *Validator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// validateImageKey validates catalog image names used as answer record keys
func validateImageKey(fl validator.FieldLevel) bool {
	return imageKeyRegex.MatchString(fl.Field().String())
}
