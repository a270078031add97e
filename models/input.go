package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxNameLength bounds category and product names.
const MaxNameLength = 120

var validate = validator.New(validator.WithRequiredStructEnabled())

type NewCategory struct {
	Name string `json:"name" validate:"required,max=120"`
}

type NewProduct struct {
	Name string `json:"name" validate:"required,max=120"`
}

// CreateCategoryInput is the payload of a create-category-with-products call.
type CreateCategoryInput struct {
	Category NewCategory  `json:"category"`
	Products []NewProduct `json:"products" validate:"required,min=1,dive"`
}

// Normalized returns a copy of the input with surrounding whitespace removed
// from every name.
func (in CreateCategoryInput) Normalized() CreateCategoryInput {
	out := CreateCategoryInput{
		Category: NewCategory{Name: strings.TrimSpace(in.Category.Name)},
		Products: make([]NewProduct, len(in.Products)),
	}
	for i, p := range in.Products {
		out.Products[i] = NewProduct{Name: strings.TrimSpace(p.Name)}
	}
	return out
}

// Validate checks the preconditions CatalogRepository relies on. Callers are
// expected to validate the Normalized form.
func (in CreateCategoryInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: err.Error()}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return &ValidationError{Message: strings.Join(msgs, "; ")}
}

func describeFieldError(fe validator.FieldError) string {
	// Namespace looks like "CreateCategoryInput.Products[1].Name"
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		if fe.Field() == "Products" {
			return "at least one product is required"
		}
		return fmt.Sprintf("%s is required", field)
	case "min":
		return "at least one product is required"
	case "max":
		return fmt.Sprintf("%s must be at most %d characters", field, MaxNameLength)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
