package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Clothing size validation
	validate.RegisterValidation("item_size", func(fl validator.FieldLevel) bool {
		size := fl.Field().String()
		validSizes := []string{"XS", "S", "M", "L", "XL", "XXL"}
		for _, s := range validSizes {
			if size == s {
				return true
			}
		}
		return false
	})

	// Item condition validation
	validate.RegisterValidation("item_condition", func(fl validator.FieldLevel) bool {
		condition := fl.Field().String()
		validConditions := []string{"Like New", "Good", "Fair", "Well-Worn"}
		for _, c := range validConditions {
			if condition == c {
				return true
			}
		}
		return false
	})

	// Swap response status validation
	validate.RegisterValidation("swap_response", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		return status == "accepted" || status == "declined"
	})

	// Moderation decision validation
	validate.RegisterValidation("approval_decision", func(fl validator.FieldLevel) bool {
		decision := fl.Field().String()
		return decision == "approved" || decision == "rejected"
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "uuid":
			errors[field] = "Invalid identifier format"
		case "item_size":
			errors[field] = "Invalid size. Must be: XS, S, M, L, XL, or XXL"
		case "item_condition":
			errors[field] = "Invalid condition. Must be: Like New, Good, Fair, or Well-Worn"
		case "swap_response":
			errors[field] = "Invalid status. Must be: accepted or declined"
		case "approval_decision":
			errors[field] = "Invalid decision. Must be: approved or rejected"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
