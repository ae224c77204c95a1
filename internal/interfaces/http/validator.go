package http

import "github.com/go-playground/validator/v10"

// validate instância única do validador de requests (tags nos DTOs).
var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(s any) error {
	return validate.Struct(s)
}
