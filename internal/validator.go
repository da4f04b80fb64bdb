package internal

import "github.com/go-playground/validator/v10"

// Validator is shared by configuration loading and request parsing.
var Validator = validator.New(validator.WithRequiredStructEnabled())
