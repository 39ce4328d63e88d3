package forms

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var ErrValidatorEngine = errors.New("binding engine is not a validator.Validate")

func InitValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return ErrValidatorEngine
	}
	return v.RegisterValidation("notBlank", NotBlank)
}
