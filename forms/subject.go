package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type SubjectForm struct {
	Subject string `json:"subject" binding:"required,notBlank,max=100"`
}

var NotBlank validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(value) != ""
}
