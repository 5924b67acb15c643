package classroom

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

var (
	enrollStatusTag  = "enrollstatus"
	enrollStatusText = "status must be one of: pending, eligible, ineligible"
)

// InitValidators registers this package's custom validations and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(enrollStatusTag, enrollStatusValidation)
	core.RegisterCustomTranslation(validate, translator, enrollStatusTag, enrollStatusText)
}

func enrollStatusValidation(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	for _, s := range AllStatuses {
		if status == s {
			return true
		}
	}
	return false
}
