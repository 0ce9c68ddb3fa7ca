package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
)

// RegisterValidators installs domain validators on gin's binding engine.
// Call once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("ownertype", func(fl validator.FieldLevel) bool {
		return model.OwnerType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("assigneetype", func(fl validator.FieldLevel) bool {
		return model.AssigneeType(fl.Field().String()).Valid()
	})
}
