package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/models"
)

// Register adds the request rules used by the handlers' binding tags
// to gin's validator engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("isodate", isoDate); err != nil {
		return err
	}
	return v.RegisterValidation("equipmentstatus", equipmentStatus)
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func equipmentStatus(fl validator.FieldLevel) bool {
	return equipment.Status(fl.Field().String()).Valid()
}
