package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registra las reglas propias del sistema en el
// validador compartido.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("rol_sistema", isKnownRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("folio", isFolio); err != nil {
		return err
	}
	return nil
}

func isKnownRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "tecnico", "inventario", "usuario":
		return true
	}
	return false
}

// Folio con formato UUID; los tickets lo exponen como identificador público.
func isFolio(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	return re.MatchString(fl.Field().String())
}
