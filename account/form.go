package account

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinStrength es el puntaje mínimo para aceptar una contraseña nueva.
const MinStrength = 60

// PasswordForm es el formulario de cambio de contraseña.
type PasswordForm struct {
	Actual       string `form:"actual" validate:"required"`
	Nueva        string `form:"nueva" validate:"required,min=8"`
	Confirmacion string `form:"confirmacion" validate:"required,eqfield=Nueva"`
}

// FieldErrors son los mensajes por campo que se muestran junto a cada input.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = validator.New()

var fieldNames = map[string]string{
	"Actual":       "actual",
	"Nueva":        "nueva",
	"Confirmacion": "confirmacion",
}

// Validate revisa el formulario antes de cualquier llamada al backend.
// Devuelve nil o FieldErrors.
func (f PasswordForm) Validate() error {
	errs := FieldErrors{}

	var verrs validator.ValidationErrors
	if err := validate.Struct(f); err != nil {
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			name := fieldNames[fe.Field()]
			if _, seen := errs[name]; seen {
				continue
			}
			errs[name] = message(fe)
		}
	}

	if _, bad := errs["nueva"]; !bad && f.Nueva != "" {
		if score := PasswordStrength(f.Nueva); score < MinStrength {
			errs["nueva"] = "La contraseña es " + StrengthLabel(score) + ": combina mayúsculas, números y símbolos"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "min":
		return "Debe tener al menos " + fe.Param() + " caracteres"
	case "eqfield":
		return "Las contraseñas no coinciden"
	default:
		return "Valor inválido"
	}
}
