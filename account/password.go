// Package account tiene la lógica del formulario de perfil: fuerza de la
// contraseña y validación previa al envío.
package account

import (
	"github.com/dlclark/regexp2"
)

// Cada regla suma 20 puntos.
var strengthRules = []*regexp2.Regexp{
	regexp2.MustCompile(`^(?=.{8,}$)`, regexp2.None),
	regexp2.MustCompile(`^(?=.*\p{Ll})`, regexp2.None),
	regexp2.MustCompile(`^(?=.*\p{Lu})`, regexp2.None),
	regexp2.MustCompile(`^(?=.*\d)`, regexp2.None),
	regexp2.MustCompile(`^(?=.*[^\p{L}\d\s])`, regexp2.None),
}

const pointsPerRule = 100 / 5

// PasswordStrength devuelve un puntaje de 0 a 100.
func PasswordStrength(pw string) int {
	if pw == "" {
		return 0
	}
	score := 0
	for _, re := range strengthRules {
		if ok, err := re.MatchString(pw); err == nil && ok {
			score += pointsPerRule
		}
	}
	return score
}

// StrengthLabel traduce el puntaje a la etiqueta que ve el usuario.
func StrengthLabel(score int) string {
	switch {
	case score < 40:
		return "débil"
	case score < 80:
		return "media"
	default:
		return "fuerte"
	}
}
