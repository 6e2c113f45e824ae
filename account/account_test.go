package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pw    string
		score int
		label string
	}{
		{"", 0, "débil"},
		{"abc", 20, "débil"},
		{"abcdefgh", 40, "media"},
		{"Abcdefgh", 60, "media"},
		{"Abcdefg1", 80, "fuerte"},
		{"Ñandú#2024", 100, "fuerte"},
	}
	for _, tt := range tests {
		t.Run(tt.pw, func(t *testing.T) {
			got := PasswordStrength(tt.pw)
			assert.Equal(t, tt.score, got)
			assert.Equal(t, tt.label, StrengthLabel(got))
		})
	}
}

func TestPasswordFormValidate(t *testing.T) {
	t.Run("valido", func(t *testing.T) {
		f := PasswordForm{Actual: "vieja", Nueva: "Cemento#50", Confirmacion: "Cemento#50"}
		assert.NoError(t, f.Validate())
	})

	t.Run("campos vacios", func(t *testing.T) {
		err := PasswordForm{}.Validate()
		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "Este campo es obligatorio", fe["actual"])
		assert.Equal(t, "Este campo es obligatorio", fe["nueva"])
		assert.Equal(t, "Este campo es obligatorio", fe["confirmacion"])
	})

	t.Run("no coinciden", func(t *testing.T) {
		err := PasswordForm{Actual: "x", Nueva: "Cemento#50", Confirmacion: "Cemento#51"}.Validate()
		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "Las contraseñas no coinciden", fe["confirmacion"])
		assert.NotContains(t, fe, "nueva")
	})

	t.Run("corta", func(t *testing.T) {
		err := PasswordForm{Actual: "x", Nueva: "Ab1#", Confirmacion: "Ab1#"}.Validate()
		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "Debe tener al menos 8 caracteres", fe["nueva"])
	})

	t.Run("debil", func(t *testing.T) {
		err := PasswordForm{Actual: "x", Nueva: "abcdefgh", Confirmacion: "abcdefgh"}.Validate()
		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe["nueva"], "media")
	})
}
