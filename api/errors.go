package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marca fallas de red: la petición no llegó o no hubo respuesta.
	ErrTransport = errors.New("api: transport failure")
	// ErrInvalidRecord marca un registro que no pasa la validación de frontera.
	ErrInvalidRecord = errors.New("api: invalid record")
)

// Error es una respuesta no 2xx del backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// UserMessage devuelve el mensaje del servidor si lo hay, si no el fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound informa si el backend respondió 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// serverMessage extrae el campo de mensaje de un cuerpo de error JSON.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Mensaje string `json:"mensaje"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, m := range []string{payload.Message, payload.Mensaje, payload.Error} {
		if m = strings.TrimSpace(m); m != "" {
			return m
		}
	}
	return ""
}
