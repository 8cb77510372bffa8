package domain

// ValidationError agrupa errores de validación por campo, para que el
// formulario de origen pueda mostrarlos junto a cada campo. Un ValidationError
// nunca llega a persistencia: se produce antes de cualquier escritura.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "entrada inválida"
}

// NewValidationError construye un error de un solo campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add agrega un error de campo y devuelve el mismo ValidationError.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
	return e
}
