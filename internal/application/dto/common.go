package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ErrorResponse cuerpo de error HTTP del contrato legado: {"error": "mensaje"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse respuesta mínima de operaciones sin cuerpo (p. ej. vaciar historial).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// FlexInt es un entero que acepta las dos formas en que el cliente legado
// envía cantidades: número JSON (10, también 10.0, truncado como int() de
// Python) o string numérico ("10"). Cualquier otra cosa es un error de tipo,
// que la capa HTTP convierte en 400.
type FlexInt int

// UnmarshalJSON implementa la coerción numérica descrita arriba.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	quoted := false
	if len(s) >= 2 && s[0] == '"' {
		var q string
		if err := json.Unmarshal(b, &q); err != nil {
			return err
		}
		s = strings.TrimSpace(q)
		quoted = true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	// Un número JSON con decimales se trunca; un string con decimales no es
	// un entero válido (misma distinción que hacía int() en el backend legado).
	if !quoted {
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			*f = FlexInt(int(x))
			return nil
		}
	}
	return fmt.Errorf("valor numérico inválido: %q", s)
}

// Int devuelve el valor como int nativo.
func (f FlexInt) Int() int { return int(f) }
