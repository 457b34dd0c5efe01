// Package match implementa la comparación de texto usada por las búsquedas
// de mercancías e historial: subcadena sin distinguir mayúsculas, con folding
// Unicode (no solo ASCII, los nombres de mercancías llegan en cualquier idioma).
package match

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Contains informa si substr aparece dentro de s, ignorando mayúsculas.
// Una subcadena vacía siempre coincide (una búsqueda sin término devuelve todo).
// El matcher se construye por llamada: no está documentado como seguro para
// uso concurrente y cada request HTTP ejecuta su propia búsqueda.
func Contains(s, substr string) bool {
	if substr == "" {
		return true
	}
	start, _ := search.New(language.Und, search.IgnoreCase).IndexString(s, substr)
	return start >= 0
}
