package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout es la forma textual canónica de los timestamps del sistema
// ("YYYY-MM-DD HH:MM:SS"), heredada del backend legado. Se usa tanto en las
// respuestas HTTP como en el documento JSON persistido.
const TimeLayout = "2006-01-02 15:04:05"

func init() {
	// El contrato legado serializa price como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Goods representa una mercancía del almacén.
// Quantity es el único campo canónico de existencias: el alias "stock" del
// cliente legado se materializa solo en la frontera de serialización (DTO y
// documento en disco), nunca aquí.
type Goods struct {
	ID          int64
	Name        string
	Price       decimal.Decimal // precio unitario, nunca negativo
	Location    string          // etiqueta libre de ubicación (p. ej. "A1")
	Quantity    int             // existencias actuales, nunca negativo
	MinQuantity int             // umbral de reposición; <= MinQuantity es stock bajo
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si la mercancía está en o por debajo de su umbral de reposición.
func (g *Goods) LowStock() bool {
	return g.Quantity <= g.MinQuantity
}
