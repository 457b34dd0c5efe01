package entity

import "time"

// Tipos de operación registrados en el historial.
const (
	OperationStockIn  = "stock-in"
	OperationStockOut = "stock-out"
)

// HistoryRecord representa un evento de inventario (entrada o salida), inmutable
// una vez creado. GoodsName es una copia del nombre al momento del evento, no una
// referencia: renombrar la mercancía después no altera el historial.
type HistoryRecord struct {
	ID            int64
	GoodsName     string
	OperationType string // OperationStockIn u OperationStockOut
	Quantity      int    // delta con signo: positivo en entradas, negativo en salidas
	Notes         string
	CreatedAt     time.Time
}
