package repository

import "github.com/invorya/bodega-api/internal/domain/entity"

// HistoryRepository define el puerto de persistencia para el historial de operaciones (DIP).
// List y Search devuelven los registros del más reciente al más antiguo.
// Delete devuelve el snapshot eliminado o (nil, nil) si el id no existe.
// Clear vacía el historial sin reiniciar la secuencia de ids.
type HistoryRepository interface {
	List() ([]*entity.HistoryRecord, error)
	Search(query string) ([]*entity.HistoryRecord, error)
	Create(record *entity.HistoryRecord) error
	Delete(id int64) (*entity.HistoryRecord, error)
	Clear() error
}
