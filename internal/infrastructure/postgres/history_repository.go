package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

const historyColumns = `id, goods_name, operation_type, quantity, notes, created_at`

// HistoryRepo implementación del puerto HistoryRepository sobre PostgreSQL (usable con pool o tx).
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador de persistencia para el historial. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// List devuelve el historial del más reciente al más antiguo.
func (r *HistoryRepo) List() ([]*entity.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM history ORDER BY id DESC`
	return r.queryHistory(query)
}

// Search filtra por subcadena de goods_name sin distinguir mayúsculas.
func (r *HistoryRepo) Search(q string) ([]*entity.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE goods_name ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id DESC`
	return r.queryHistory(query, escapeLike(q))
}

// Create inserta el registro y recupera el id identity asignado.
func (r *HistoryRepo) Create(record *entity.HistoryRecord) error {
	query := `
		INSERT INTO history (goods_name, operation_type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		record.GoodsName, record.OperationType, record.Quantity, record.Notes, record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// Delete elimina el registro y devuelve su snapshot, o (nil, nil) si no existía.
func (r *HistoryRepo) Delete(id int64) (*entity.HistoryRecord, error) {
	query := `DELETE FROM history WHERE id = $1 RETURNING ` + historyColumns
	var h entity.HistoryRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&h.ID, &h.GoodsName, &h.OperationType, &h.Quantity, &h.Notes, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete history: %w", err)
	}
	return &h, nil
}

// Clear vacía el historial. La secuencia identity no se reinicia: los registros
// posteriores continúan la numeración.
func (r *HistoryRepo) Clear() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) queryHistory(query string, args ...any) ([]*entity.HistoryRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.HistoryRecord, 0)
	for rows.Next() {
		var h entity.HistoryRecord
		if err := rows.Scan(&h.ID, &h.GoodsName, &h.OperationType, &h.Quantity,
			&h.Notes, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
