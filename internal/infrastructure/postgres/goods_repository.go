package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.GoodsRepository = (*GoodsRepo)(nil)

const goodsColumns = `id, name, price, location, quantity, min_quantity, description, created_at, updated_at`

// GoodsRepo implementación del puerto GoodsRepository sobre PostgreSQL (usable con pool o tx).
type GoodsRepo struct {
	q        Querier
	lockRows bool // dentro de una transacción: GetByID hace SELECT ... FOR UPDATE
}

// NewGoodsRepository construye el adaptador de persistencia para mercancías. Pasar pool o tx (Querier).
func NewGoodsRepository(q Querier) *GoodsRepo {
	return &GoodsRepo{q: q}
}

// newGoodsRepositoryForUpdate variante transaccional: GetByID bloquea la fila
// leída hasta el commit, de modo que dos salidas de stock concurrentes sobre
// la misma mercancía se serializan y no pueden pasar ambas la verificación.
func newGoodsRepositoryForUpdate(q Querier) *GoodsRepo {
	return &GoodsRepo{q: q, lockRows: true}
}

// List devuelve todas las mercancías en orden de clave primaria.
func (r *GoodsRepo) List() ([]*entity.Goods, error) {
	query := `SELECT ` + goodsColumns + ` FROM goods ORDER BY id`
	return r.queryGoods(query)
}

// GetByID obtiene una mercancía por id, o (nil, nil) si no existe.
func (r *GoodsRepo) GetByID(id int64) (*entity.Goods, error) {
	query := `SELECT ` + goodsColumns + ` FROM goods WHERE id = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}
	var g entity.Goods
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.Name, &g.Price, &g.Location, &g.Quantity, &g.MinQuantity,
		&g.Description, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods: %w", err)
	}
	return &g, nil
}

// Search filtra por subcadena del nombre sin distinguir mayúsculas (ILIKE con
// comodines escapados; el término del usuario es un literal, no un patrón).
func (r *GoodsRepo) Search(q string) ([]*entity.Goods, error) {
	query := `SELECT ` + goodsColumns + ` FROM goods WHERE name ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`
	return r.queryGoods(query, escapeLike(q))
}

// Create inserta una nueva mercancía y recupera el id identity asignado.
func (r *GoodsRepo) Create(goods *entity.Goods) error {
	query := `
		INSERT INTO goods (name, price, location, quantity, min_quantity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		goods.Name, goods.Price, goods.Location, goods.Quantity,
		goods.MinQuantity, goods.Description, goods.CreatedAt, goods.UpdatedAt,
	).Scan(&goods.ID)
	if err != nil {
		return fmt.Errorf("insert goods: %w", err)
	}
	return nil
}

// Update escribe la fila completa (la fusión de campos parciales ocurre en el
// caso de uso sobre el registro leído). Cero filas afectadas es un no-op.
func (r *GoodsRepo) Update(goods *entity.Goods) error {
	query := `
		UPDATE goods
		SET name = $2, price = $3, location = $4, quantity = $5, min_quantity = $6, description = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		goods.ID, goods.Name, goods.Price, goods.Location, goods.Quantity,
		goods.MinQuantity, goods.Description, goods.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update goods: %w", err)
	}
	return nil
}

// Delete elimina la fila y devuelve su snapshot, o (nil, nil) si no existía.
func (r *GoodsRepo) Delete(id int64) (*entity.Goods, error) {
	query := `DELETE FROM goods WHERE id = $1 RETURNING ` + goodsColumns
	var g entity.Goods
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.Name, &g.Price, &g.Location, &g.Quantity, &g.MinQuantity,
		&g.Description, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete goods: %w", err)
	}
	return &g, nil
}

// LowStock devuelve las mercancías con quantity <= min_quantity (umbral inclusivo).
func (r *GoodsRepo) LowStock() ([]*entity.Goods, error) {
	query := `SELECT ` + goodsColumns + ` FROM goods WHERE quantity <= min_quantity ORDER BY id`
	return r.queryGoods(query)
}

func (r *GoodsRepo) queryGoods(query string, args ...any) ([]*entity.Goods, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Goods, 0)
	for rows.Next() {
		var g entity.Goods
		if err := rows.Scan(&g.ID, &g.Name, &g.Price, &g.Location, &g.Quantity,
			&g.MinQuantity, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goods: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// escapeLike escapa los comodines de LIKE/ILIKE en el término del usuario.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
