package repository

import "github.com/invorya/bodega-api/internal/domain/entity"

// GoodsRepository define el puerto de persistencia para Goods (DIP).
// GetByID devuelve (nil, nil) si no existe; Delete devuelve el snapshot eliminado
// o (nil, nil) si el id no existe.
type GoodsRepository interface {
	List() ([]*entity.Goods, error)
	GetByID(id int64) (*entity.Goods, error)
	Search(query string) ([]*entity.Goods, error)
	Create(goods *entity.Goods) error
	Update(goods *entity.Goods) error
	Delete(id int64) (*entity.Goods, error)
	LowStock() ([]*entity.Goods, error)
}
