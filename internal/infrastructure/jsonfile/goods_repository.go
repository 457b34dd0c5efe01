package jsonfile

import (
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/match"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.GoodsRepository = (*GoodsRepo)(nil)

// GoodsRepo implementación del puerto GoodsRepository sobre el documento JSON.
type GoodsRepo struct {
	store    *Store
	lockHeld bool // el TxRunner ya sostiene el mutex del store
}

// NewGoodsRepository construye el adaptador de persistencia para mercancías.
func NewGoodsRepository(store *Store) *GoodsRepo {
	return &GoodsRepo{store: store}
}

// lock toma el mutex del store, salvo que el llamador ya lo sostenga;
// devuelve la liberación que corresponda.
func (r *GoodsRepo) lock() func() {
	if r.lockHeld {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// List devuelve todas las mercancías en orden de inserción.
func (r *GoodsRepo) List() ([]*entity.Goods, error) {
	defer r.lock()()
	doc := r.store.loadGoodsDoc()
	out := make([]*entity.Goods, 0, len(doc.Goods))
	for _, rec := range doc.Goods {
		out = append(out, recordToGoods(rec))
	}
	return out, nil
}

// GetByID devuelve la mercancía con el id dado, o (nil, nil) si no existe.
func (r *GoodsRepo) GetByID(id int64) (*entity.Goods, error) {
	defer r.lock()()
	doc := r.store.loadGoodsDoc()
	for _, rec := range doc.Goods {
		if rec.ID == id {
			return recordToGoods(rec), nil
		}
	}
	return nil, nil
}

// Search filtra por subcadena del nombre, sin distinguir mayúsculas.
func (r *GoodsRepo) Search(query string) ([]*entity.Goods, error) {
	defer r.lock()()
	doc := r.store.loadGoodsDoc()
	out := make([]*entity.Goods, 0)
	for _, rec := range doc.Goods {
		if match.Contains(rec.Name, query) {
			out = append(out, recordToGoods(rec))
		}
	}
	return out, nil
}

// Create asigna el siguiente id del contador persistido y agrega la mercancía.
// El contador sobrevive a los borrados, así que los ids nunca se reutilizan.
func (r *GoodsRepo) Create(goods *entity.Goods) error {
	defer r.lock()()
	doc := r.store.loadGoodsDoc()
	doc.Counter++
	goods.ID = doc.Counter
	doc.Goods = append(doc.Goods, goodsToRecord(goods))
	return r.store.saveGoodsDoc(doc)
}

// Update reemplaza el registro con el mismo id. Si el id no existe es un no-op,
// igual que el adaptador de tabla con cero filas afectadas.
func (r *GoodsRepo) Update(goods *entity.Goods) error {
	defer r.lock()()
	doc := r.store.loadGoodsDoc()
	for i, rec := range doc.Goods {
		if rec.ID == goods.ID {
			doc.Goods[i] = goodsToRecord(goods)
			return r.store.saveGoodsDoc(doc)
		}
	}
	return nil
}

// Delete elimina la mercancía y devuelve su snapshot, o (nil, nil) si no existe.
func (r *GoodsRepo) Delete(id int64) (*entity.Goods, error) {
	defer r.lock()()
	doc := r.store.loadGoodsDoc()
	for i, rec := range doc.Goods {
		if rec.ID == id {
			deleted := recordToGoods(rec)
			doc.Goods = append(doc.Goods[:i], doc.Goods[i+1:]...)
			if err := r.store.saveGoodsDoc(doc); err != nil {
				return nil, err
			}
			return deleted, nil
		}
	}
	return nil, nil
}

// LowStock devuelve las mercancías con quantity <= min_quantity (umbral inclusivo).
func (r *GoodsRepo) LowStock() ([]*entity.Goods, error) {
	defer r.lock()()
	doc := r.store.loadGoodsDoc()
	out := make([]*entity.Goods, 0)
	for _, rec := range doc.Goods {
		g := recordToGoods(rec)
		if g.LowStock() {
			out = append(out, g)
		}
	}
	return out, nil
}
