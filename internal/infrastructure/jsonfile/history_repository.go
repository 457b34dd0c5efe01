package jsonfile

import (
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/match"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación del puerto HistoryRepository sobre el documento JSON.
type HistoryRepo struct {
	store    *Store
	lockHeld bool // el TxRunner ya sostiene el mutex del store
}

// NewHistoryRepository construye el adaptador de persistencia para el historial.
func NewHistoryRepository(store *Store) *HistoryRepo {
	return &HistoryRepo{store: store}
}

// lock toma el mutex del store, salvo que el llamador ya lo sostenga;
// devuelve la liberación que corresponda.
func (r *HistoryRepo) lock() func() {
	if r.lockHeld {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// List devuelve el historial completo, del más reciente al más antiguo.
// El documento guarda en orden de inserción; se invierte al leer.
func (r *HistoryRepo) List() ([]*entity.HistoryRecord, error) {
	defer r.lock()()
	doc := r.store.loadHistoryDoc()
	out := make([]*entity.HistoryRecord, 0, len(doc.History))
	for i := len(doc.History) - 1; i >= 0; i-- {
		out = append(out, recordToHistory(doc.History[i]))
	}
	return out, nil
}

// Search filtra por subcadena de goods_name, sin distinguir mayúsculas,
// en el mismo orden que List.
func (r *HistoryRepo) Search(query string) ([]*entity.HistoryRecord, error) {
	defer r.lock()()
	doc := r.store.loadHistoryDoc()
	out := make([]*entity.HistoryRecord, 0)
	for i := len(doc.History) - 1; i >= 0; i-- {
		rec := doc.History[i]
		if match.Contains(rec.GoodsName, query) {
			out = append(out, recordToHistory(rec))
		}
	}
	return out, nil
}

// Create asigna el siguiente id del contador persistido y agrega el registro.
func (r *HistoryRepo) Create(record *entity.HistoryRecord) error {
	defer r.lock()()
	doc := r.store.loadHistoryDoc()
	doc.Counter++
	record.ID = doc.Counter
	doc.History = append(doc.History, historyToRecord(record))
	return r.store.saveHistoryDoc(doc)
}

// Delete elimina el registro y devuelve su snapshot, o (nil, nil) si no existe.
func (r *HistoryRepo) Delete(id int64) (*entity.HistoryRecord, error) {
	defer r.lock()()
	doc := r.store.loadHistoryDoc()
	for i, rec := range doc.History {
		if rec.ID == id {
			deleted := recordToHistory(rec)
			doc.History = append(doc.History[:i], doc.History[i+1:]...)
			if err := r.store.saveHistoryDoc(doc); err != nil {
				return nil, err
			}
			return deleted, nil
		}
	}
	return nil, nil
}

// Clear vacía el historial. Conserva el contador: los registros posteriores
// continúan la secuencia en vez de reiniciar en 1.
func (r *HistoryRepo) Clear() error {
	defer r.lock()()
	doc := r.store.loadHistoryDoc()
	doc.History = nil
	return r.store.saveHistoryDoc(doc)
}
