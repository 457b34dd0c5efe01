package jsonfile

import (
	"context"

	"github.com/invorya/bodega-api/internal/domain/repository"
)

// TxRunner del backend de archivo. El medio no ofrece transacciones, pero sí
// exclusión mutua: Run sostiene el mutex del Store durante todo el callback,
// de modo que la secuencia leer-verificar-escribir de una operación de stock
// es una sola sección crítica y dos salidas concurrentes no pueden pasar
// ambas la verificación de stock. Un fallo a mitad de callback no revierte
// las escrituras ya hechas (los dos documentos son independientes); el
// backend de tablas sí agrupa ambas escrituras en una transacción.
type TxRunner struct {
	store   *Store
	goods   *GoodsRepo
	history *HistoryRepo
}

// NewTxRunner construye el runner sobre el store. Los repositorios internos
// no toman el mutex por operación: lo sostiene Run.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{
		store:   store,
		goods:   &GoodsRepo{store: store, lockHeld: true},
		history: &HistoryRepo{store: store, lockHeld: true},
	}
}

// Run ejecuta fn bajo el mutex del store.
func (r *TxRunner) Run(_ context.Context, fn func(
	goodsRepo repository.GoodsRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.goods, r.history)
}
