package jsonfile_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/infrastructure/jsonfile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestStore construye un store sobre un directorio temporal y devuelve
// además las rutas de ambos documentos para inspección directa.
func newTestStore(t *testing.T) (*jsonfile.Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	goodsPath := filepath.Join(dir, "goods.json")
	historyPath := filepath.Join(dir, "history.json")
	store, err := jsonfile.NewStore(goodsPath, historyPath)
	require.NoError(t, err)
	return store, goodsPath, historyPath
}

func newGoods(name string) *entity.Goods {
	now := time.Now()
	return &entity.Goods{
		Name:      name,
		Price:     decimal.NewFromFloat(9.5),
		Location:  "A1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newHistoryRecord(goodsName string, qty int) *entity.HistoryRecord {
	op := entity.OperationStockIn
	if qty < 0 {
		op = entity.OperationStockOut
	}
	return &entity.HistoryRecord{
		GoodsName:     goodsName,
		OperationType: op,
		Quantity:      qty,
		CreatedAt:     time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GoodsRepo
// ──────────────────────────────────────────────────────────────────────────────

// Los ids no se reutilizan: borrar el registro de id más alto no hace que el
// siguiente create repita ese id.
func TestGoodsRepo_IdsNoSeReutilizanTrasBorrar(t *testing.T) {
	store, _, _ := newTestStore(t)
	repo := jsonfile.NewGoodsRepository(store)

	a := newGoods("tornillos")
	b := newGoods("tuercas")
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	deleted, err := repo.Delete(b.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "tuercas", deleted.Name)

	c := newGoods("arandelas")
	require.NoError(t, repo.Create(c))
	assert.Equal(t, int64(3), c.ID,
		"el contador debe sobrevivir al borrado, no reasignar el id 2")
}

// Un documento legado sin contador y con "stock" en vez de "quantity" se
// normaliza al leer, y el contador se siembra desde el id máximo.
func TestGoodsRepo_NormalizaDocumentoLegado(t *testing.T) {
	store, goodsPath, _ := newTestStore(t)
	legacy := `{
  "goods": [
    {"id": 7, "_id": "7", "name": "cajas", "price": 3.25, "location": "B2",
     "stock": 12, "min_quantity": 2, "description": "",
     "created_at": "2025-06-01 08:00:00"}
  ]
}`
	require.NoError(t, os.WriteFile(goodsPath, []byte(legacy), 0o644))

	repo := jsonfile.NewGoodsRepository(store)
	g, err := repo.GetByID(7)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 12, g.Quantity, "stock legado debe leerse como quantity")
	assert.Equal(t, "cajas", g.Name)

	nuevo := newGoods("palets")
	require.NoError(t, repo.Create(nuevo))
	assert.Equal(t, int64(8), nuevo.ID, "el contador se siembra desde el id máximo")
}

// Archivo corrupto = colección vacía, nunca error.
func TestGoodsRepo_ArchivoCorruptoEsColeccionVacia(t *testing.T) {
	store, goodsPath, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(goodsPath, []byte("{esto no es json"), 0o644))

	repo := jsonfile.NewGoodsRepository(store)
	list, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	g := newGoods("cinta")
	require.NoError(t, repo.Create(g))
	assert.Equal(t, int64(1), g.ID)
}

// Lo escrito por una instancia lo lee otra instancia nueva sobre los mismos
// archivos, y el documento en disco conserva los alias legados.
func TestGoodsRepo_PersistenciaEntreInstancias(t *testing.T) {
	store, goodsPath, historyPath := newTestStore(t)
	repo := jsonfile.NewGoodsRepository(store)

	g := newGoods("bobinas")
	g.Quantity = 4
	require.NoError(t, repo.Create(g))

	// Documento en disco: alias _id y stock presentes e iguales al canónico.
	raw, err := os.ReadFile(goodsPath)
	require.NoError(t, err)
	var doc struct {
		Goods []map[string]any `json:"goods"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Goods, 1)
	assert.Equal(t, "1", doc.Goods[0]["_id"])
	assert.EqualValues(t, 4, doc.Goods[0]["stock"])
	assert.EqualValues(t, 4, doc.Goods[0]["quantity"])

	store2, err := jsonfile.NewStore(goodsPath, historyPath)
	require.NoError(t, err)
	repo2 := jsonfile.NewGoodsRepository(store2)
	g2, err := repo2.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, g2)
	assert.Equal(t, "bobinas", g2.Name)
	assert.Equal(t, 4, g2.Quantity)
}

// GetByID y Delete de un id inexistente responden (nil, nil), no error.
func TestGoodsRepo_IdInexistenteEsNilNil(t *testing.T) {
	store, _, _ := newTestStore(t)
	repo := jsonfile.NewGoodsRepository(store)

	g, err := repo.GetByID(99)
	require.NoError(t, err)
	assert.Nil(t, g)

	deleted, err := repo.Delete(99)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

// La búsqueda es por subcadena, sin distinguir mayúsculas; el término vacío
// devuelve todo.
func TestGoodsRepo_BusquedaPorSubcadena(t *testing.T) {
	store, _, _ := newTestStore(t)
	repo := jsonfile.NewGoodsRepository(store)
	require.NoError(t, repo.Create(newGoods("Tornillos M4")))
	require.NoError(t, repo.Create(newGoods("tuercas m4")))
	require.NoError(t, repo.Create(newGoods("Cajas")))

	out, err := repo.Search("TORN")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Tornillos M4", out[0].Name)

	out, err = repo.Search("m4")
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = repo.Search("")
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests HistoryRepo
// ──────────────────────────────────────────────────────────────────────────────

// El listado sale del más reciente al más antiguo.
func TestHistoryRepo_ListaDelMasRecienteAlMasAntiguo(t *testing.T) {
	store, _, _ := newTestStore(t)
	repo := jsonfile.NewHistoryRepository(store)
	require.NoError(t, repo.Create(newHistoryRecord("cajas", 5)))
	require.NoError(t, repo.Create(newHistoryRecord("cajas", -2)))
	require.NoError(t, repo.Create(newHistoryRecord("palets", 1)))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(1), list[2].ID)
}

// Vaciar el historial conserva el contador: el siguiente registro continúa
// la secuencia en vez de reiniciar en 1.
func TestHistoryRepo_ClearConservaContador(t *testing.T) {
	store, _, _ := newTestStore(t)
	repo := jsonfile.NewHistoryRepository(store)
	require.NoError(t, repo.Create(newHistoryRecord("cajas", 5)))
	require.NoError(t, repo.Create(newHistoryRecord("cajas", 3)))

	require.NoError(t, repo.Clear())
	list, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	rec := newHistoryRecord("cajas", 1)
	require.NoError(t, repo.Create(rec))
	assert.Equal(t, int64(3), rec.ID)
}

func TestHistoryRepo_DeleteDevuelveSnapshot(t *testing.T) {
	store, _, _ := newTestStore(t)
	repo := jsonfile.NewHistoryRepository(store)
	rec := newHistoryRecord("palets", -4)
	require.NoError(t, repo.Create(rec))

	deleted, err := repo.Delete(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "palets", deleted.GoodsName)
	assert.Equal(t, -4, deleted.Quantity)
	assert.Equal(t, entity.OperationStockOut, deleted.OperationType)

	again, err := repo.Delete(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}
