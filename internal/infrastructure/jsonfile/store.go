// Package jsonfile implementa los puertos de persistencia sobre documentos JSON
// en disco, compatible byte a byte con los archivos del backend legado
// (data/goods.json, data/history.json).
//
// Cada operación es leer-modificar-reescribir el documento completo bajo un
// mutex de escritor único, y la escritura es durable antes de retornar
// (archivo temporal + rename). Un archivo ausente o corrupto se trata como
// colección vacía, nunca como error fatal.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// goodsRecord es la representación persistida de una mercancía. Conserva los
// alias del cliente legado (_id, stock) para que el documento siga siendo
// legible por herramientas antiguas; en memoria solo vive la forma canónica.
type goodsRecord struct {
	ID          int64           `json:"id"`
	LegacyID    string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Quantity    *int            `json:"quantity,omitempty"`
	Stock       *int            `json:"stock,omitempty"`
	MinQuantity int             `json:"min_quantity"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// historyRecord es la representación persistida de un evento del historial.
type historyRecord struct {
	ID            int64  `json:"id"`
	LegacyID      string `json:"_id"`
	GoodsName     string `json:"goods_name"`
	OperationType string `json:"operation_type"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
	Timestamp     string `json:"timestamp"`
	Time          string `json:"time,omitempty"`
}

// goodsDocument es el documento completo de mercancías. El contador persiste
// el último id asignado para no reutilizar ids de registros eliminados
// (max+1 a secas reasignaría el id más alto tras borrarlo).
type goodsDocument struct {
	Goods   []goodsRecord `json:"goods"`
	Counter int64         `json:"goods_counter,omitempty"`
}

// historyDocument es el documento completo del historial.
type historyDocument struct {
	History []historyRecord `json:"history"`
	Counter int64           `json:"history_counter,omitempty"`
}

// Store posee ambos documentos y serializa todo acceso tras un mutex.
// Es el único dueño del estado persistido: los repositorios que expone
// releen el disco en cada operación, sin caché entre requests.
type Store struct {
	mu          sync.Mutex
	goodsPath   string
	historyPath string
}

// NewStore construye el store. Crea el directorio de datos si no existe.
func NewStore(goodsPath, historyPath string) (*Store, error) {
	for _, p := range []string{goodsPath, historyPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("crear directorio de datos: %w", err)
			}
		}
	}
	return &Store{goodsPath: goodsPath, historyPath: historyPath}, nil
}

// loadGoodsDoc lee el documento de mercancías. Normaliza registros legados:
// si falta quantity toma stock (y viceversa), y siembra el contador desde el
// id máximo cuando el documento no lo trae.
func (s *Store) loadGoodsDoc() goodsDocument {
	var doc goodsDocument
	if !readDocument(s.goodsPath, &doc) {
		return goodsDocument{}
	}
	for i := range doc.Goods {
		r := &doc.Goods[i]
		if r.Quantity == nil && r.Stock != nil {
			r.Quantity = r.Stock
		}
		if r.Quantity == nil {
			zero := 0
			r.Quantity = &zero
		}
		if r.ID > doc.Counter {
			doc.Counter = r.ID
		}
	}
	return doc
}

// loadHistoryDoc lee el documento del historial, normalizando el alias time.
func (s *Store) loadHistoryDoc() historyDocument {
	var doc historyDocument
	if !readDocument(s.historyPath, &doc) {
		return historyDocument{}
	}
	for i := range doc.History {
		r := &doc.History[i]
		if r.Timestamp == "" && r.Time != "" {
			r.Timestamp = r.Time
		}
		if r.ID > doc.Counter {
			doc.Counter = r.ID
		}
	}
	return doc
}

// saveGoodsDoc escribe el documento completo de forma durable.
func (s *Store) saveGoodsDoc(doc goodsDocument) error {
	if doc.Goods == nil {
		doc.Goods = []goodsRecord{}
	}
	return writeDocument(s.goodsPath, doc)
}

// saveHistoryDoc escribe el documento completo de forma durable.
func (s *Store) saveHistoryDoc(doc historyDocument) error {
	if doc.History == nil {
		doc.History = []historyRecord{}
	}
	return writeDocument(s.historyPath, doc)
}

// readDocument deserializa el archivo en dst. Devuelve false (colección vacía)
// si el archivo no existe o su JSON es ilegible.
func readDocument(path string, dst any) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	return true
}

// writeDocument serializa a un archivo temporal del mismo directorio y hace
// rename, para que un corte a mitad de escritura no deje un documento truncado.
func writeDocument(path string, doc any) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar documento: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("crear archivo temporal: %w", err)
	}
	defer func() {
		if tmp != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("escribir documento: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync documento: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar documento: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("reemplazar documento: %w", err)
	}
	tmp = nil
	return nil
}

// Exists reporta si hay documento de mercancías en disco (para el log de arranque).
func (s *Store) Exists() bool {
	_, err := os.Stat(s.goodsPath)
	return !errors.Is(err, fs.ErrNotExist)
}

// ── Conversión registro ⇄ entidad ────────────────────────────────────────────

func recordToGoods(r goodsRecord) *entity.Goods {
	qty := 0
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	return &entity.Goods{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Location:    r.Location,
		Quantity:    qty,
		MinQuantity: r.MinQuantity,
		Description: r.Description,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

func goodsToRecord(g *entity.Goods) goodsRecord {
	qty := g.Quantity
	return goodsRecord{
		ID:          g.ID,
		LegacyID:    strconv.FormatInt(g.ID, 10),
		Name:        g.Name,
		Price:       g.Price,
		Location:    g.Location,
		Quantity:    &qty,
		Stock:       &qty, // invariante: quantity == stock en reposo
		MinQuantity: g.MinQuantity,
		Description: g.Description,
		CreatedAt:   formatTime(g.CreatedAt),
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
}

func recordToHistory(r historyRecord) *entity.HistoryRecord {
	return &entity.HistoryRecord{
		ID:            r.ID,
		GoodsName:     r.GoodsName,
		OperationType: r.OperationType,
		Quantity:      r.Quantity,
		Notes:         r.Notes,
		CreatedAt:     parseTime(r.Timestamp),
	}
}

func historyToRecord(h *entity.HistoryRecord) historyRecord {
	ts := formatTime(h.CreatedAt)
	return historyRecord{
		ID:            h.ID,
		LegacyID:      strconv.FormatInt(h.ID, 10),
		GoodsName:     h.GoodsName,
		OperationType: h.OperationType,
		Quantity:      h.Quantity,
		Notes:         h.Notes,
		Timestamp:     ts,
		Time:          ts, // alias legado, siempre igual a timestamp
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(entity.TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.TimeLayout)
}
