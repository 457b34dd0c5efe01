package dto

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// CreateGoodsRequest entrada para crear una mercancía. quantity y stock son el
// mismo campo para el cliente legado; si llegan ambos con valores distintos
// gana quantity (regla única de precedencia, ver DESIGN.md).
type CreateGoodsRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Location    string           `json:"location"`
	Quantity    *FlexInt         `json:"quantity"`
	Stock       *FlexInt         `json:"stock"`
	MinQuantity *FlexInt         `json:"min_quantity"`
	Description string           `json:"description"`
}

// InitialQuantity resuelve la cantidad inicial: quantity, si no stock, si no 0.
func (r CreateGoodsRequest) InitialQuantity() int {
	if r.Quantity != nil {
		return r.Quantity.Int()
	}
	if r.Stock != nil {
		return r.Stock.Int()
	}
	return 0
}

// UpdateGoodsRequest entrada de actualización parcial: solo los campos
// presentes en el JSON se aplican (puntero nil = campo ausente).
type UpdateGoodsRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Location    *string          `json:"location"`
	Quantity    *FlexInt         `json:"quantity"`
	Stock       *FlexInt         `json:"stock"`
	MinQuantity *FlexInt         `json:"min_quantity"`
	Description *string          `json:"description"`
}

// NewQuantity resuelve la cantidad pedida con la misma precedencia que en la
// creación; el segundo valor indica si alguno de los dos alias llegó.
func (r UpdateGoodsRequest) NewQuantity() (int, bool) {
	if r.Quantity != nil {
		return r.Quantity.Int(), true
	}
	if r.Stock != nil {
		return r.Stock.Int(), true
	}
	return 0, false
}

// StockRequest entrada de entrada/salida de stock.
type StockRequest struct {
	Quantity *FlexInt `json:"quantity"`
	Notes    string   `json:"notes"`
}

// GoodsResponse salida de una mercancía. Aquí se materializan los alias del
// cliente legado: _id = str(id) y stock = quantity, siempre iguales a su
// campo canónico.
type GoodsResponse struct {
	ID          int64           `json:"id"`
	LegacyID    string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Quantity    int             `json:"quantity"`
	Stock       int             `json:"stock"`
	MinQuantity int             `json:"min_quantity"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// NewGoodsResponse proyecta la entidad al contrato legado.
func NewGoodsResponse(g *entity.Goods) *GoodsResponse {
	if g == nil {
		return nil
	}
	return &GoodsResponse{
		ID:          g.ID,
		LegacyID:    strconv.FormatInt(g.ID, 10),
		Name:        g.Name,
		Price:       g.Price,
		Location:    g.Location,
		Quantity:    g.Quantity,
		Stock:       g.Quantity,
		MinQuantity: g.MinQuantity,
		Description: g.Description,
		CreatedAt:   formatTime(g.CreatedAt),
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
}

// NewGoodsList proyecta una lista de entidades.
func NewGoodsList(list []*entity.Goods) []GoodsResponse {
	items := make([]GoodsResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *NewGoodsResponse(g))
	}
	return items
}

// GoodsListResponse lista de mercancías: {"goods": [...]}.
type GoodsListResponse struct {
	Goods []GoodsResponse `json:"goods"`
}

// GoodsMutationResponse resultado de crear/actualizar/eliminar: {"success", "goods"}.
type GoodsMutationResponse struct {
	Success bool           `json:"success"`
	Goods   *GoodsResponse `json:"goods"`
}

// LocationResponse proyección de ubicación de una mercancía.
type LocationResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// PriceResponse proyección de precio de una mercancía.
type PriceResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.TimeLayout)
}
