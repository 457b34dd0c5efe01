package dto

import (
	"strconv"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// HistoryResponse salida de un registro del historial. Los alias legados
// (_id = str(id), time = timestamp) se materializan aquí.
type HistoryResponse struct {
	ID            int64  `json:"id"`
	LegacyID      string `json:"_id"`
	GoodsName     string `json:"goods_name"`
	OperationType string `json:"operation_type"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
	Timestamp     string `json:"timestamp"`
	Time          string `json:"time"`
}

// NewHistoryResponse proyecta la entidad al contrato legado.
func NewHistoryResponse(h *entity.HistoryRecord) *HistoryResponse {
	if h == nil {
		return nil
	}
	ts := formatTime(h.CreatedAt)
	return &HistoryResponse{
		ID:            h.ID,
		LegacyID:      strconv.FormatInt(h.ID, 10),
		GoodsName:     h.GoodsName,
		OperationType: h.OperationType,
		Quantity:      h.Quantity,
		Notes:         h.Notes,
		Timestamp:     ts,
		Time:          ts,
	}
}

// NewHistoryList proyecta una lista de registros.
func NewHistoryList(list []*entity.HistoryRecord) []HistoryResponse {
	items := make([]HistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *NewHistoryResponse(h))
	}
	return items
}

// HistoryListResponse lista del historial: {"history": [...]}.
type HistoryListResponse struct {
	History []HistoryResponse `json:"history"`
}

// HistoryMutationResponse resultado de eliminar un registro: {"success", "record"}.
type HistoryMutationResponse struct {
	Success bool             `json:"success"`
	Record  *HistoryResponse `json:"record"`
}
