package usecase

import (
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// HistoryUseCase casos de uso sobre el historial de operaciones. El historial
// solo crece como efecto de las operaciones de stock; aquí únicamente se
// consulta y se poda.
type HistoryUseCase struct {
	repo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List devuelve el historial completo, del más reciente al más antiguo.
func (uc *HistoryUseCase) List() (*dto.HistoryListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return &dto.HistoryListResponse{History: dto.NewHistoryList(list)}, nil
}

// Search busca por subcadena de goods_name sin distinguir mayúsculas;
// un término vacío devuelve el historial completo.
func (uc *HistoryUseCase) Search(query string) (*dto.HistoryListResponse, error) {
	list, err := uc.repo.Search(query)
	if err != nil {
		return nil, err
	}
	return &dto.HistoryListResponse{History: dto.NewHistoryList(list)}, nil
}

// Delete elimina un registro y devuelve su snapshot, o (nil, nil) si no existe.
func (uc *HistoryUseCase) Delete(id int64) (*dto.HistoryResponse, error) {
	h, err := uc.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	return dto.NewHistoryResponse(h), nil
}

// Clear vacía el historial incondicionalmente.
func (uc *HistoryUseCase) Clear() error {
	return uc.repo.Clear()
}
