package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
)

// GoodsUseCase casos de uso CRUD y de stock para mercancías. Las operaciones
// de stock pasan por el TxRunner para que la mutación y su registro de
// historial sean una sola unidad en el backend de tablas.
type GoodsUseCase struct {
	repo repository.GoodsRepository
	tx   TxRunner
}

// NewGoodsUseCase construye el caso de uso.
func NewGoodsUseCase(repo repository.GoodsRepository, tx TxRunner) *GoodsUseCase {
	return &GoodsUseCase{repo: repo, tx: tx}
}

// ResolveID interpreta un id de ruta, numérico o en su forma alias (_id, que
// por construcción es str(id)). Un valor no numérico no identifica nada.
func ResolveID(param string) (int64, bool) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// List devuelve todas las mercancías en el orden del almacén.
func (uc *GoodsUseCase) List() (*dto.GoodsListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return &dto.GoodsListResponse{Goods: dto.NewGoodsList(list)}, nil
}

// GetByID obtiene una mercancía, o (nil, nil) si no existe.
func (uc *GoodsUseCase) GetByID(id int64) (*dto.GoodsResponse, error) {
	g, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	return dto.NewGoodsResponse(g), nil
}

// Search busca por subcadena del nombre sin distinguir mayúsculas;
// un término vacío devuelve la lista completa.
func (uc *GoodsUseCase) Search(query string) (*dto.GoodsListResponse, error) {
	list, err := uc.repo.Search(query)
	if err != nil {
		return nil, err
	}
	return &dto.GoodsListResponse{Goods: dto.NewGoodsList(list)}, nil
}

// Create valida y persiste una nueva mercancía. name, price y location son
// obligatorios y no vacíos (un precio de 0 cuenta como ausente, igual que en
// el backend legado); la cantidad inicial sale de quantity/stock o es 0.
func (uc *GoodsUseCase) Create(in dto.CreateGoodsRequest) (*dto.GoodsResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: falta el campo obligatorio name", domain.ErrInvalidInput)
	}
	if in.Price == nil || in.Price.IsZero() {
		return nil, fmt.Errorf("%w: falta el campo obligatorio price", domain.ErrInvalidInput)
	}
	if in.Location == "" {
		return nil, fmt.Errorf("%w: falta el campo obligatorio location", domain.ErrInvalidInput)
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	qty := in.InitialQuantity()
	if qty < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	minQty := 0
	if in.MinQuantity != nil {
		minQty = in.MinQuantity.Int()
	}
	if minQty < 0 {
		return nil, fmt.Errorf("%w: min_quantity no puede ser negativo", domain.ErrInvalidInput)
	}

	now := time.Now()
	g := &entity.Goods{
		Name:        in.Name,
		Price:       *in.Price,
		Location:    in.Location,
		Quantity:    qty,
		MinQuantity: minQty,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(g); err != nil {
		return nil, err
	}
	return dto.NewGoodsResponse(g), nil
}

// Update aplica solo los campos presentes en la petición y refresca
// updated_at. Devuelve (nil, nil) si el id no existe.
func (uc *GoodsUseCase) Update(id int64, in dto.UpdateGoodsRequest) (*dto.GoodsResponse, error) {
	g, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		g.Price = *in.Price
	}
	if in.Location != nil {
		g.Location = *in.Location
	}
	if qty, ok := in.NewQuantity(); ok {
		if qty < 0 {
			return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
		}
		g.Quantity = qty
	}
	if in.MinQuantity != nil {
		if in.MinQuantity.Int() < 0 {
			return nil, fmt.Errorf("%w: min_quantity no puede ser negativo", domain.ErrInvalidInput)
		}
		g.MinQuantity = in.MinQuantity.Int()
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	g.UpdatedAt = time.Now()
	if err := uc.repo.Update(g); err != nil {
		return nil, err
	}
	return dto.NewGoodsResponse(g), nil
}

// Delete elimina la mercancía y devuelve su snapshot, o (nil, nil) si no existe.
func (uc *GoodsUseCase) Delete(id int64) (*dto.GoodsResponse, error) {
	g, err := uc.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	return dto.NewGoodsResponse(g), nil
}

// StockIn suma cantidad al stock y registra el evento en el historial con
// delta positivo. La cantidad debe ser mayor que 0.
func (uc *GoodsUseCase) StockIn(ctx context.Context, id int64, in dto.StockRequest) (*dto.GoodsResponse, error) {
	qty, err := stockQuantity(in)
	if err != nil {
		return nil, err
	}
	var out *dto.GoodsResponse
	err = uc.tx.Run(ctx, func(goodsRepo repository.GoodsRepository, historyRepo repository.HistoryRepository) error {
		g, err := goodsRepo.GetByID(id)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrGoodsNotFound
		}
		now := time.Now()
		g.Quantity += qty
		g.UpdatedAt = now
		if err := goodsRepo.Update(g); err != nil {
			return err
		}
		rec := &entity.HistoryRecord{
			GoodsName:     g.Name,
			OperationType: entity.OperationStockIn,
			Quantity:      qty,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		if err := historyRepo.Create(rec); err != nil {
			return err
		}
		out = dto.NewGoodsResponse(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StockOut resta cantidad del stock y registra el evento con delta negativo.
// Rechaza la operación sin mutar nada si la cantidad excede el stock actual.
func (uc *GoodsUseCase) StockOut(ctx context.Context, id int64, in dto.StockRequest) (*dto.GoodsResponse, error) {
	qty, err := stockQuantity(in)
	if err != nil {
		return nil, err
	}
	var out *dto.GoodsResponse
	err = uc.tx.Run(ctx, func(goodsRepo repository.GoodsRepository, historyRepo repository.HistoryRepository) error {
		g, err := goodsRepo.GetByID(id)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrGoodsNotFound
		}
		if qty > g.Quantity {
			return fmt.Errorf("%w, stock actual: %d", domain.ErrInsufficientStock, g.Quantity)
		}
		now := time.Now()
		g.Quantity -= qty
		g.UpdatedAt = now
		if err := goodsRepo.Update(g); err != nil {
			return err
		}
		rec := &entity.HistoryRecord{
			GoodsName:     g.Name,
			OperationType: entity.OperationStockOut,
			Quantity:      -qty,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		if err := historyRepo.Create(rec); err != nil {
			return err
		}
		out = dto.NewGoodsResponse(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetLocation proyecta la ubicación de una mercancía, o (nil, nil) si no existe.
func (uc *GoodsUseCase) GetLocation(id int64) (*dto.LocationResponse, error) {
	g, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	return &dto.LocationResponse{ID: g.ID, Name: g.Name, Location: g.Location}, nil
}

// GetPrice proyecta el precio de una mercancía, o (nil, nil) si no existe.
func (uc *GoodsUseCase) GetPrice(id int64) (*dto.PriceResponse, error) {
	g, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	return &dto.PriceResponse{ID: g.ID, Name: g.Name, Price: g.Price}, nil
}

// LowStock devuelve las mercancías en o por debajo de su umbral de reposición.
func (uc *GoodsUseCase) LowStock() (*dto.GoodsListResponse, error) {
	list, err := uc.repo.LowStock()
	if err != nil {
		return nil, err
	}
	return &dto.GoodsListResponse{Goods: dto.NewGoodsList(list)}, nil
}

// stockQuantity valida la cantidad de una operación de stock: presente y > 0.
func stockQuantity(in dto.StockRequest) (int, error) {
	if in.Quantity == nil || in.Quantity.Int() <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	return in.Quantity.Int(), nil
}
