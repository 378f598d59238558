package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

// DefaultHistoryWindow ventana usada cuando no se indica ninguna fecha.
const DefaultHistoryWindow = 180 * 24 * time.Hour

// StockHistoryUseCase arma el historial de movimientos a partir de las transferencias completadas.
type StockHistoryUseCase struct {
	transfers   repository.StockTransferRepository
	products    repository.ProductRepository
	locatorRepo repository.LocatorRepository
	now         func() time.Time
}

// NewStockHistoryUseCase construye el caso de uso.
func NewStockHistoryUseCase(
	transfers repository.StockTransferRepository,
	products repository.ProductRepository,
	locatorRepo repository.LocatorRepository,
) *StockHistoryUseCase {
	return &StockHistoryUseCase{
		transfers:   transfers,
		products:    products,
		locatorRepo: locatorRepo,
		now:         time.Now,
	}
}

// ProductHistory historial de un producto: por cada transferencia una salida (cantidad negativa)
// desde el origen y una entrada (positiva) al destino. 404 si el producto no existe.
func (uc *StockHistoryUseCase) ProductHistory(ctx context.Context, productID string, from, to *time.Time) ([]dto.StockHistoryEntry, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	transfers, err := uc.completed(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.entries(ctx, transfers, true)
}

// History historial de todos los productos; ambas entradas llevan la cantidad positiva.
func (uc *StockHistoryUseCase) History(ctx context.Context, from, to *time.Time) ([]dto.StockHistoryEntry, error) {
	transfers, err := uc.completed(ctx, "", from, to)
	if err != nil {
		return nil, err
	}
	return uc.entries(ctx, transfers, false)
}

func (uc *StockHistoryUseCase) completed(ctx context.Context, productID string, from, to *time.Time) ([]*entity.StockTransfer, error) {
	if from == nil && to == nil {
		since := uc.now().Add(-DefaultHistoryWindow)
		from = &since
	}
	return uc.transfers.List(ctx, repository.TransferFilter{
		Status:    entity.TransferStatusCompleted,
		ProductID: productID,
		From:      from,
		To:        to,
		Ascending: true,
	})
}

func (uc *StockHistoryUseCase) entries(ctx context.Context, transfers []*entity.StockTransfer, signed bool) ([]dto.StockHistoryEntry, error) {
	out := make([]dto.StockHistoryEntry, 0, 2*len(transfers))
	locs := map[string]*entity.Locator{}
	names := map[string]string{}
	for _, t := range transfers {
		src, err := uc.location(ctx, locs, t.SourceLocatorID, t.SourceLocatorName)
		if err != nil {
			return nil, err
		}
		dst, err := uc.location(ctx, locs, t.DestinationLocatorID, t.DestinationLocatorName)
		if err != nil {
			return nil, err
		}
		productName, err := uc.productName(ctx, names, t)
		if err != nil {
			return nil, err
		}
		var notes string
		outQty := t.Quantity
		if signed {
			notes = fmt.Sprintf("Transfer from %s to %s", orUnknown(t.SourceLocatorName), orUnknown(t.DestinationLocatorName))
			outQty = -t.Quantity
		}
		out = append(out,
			dto.StockHistoryEntry{
				ID: t.ID + "-out", Date: t.CreatedAt, Quantity: outQty, Type: entity.MovementTypeOut,
				Notes: notes, Location: src, ProductID: t.ProductID, ProductName: productName, TransferID: t.ID,
			},
			dto.StockHistoryEntry{
				ID: t.ID + "-in", Date: t.CreatedAt, Quantity: t.Quantity, Type: entity.MovementTypeIn,
				Notes: notes, Location: dst, ProductID: t.ProductID, ProductName: productName, TransferID: t.ID,
			},
		)
	}
	return out, nil
}

// location resumen del localizador; si ya no existe se usa el código capturado en la transferencia.
func (uc *StockHistoryUseCase) location(ctx context.Context, cache map[string]*entity.Locator, id *string, snapshot string) (*dto.LocatorSummary, error) {
	if id == nil {
		return nil, nil
	}
	loc, ok := cache[*id]
	if !ok {
		var err error
		loc, err = uc.locatorRepo.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		cache[*id] = loc
	}
	if loc == nil {
		return &dto.LocatorSummary{ID: *id, Code: snapshot}, nil
	}
	return &dto.LocatorSummary{ID: loc.ID, Code: loc.Code}, nil
}

func (uc *StockHistoryUseCase) productName(ctx context.Context, cache map[string]string, t *entity.StockTransfer) (string, error) {
	if name, ok := cache[t.ProductID]; ok {
		return name, nil
	}
	p, err := uc.products.GetByID(ctx, t.ProductID)
	if err != nil {
		return "", err
	}
	name := t.SourceProductName
	if p != nil {
		name = p.Name
	}
	cache[t.ProductID] = name
	return name, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
