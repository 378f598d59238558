package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

// TransferUseCase flujo de transferencias de stock entre localizadores:
// pending -> processing -> completed, o cancelled desde cualquier estado no completado.
type TransferUseCase struct {
	repos    ports.TxRepos
	txRunner ports.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewTransferUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewTransferUseCase(repos ports.TxRepos, txRunner ports.TxRunner, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{
		repos:    repos,
		txRunner: txRunner,
		log:      log.Named("stock_transfers"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// endpoint localizador con su sub-inventario y categoría opcional ya resueltos.
type endpoint struct {
	locator  *entity.Locator
	subName  string
	category *entity.Category
}

// Create valida y registra una transferencia pending, capturando los nombres de origen y destino.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.StockTransferResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.SourceLocatorID == in.DestinationLocatorID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidInput)
	}
	src, err := uc.resolveEndpoint(ctx, in.SourceLocatorID, in.SourceCategoryID)
	if err != nil {
		return nil, err
	}
	dst, err := uc.resolveEndpoint(ctx, in.DestinationLocatorID, in.DestinationCategoryID)
	if err != nil {
		return nil, err
	}
	if err := inventory.EnsureAvailable(product.Stock, in.Quantity); err != nil {
		return nil, err
	}

	now := uc.now()
	t := &entity.StockTransfer{
		ID:                    uuid.New().String(),
		ProductID:             product.ID,
		SourceLocatorID:       &src.locator.ID,
		DestinationLocatorID:  &dst.locator.ID,
		SourceCategoryID:      in.SourceCategoryID,
		DestinationCategoryID: in.DestinationCategoryID,
		Quantity:              in.Quantity,
		Status:                entity.TransferStatusPending,
		Notes:                 in.Notes,

		SourceSubInventoryName:      src.subName,
		SourceLocatorName:           src.locator.Code,
		SourceProductName:           product.Name,
		DestinationSubInventoryName: dst.subName,
		DestinationLocatorName:      dst.locator.Code,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if userID != "" {
		t.CreatedBy = &userID
	}
	if src.category != nil {
		t.SourceCategoryName = src.category.Name
	}
	if dst.category != nil {
		t.DestinationCategoryName = dst.category.Name
	}
	if err := uc.repos.Transfers.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("transfer_id", t.ID).
		Str("product_id", t.ProductID).
		Int("quantity", t.Quantity).
		Msg("transferencia creada")
	return uc.respond(ctx, t, newLookup())
}

// List filtra por estado y rango de created_at; más reciente primero.
func (uc *TransferUseCase) List(ctx context.Context, status string, from, to *time.Time) ([]dto.StockTransferResponse, error) {
	if status != "" && !entity.ValidTransferStatus(status) {
		return nil, fmt.Errorf("%w: estado '%s' desconocido", domain.ErrInvalidInput, status)
	}
	list, err := uc.repos.Transfers.List(ctx, repository.TransferFilter{Status: status, From: from, To: to})
	if err != nil {
		return nil, err
	}
	lk := newLookup()
	out := make([]dto.StockTransferResponse, 0, len(list))
	for _, t := range list {
		r, err := uc.respond(ctx, t, lk)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// Get obtiene una transferencia por ID.
func (uc *TransferUseCase) Get(ctx context.Context, id string) (*dto.StockTransferResponse, error) {
	t, err := uc.GetEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, t, newLookup())
}

// GetEntity obtiene la entidad (lo usa el reporte PDF).
func (uc *TransferUseCase) GetEntity(ctx context.Context, id string) (*entity.StockTransfer, error) {
	t, err := uc.repos.Transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transferencia %s", domain.ErrNotFound, id)
	}
	return t, nil
}

// Approve pasa de pending a processing.
func (uc *TransferUseCase) Approve(ctx context.Context, id string) (*dto.StockTransferResponse, error) {
	return uc.transition(ctx, id, entity.TransferEventApprove)
}

// Cancel cancela una transferencia que no esté completada.
func (uc *TransferUseCase) Cancel(ctx context.Context, id string) (*dto.StockTransferResponse, error) {
	return uc.transition(ctx, id, entity.TransferEventCancel)
}

func (uc *TransferUseCase) transition(ctx context.Context, id, event string) (*dto.StockTransferResponse, error) {
	var updated *entity.StockTransfer
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		t, err := lockTransfer(ctx, repos, id)
		if err != nil {
			return err
		}
		from := t.Status
		if err := t.Apply(event, uc.now()); err != nil {
			return err
		}
		if err := repos.Transfers.UpdateStatus(ctx, t); err != nil {
			return err
		}
		uc.log.Info().Str("transfer_id", id).Str("from", from).Str("to", t.Status).Msg("transición de transferencia")
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, updated, newLookup())
}

// Complete mueve el stock y marca la transferencia como completed, todo en una transacción.
// Bloquea la transferencia y luego los productos de origen y destino en orden de ID; re-verifica
// el stock disponible. La categoría destino sale del id explícito o, si no, del nombre capturado;
// se suma al producto homónimo de esa categoría o se crea uno copiando nombre, descripción y precio.
func (uc *TransferUseCase) Complete(ctx context.Context, id string) (*dto.StockTransferResponse, error) {
	var updated *entity.StockTransfer
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		t, err := lockTransfer(ctx, repos, id)
		if err != nil {
			return err
		}
		if t.Status != entity.TransferStatusProcessing {
			return fmt.Errorf("%w: no se puede completar una transferencia en estado '%s'", domain.ErrInvalidTransition, t.Status)
		}
		current, err := repos.Products.GetByID(ctx, t.ProductID)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: producto de origen %s", domain.ErrNotFound, t.ProductID)
		}
		destCategoryID, err := resolveDestinationCategory(ctx, repos, t)
		if err != nil {
			return err
		}
		var destID string
		if destCategoryID != nil {
			d, err := repos.Products.GetByNameAndCategory(ctx, current.Name, *destCategoryID)
			if err != nil {
				return err
			}
			if d != nil {
				destID = d.ID
			}
		}

		source, dest, err := lockProducts(ctx, repos, t.ProductID, destID)
		if err != nil {
			return err
		}
		remaining, err := inventory.Withdraw(source.Stock, t.Quantity)
		if err != nil {
			return err
		}

		now := uc.now()
		switch {
		case dest != nil && dest.ID == source.ID:
			// mismo registro: la salida y la entrada se anulan
		case dest != nil:
			added, err := inventory.Deposit(dest.Stock, t.Quantity)
			if err != nil {
				return err
			}
			if err := repos.Products.UpdateStock(ctx, dest.ID, added); err != nil {
				return err
			}
			if err := repos.Products.UpdateStock(ctx, source.ID, remaining); err != nil {
				return err
			}
		default:
			created := &entity.Product{
				ID:          uuid.New().String(),
				Name:        source.Name,
				Description: source.Description,
				Price:       source.Price,
				Stock:       t.Quantity,
				CategoryID:  destCategoryID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repos.Products.Create(ctx, created); err != nil {
				return err
			}
			if err := repos.Products.UpdateStock(ctx, source.ID, remaining); err != nil {
				return err
			}
		}

		if err := t.Apply(entity.TransferEventComplete, now); err != nil {
			return err
		}
		if err := repos.Transfers.UpdateStatus(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("transfer_id", id).Msg("no se pudo completar la transferencia")
		return nil, err
	}
	uc.log.Info().Str("transfer_id", id).Int("quantity", updated.Quantity).Msg("transferencia completada")
	return uc.respond(ctx, updated, newLookup())
}

// lockProducts bloquea origen y destino (si lo hay) siempre en orden de ID, de modo que dos
// transferencias en sentidos opuestos no se bloqueen mutuamente.
func lockProducts(ctx context.Context, repos ports.TxRepos, sourceID, destID string) (source, dest *entity.Product, err error) {
	ids := []string{sourceID}
	if destID != "" && destID != sourceID {
		ids = append(ids, destID)
		sort.Strings(ids)
	}
	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		locked[id] = p
	}
	source = locked[sourceID]
	if destID != "" {
		dest = locked[destID]
	}
	return source, dest, nil
}

func lockTransfer(ctx context.Context, repos ports.TxRepos, id string) (*entity.StockTransfer, error) {
	t, err := repos.Transfers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transferencia %s", domain.ErrNotFound, id)
	}
	return t, nil
}

// resolveDestinationCategory: id explícito de la transferencia; si no, búsqueda por el nombre capturado; si no, nil.
func resolveDestinationCategory(ctx context.Context, repos ports.TxRepos, t *entity.StockTransfer) (*string, error) {
	if t.DestinationCategoryID != nil {
		return t.DestinationCategoryID, nil
	}
	if t.DestinationCategoryName == "" {
		return nil, nil
	}
	cat, err := repos.Categories.GetByName(ctx, t.DestinationCategoryName)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	return &cat.ID, nil
}

func (uc *TransferUseCase) resolveEndpoint(ctx context.Context, locatorID string, categoryID *string) (*endpoint, error) {
	loc, err := uc.repos.Locators.GetByID(ctx, locatorID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: localizador %s", domain.ErrNotFound, locatorID)
	}
	ep := &endpoint{locator: loc}
	sub, err := uc.repos.SubInventories.GetByID(ctx, loc.SubInventoryID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		ep.subName = sub.Name
	}
	if categoryID != nil {
		cat, err := uc.repos.Categories.GetByID(ctx, *categoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, *categoryID)
		}
		ep.category = cat
	}
	return ep, nil
}

// lookup cachea productos y localizadores durante el armado de una respuesta.
type lookup struct {
	products map[string]*entity.Product
	locators map[string]*entity.Locator
}

func newLookup() *lookup {
	return &lookup{products: map[string]*entity.Product{}, locators: map[string]*entity.Locator{}}
}

func (uc *TransferUseCase) product(ctx context.Context, lk *lookup, id string) (*entity.Product, error) {
	if p, ok := lk.products[id]; ok {
		return p, nil
	}
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lk.products[id] = p
	return p, nil
}

func (uc *TransferUseCase) locator(ctx context.Context, lk *lookup, id *string) (*entity.Locator, error) {
	if id == nil {
		return nil, nil
	}
	if l, ok := lk.locators[*id]; ok {
		return l, nil
	}
	l, err := uc.repos.Locators.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	lk.locators[*id] = l
	return l, nil
}

func (uc *TransferUseCase) respond(ctx context.Context, t *entity.StockTransfer, lk *lookup) (*dto.StockTransferResponse, error) {
	p, err := uc.product(ctx, lk, t.ProductID)
	if err != nil {
		return nil, err
	}
	src, err := uc.locator(ctx, lk, t.SourceLocatorID)
	if err != nil {
		return nil, err
	}
	dst, err := uc.locator(ctx, lk, t.DestinationLocatorID)
	if err != nil {
		return nil, err
	}
	out := ToTransferResponse(t)
	if p != nil {
		out.Product = &dto.ProductSummary{ID: p.ID, Name: p.Name}
	}
	if src != nil {
		out.Source = &dto.LocatorSummary{ID: src.ID, Code: src.Code}
	}
	if dst != nil {
		out.Destination = &dto.LocatorSummary{ID: dst.ID, Code: dst.Code}
	}
	return &out, nil
}

// ToTransferResponse copia los campos propios de la transferencia, sin resúmenes relacionados.
func ToTransferResponse(t *entity.StockTransfer) dto.StockTransferResponse {
	return dto.StockTransferResponse{
		ID:                          t.ID,
		ProductID:                   t.ProductID,
		SourceLocatorID:             t.SourceLocatorID,
		DestinationLocatorID:        t.DestinationLocatorID,
		SourceCategoryID:            t.SourceCategoryID,
		DestinationCategoryID:       t.DestinationCategoryID,
		Quantity:                    t.Quantity,
		Status:                      t.Status,
		Notes:                       t.Notes,
		CreatedBy:                   t.CreatedBy,
		SourceSubInventoryName:      t.SourceSubInventoryName,
		SourceLocatorName:           t.SourceLocatorName,
		SourceCategoryName:          t.SourceCategoryName,
		SourceProductName:           t.SourceProductName,
		DestinationSubInventoryName: t.DestinationSubInventoryName,
		DestinationLocatorName:      t.DestinationLocatorName,
		DestinationCategoryName:     t.DestinationCategoryName,
		CreatedAt:                   t.CreatedAt,
		UpdatedAt:                   t.UpdatedAt,
	}
}
