package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

type stockTransferRow struct {
	ID                          string    `db:"id"`
	ProductID                   string    `db:"product_id"`
	SourceLocatorID             *string   `db:"source_locator_id"`
	DestinationLocatorID        *string   `db:"destination_locator_id"`
	SourceCategoryID            *string   `db:"source_category_id"`
	DestinationCategoryID       *string   `db:"destination_category_id"`
	Quantity                    int       `db:"quantity"`
	Status                      string    `db:"status"`
	Notes                       string    `db:"notes"`
	CreatedBy                   *string   `db:"created_by"`
	SourceSubInventoryName      string    `db:"source_subinventory_name"`
	SourceLocatorName           string    `db:"source_locator_name"`
	SourceCategoryName          string    `db:"source_category_name"`
	SourceProductName           string    `db:"source_product_name"`
	DestinationSubInventoryName string    `db:"destination_subinventory_name"`
	DestinationLocatorName      string    `db:"destination_locator_name"`
	DestinationCategoryName     string    `db:"destination_category_name"`
	CreatedAt                   time.Time `db:"created_at"`
	UpdatedAt                   time.Time `db:"updated_at"`
}

func (r stockTransferRow) toEntity() *entity.StockTransfer {
	return &entity.StockTransfer{
		ID:                          r.ID,
		ProductID:                   r.ProductID,
		SourceLocatorID:             r.SourceLocatorID,
		DestinationLocatorID:        r.DestinationLocatorID,
		SourceCategoryID:            r.SourceCategoryID,
		DestinationCategoryID:       r.DestinationCategoryID,
		Quantity:                    r.Quantity,
		Status:                      r.Status,
		Notes:                       r.Notes,
		CreatedBy:                   r.CreatedBy,
		SourceSubInventoryName:      r.SourceSubInventoryName,
		SourceLocatorName:           r.SourceLocatorName,
		SourceCategoryName:          r.SourceCategoryName,
		SourceProductName:           r.SourceProductName,
		DestinationSubInventoryName: r.DestinationSubInventoryName,
		DestinationLocatorName:      r.DestinationLocatorName,
		DestinationCategoryName:     r.DestinationCategoryName,
		CreatedAt:                   r.CreatedAt,
		UpdatedAt:                   r.UpdatedAt,
	}
}

var stockTransferColumns = []string{
	"id", "product_id", "source_locator_id", "destination_locator_id",
	"source_category_id", "destination_category_id", "quantity", "status", "notes", "created_by",
	"source_subinventory_name", "source_locator_name", "source_category_name", "source_product_name",
	"destination_subinventory_name", "destination_locator_name", "destination_category_name",
	"created_at", "updated_at",
}

// StockTransferRepo implementación del puerto StockTransferRepository sobre PostgreSQL.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create persiste la transferencia con los nombres capturados al crearla.
func (r *StockTransferRepo) Create(ctx context.Context, t *entity.StockTransfer) error {
	sql, args, err := psql.Insert("stock_transfers").
		Columns(stockTransferColumns...).
		Values(
			t.ID, t.ProductID, t.SourceLocatorID, t.DestinationLocatorID,
			t.SourceCategoryID, t.DestinationCategoryID, t.Quantity, t.Status, t.Notes, t.CreatedBy,
			t.SourceSubInventoryName, t.SourceLocatorName, t.SourceCategoryName, t.SourceProductName,
			t.DestinationSubInventoryName, t.DestinationLocatorName, t.DestinationCategoryName,
			t.CreatedAt, t.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto, localizador o categoría referenciada no existe", domain.ErrNotFound)
		}
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	return nil
}

// GetByID obtiene una transferencia por ID.
func (r *StockTransferRepo) GetByID(ctx context.Context, id string) (*entity.StockTransfer, error) {
	return r.getOne(ctx, psql.Select(stockTransferColumns...).From("stock_transfers").Where(squirrel.Eq{"id": id}))
}

// GetForUpdate obtiene la transferencia bloqueando su fila.
func (r *StockTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockTransfer, error) {
	return r.getOne(ctx, psql.Select(stockTransferColumns...).From("stock_transfers").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *StockTransferRepo) getOne(ctx context.Context, q squirrel.SelectBuilder) (*entity.StockTransfer, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row stockTransferRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	return row.toEntity(), nil
}

// List lista transferencias aplicando los filtros presentes.
func (r *StockTransferRepo) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.StockTransfer, error) {
	sql, args, err := transferListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []stockTransferRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock transfers: %w", err)
	}
	list := make([]*entity.StockTransfer, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// transferListQuery arma el SELECT del listado según el filtro.
func transferListQuery(filter repository.TransferFilter) squirrel.SelectBuilder {
	q := psql.Select(stockTransferColumns...).From("stock_transfers")
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.ProductID != "" {
		q = q.Where(squirrel.Eq{"product_id": filter.ProductID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.To})
	}
	if filter.Ascending {
		return q.OrderBy("created_at ASC", "id")
	}
	return q.OrderBy("created_at DESC", "id")
}

// UpdateStatus persiste estado, notas y fecha de actualización.
func (r *StockTransferRepo) UpdateStatus(ctx context.Context, t *entity.StockTransfer) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_transfers SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		t.ID, t.Status, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CancelOpenByLocators cancela las transferencias pending/processing que tocan alguno de los localizadores.
func (r *StockTransferRepo) CancelOpenByLocators(ctx context.Context, locatorIDs []string, noteSuffix string, now time.Time) (int64, error) {
	if len(locatorIDs) == 0 {
		return 0, nil
	}
	sql, args, err := psql.Update("stock_transfers").
		Set("status", entity.TransferStatusCancelled).
		Set("notes", squirrel.Expr("notes || ?", noteSuffix)).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": []string{entity.TransferStatusPending, entity.TransferStatusProcessing}}).
		Where(squirrel.Or{
			squirrel.Eq{"source_locator_id": locatorIDs},
			squirrel.Eq{"destination_locator_id": locatorIDs},
		}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("cancel stock transfers: %w", err)
	}
	return cmd.RowsAffected(), nil
}
