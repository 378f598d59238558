package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

type orderRow struct {
	ID           string          `db:"id"`
	UserID       string          `db:"user_id"`
	CustomerID   *string         `db:"customer_id"`
	CustomerName string          `db:"customer_name"`
	OrderType    string          `db:"order_type"`
	Status       string          `db:"status"`
	Total        decimal.Decimal `db:"total"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type orderItemRow struct {
	ID        string          `db:"id"`
	OrderID   string          `db:"order_id"`
	ProductID *string         `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

var orderColumns = []string{"id", "user_id", "customer_id", "customer_name", "order_type", "status", "total", "created_at", "updated_at"}

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Create debe ejecutarse dentro de una tx (cabecera + líneas).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la orden y sus líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, user_id, customer_id, customer_name, order_type, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.UserID, o.CustomerID, o.CustomerName, o.Type, o.Status, o.Total, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4, $5)`,
			it.ID, o.ID, it.ProductID, it.Quantity, it.Price,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: producto de la línea no existe", domain.ErrNotFound)
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, psql.Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id}))
}

// GetForUpdate obtiene la orden bloqueando la fila de cabecera.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, psql.Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *OrderRepo) getOne(ctx context.Context, q squirrel.SelectBuilder) (*entity.Order, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row orderRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	orders, err := r.withItems(ctx, []orderRow{row})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// List lista órdenes (con líneas), las más recientes primero.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	q := psql.Select(orderColumns...).From("orders").OrderBy("created_at DESC")
	if filter.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []orderRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return r.withItems(ctx, rows)
}

// withItems carga en una sola consulta las líneas de todas las órdenes.
func (r *OrderRepo) withItems(ctx context.Context, rows []orderRow) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}
	ids := make([]string, 0, len(rows))
	byID := make(map[string]*entity.Order, len(rows))
	for _, row := range rows {
		o := &entity.Order{
			ID: row.ID, UserID: row.UserID, CustomerID: row.CustomerID, CustomerName: row.CustomerName,
			Type: row.OrderType, Status: row.Status, Total: row.Total,
			CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
		}
		orders = append(orders, o)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	sql, args, err := psql.Select("id", "order_id", "product_id", "quantity", "price").
		From("order_items").
		Where(squirrel.Eq{"order_id": ids}).
		OrderBy("order_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var items []orderItemRow
	if err := pgxscan.Select(ctx, r.q, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	for _, it := range items {
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, entity.OrderItem{
				ID: it.ID, OrderID: it.OrderID, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price,
			})
		}
	}
	return orders, nil
}

// UpdateStatus cambia el estado de la orden.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden; las líneas caen por CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
