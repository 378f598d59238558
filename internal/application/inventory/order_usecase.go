package inventory

import (
	"context"
	"fmt"
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

// OrderUseCase órdenes de venta y compra. El stock solo se mueve al aprobar.
type OrderUseCase struct {
	repos    ports.TxRepos
	txRunner ports.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repos ports.TxRepos, txRunner ports.TxRunner, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{
		repos:    repos,
		txRunner: txRunner,
		log:      log.Named("orders"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create valida productos, stock (solo ventas) y cliente, y persiste cabecera y líneas en una transacción.
func (uc *OrderUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderType(in.Type) {
		return nil, fmt.Errorf("%w: el tipo debe ser sell o purchase", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden debe tener al menos una línea", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
	}

	now := uc.now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		Type:      in.Type,
		Status:    entity.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	names := map[string]string{}
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		if in.CustomerID != nil {
			c, err := repos.Customers.GetByID(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, *in.CustomerID)
			}
			order.CustomerID = &c.ID
			order.CustomerName = c.Name
		}
		for _, it := range in.Items {
			p, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			if in.Type == entity.OrderTypeSell {
				if err := inventory.EnsureAvailable(p.Stock, it.Quantity); err != nil {
					return fmt.Errorf("%w (producto %s)", err, p.Name)
				}
			}
			names[p.ID] = p.Name
			productID := p.ID
			order.Items = append(order.Items, entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: &productID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		order.CalculateTotal()
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("type", order.Type).Str("total", order.Total.String()).Msg("orden creada")
	out := toOrderResponse(order, names)
	return &out, nil
}

// List devuelve las órdenes visibles para el actor, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, actor *entity.User) ([]dto.OrderResponse, error) {
	filter := repository.OrderFilter{}
	if !actor.SeesAllOrders() {
		filter.UserID = &actor.ID
	}
	orders, err := uc.repos.Orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names, err := uc.productNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, names))
	}
	return out, nil
}

// GetVisible obtiene una orden si el actor puede verla; si no, ErrNotFound.
func (uc *OrderUseCase) GetVisible(ctx context.Context, actor *entity.User, id string) (*entity.Order, error) {
	o, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || (!actor.SeesAllOrders() && o.UserID != actor.ID) {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return o, nil
}

// UpdateStatus cambio manual de estado; solo el creador de la orden.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor *entity.User, id, status string) (*dto.OrderResponse, error) {
	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil || o.UserID != actor.ID {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		if err := o.SetStatus(status, uc.now()); err != nil {
			return err
		}
		updated = o
		return repos.Orders.UpdateStatus(ctx, o.ID, o.Status, o.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, updated)
}

// Delete elimina una orden visible para el actor; las líneas caen en cascada.
func (uc *OrderUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if _, err := uc.GetVisible(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.repos.Orders.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("order_id", id).Str("user_id", actor.ID).Msg("orden eliminada")
	return nil
}

// Approve completa una orden pending moviendo el stock de todas sus líneas o de ninguna:
// las ventas descuentan (fallan si no alcanza) y las compras suman.
func (uc *OrderUseCase) Approve(ctx context.Context, id string) (*dto.OrderResponse, error) {
	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		if err := o.Approve(uc.now()); err != nil {
			return err
		}
		for _, it := range o.Items {
			if it.ProductID == nil {
				return fmt.Errorf("%w: una línea referencia un producto eliminado", domain.ErrNotFound)
			}
			p, err := repos.Products.GetForUpdate(ctx, *it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, *it.ProductID)
			}
			var stock int
			if o.Type == entity.OrderTypeSell {
				stock, err = inventory.Withdraw(p.Stock, it.Quantity)
			} else {
				stock, err = inventory.Deposit(p.Stock, it.Quantity)
			}
			if err != nil {
				return fmt.Errorf("%w (producto %s)", err, p.Name)
			}
			if err := repos.Products.UpdateStock(ctx, p.ID, stock); err != nil {
				return err
			}
		}
		updated = o
		return repos.Orders.UpdateStatus(ctx, o.ID, o.Status, o.UpdatedAt)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", id).Msg("no se pudo aprobar la orden")
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("type", updated.Type).Msg("orden aprobada")
	return uc.respond(ctx, updated)
}

// Reject cancela una orden pending o processing sin tocar stock.
func (uc *OrderUseCase) Reject(ctx context.Context, id string) (*dto.OrderResponse, error) {
	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		if err := o.Reject(uc.now()); err != nil {
			return err
		}
		updated = o
		return repos.Orders.UpdateStatus(ctx, o.ID, o.Status, o.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Msg("orden rechazada")
	return uc.respond(ctx, updated)
}

func (uc *OrderUseCase) respond(ctx context.Context, o *entity.Order) (*dto.OrderResponse, error) {
	names, err := uc.productNames(ctx)
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(o, names)
	return &out, nil
}

func (uc *OrderUseCase) productNames(ctx context.Context) (map[string]string, error) {
	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

func toOrderResponse(o *entity.Order, productNames map[string]string) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		OrderType:    o.Type,
		Status:       o.Status,
		Total:        o.Total,
		Items:        make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for _, it := range o.Items {
		item := dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			LineTotal: it.LineTotal(),
		}
		if it.ProductID != nil {
			item.ProductName = productNames[*it.ProductID]
		}
		out.Items = append(out.Items, item)
	}
	return out
}
