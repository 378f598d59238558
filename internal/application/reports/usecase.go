// Package reports genera los PDF de órdenes y transferencias, con caché por versión del registro.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-management-api/internal/application/inventory"
	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

// OrderLine línea de orden lista para imprimir.
type OrderLine struct {
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	LineTotal   decimal.Decimal
}

// OrderReport datos de la orden para el PDF. Customer es nil si el cliente fue eliminado;
// en ese caso se imprime Order.CustomerName.
type OrderReport struct {
	Order       *entity.Order
	Customer    *entity.Customer
	Lines       []OrderLine
	GeneratedAt time.Time
}

// TransferReport datos de la transferencia para el PDF.
type TransferReport struct {
	Transfer    *entity.StockTransfer
	GeneratedAt time.Time
}

// PDFGenerator define el puerto de salida para renderizar los reportes.
type PDFGenerator interface {
	OrderPDF(ctx context.Context, r OrderReport) ([]byte, error)
	TransferPDF(ctx context.Context, r TransferReport) ([]byte, error)
}

// UseCase reportes PDF.
type UseCase struct {
	orders    *inventory.OrderUseCase
	transfers *inventory.TransferUseCase
	repos     ports.TxRepos
	gen       PDFGenerator
	cache     ports.ReportCache
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser cache.Noop.
func NewUseCase(
	orders *inventory.OrderUseCase,
	transfers *inventory.TransferUseCase,
	repos ports.TxRepos,
	gen PDFGenerator,
	cache ports.ReportCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		orders:    orders,
		transfers: transfers,
		repos:     repos,
		gen:       gen,
		cache:     cache,
		log:       log.Named("reports"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CacheKey clave de caché: cualquier cambio en el registro mueve updated_at e invalida la entrada.
func CacheKey(kind, id string, updatedAt time.Time) string {
	return fmt.Sprintf("report:%s:%s:%d", kind, id, updatedAt.UnixNano())
}

// Order PDF de una orden visible para el actor.
func (uc *UseCase) Order(ctx context.Context, actor *entity.User, id string) ([]byte, error) {
	o, err := uc.orders.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return uc.cached(ctx, CacheKey("order", o.ID, o.UpdatedAt), func() ([]byte, error) {
		rep := OrderReport{Order: o, GeneratedAt: uc.now()}
		if o.CustomerID != nil {
			rep.Customer, err = uc.repos.Customers.GetByID(ctx, *o.CustomerID)
			if err != nil {
				return nil, err
			}
		}
		for _, it := range o.Items {
			name := "(producto eliminado)"
			if it.ProductID != nil {
				p, err := uc.repos.Products.GetByID(ctx, *it.ProductID)
				if err != nil {
					return nil, err
				}
				if p != nil {
					name = p.Name
				}
			}
			rep.Lines = append(rep.Lines, OrderLine{
				ProductName: name,
				Quantity:    it.Quantity,
				Price:       it.Price,
				LineTotal:   it.LineTotal(),
			})
		}
		return uc.gen.OrderPDF(ctx, rep)
	})
}

// Transfer PDF de una transferencia.
func (uc *UseCase) Transfer(ctx context.Context, id string) ([]byte, error) {
	t, err := uc.transfers.GetEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.cached(ctx, CacheKey("transfer", t.ID, t.UpdatedAt), func() ([]byte, error) {
		return uc.gen.TransferPDF(ctx, TransferReport{Transfer: t, GeneratedAt: uc.now()})
	})
}

// cached: un fallo de la caché nunca rompe la generación, solo se registra.
func (uc *UseCase) cached(ctx context.Context, key string, build func() ([]byte, error)) ([]byte, error) {
	if data, ok, err := uc.cache.Get(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de reportes no disponible")
	} else if ok {
		return data, nil
	}
	data, err := build()
	if err != nil {
		return nil, fmt.Errorf("generar reporte: %w", err)
	}
	if err := uc.cache.Set(ctx, key, data); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el reporte en caché")
	}
	return data, nil
}
