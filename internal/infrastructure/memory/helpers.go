package memory

import (
	"strings"

	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func eqStr(p *string, v string) bool {
	return p != nil && *p == v
}

func cloneOrder(o entity.Order) entity.Order {
	o.CustomerID = cloneStr(o.CustomerID)
	items := make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.ProductID = cloneStr(it.ProductID)
		items[i] = it
	}
	o.Items = items
	return o
}

func cloneTransfer(t entity.StockTransfer) entity.StockTransfer {
	t.SourceLocatorID = cloneStr(t.SourceLocatorID)
	t.DestinationLocatorID = cloneStr(t.DestinationLocatorID)
	t.SourceCategoryID = cloneStr(t.SourceCategoryID)
	t.DestinationCategoryID = cloneStr(t.DestinationCategoryID)
	t.CreatedBy = cloneStr(t.CreatedBy)
	return t
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}
