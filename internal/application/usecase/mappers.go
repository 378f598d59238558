package usecase

import (
	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product, cat *entity.Category) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if cat != nil {
		out.Category = &dto.CategorySummary{ID: cat.ID, Name: cat.Name}
	}
	return out
}

func toCategoryResponse(c *entity.Category, products []*entity.Product) dto.CategoryResponse {
	out := dto.CategoryResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		SubInventoryID: c.SubInventoryID,
		LocatorID:      c.LocatorID,
		Products:       make([]dto.ProductResponse, 0, len(products)),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p, c))
	}
	return out
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		GST:       c.GST,
		City:      c.City,
		State:     c.State,
		Pin:       c.Pin,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toLocatorResponse(l *entity.Locator) dto.LocatorResponse {
	return dto.LocatorResponse{
		ID:             l.ID,
		SubInventoryID: l.SubInventoryID,
		Code:           l.Code,
		Description:    l.Description,
		Length:         l.Length,
		Width:          l.Width,
		Height:         l.Height,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func toSubInventoryResponse(s *entity.SubInventory, locators []*entity.Locator) dto.SubInventoryResponse {
	out := dto.SubInventoryResponse{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		Name:           s.Name,
		Type:           s.Type,
		Locators:       make([]dto.LocatorResponse, 0, len(locators)),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, l := range locators {
		out.Locators = append(out.Locators, toLocatorResponse(l))
	}
	return out
}

func toOrganizationResponse(o *entity.Organization, subs []dto.SubInventoryResponse) dto.OrganizationResponse {
	out := dto.OrganizationResponse{
		ID:             o.ID,
		Name:           o.Name,
		LegalAddress:   o.LegalAddress,
		GSTNumber:      o.GSTNumber,
		VATNumber:      o.VATNumber,
		CIN:            o.CIN,
		PANNumber:      o.PANNumber,
		HasAttachment:  o.AttachmentKey != "",
		SubInventories: subs,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if out.SubInventories == nil {
		out.SubInventories = []dto.SubInventoryResponse{}
	}
	if o.StartDate != nil {
		s := o.StartDate.Format(dateLayout)
		out.StartDate = &s
	}
	return out
}
