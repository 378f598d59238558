package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos, incluidos los anidados bajo una categoría.
type ProductUseCase struct {
	repo    repository.ProductRepository
	catRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, catRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, catRepo: catRepo}
}

// Create crea un nuevo producto. La categoría, si viene, debe existir.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductFields(in.Name, in.Price, in.Stock); err != nil {
		return nil, err
	}
	cat, err := uc.optionalCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := toProductResponse(product, cat)
	return &out, nil
}

// GetByID obtiene un producto con el resumen de su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	// si la categoría desapareció entre lecturas el producto se devuelve sin ella
	cat, _ := uc.optionalCategory(ctx, product.CategoryID)
	out := toProductResponse(product, cat)
	return &out, nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := uc.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		var cat *entity.Category
		if p.CategoryID != nil {
			cat = cats[*p.CategoryID]
		}
		out = append(out, toProductResponse(p, cat))
	}
	return out, nil
}

// ListByCategory lista los productos de una categoría. 404 si la categoría no existe.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	cat, err := uc.optionalCategory(ctx, &categoryID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p, cat))
	}
	return out, nil
}

// Update actualiza los campos presentes en la entrada.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, product, in)
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// CreateInCategory crea un producto dentro de la categoría indicada (la del path manda).
func (uc *ProductUseCase) CreateInCategory(ctx context.Context, categoryID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.CategoryID = &categoryID
	return uc.Create(ctx, in)
}

// UpdateInCategory actualiza un producto solo si pertenece a la categoría.
func (uc *ProductUseCase) UpdateInCategory(ctx context.Context, categoryID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.getInCategory(ctx, categoryID, productID)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, product, in)
}

// DeleteInCategory elimina un producto solo si pertenece a la categoría.
func (uc *ProductUseCase) DeleteInCategory(ctx context.Context, categoryID, productID string) error {
	if _, err := uc.getInCategory(ctx, categoryID, productID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, productID)
}

func (uc *ProductUseCase) apply(ctx context.Context, product *entity.Product, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if err := validateProductFields(product.Name, product.Price, product.Stock); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	cat, _ := uc.optionalCategory(ctx, product.CategoryID)
	out := toProductResponse(product, cat)
	return &out, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

func (uc *ProductUseCase) getInCategory(ctx context.Context, categoryID, productID string) (*entity.Product, error) {
	if _, err := uc.optionalCategory(ctx, &categoryID); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CategoryID == nil || *product.CategoryID != categoryID {
		return nil, fmt.Errorf("%w: el producto no está en esta categoría", domain.ErrNotFound)
	}
	return product, nil
}

// optionalCategory retorna nil si id es nil y ErrNotFound si no existe.
func (uc *ProductUseCase) optionalCategory(ctx context.Context, id *string) (*entity.Category, error) {
	if id == nil {
		return nil, nil
	}
	cat, err := uc.catRepo.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, *id)
	}
	return cat, nil
}

func (uc *ProductUseCase) categoryIndex(ctx context.Context) (map[string]*entity.Category, error) {
	cats, err := uc.catRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entity.Category, len(cats))
	for _, c := range cats {
		idx[c.ID] = c
	}
	return idx, nil
}

func validateProductFields(name string, price decimal.Decimal, stock int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if stock < 0 {
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
