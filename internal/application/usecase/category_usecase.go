package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	subRepo     repository.SubInventoryRepository
	locatorRepo repository.LocatorRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	repo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	subRepo repository.SubInventoryRepository,
	locatorRepo repository.LocatorRepository,
) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo, subRepo: subRepo, locatorRepo: locatorRepo}
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := uc.validatePlacement(ctx, in.SubInventoryID, in.LocatorID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una categoría llamada '%s'", domain.ErrDuplicate, name)
	}
	now := time.Now().UTC()
	cat := &entity.Category{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    in.Description,
		SubInventoryID: in.SubInventoryID,
		LocatorID:      in.LocatorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	out := toCategoryResponse(cat, nil)
	return &out, nil
}

// GetByID obtiene una categoría con sus productos.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(cat, products)
	return &out, nil
}

// List lista todas las categorías con sus productos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byCat := make(map[string][]*entity.Product)
	for _, p := range products {
		if p.CategoryID != nil {
			byCat[*p.CategoryID] = append(byCat[*p.CategoryID], p)
		}
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c, byCat[c.ID]))
	}
	return out, nil
}

// Update reemplaza nombre, descripción y ubicación de la categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := uc.validatePlacement(ctx, in.SubInventoryID, in.LocatorID); err != nil {
		return nil, err
	}
	if !strings.EqualFold(name, cat.Name) {
		existing, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != cat.ID {
			return nil, fmt.Errorf("%w: ya existe una categoría llamada '%s'", domain.ErrDuplicate, name)
		}
	}
	cat.Name = name
	cat.Description = in.Description
	cat.SubInventoryID = in.SubInventoryID
	cat.LocatorID = in.LocatorID
	cat.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina la categoría; sus productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) get(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return cat, nil
}

// validatePlacement: el sub-inventario y el localizador deben existir, y si vienen ambos
// el localizador debe pertenecer a ese sub-inventario.
func (uc *CategoryUseCase) validatePlacement(ctx context.Context, subID, locatorID *string) error {
	if subID != nil {
		sub, err := uc.subRepo.GetByID(ctx, *subID)
		if err != nil {
			return err
		}
		if sub == nil {
			return fmt.Errorf("%w: sub-inventario %s", domain.ErrNotFound, *subID)
		}
	}
	if locatorID != nil {
		loc, err := uc.locatorRepo.GetByID(ctx, *locatorID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: localizador %s", domain.ErrNotFound, *locatorID)
		}
		if subID != nil && loc.SubInventoryID != *subID {
			return fmt.Errorf("%w: el localizador no pertenece al sub-inventario indicado", domain.ErrInvalidInput)
		}
	}
	return nil
}
