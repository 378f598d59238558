package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

const (
	dateLayout = "2006-01-02"

	attachmentPrefix = "organization/org_doc_"

	// nota agregada a las transferencias abiertas al borrar su sub-inventario
	subInventoryDeletedNote = " | Cancelled due to sub-inventory deletion"
)

// Attachment adjunto abierto para streaming; el caller cierra Content.
type Attachment struct {
	Content     io.ReadCloser
	ContentType string
	Filename    string
}

// OrganizationUseCase gestiona la organización, sus sub-inventarios y localizadores.
type OrganizationUseCase struct {
	orgRepo     repository.OrganizationRepository
	subRepo     repository.SubInventoryRepository
	locatorRepo repository.LocatorRepository
	txRunner    ports.TxRunner
	storage     ports.FileStorage
	log         *logger.Logger
	now         func() time.Time
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(
	orgRepo repository.OrganizationRepository,
	subRepo repository.SubInventoryRepository,
	locatorRepo repository.LocatorRepository,
	txRunner ports.TxRunner,
	storage ports.FileStorage,
	log *logger.Logger,
) *OrganizationUseCase {
	return &OrganizationUseCase{
		orgRepo:     orgRepo,
		subRepo:     subRepo,
		locatorRepo: locatorRepo,
		txRunner:    txRunner,
		storage:     storage,
		log:         log.Named("organization"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Upsert crea la organización o actualiza la existente. Un adjunto nuevo reemplaza al anterior,
// que se borra del storage solo después de persistir la organización.
func (uc *OrganizationUseCase) Upsert(ctx context.Context, in dto.OrganizationRequest, file *dto.FileUpload) (*dto.OrganizationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	var startDate *time.Time
	if in.StartDate != "" {
		d, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		startDate = &d
	}

	org, err := uc.orgRepo.GetFirst(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	isNew := org == nil
	if isNew {
		org = &entity.Organization{ID: uuid.New().String(), CreatedAt: now}
	}
	org.Name = name
	org.LegalAddress = in.LegalAddress
	org.GSTNumber = in.GSTNumber
	org.VATNumber = in.VATNumber
	org.CIN = in.CIN
	org.PANNumber = in.PANNumber
	org.StartDate = startDate
	org.UpdatedAt = now

	oldKey := org.AttachmentKey
	newKey := ""
	if file != nil {
		newKey = attachmentPrefix + now.Format("20060102150405") + strings.ToLower(filepath.Ext(file.Filename))
		if err := uc.storage.Put(ctx, newKey, file.Content, file.Size, file.ContentType); err != nil {
			return nil, fmt.Errorf("guardar adjunto: %w", err)
		}
		org.AttachmentKey = newKey
	}

	if isNew {
		err = uc.orgRepo.Create(ctx, org)
	} else {
		err = uc.orgRepo.Update(ctx, org)
	}
	if err != nil {
		if newKey != "" {
			uc.deleteAttachment(ctx, newKey)
		}
		return nil, err
	}
	if newKey != "" && oldKey != "" && oldKey != newKey {
		uc.deleteAttachment(ctx, oldKey)
	}
	uc.log.Info().Str("organization_id", org.ID).Bool("created", isNew).Msg("organización guardada")

	subs, err := uc.subInventories(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	out := toOrganizationResponse(org, subs)
	return &out, nil
}

// List devuelve las organizaciones con sus sub-inventarios y localizadores.
func (uc *OrganizationUseCase) List(ctx context.Context) ([]dto.OrganizationResponse, error) {
	orgs, err := uc.orgRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		subs, err := uc.subInventories(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrganizationResponse(o, subs))
	}
	return out, nil
}

// OpenAttachment abre el adjunto de la organización. ErrNotFound si no tiene.
func (uc *OrganizationUseCase) OpenAttachment(ctx context.Context, orgID string) (*Attachment, error) {
	org, err := uc.getOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org.AttachmentKey == "" {
		return nil, fmt.Errorf("%w: la organización no tiene adjunto", domain.ErrNotFound)
	}
	rc, err := uc.storage.Get(ctx, org.AttachmentKey)
	if err != nil {
		return nil, err
	}
	return &Attachment{
		Content:     rc,
		ContentType: ContentTypeFor(org.AttachmentKey),
		Filename:    filepath.Base(org.AttachmentKey),
	}, nil
}

// CreateSubInventory crea un sub-inventario en la organización.
func (uc *OrganizationUseCase) CreateSubInventory(ctx context.Context, orgID string, in dto.SubInventoryRequest) (*dto.SubInventoryResponse, error) {
	if _, err := uc.getOrg(ctx, orgID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := uc.now()
	sub := &entity.SubInventory{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(in.Name),
		Type:           in.Type,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	out := toSubInventoryResponse(sub, nil)
	return &out, nil
}

// UpdateSubInventory renombra o cambia el tipo de un sub-inventario de la organización.
func (uc *OrganizationUseCase) UpdateSubInventory(ctx context.Context, orgID, subID string, in dto.SubInventoryRequest) (*dto.SubInventoryResponse, error) {
	sub, err := uc.getSub(ctx, orgID, subID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	sub.Name = strings.TrimSpace(in.Name)
	sub.Type = in.Type
	sub.UpdatedAt = uc.now()
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	locs, err := uc.locatorRepo.ListBySubInventory(ctx, subID)
	if err != nil {
		return nil, err
	}
	out := toSubInventoryResponse(sub, locs)
	return &out, nil
}

// DeleteSubInventory en una sola transacción: desasocia las categorías, cancela las transferencias
// abiertas que tocan sus localizadores y elimina el sub-inventario (los localizadores caen en cascada).
func (uc *OrganizationUseCase) DeleteSubInventory(ctx context.Context, orgID, subID string) error {
	if _, err := uc.getSub(ctx, orgID, subID); err != nil {
		return err
	}
	var cancelled int64
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		locs, err := repos.Locators.ListBySubInventory(ctx, subID)
		if err != nil {
			return err
		}
		if err := repos.Categories.ClearSubInventory(ctx, subID); err != nil {
			return err
		}
		if len(locs) > 0 {
			ids := make([]string, 0, len(locs))
			for _, l := range locs {
				ids = append(ids, l.ID)
			}
			cancelled, err = repos.Transfers.CancelOpenByLocators(ctx, ids, subInventoryDeletedNote, uc.now())
			if err != nil {
				return err
			}
		}
		return repos.SubInventories.Delete(ctx, subID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("sub_inventory_id", subID).Int64("transfers_cancelled", cancelled).Msg("sub-inventario eliminado")
	return nil
}

// CreateLocator crea un localizador dentro del sub-inventario.
func (uc *OrganizationUseCase) CreateLocator(ctx context.Context, orgID, subID string, in dto.LocatorRequest) (*dto.LocatorResponse, error) {
	if _, err := uc.getSub(ctx, orgID, subID); err != nil {
		return nil, err
	}
	if err := validateLocator(in); err != nil {
		return nil, err
	}
	now := uc.now()
	loc := &entity.Locator{
		ID:             uuid.New().String(),
		SubInventoryID: subID,
		CreatedAt:      now,
	}
	fillLocator(loc, in, now)
	if err := uc.locatorRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	out := toLocatorResponse(loc)
	return &out, nil
}

// UpdateLocator actualiza un localizador del sub-inventario.
func (uc *OrganizationUseCase) UpdateLocator(ctx context.Context, orgID, subID, locatorID string, in dto.LocatorRequest) (*dto.LocatorResponse, error) {
	loc, err := uc.getLocator(ctx, orgID, subID, locatorID)
	if err != nil {
		return nil, err
	}
	if err := validateLocator(in); err != nil {
		return nil, err
	}
	fillLocator(loc, in, uc.now())
	if err := uc.locatorRepo.Update(ctx, loc); err != nil {
		return nil, err
	}
	out := toLocatorResponse(loc)
	return &out, nil
}

// DeleteLocator elimina un localizador del sub-inventario.
func (uc *OrganizationUseCase) DeleteLocator(ctx context.Context, orgID, subID, locatorID string) error {
	if _, err := uc.getLocator(ctx, orgID, subID, locatorID); err != nil {
		return err
	}
	return uc.locatorRepo.Delete(ctx, locatorID)
}

func (uc *OrganizationUseCase) subInventories(ctx context.Context, orgID string) ([]dto.SubInventoryResponse, error) {
	subs, err := uc.subRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubInventoryResponse, 0, len(subs))
	for _, s := range subs {
		locs, err := uc.locatorRepo.ListBySubInventory(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toSubInventoryResponse(s, locs))
	}
	return out, nil
}

func (uc *OrganizationUseCase) getOrg(ctx context.Context, id string) (*entity.Organization, error) {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, fmt.Errorf("%w: organización %s", domain.ErrNotFound, id)
	}
	return org, nil
}

// getSub exige que el sub-inventario exista y pertenezca a la organización.
func (uc *OrganizationUseCase) getSub(ctx context.Context, orgID, subID string) (*entity.SubInventory, error) {
	if _, err := uc.getOrg(ctx, orgID); err != nil {
		return nil, err
	}
	sub, err := uc.subRepo.GetByID(ctx, subID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.OrganizationID != orgID {
		return nil, fmt.Errorf("%w: sub-inventario %s", domain.ErrNotFound, subID)
	}
	return sub, nil
}

func (uc *OrganizationUseCase) getLocator(ctx context.Context, orgID, subID, locatorID string) (*entity.Locator, error) {
	if _, err := uc.getSub(ctx, orgID, subID); err != nil {
		return nil, err
	}
	loc, err := uc.locatorRepo.GetByID(ctx, locatorID)
	if err != nil {
		return nil, err
	}
	if loc == nil || loc.SubInventoryID != subID {
		return nil, fmt.Errorf("%w: localizador %s", domain.ErrNotFound, locatorID)
	}
	return loc, nil
}

func (uc *OrganizationUseCase) deleteAttachment(ctx context.Context, key string) {
	if err := uc.storage.Delete(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo borrar el adjunto")
	}
}

func validateLocator(in dto.LocatorRequest) error {
	if strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("%w: el código es obligatorio", domain.ErrInvalidInput)
	}
	for _, d := range []*float64{in.Length, in.Width, in.Height} {
		if d != nil && *d < 0 {
			return fmt.Errorf("%w: las dimensiones no pueden ser negativas", domain.ErrInvalidInput)
		}
	}
	return nil
}

func fillLocator(loc *entity.Locator, in dto.LocatorRequest, now time.Time) {
	loc.Code = strings.TrimSpace(in.Code)
	loc.Description = in.Description
	loc.Length = in.Length
	loc.Width = in.Width
	loc.Height = in.Height
	loc.UpdatedAt = now
}

// ContentTypeFor deduce el content type del adjunto por su extensión.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}
