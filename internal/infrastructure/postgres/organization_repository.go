package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository = (*OrganizationRepo)(nil)
	_ repository.SubInventoryRepository = (*SubInventoryRepo)(nil)
	_ repository.LocatorRepository      = (*LocatorRepo)(nil)
)

const organizationColumns = `id, name, legal_address, gst_number, vat_number, cin, pan_number, start_date, attachment_key, created_at, updated_at`

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste la organización.
func (r *OrganizationRepo) Create(ctx context.Context, o *entity.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Name, o.LegalAddress, o.GSTNumber, o.VATNumber, o.CIN, o.PANNumber,
		o.StartDate, o.AttachmentKey, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene la organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.getOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
}

// GetFirst obtiene la organización creada primero.
func (r *OrganizationRepo) GetFirst(ctx context.Context) (*entity.Organization, error) {
	return r.getOne(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY created_at LIMIT 1`)
}

func (r *OrganizationRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Organization, error) {
	o, err := scanOrganization(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

// List lista las organizaciones.
func (r *OrganizationRepo) List(ctx context.Context) ([]*entity.Organization, error) {
	rows, err := r.q.Query(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update actualiza los datos legales y el adjunto.
func (r *OrganizationRepo) Update(ctx context.Context, o *entity.Organization) error {
	query := `
		UPDATE organizations SET name = $2, legal_address = $3, gst_number = $4, vat_number = $5, cin = $6,
			pan_number = $7, start_date = $8, attachment_key = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.Name, o.LegalAddress, o.GSTNumber, o.VATNumber, o.CIN, o.PANNumber,
		o.StartDate, o.AttachmentKey, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(&o.ID, &o.Name, &o.LegalAddress, &o.GSTNumber, &o.VATNumber, &o.CIN, &o.PANNumber,
		&o.StartDate, &o.AttachmentKey, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ── Sub-inventarios ───────────────────────────────────────────────────────────

const subInventoryColumns = `id, organization_id, name, type, created_at, updated_at`

// SubInventoryRepo implementación del puerto SubInventoryRepository.
type SubInventoryRepo struct {
	q Querier
}

// NewSubInventoryRepository construye el adaptador.
func NewSubInventoryRepository(q Querier) *SubInventoryRepo {
	return &SubInventoryRepo{q: q}
}

// Create persiste un sub-inventario.
func (r *SubInventoryRepo) Create(ctx context.Context, s *entity.SubInventory) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sub_inventories (`+subInventoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.OrganizationID, s.Name, s.Type, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la organización no existe", domain.ErrNotFound)
		}
		return fmt.Errorf("insert sub-inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un sub-inventario por ID.
func (r *SubInventoryRepo) GetByID(ctx context.Context, id string) (*entity.SubInventory, error) {
	var s entity.SubInventory
	err := r.q.QueryRow(ctx, `SELECT `+subInventoryColumns+` FROM sub_inventories WHERE id = $1`, id).
		Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Type, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sub-inventory: %w", err)
	}
	return &s, nil
}

// ListByOrganization lista los sub-inventarios de una organización.
func (r *SubInventoryRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.SubInventory, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+subInventoryColumns+` FROM sub_inventories WHERE organization_id = $1 ORDER BY created_at`,
		organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sub-inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubInventory
	for rows.Next() {
		var s entity.SubInventory
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Type, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sub-inventory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza nombre y tipo.
func (r *SubInventoryRepo) Update(ctx context.Context, s *entity.SubInventory) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sub_inventories SET name = $2, type = $3, updated_at = $4 WHERE id = $1`,
		s.ID, s.Name, s.Type, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sub-inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el sub-inventario y, por CASCADE, sus localizadores.
func (r *SubInventoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sub_inventories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sub-inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Localizadores ─────────────────────────────────────────────────────────────

const locatorColumns = `id, sub_inventory_id, code, description, length, width, height, created_at, updated_at`

// LocatorRepo implementación del puerto LocatorRepository.
type LocatorRepo struct {
	q Querier
}

// NewLocatorRepository construye el adaptador.
func NewLocatorRepository(q Querier) *LocatorRepo {
	return &LocatorRepo{q: q}
}

// Create persiste un localizador.
func (r *LocatorRepo) Create(ctx context.Context, l *entity.Locator) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO locators (`+locatorColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.SubInventoryID, l.Code, l.Description, l.Length, l.Width, l.Height, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el sub-inventario no existe", domain.ErrNotFound)
		}
		return fmt.Errorf("insert locator: %w", err)
	}
	return nil
}

// GetByID obtiene un localizador por ID.
func (r *LocatorRepo) GetByID(ctx context.Context, id string) (*entity.Locator, error) {
	l, err := scanLocator(r.q.QueryRow(ctx, `SELECT `+locatorColumns+` FROM locators WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get locator: %w", err)
	}
	return l, nil
}

// ListBySubInventory lista los localizadores de un sub-inventario.
func (r *LocatorRepo) ListBySubInventory(ctx context.Context, subInventoryID string) ([]*entity.Locator, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+locatorColumns+` FROM locators WHERE sub_inventory_id = $1 ORDER BY code`,
		subInventoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list locators: %w", err)
	}
	defer rows.Close()
	var list []*entity.Locator
	for rows.Next() {
		l, err := scanLocator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan locator: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Update actualiza código, descripción y dimensiones.
func (r *LocatorRepo) Update(ctx context.Context, l *entity.Locator) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE locators SET code = $2, description = $3, length = $4, width = $5, height = $6, updated_at = $7 WHERE id = $1`,
		l.ID, l.Code, l.Description, l.Length, l.Width, l.Height, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update locator: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un localizador; las referencias desde categorías y transferencias quedan NULL.
func (r *LocatorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM locators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete locator: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLocator(row pgx.Row) (*entity.Locator, error) {
	var l entity.Locator
	err := row.Scan(&l.ID, &l.SubInventoryID, &l.Code, &l.Description, &l.Length, &l.Width, &l.Height, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
