package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/inventory"
	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

func newTransferUC(f *fixture) *inventory.TransferUseCase {
	return inventory.NewTransferUseCase(f.store.Repos(), f.store.TxRunner(), logger.Nop())
}

func (f *fixture) request(qty int) dto.CreateTransferRequest {
	catA, catB := f.catA, f.catB
	return dto.CreateTransferRequest{
		ProductID:             f.product,
		Quantity:              qty,
		SourceLocatorID:       f.locA,
		DestinationLocatorID:  f.locB,
		SourceCategoryID:      &catA,
		DestinationCategoryID: &catB,
		Notes:                 "reubicación",
	}
}

// processing crea y aprueba la transferencia descrita por req.
func processing(t *testing.T, f *fixture, uc *inventory.TransferUseCase, req dto.CreateTransferRequest) string {
	t.Helper()
	ctx := context.Background()
	created, err := uc.Create(ctx, f.worker.ID, req)
	require.NoError(t, err)
	_, err = uc.Approve(ctx, created.ID)
	require.NoError(t, err)
	return created.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferCreate_CapturaNombres(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)

	got, err := uc.Create(context.Background(), f.worker.ID, f.request(4))
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusPending, got.Status)
	assert.Equal(t, "Bodega A", got.SourceSubInventoryName)
	assert.Equal(t, "A-01", got.SourceLocatorName)
	assert.Equal(t, "Ferretería A", got.SourceCategoryName)
	assert.Equal(t, "Tornillo", got.SourceProductName)
	assert.Equal(t, "Bodega B", got.DestinationSubInventoryName)
	assert.Equal(t, "B-01", got.DestinationLocatorName)
	assert.Equal(t, "Ferretería B", got.DestinationCategoryName)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, f.worker.ID, *got.CreatedBy)
	require.NotNil(t, got.Product)
	assert.Equal(t, "Tornillo", got.Product.Name)
	assert.Equal(t, 10, f.stock(t, f.product), "crear no mueve stock")
}

func TestTransferCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	ctx := context.Background()

	req := f.request(0)
	_, err := uc.Create(ctx, f.worker.ID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	req = f.request(1)
	req.DestinationLocatorID = f.locA
	_, err = uc.Create(ctx, f.worker.ID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen igual a destino")

	req = f.request(1)
	req.DestinationLocatorID = "no-existe"
	_, err = uc.Create(ctx, f.worker.ID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = f.request(1)
	missing := "no-existe"
	req.SourceCategoryID = &missing
	_, err = uc.Create(ctx, f.worker.ID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = f.request(1)
	req.ProductID = "no-existe"
	_, err = uc.Create(ctx, f.worker.ID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, f.worker.ID, f.request(11))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferComplete_RequiereProcessing(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, f.worker.ID, f.request(3))
	require.NoError(t, err)

	_, err = uc.Complete(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 10, f.stock(t, f.product))

	_, err = uc.Approve(ctx, created.ID)
	require.NoError(t, err)
	_, err = uc.Approve(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "approve solo desde pending")
}

func TestTransferComplete_CreaProductoEnCategoriaDestino(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	ctx := context.Background()
	id := processing(t, f, uc, f.request(4))

	done, err := uc.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, done.Status)
	assert.Equal(t, 6, f.stock(t, f.product))

	dest, err := f.store.Products().GetByNameAndCategory(ctx, "Tornillo", f.catB)
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.Equal(t, 4, dest.Stock)
	assert.Equal(t, "M6", dest.Description)
	assert.Equal(t, "2.5", dest.Price.String())
}

func TestTransferComplete_IncrementaProductoExistente(t *testing.T) {
	f := newFixture(t)
	catB := f.catB
	f.addProduct(t, "prod-b", "Tornillo", 5, &catB)
	uc := newTransferUC(f)
	id := processing(t, f, uc, f.request(4))

	_, err := uc.Complete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 6, f.stock(t, f.product))
	assert.Equal(t, 9, f.stock(t, "prod-b"))

	all, _ := f.store.Products().List(context.Background())
	assert.Len(t, all, 2, "no debe crearse un producto nuevo")
}

// lockRecorder registra el orden de los GetForUpdate sobre productos.
type lockRecorder struct {
	repository.ProductRepository
	locked *[]string
}

func (l lockRecorder) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	*l.locked = append(*l.locked, id)
	return l.ProductRepository.GetForUpdate(ctx, id)
}

type recordingRunner struct {
	inner  ports.TxRunner
	locked *[]string
}

func (r recordingRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	return r.inner.Run(ctx, func(repos ports.TxRepos) error {
		repos.Products = lockRecorder{ProductRepository: repos.Products, locked: r.locked}
		return fn(repos)
	})
}

// Dos transferencias en sentidos opuestos bloquean los productos en el mismo orden.
func TestTransferComplete_BloqueaProductosEnOrdenDeID(t *testing.T) {
	f := newFixture(t)
	catA, catB := f.catA, f.catB
	f.addProduct(t, "prod-b", "Tornillo", 5, &catB)

	var locked []string
	uc := inventory.NewTransferUseCase(f.store.Repos(), recordingRunner{inner: f.store.TxRunner(), locked: &locked}, logger.Nop())
	ctx := context.Background()

	forward := processing(t, f, uc, f.request(2))
	backward := processing(t, f, uc, dto.CreateTransferRequest{
		ProductID:             "prod-b",
		Quantity:              1,
		SourceLocatorID:       f.locB,
		DestinationLocatorID:  f.locA,
		SourceCategoryID:      &catB,
		DestinationCategoryID: &catA,
	})

	locked = nil
	_, err := uc.Complete(ctx, forward)
	require.NoError(t, err)
	assert.Equal(t, []string{f.product, "prod-b"}, locked)

	locked = nil
	_, err = uc.Complete(ctx, backward)
	require.NoError(t, err)
	assert.Equal(t, []string{f.product, "prod-b"}, locked)

	assert.Equal(t, 9, f.stock(t, f.product))
	assert.Equal(t, 6, f.stock(t, "prod-b"))
}

func TestTransferComplete_CategoriaPorNombreCapturado(t *testing.T) {
	f := newFixture(t)
	catB := f.catB
	f.addProduct(t, "prod-b", "Tornillo", 1, &catB)
	uc := newTransferUC(f)

	req := f.request(2)
	// sin id explícito: se resuelve por el nombre capturado al crear
	created, err := uc.Create(context.Background(), f.worker.ID, req)
	require.NoError(t, err)
	tr, _ := f.store.Transfers().GetByID(context.Background(), created.ID)
	tr.DestinationCategoryID = nil
	require.NoError(t, f.store.Transfers().Create(context.Background(), tr))

	_, err = uc.Approve(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = uc.Complete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, f.stock(t, "prod-b"))
}

func TestTransferComplete_MismoRegistroNoCambiaStock(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	req := f.request(4)
	catA := f.catA
	req.DestinationCategoryID = &catA
	id := processing(t, f, uc, req)

	_, err := uc.Complete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, f.product))
}

func TestTransferComplete_StockInsuficienteNoDejaCambios(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	ctx := context.Background()
	id := processing(t, f, uc, f.request(8))

	// el stock baja entre la aprobación y la finalización
	require.NoError(t, f.store.Products().UpdateStock(ctx, f.product, 5))

	_, err := uc.Complete(ctx, id)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, f.product), "el origen nunca queda negativo")

	tr, _ := f.store.Transfers().GetByID(ctx, id)
	assert.Equal(t, entity.TransferStatusProcessing, tr.Status)
	dest, _ := f.store.Products().GetByNameAndCategory(ctx, "Tornillo", f.catB)
	assert.Nil(t, dest, "no debe quedar producto destino creado")
}

func TestTransferCancel(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, f.worker.ID, f.request(1))
	require.NoError(t, err)
	got, err := uc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCancelled, got.Status)

	id := processing(t, f, uc, f.request(1))
	_, err = uc.Complete(ctx, id)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una completada no se cancela")

	_, err = uc.Cancel(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	ctx := context.Background()

	_, err := uc.Create(ctx, f.worker.ID, f.request(1))
	require.NoError(t, err)
	processing(t, f, uc, f.request(2))

	pending, err := uc.List(ctx, entity.TransferStatusPending, nil, nil)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Quantity)

	all, err := uc.List(ctx, "", nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.List(ctx, "terminada", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_NombresCapturadosNoSeRefrescan(t *testing.T) {
	f := newFixture(t)
	uc := newTransferUC(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, f.worker.ID, f.request(1))
	require.NoError(t, err)

	loc, _ := f.store.Locators().GetByID(ctx, f.locA)
	loc.Code = "A-99"
	require.NoError(t, f.store.Locators().Update(ctx, loc))

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A-01", got.SourceLocatorName, "la foto conserva el código original")
	require.NotNil(t, got.Source)
	assert.Equal(t, "A-99", got.Source.Code, "el resumen refleja el registro actual")
}
