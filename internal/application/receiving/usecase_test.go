package receiving_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/aeropartes-api/internal/application/dto"
	"github.com/tu-usuario/aeropartes-api/internal/application/ledger"
	"github.com/tu-usuario/aeropartes-api/internal/application/receiving"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

const testCompany = "co-1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: órdenes de compra + lo justo para armar un motor de ledger real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder // companyID|poNumber
	lines  map[string][]*entity.PurchaseOrderLine
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*entity.PurchaseOrder{},
		lines:  map[string][]*entity.PurchaseOrderLine{},
	}
}

func (r *fakeOrderRepo) Create(order *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error {
	key := order.CompanyID + "|" + order.PONumber
	if _, ok := r.orders[key]; ok {
		return domain.ErrDuplicate
	}
	r.orders[key] = order
	r.lines[order.ID] = lines
	return nil
}

func (r *fakeOrderRepo) GetByNumber(companyID, poNumber string) (*entity.PurchaseOrder, error) {
	return r.orders[companyID+"|"+poNumber], nil
}

func (r *fakeOrderRepo) GetLines(companyID, orderID string) ([]*entity.PurchaseOrderLine, error) {
	return r.lines[orderID], nil
}

func (r *fakeOrderRepo) UpdateStatus(companyID, orderID, status string) error {
	for _, o := range r.orders {
		if o.CompanyID == companyID && o.ID == orderID {
			o.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

type mem struct {
	parts     map[string]*entity.Part
	locations map[string]*entity.Location
	entries   []*entity.MovementEntry
	byID      map[string]*entity.MovementEntry
	balances  map[string]*entity.OnHandBalance
	idem      map[string]*entity.IdempotencyRecord
	seq       int64
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func bk(k repository.BalanceKey) string {
	return k.CompanyID + "|" + k.PartID + "|" + deref(k.LotID) + "|" + deref(k.SerialID) + "|" + k.LocationID
}

type memParts struct{ m *mem }

func (r *memParts) Create(p *entity.Part) error {
	if _, ok := r.m.parts[p.CompanyID+"|"+p.PartNumber]; ok {
		return domain.ErrDuplicate
	}
	r.m.parts[p.CompanyID+"|"+p.PartNumber] = p
	return nil
}
func (r *memParts) GetByID(companyID, id string) (*entity.Part, error) {
	for _, p := range r.m.parts {
		if p.CompanyID == companyID && p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memParts) GetByPartNumber(companyID, partNumber string) (*entity.Part, error) {
	return r.m.parts[companyID+"|"+partNumber], nil
}
func (r *memParts) ListByCompany(companyID string, limit, offset int) ([]*entity.Part, error) {
	return nil, nil
}

type memLocations struct{ m *mem }

func (r *memLocations) Create(l *entity.Location) error {
	r.m.locations[l.CompanyID+"|"+l.Code] = l
	return nil
}
func (r *memLocations) GetByID(companyID, id string) (*entity.Location, error) { return nil, nil }
func (r *memLocations) GetByCode(companyID, code string) (*entity.Location, error) {
	return r.m.locations[companyID+"|"+code], nil
}
func (r *memLocations) ListByCompany(companyID string, limit, offset int) ([]*entity.Location, error) {
	return nil, nil
}

type memLots struct{}

func (memLots) Ensure(lot *entity.Lot) (*entity.Lot, error) { return lot, nil }
func (memLots) GetByNumber(companyID, partID, lotNumber string) (*entity.Lot, error) {
	return nil, nil
}

type memSerials struct{}

func (memSerials) Ensure(s *entity.Serial) (*entity.Serial, error) { return s, nil }
func (memSerials) GetByNumber(companyID, partID, serialNumber string) (*entity.Serial, error) {
	return nil, nil
}

type memEntries struct{ m *mem }

func (r *memEntries) Create(e *entity.MovementEntry) error {
	r.m.seq++
	e.Seq = r.m.seq
	r.m.entries = append(r.m.entries, e)
	r.m.byID[e.ID] = e
	return nil
}
func (r *memEntries) GetByID(companyID, id string) (*entity.MovementEntry, error) {
	return r.m.byID[id], nil
}
func (r *memEntries) ListByCompany(companyID string, limit, offset int) ([]*entity.MovementEntry, error) {
	return r.m.entries, nil
}
func (r *memEntries) ListByKey(companyID, partID string, lotID, serialID *string) ([]*entity.MovementEntry, error) {
	return nil, nil
}
func (r *memEntries) ListAll(companyID string) ([]*entity.MovementEntry, error) {
	return r.m.entries, nil
}

type memBalances struct{ m *mem }

func (r *memBalances) Get(key repository.BalanceKey) (*entity.OnHandBalance, error) {
	return r.GetForUpdate(key)
}
func (r *memBalances) GetForUpdate(key repository.BalanceKey) (*entity.OnHandBalance, error) {
	if b, ok := r.m.balances[bk(key)]; ok {
		copied := *b
		return &copied, nil
	}
	return &entity.OnHandBalance{
		CompanyID: key.CompanyID, PartID: key.PartID, LotID: key.LotID,
		SerialID: key.SerialID, LocationID: key.LocationID, Quantity: decimal.Zero,
	}, nil
}
func (r *memBalances) ApplyDelta(key repository.BalanceKey, delta decimal.Decimal, condition string, updatedAt time.Time) error {
	k := bk(key)
	b, ok := r.m.balances[k]
	if !ok {
		b = &entity.OnHandBalance{
			CompanyID: key.CompanyID, PartID: key.PartID, LotID: key.LotID,
			SerialID: key.SerialID, LocationID: key.LocationID, Quantity: decimal.Zero,
		}
		r.m.balances[k] = b
	}
	b.Quantity = b.Quantity.Add(delta)
	if condition != "" {
		b.Condition = condition
	}
	b.UpdatedAt = updatedAt
	return nil
}
func (r *memBalances) ListOnHand(companyID, partID string, limit, offset int) ([]*entity.OnHandBalance, error) {
	return nil, nil
}
func (r *memBalances) ListAll(companyID string) ([]*entity.OnHandBalance, error) {
	return nil, nil
}

type memIdem struct{ m *mem }

func (r *memIdem) Get(companyID, scope, key string) (*entity.IdempotencyRecord, error) {
	return r.m.idem[companyID+"|"+scope+"|"+key], nil
}
func (r *memIdem) Create(rec *entity.IdempotencyRecord) error {
	k := rec.CompanyID + "|" + rec.Scope + "|" + rec.Key
	if _, ok := r.m.idem[k]; ok {
		return domain.ErrDuplicate
	}
	r.m.idem[k] = rec
	return nil
}

type memTxRunner struct{ m *mem }

func (r *memTxRunner) Run(ctx context.Context, fn func(tx ledger.TxRepos) error) error {
	return fn(ledger.TxRepos{
		Entries:     &memEntries{r.m},
		Balances:    &memBalances{r.m},
		Lots:        memLots{},
		Serials:     memSerials{},
		Idempotency: &memIdem{r.m},
		Parts:       &memParts{r.m},
	})
}

func newTestUseCase(t *testing.T) (*receiving.UseCase, *fakeOrderRepo, *mem) {
	t.Helper()
	m := &mem{
		parts:     map[string]*entity.Part{},
		locations: map[string]*entity.Location{},
		byID:      map[string]*entity.MovementEntry{},
		balances:  map[string]*entity.OnHandBalance{},
		idem:      map[string]*entity.IdempotencyRecord{},
	}
	now := time.Now()
	parts := &memParts{m}
	locations := &memLocations{m}
	require.NoError(t, locations.Create(&entity.Location{
		ID: uuid.New().String(), CompanyID: testCompany, Code: "RECV-DOCK",
		Name: "Muelle de recepción", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, parts.Create(&entity.Part{
		ID: uuid.New().String(), CompanyID: testCompany, PartNumber: "FILTER-OIL-22",
		UnitMeasure: "EA", CreatedAt: now, UpdatedAt: now,
	}))

	orderRepo := newFakeOrderRepo()
	ledgerUC := ledger.NewUseCase(&memTxRunner{m}, parts, locations, nil)
	return receiving.NewUseCase(orderRepo, ledgerUC), orderRepo, m
}

func poRequest(poNumber string) dto.CreatePurchaseOrderRequest {
	return dto.CreatePurchaseOrderRequest{
		PONumber: poNumber,
		Vendor:   "AeroSupply",
		Lines: []dto.PurchaseOrderLineIn{
			{PartNumber: "FILTER-OIL-22", Quantity: decimal.NewFromInt(6), UnitMeasure: "EA"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchaseOrder_Valida(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	order, err := uc.CreatePurchaseOrder(testCompany, "user-1", poRequest("PO-1001"))
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusOpen, order.Status)
	assert.Equal(t, "PO-1001", order.PONumber)

	_, err = uc.CreatePurchaseOrder(testCompany, "user-1", dto.CreatePurchaseOrderRequest{PONumber: "PO-X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una PO sin líneas es inválida")

	bad := poRequest("PO-Y")
	bad.Lines[0].Quantity = decimal.Zero
	_, err = uc.CreatePurchaseOrder(testCompany, "user-1", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva en línea es inválida")
}

func TestCreatePurchaseOrder_NumeroDuplicado(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.CreatePurchaseOrder(testCompany, "user-1", poRequest("PO-1001"))
	require.NoError(t, err)
	_, err = uc.CreatePurchaseOrder(testCompany, "user-1", poRequest("PO-1001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestReceiveGoods_GeneraAsientosConReferenciaPO(t *testing.T) {
	uc, _, m := newTestUseCase(t)
	order, err := uc.CreatePurchaseOrder(testCompany, "user-1", poRequest("PO-1001"))
	require.NoError(t, err)

	results, err := uc.ReceiveGoods(context.Background(), testCompany, "user-1", dto.GoodsReceiptRequest{
		PONumber:       "PO-1001",
		IdempotencyKey: "gr-1",
		Lines: []dto.GoodsReceiptLine{
			{PartNumber: "FILTER-OIL-22", Quantity: decimal.NewFromInt(6), ToLocation: "RECV-DOCK"},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	entry := results[0].First()
	require.NotNil(t, entry)
	assert.Equal(t, entity.MovementTypeRECEIVE, entry.Type)
	assert.Equal(t, "PO", entry.RefType)
	assert.Equal(t, "PO-1001", entry.RefID)
	assert.Equal(t, entity.ConditionQuarantine, entry.Condition)

	got, _, err := uc.GetPurchaseOrder(testCompany, "PO-1001")
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)
	assert.Equal(t, order.ID, got.ID)
	assert.Len(t, m.entries, 1)
}

func TestReceiveGoods_ReintentoNoDuplicaLineas(t *testing.T) {
	uc, _, m := newTestUseCase(t)
	_, err := uc.CreatePurchaseOrder(testCompany, "user-1", poRequest("PO-1001"))
	require.NoError(t, err)

	req := dto.GoodsReceiptRequest{
		PONumber:       "PO-1001",
		IdempotencyKey: "gr-1",
		Lines: []dto.GoodsReceiptLine{
			{PartNumber: "FILTER-OIL-22", Quantity: decimal.NewFromInt(6), ToLocation: "RECV-DOCK"},
			{PartNumber: "FILTER-OIL-22", Quantity: decimal.NewFromInt(2), ToLocation: "RECV-DOCK"},
		},
	}
	first, err := uc.ReceiveGoods(context.Background(), testCompany, "user-1", req)
	require.NoError(t, err)
	require.Len(t, first, 2)

	retry, err := uc.ReceiveGoods(context.Background(), testCompany, "user-1", req)
	require.NoError(t, err)
	require.Len(t, retry, 2)
	for i := range retry {
		assert.True(t, retry[i].Replayed, "línea %d debe reproducirse, no repetirse", i+1)
		assert.Equal(t, first[i].First().ID, retry[i].First().ID)
	}
	assert.Len(t, m.entries, 2, "el reintento no debe añadir asientos")
}

func TestReceiveGoods_PODesconocida(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.ReceiveGoods(context.Background(), testCompany, "user-1", dto.GoodsReceiptRequest{
		PONumber:       "PO-NOPE",
		IdempotencyKey: "gr-1",
		Lines: []dto.GoodsReceiptLine{
			{PartNumber: "FILTER-OIL-22", Quantity: decimal.NewFromInt(1), ToLocation: "RECV-DOCK"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiveGoods_SinKeyNiLineas(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.CreatePurchaseOrder(testCompany, "user-1", poRequest("PO-1001"))
	require.NoError(t, err)

	_, err = uc.ReceiveGoods(context.Background(), testCompany, "user-1", dto.GoodsReceiptRequest{
		PONumber: "PO-1001",
		Lines:    []dto.GoodsReceiptLine{{PartNumber: "FILTER-OIL-22", Quantity: decimal.NewFromInt(1), ToLocation: "RECV-DOCK"}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingIdempotencyKey)

	_, err = uc.ReceiveGoods(context.Background(), testCompany, "user-1", dto.GoodsReceiptRequest{
		PONumber: "PO-1001", IdempotencyKey: "gr-2",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
