package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/warehouse-sync/internal/application/stock"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
)

const (
	whID = "aaaaaaaa-0000-0000-0000-000000000001"
	prID = "cccccccc-0000-0000-0000-000000000003"
)

// fakeStockRepo implementación en memoria del puerto de stock.
type fakeStockRepo struct {
	rows map[string]*entity.StockItem
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string]*entity.StockItem{}}
}

func (r *fakeStockRepo) key(w, p string) string { return w + "|" + p }

func (r *fakeStockRepo) seed(w, p string, qty int64) {
	r.rows[r.key(w, p)] = &entity.StockItem{ID: "s1", WarehouseID: w, ProductID: p, Quantity: qty}
}

func (r *fakeStockRepo) Get(w, p string) (*entity.StockItem, error) { return r.GetForUpdate(w, p) }

func (r *fakeStockRepo) GetForUpdate(w, p string) (*entity.StockItem, error) {
	it, ok := r.rows[r.key(w, p)]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeStockRepo) EnsureRow(w, p string) error {
	k := r.key(w, p)
	if _, ok := r.rows[k]; !ok {
		r.rows[k] = &entity.StockItem{ID: "s-" + k, WarehouseID: w, ProductID: p, Quantity: 0}
	}
	return nil
}

func (r *fakeStockRepo) UpdateQuantity(item *entity.StockItem) error {
	cp := *item
	r.rows[r.key(item.WarehouseID, item.ProductID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListByWarehouse(string) ([]*entity.StockItem, error) { return nil, nil }

func TestAdjust_SumaSobreFilaExistente(t *testing.T) {
	repo := newFakeStockRepo()
	repo.seed(whID, prID, 10)

	got, err := stock.Adjust(repo, whID, prID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got)

	it, _ := repo.Get(whID, prID)
	assert.Equal(t, int64(15), it.Quantity)
}

func TestAdjust_MaterializaFilaEnCeroParaDeltaPositivo(t *testing.T) {
	repo := newFakeStockRepo()

	got, err := stock.Adjust(repo, whID, prID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)

	it, _ := repo.Get(whID, prID)
	require.NotNil(t, it)
	assert.Equal(t, int64(7), it.Quantity)
}

func TestAdjust_DeltaNegativoSinFila_RechazaNegativoInicial(t *testing.T) {
	repo := newFakeStockRepo()

	_, err := stock.Adjust(repo, whID, prID, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeInitialStock)

	// No debe quedar fila materializada tras el rechazo
	it, _ := repo.Get(whID, prID)
	assert.Nil(t, it)
}

func TestAdjust_StockInsuficiente_Rechazado(t *testing.T) {
	repo := newFakeStockRepo()
	repo.seed(whID, prID, 3)

	_, err := stock.Adjust(repo, whID, prID, -5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La cantidad no cambia: nunca se persiste un valor negativo
	it, _ := repo.Get(whID, prID)
	assert.Equal(t, int64(3), it.Quantity)
}

func TestAdjust_PuedeVaciarElStockExacto(t *testing.T) {
	repo := newFakeStockRepo()
	repo.seed(whID, prID, 5)

	got, err := stock.Adjust(repo, whID, prID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got, "cero es un saldo válido")
}
