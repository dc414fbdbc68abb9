package analytics_test

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospital-inventory/internal/application/analytics"
	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

type fakeStats struct {
	failOn string
	low    []entity.LowStockItem // nil: lowStockFixture
	gauge  *inflight
}

var _ repository.StatisticsRepository = fakeStats{}

// inflight cuenta consultas simultáneas y guarda el máximo observado.
type inflight struct {
	cur, max atomic.Int32
}

func (g *inflight) enter() {
	n := g.cur.Add(1)
	for {
		m := g.max.Load()
		if n <= m || g.max.CompareAndSwap(m, n) {
			return
		}
	}
}

func (g *inflight) exit() { g.cur.Add(-1) }

func (f fakeStats) query(name string) error {
	if f.gauge != nil {
		f.gauge.enter()
		defer f.gauge.exit()
		time.Sleep(5 * time.Millisecond)
	}
	if f.failOn == name {
		return errors.New("consulta cancelada")
	}
	return nil
}

func (f fakeStats) StockStats(context.Context) (entity.StockStats, error) {
	return entity.StockStats{TotalItems: 4, TotalQuantity: 31, LowStockCount: 3, OutOfStockCount: 1, InStockCount: 3}, f.query("stock")
}

func (f fakeStats) MovementStats(context.Context) (entity.MovementStats, error) {
	return entity.MovementStats{TotalMovements: 12, TotalIn: 40, TotalOut: 9, ItemsWithMovements: 4, UsersWithMovements: 2}, f.query("movements")
}

func (f fakeStats) MovementTypeStats(context.Context) ([]entity.MovementTypeStats, error) {
	return []entity.MovementTypeStats{{MovementTypeID: 1, TypeCode: "IN", MovementCount: 8, TotalQuantity: 40}}, f.query("types")
}

func group(name string, n int) []entity.GroupCount {
	id := int64(1)
	return []entity.GroupCount{{ID: &id, Name: name, ItemCount: n}}
}

func (f fakeStats) ItemsByMainCategory(context.Context) ([]entity.GroupCount, error) {
	return group("Hardware", 3), f.query("main")
}
func (f fakeStats) ItemsBySubCategory(context.Context) ([]entity.GroupCount, error) {
	return group("Monitores", 2), f.query("sub")
}
func (f fakeStats) ItemsByItemType(context.Context) ([]entity.GroupCount, error) {
	return group("LCD", 2), f.query("type")
}
func (f fakeStats) ItemsByDepartment(context.Context) ([]entity.GroupCount, error) {
	return group("IT", 4), f.query("dept")
}
func (f fakeStats) ItemsByFloor(context.Context) ([]entity.GroupCount, error) {
	return group("الطابق الأول", 4), f.query("floor")
}
func (f fakeStats) ItemsBySituation(context.Context) ([]entity.GroupCount, error) {
	return group("جديد", 1), f.query("situation")
}
func (f fakeStats) ItemsByKind(context.Context) ([]entity.GroupCount, error) {
	return group("عهدة", 1), f.query("kind")
}
func (f fakeStats) ItemsByUser(context.Context) ([]entity.GroupCount, error) {
	return group("tah", 1), f.query("user")
}
func (f fakeStats) WarehouseCount(context.Context) (int, error) { return 3, f.query("warehouse") }

var lowStockFixture = []entity.LowStockItem{
	{ItemID: 1, ItemName: "Guantes", Quantity: 0, MinQuantity: 10},
	{ItemID: 2, ItemName: "Jeringas", Quantity: 4, MinQuantity: 30},
	{ItemID: 3, ItemName: "Gasas", Quantity: 2, MinQuantity: 12},
	{ItemID: 4, ItemName: "Alcohol", Quantity: 1, MinQuantity: 11},
	{ItemID: 5, ItemName: "Vendas", Quantity: 5, MinQuantity: 6},
	{ItemID: 6, ItemName: "Batas", Quantity: 3, MinQuantity: 4},
}

// sorted copia de los ítems bajo mínimo ordenada con less y recortada a limit, como el ORDER BY ... LIMIT.
func (f fakeStats) sorted(limit int, less func(a, b entity.LowStockItem) bool) []entity.LowStockItem {
	src := f.low
	if src == nil {
		src = lowStockFixture
	}
	items := append([]entity.LowStockItem(nil), src...)
	sort.Slice(items, func(i, j int) bool { return less(items[i], items[j]) })
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (f fakeStats) LowStockItems(_ context.Context, limit int) ([]entity.LowStockItem, error) {
	return f.sorted(limit, func(a, b entity.LowStockItem) bool {
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		return a.ItemID < b.ItemID
	}), f.query("low")
}

func (f fakeStats) CriticalItems(_ context.Context, limit int) ([]entity.LowStockItem, error) {
	return f.sorted(limit, func(a, b entity.LowStockItem) bool {
		if a.Shortage() != b.Shortage() {
			return a.Shortage() > b.Shortage()
		}
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		return a.ItemID < b.ItemID
	}), f.query("critical")
}

type fakeMovements struct {
	repository.InventoryMovementRepository
	lastLimit int
}

func (f *fakeMovements) List(_ context.Context, filter entity.MovementFilter) ([]*entity.InventoryMovement, error) {
	f.lastLimit = filter.Limit
	return []*entity.InventoryMovement{
		{ID: 9, ItemID: 1, TypeCode: "OUT", Quantity: 2, MovementDate: time.Now()},
	}, nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func TestDashboard_GetSummary(t *testing.T) {
	movs := &fakeMovements{}
	uc := analytics.NewDashboardUseCase(fakeStats{}, movs)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, out.TotalItems)
	assert.Equal(t, 31, out.TotalQuantity)
	assert.Equal(t, 3, out.WarehouseCount)
	assert.Equal(t, 12, out.TotalMovements)
	assert.Equal(t, 10, movs.lastLimit)
	require.Len(t, out.RecentMovements, 1)

	require.Len(t, out.CriticalItems, 5)
	assert.Equal(t, "Jeringas", out.CriticalItems[0].ItemName, "mayor faltante primero")
	assert.Equal(t, 26, out.CriticalItems[0].Shortage)
	// Guantes y Alcohol faltan 10: primero el de menor cantidad.
	assert.Equal(t, "Guantes", out.CriticalItems[1].ItemName)
	assert.Equal(t, "Alcohol", out.CriticalItems[2].ItemName)
}

func TestDashboard_CriticosPorFaltanteNoPorCantidad(t *testing.T) {
	// 20 ítems de poca cantidad y faltante 1 llenan el top-20 por cantidad;
	// el monitor de 50 unidades con mínimo 200 es el más crítico.
	var low []entity.LowStockItem
	for q := 1; q <= 20; q++ {
		low = append(low, entity.LowStockItem{ItemID: int64(q), ItemName: "Tornillo", Quantity: q, MinQuantity: q + 1})
	}
	low = append(low, entity.LowStockItem{ItemID: 99, ItemName: "Monitor", Quantity: 50, MinQuantity: 200})

	uc := analytics.NewDashboardUseCase(fakeStats{low: low}, &fakeMovements{})
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, out.CriticalItems, 5)
	assert.Equal(t, int64(99), out.CriticalItems[0].ItemID)
	assert.Equal(t, 150, out.CriticalItems[0].Shortage)
	assert.Equal(t, int64(1), out.CriticalItems[1].ItemID, "a igual faltante, menor cantidad")
}

func TestDashboard_ErrorDeConsulta(t *testing.T) {
	uc := analytics.NewDashboardUseCase(fakeStats{failOn: "stock"}, &fakeMovements{})
	_, err := uc.GetSummary(context.Background())
	assert.ErrorIs(t, err, domain.ErrInternal)
}

// ── Estadísticas ──────────────────────────────────────────────────────────────

func TestStatistics_Get(t *testing.T) {
	uc := analytics.NewStatisticsUseCase(fakeStats{})
	out, err := uc.Get(context.Background())
	require.NoError(t, err)

	assertGroups(t, out)
	assert.Equal(t, 4, out.Departments[0].ItemCount)
	assert.Equal(t, 3, out.WarehouseCount)
	assert.Equal(t, 3, out.Stock.InStockCount)
	assert.Equal(t, 9, out.Movements.TotalOut)
	require.Len(t, out.MovementTypes, 1)
	assert.Equal(t, "IN", out.MovementTypes[0].TypeCode)
	assert.Len(t, out.LowStockItems, 6)
}

// assertGroups cada agrupación recibe las filas de su propia consulta.
func assertGroups(t *testing.T, out *dto.StatisticsDTO) {
	t.Helper()
	want := []struct {
		name string
		got  []dto.GroupCountDTO
	}{
		{"Hardware", out.MainCategories},
		{"Monitores", out.SubCategories},
		{"LCD", out.ItemTypes},
		{"IT", out.Departments},
		{"الطابق الأول", out.Floors},
		{"جديد", out.Situations},
		{"عهدة", out.Kinds},
		{"tah", out.Users},
	}
	for _, w := range want {
		require.Len(t, w.got, 1, w.name)
		assert.Equal(t, w.name, w.got[0].Name)
	}
}

func TestStatistics_ConcurrenciaAcotada(t *testing.T) {
	gauge := &inflight{}
	uc := analytics.NewStatisticsUseCase(fakeStats{gauge: gauge})

	out, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.LowStockItems, 6)
	assertGroups(t, out)

	assert.LessOrEqual(t, gauge.max.Load(), int32(4), "no más de 4 consultas a la vez contra el pool")
	assert.Positive(t, gauge.max.Load())
	assert.Zero(t, gauge.cur.Load())
}

func TestStatistics_PrimerErrorCancela(t *testing.T) {
	for _, name := range []string{"main", "movements"} {
		uc := analytics.NewStatisticsUseCase(fakeStats{failOn: name})
		_, err := uc.Get(context.Background())
		assert.ErrorIs(t, err, domain.ErrInternal, name)
	}
}
