package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/hospital-inventory/internal/application/inventory"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con transacciones: cada Run trabaja sobre una copia que solo
// se publica si fn no falla; txMu serializa las transacciones como un FOR UPDATE.
// ──────────────────────────────────────────────────────────────────────────────

var baseDate = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

type state struct {
	items     map[int64]*entity.Item
	movements map[int64]*entity.InventoryMovement
	nextMovID int64
}

func (s *state) clone() *state {
	c := &state{
		items:     make(map[int64]*entity.Item, len(s.items)),
		movements: make(map[int64]*entity.InventoryMovement, len(s.movements)),
		nextMovID: s.nextMovID,
	}
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, m := range s.movements {
		cp := *m
		c.movements[id] = &cp
	}
	return c
}

type memDB struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	cur   *state
	types map[int64]*entity.MovementType
	users map[int64]*entity.User

	failUnit   bool
	failCreate bool
	lastLimit  int
}

func newMemDB() *memDB {
	db := &memDB{
		cur:   &state{items: map[int64]*entity.Item{}, movements: map[int64]*entity.InventoryMovement{}},
		types: map[int64]*entity.MovementType{},
		users: map[int64]*entity.User{},
	}
	for _, t := range []*entity.MovementType{
		{ID: 1, Name: "إدخال مخزون", Code: entity.MovementCodeIN, Effect: 1, IsActive: true},
		{ID: 2, Name: "إخراج مخزون", Code: entity.MovementCodeOUT, Effect: -1, IsActive: true},
		{ID: 3, Name: "مرتجع", Code: entity.MovementCodeRETURN, Effect: 1, IsActive: true},
		{ID: 4, Name: "تالف", Code: entity.MovementCodeDAMAGED, Effect: -1, IsActive: true},
		{ID: 5, Name: "جرد", Code: entity.MovementCodeADJUSTMENT, Effect: 0, IsActive: true},
		{ID: 6, Name: "نقل بين أقسام", Code: entity.MovementCodeTRANSFER, Effect: 0, IsActive: true},
		{ID: 7, Name: "obsoleto", Code: "LEGACY", Effect: 1, IsActive: false},
	} {
		db.types[t.ID] = t
	}
	db.users[1] = &entity.User{ID: 1, Username: "superadmin", FullName: "Super Admin", IsActive: true}
	return db
}

const (
	typeIN  int64 = 1
	typeOUT int64 = 2
	typeADJ int64 = 5
	userID  int64 = 1
)

func (db *memDB) addItem(id int64, qty int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.cur.items[id] = &entity.Item{ID: id, Name: "item", Quantity: qty, Unit: entity.DefaultItemUnit}
}

func (db *memDB) item(id int64) *entity.Item {
	db.mu.Lock()
	defer db.mu.Unlock()
	it, ok := db.cur.items[id]
	if !ok {
		return nil
	}
	cp := *it
	return &cp
}

func (db *memDB) movementCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.cur.movements)
}

func (db *memDB) hasMovement(id int64) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.cur.movements[id]
	return ok
}

// Run implementa inventory.TxRunner.
func (db *memDB) Run(ctx context.Context, fn func(repository.ItemRepository, repository.InventoryMovementRepository) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.Lock()
	tx := db.cur.clone()
	db.mu.Unlock()

	if err := fn(&memItems{db: db, tx: tx}, &memMovements{db: db, tx: tx}); err != nil {
		return err // rollback: la copia se descarta
	}

	db.mu.Lock()
	db.cur = tx
	db.mu.Unlock()
	return nil
}

var _ inventory.TxRunner = (*memDB)(nil)

// ── Items ─────────────────────────────────────────────────────────────────────

type memItems struct {
	db *memDB
	tx *state
}

var _ repository.ItemRepository = (*memItems)(nil)

func (r *memItems) with(fn func(s *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return fn(r.db.cur)
}

func (r *memItems) Create(_ context.Context, item *entity.Item) error {
	return r.with(func(s *state) error {
		item.ID = int64(len(s.items) + 1)
		cp := *item
		s.items[item.ID] = &cp
		return nil
	})
}

func (r *memItems) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	var out *entity.Item
	err := r.with(func(s *state) error {
		if it, ok := s.items[id]; ok {
			cp := *it
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *memItems) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memItems) Update(_ context.Context, item *entity.Item) error {
	return r.with(func(s *state) error {
		cur, ok := s.items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cp := *item
		cp.Quantity = cur.Quantity
		s.items[item.ID] = &cp
		return nil
	})
}

func (r *memItems) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	return r.with(func(s *state) error {
		it, ok := s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return errors.New("check constraint items_quantity_check")
		}
		it.Quantity = quantity
		return nil
	})
}

func (r *memItems) UpdateUnit(_ context.Context, id int64, unit string) error {
	if r.db.failUnit {
		return errors.New("conexión perdida")
	}
	return r.with(func(s *state) error {
		it, ok := s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.Unit = unit
		return nil
	})
}

func (r *memItems) Delete(_ context.Context, id int64) error {
	return r.with(func(s *state) error {
		delete(s.items, id)
		return nil
	})
}

func (r *memItems) List(_ context.Context, _ entity.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.with(func(s *state) error {
		for _, it := range s.items {
			cp := *it
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

// ── Movements ─────────────────────────────────────────────────────────────────

type memMovements struct {
	db *memDB
	tx *state
}

var _ repository.InventoryMovementRepository = (*memMovements)(nil)

func (r *memMovements) with(fn func(s *state) error) error {
	return (&memItems{db: r.db, tx: r.tx}).with(fn)
}

func (r *memMovements) Create(_ context.Context, m *entity.InventoryMovement) error {
	if r.db.failCreate {
		return errors.New("insert falló")
	}
	return r.with(func(s *state) error {
		s.nextMovID++
		m.ID = s.nextMovID
		if m.MovementDate.IsZero() {
			m.MovementDate = baseDate.Add(time.Duration(m.ID) * time.Minute)
		}
		m.CreatedAt = m.MovementDate
		cp := *m
		s.movements[m.ID] = &cp
		return nil
	})
}

func (r *memMovements) GetByID(_ context.Context, id int64) (*entity.InventoryMovement, error) {
	var out *entity.InventoryMovement
	err := r.with(func(s *state) error {
		if m, ok := s.movements[id]; ok {
			cp := *m
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *memMovements) Delete(_ context.Context, id int64) error {
	return r.with(func(s *state) error {
		if _, ok := s.movements[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.movements, id)
		return nil
	})
}

func (r *memMovements) ListByItemChronological(_ context.Context, itemID int64) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.with(func(s *state) error {
		for _, m := range s.movements {
			if m.ItemID == itemID {
				cp := *m
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MovementDate.Equal(out[j].MovementDate) {
			return out[i].MovementDate.Before(out[j].MovementDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *memMovements) List(_ context.Context, f entity.MovementFilter) ([]*entity.InventoryMovement, error) {
	r.db.lastLimit = f.Limit
	var out []*entity.InventoryMovement
	err := r.with(func(s *state) error {
		for _, m := range s.movements {
			if f.ItemID != nil && m.ItemID != *f.ItemID {
				continue
			}
			if f.MovementTypeID != nil && m.MovementTypeID != *f.MovementTypeID {
				continue
			}
			cp := *m
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MovementDate.Equal(out[j].MovementDate) {
			return out[i].MovementDate.After(out[j].MovementDate)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, err
}

func (r *memMovements) CountByUser(_ context.Context, userID int64) (int, error) {
	n := 0
	err := r.with(func(s *state) error {
		for _, m := range s.movements {
			if m.UserID == userID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Tipos y usuarios ──────────────────────────────────────────────────────────

type memTypes struct{ db *memDB }

var _ repository.MovementTypeRepository = memTypes{}

func (r memTypes) GetByID(_ context.Context, id int64) (*entity.MovementType, error) {
	if t, ok := r.db.types[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r memTypes) GetByCode(_ context.Context, code string) (*entity.MovementType, error) {
	for _, t := range r.db.types {
		if t.Code == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memTypes) ListActive(_ context.Context) ([]*entity.MovementType, error) {
	var out []*entity.MovementType
	for _, t := range r.db.types {
		if t.IsActive {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memUsers struct {
	repository.UserRepository
	db *memDB
}

func (r memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := r.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

// ── Métricas ──────────────────────────────────────────────────────────────────

type fakeMetrics struct {
	mu         sync.Mutex
	recorded   map[string]int
	rejected   map[string]int
	recomputed int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{recorded: map[string]int{}, rejected: map[string]int{}}
}

func (m *fakeMetrics) MovementRecorded(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded[code]++
}

func (m *fakeMetrics) MovementRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *fakeMetrics) Recomputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputed++
}
