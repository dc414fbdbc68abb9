package usecase_test

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/hospital-inventory/internal/application/inventory"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

// ── Catálogos ─────────────────────────────────────────────────────────────────

type memCatalogs struct {
	next    int64
	entries map[entity.CatalogKind]map[int64]*entity.CatalogEntry
	inUse   map[int64]bool
}

var _ repository.CatalogRepository = (*memCatalogs)(nil)

func newMemCatalogs() *memCatalogs {
	return &memCatalogs{entries: map[entity.CatalogKind]map[int64]*entity.CatalogEntry{}, inUse: map[int64]bool{}}
}

func (m *memCatalogs) seed(kind entity.CatalogKind, name string, parent *int64) int64 {
	m.next++
	if m.entries[kind] == nil {
		m.entries[kind] = map[int64]*entity.CatalogEntry{}
	}
	m.entries[kind][m.next] = &entity.CatalogEntry{Kind: kind, ID: m.next, Name: name, Key: strings.ToLower(name), ParentID: parent}
	return m.next
}

func (m *memCatalogs) List(_ context.Context, kind entity.CatalogKind, parentID *int64) ([]*entity.CatalogEntry, error) {
	var out []*entity.CatalogEntry
	for _, e := range m.entries[kind] {
		if parentID != nil && (e.ParentID == nil || *e.ParentID != *parentID) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCatalogs) GetByID(_ context.Context, kind entity.CatalogKind, id int64) (*entity.CatalogEntry, error) {
	e, ok := m.entries[kind][id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memCatalogs) FindByKey(_ context.Context, kind entity.CatalogKind, key string, parentID *int64) (*entity.CatalogEntry, error) {
	for _, e := range m.entries[kind] {
		if e.Key != key {
			continue
		}
		if kind.HasParent() && (parentID == nil || e.ParentID == nil || *e.ParentID != *parentID) {
			continue
		}
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (m *memCatalogs) Create(_ context.Context, e *entity.CatalogEntry) error {
	m.next++
	e.ID = m.next
	if m.entries[e.Kind] == nil {
		m.entries[e.Kind] = map[int64]*entity.CatalogEntry{}
	}
	cp := *e
	m.entries[e.Kind][e.ID] = &cp
	return nil
}

func (m *memCatalogs) Update(_ context.Context, e *entity.CatalogEntry) error {
	cp := *e
	m.entries[e.Kind][e.ID] = &cp
	return nil
}

func (m *memCatalogs) Delete(_ context.Context, kind entity.CatalogKind, id int64) error {
	if m.inUse[id] {
		return domain.ErrConflict
	}
	delete(m.entries[kind], id)
	return nil
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

type memItems struct {
	repository.ItemRepository
	next       int64
	items      map[int64]*entity.Item
	lastFilter entity.ItemFilter
}

func newMemItems() *memItems { return &memItems{items: map[int64]*entity.Item{}} }

func (m *memItems) Create(_ context.Context, it *entity.Item) error {
	m.next++
	it.ID = m.next
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memItems) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memItems) Update(_ context.Context, it *entity.Item) error {
	cur := m.items[it.ID]
	cp := *it
	cp.Quantity = cur.Quantity
	m.items[it.ID] = &cp
	return nil
}

func (m *memItems) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *memItems) List(_ context.Context, f entity.ItemFilter) ([]*entity.Item, error) {
	m.lastFilter = f
	var out []*entity.Item
	for _, it := range m.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

// ── Libro ─────────────────────────────────────────────────────────────────────

type fakeLedger struct {
	items *memItems
	fail  error
	calls []inventory.MovementInput
}

func (f *fakeLedger) MovementTypeByCode(_ context.Context, code string) (*entity.MovementType, error) {
	return &entity.MovementType{ID: 1, Code: code, Effect: 1, IsActive: true}, nil
}

func (f *fakeLedger) AddMovement(_ context.Context, in inventory.MovementInput) (*inventory.MovementResult, error) {
	f.calls = append(f.calls, in)
	if f.fail != nil {
		return nil, f.fail
	}
	it := f.items.items[in.ItemID]
	it.Quantity += in.Quantity
	cp := *it
	return &inventory.MovementResult{Movement: &entity.InventoryMovement{ID: 1}, Item: &cp}, nil
}

// ── Usuarios y roles ──────────────────────────────────────────────────────────

type memUsers struct {
	next       int64
	users      map[int64]*entity.User
	passwords  map[int64]string
	items      *memItems // ON DELETE SET NULL
	failDelete bool
}

var _ repository.UserRepository = (*memUsers)(nil)

func newMemUsers() *memUsers {
	return &memUsers{users: map[int64]*entity.User{}, passwords: map[int64]string{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.next++
	u.ID = m.next
	cp := *u
	m.users[u.ID] = &cp
	m.passwords[u.ID] = u.PasswordHash
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) find(match func(*entity.User) bool) *entity.User {
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return strings.EqualFold(u.Username, username) }), nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return errors.New("no rows")
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.passwords[id] = hash
	return nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	if m.failDelete {
		return errors.New("conexión perdida")
	}
	delete(m.users, id)
	if m.items != nil {
		for _, it := range m.items.items {
			if it.UserID != nil && *it.UserID == id {
				it.UserID = nil
			}
		}
	}
	return nil
}

func (m *memUsers) List(_ context.Context, _ entity.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type memRoles struct {
	repository.RoleRepository
	perms map[int64][]entity.Permission
}

var seededRoles = map[int64]*entity.Role{
	1: {ID: 1, Name: entity.RoleSuperAdmin},
	2: {ID: 2, Name: entity.RoleAdmin},
	6: {ID: 6, Name: entity.RoleUser},
}

func (memRoles) GetByID(_ context.Context, id int64) (*entity.Role, error) {
	return seededRoles[id], nil
}

func (m memRoles) ListPermissions(_ context.Context, roleID int64) ([]entity.Permission, error) {
	return m.perms[roleID], nil
}

type memMovements struct {
	repository.InventoryMovementRepository
	byUser map[int64]int
}

func (m memMovements) CountByUser(_ context.Context, userID int64) (int, error) {
	return m.byUser[userID], nil
}
