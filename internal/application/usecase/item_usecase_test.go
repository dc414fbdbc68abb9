package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/application/usecase"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

type itemFixture struct {
	uc       *usecase.ItemUseCase
	items    *memItems
	ledger   *fakeLedger
	catalogs *memCatalogs
	deptID   int64
}

func newItemFixture() itemFixture {
	items := newMemItems()
	catalogs := newMemCatalogs()
	users := newMemUsers()
	_ = users.Create(context.Background(), &entity.User{Username: "tah", Email: "tah@h.org", IsActive: true, RoleID: 1})
	ledger := &fakeLedger{items: items}
	f := itemFixture{
		uc:       usecase.NewItemUseCase(items, catalogs, users, ledger, nil),
		items:    items,
		ledger:   ledger,
		catalogs: catalogs,
	}
	f.deptID = catalogs.seed(entity.CatalogDepartment, "IT", nil)
	return f
}

func ptr[T any](v T) *T { return &v }

// ── Create ────────────────────────────────────────────────────────────────────

func TestItemCreate_CantidadInicialPorLibro(t *testing.T) {
	f := newItemFixture()
	out, err := f.uc.Create(context.Background(), 1, dto.CreateItemRequest{
		Name: "  Monitor  ", InitialQuantity: 12, MinQuantity: 3, DeptID: &f.deptID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Monitor", out.Name)
	assert.Equal(t, 12, out.Quantity)
	assert.Equal(t, entity.DefaultItemUnit, out.Unit)

	require.Len(t, f.ledger.calls, 1)
	call := f.ledger.calls[0]
	assert.Equal(t, out.ID, call.ItemID)
	assert.Equal(t, 12, call.Quantity)
	assert.Equal(t, int64(1), call.UserID)
}

func TestItemCreate_SinCantidadNoRegistraMovimiento(t *testing.T) {
	f := newItemFixture()
	out, err := f.uc.Create(context.Background(), 1, dto.CreateItemRequest{Name: "Teclado", Unit: ptr("علبة")})
	require.NoError(t, err)
	assert.Zero(t, out.Quantity)
	assert.Equal(t, "علبة", out.Unit)
	assert.Empty(t, f.ledger.calls)
}

func TestItemCreate_FalloDelLibroRevierteElAlta(t *testing.T) {
	f := newItemFixture()
	f.ledger.fail = domain.MissingReference("usuario", 99)

	_, err := f.uc.Create(context.Background(), 99, dto.CreateItemRequest{Name: "Router", InitialQuantity: 2})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.items.items, "el ítem debe eliminarse como compensación")
}

func TestItemCreate_Validaciones(t *testing.T) {
	f := newItemFixture()
	cases := map[string]dto.CreateItemRequest{
		"sin nombre":           {Name: "   "},
		"cantidad negativa":    {Name: "x", InitialQuantity: -1},
		"mínimo negativo":      {Name: "x", MinQuantity: -2},
		"departamento ausente": {Name: "x", DeptID: ptr(int64(999))},
		"usuario ausente":      {Name: "x", UserID: ptr(int64(999))},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), 1, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, f.items.items)
}

// ── Get / List ────────────────────────────────────────────────────────────────

func TestItemGet_NoEncontrado(t *testing.T) {
	f := newItemFixture()
	_, err := f.uc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemList_UsuarioCeroEsAlmacen(t *testing.T) {
	f := newItemFixture()
	for _, id := range []int64{0, -1} {
		_, err := f.uc.List(context.Background(), dto.ItemFilterRequest{UserID: ptr(id)})
		require.NoError(t, err)
		assert.True(t, f.items.lastFilter.OnlyInStore)
		assert.Nil(t, f.items.lastFilter.UserID)
	}

	_, err := f.uc.List(context.Background(), dto.ItemFilterRequest{UserID: ptr(int64(1)), Serial: " SN-1 "})
	require.NoError(t, err)
	assert.False(t, f.items.lastFilter.OnlyInStore)
	assert.Equal(t, int64(1), *f.items.lastFilter.UserID)
	assert.Equal(t, "SN-1", f.items.lastFilter.Serial)
}

// ── Update / Delete ───────────────────────────────────────────────────────────

func TestItemUpdate_ParcialSinTocarCantidad(t *testing.T) {
	f := newItemFixture()
	created, err := f.uc.Create(context.Background(), 1, dto.CreateItemRequest{
		Name: "Impresora", InitialQuantity: 5, DeptID: &f.deptID, Serial: ptr("SN-9"),
	})
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{
		Situation: ptr("معطل"),
		DeptID:    ptr(int64(0)),
		Serial:    ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Impresora", out.Name)
	assert.Equal(t, 5, out.Quantity)
	assert.Equal(t, "معطل", *out.Situation)
	assert.Nil(t, out.DeptID, "0 desasigna la relación")
	assert.Nil(t, out.Serial)
}

func TestItemUpdate_Errores(t *testing.T) {
	f := newItemFixture()
	_, err := f.uc.Update(context.Background(), 7, dto.UpdateItemRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := f.uc.Create(context.Background(), 1, dto.CreateItemRequest{Name: "CPU"})
	require.NoError(t, err)
	_, err = f.uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{MinQuantity: ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{ItemTypeID: ptr(int64(55))})
	assert.True(t, errors.Is(err, domain.ErrValidation) && errors.Is(err, domain.ErrNotFound))
}

func TestItemDelete(t *testing.T) {
	f := newItemFixture()
	created, err := f.uc.Create(context.Background(), 1, dto.CreateItemRequest{Name: "UPS"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, f.uc.Delete(context.Background(), created.ID), domain.ErrNotFound)
}
