package dto

import "github.com/jhoicas/hospital-inventory/internal/domain/entity"

// ItemFromEntity proyección pública de un ítem.
func ItemFromEntity(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Serial:       i.Serial,
		Kind:         i.Kind,
		Situation:    i.Situation,
		Properties:   i.Properties,
		HDD:          i.HDD,
		RAM:          i.RAM,
		IP:           i.IP,
		CompName:     i.CompName,
		LockNum:      i.LockNum,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		Unit:         i.Unit,
		LowStock:     i.IsLowStock(),
		UserID:       i.UserID,
		AssignedUser: i.Refs.AssignedUser,
		DeptID:       i.DeptID,
		DeptName:     i.Refs.DeptName,
		FloorID:      i.FloorID,
		FloorName:    i.Refs.FloorName,
		SubCatID:     i.SubCatID,
		SubCatName:   i.Refs.SubCatName,
		CatID:        i.Refs.CatID,
		CatName:      i.Refs.CatName,
		ItemTypeID:   i.ItemTypeID,
		ItemTypeName: i.Refs.ItemTypeName,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// MovementFromEntity proyección pública de un movimiento.
func MovementFromEntity(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		ItemName:       m.Refs.ItemName,
		MovementTypeID: m.MovementTypeID,
		TypeCode:       m.TypeCode,
		TypeName:       m.Refs.TypeName,
		Quantity:       m.Quantity,
		PreviousQty:    m.PreviousQty,
		NewQty:         m.NewQty,
		UserID:         m.UserID,
		UserFullName:   m.Refs.UserFullName,
		ReferenceNo:    m.ReferenceNo,
		Notes:          m.Notes,
		FromDeptID:     m.FromDeptID,
		FromDept:       m.Refs.FromDept,
		ToDeptID:       m.ToDeptID,
		ToDept:         m.Refs.ToDept,
		FromFloorID:    m.FromFloorID,
		FromFloor:      m.Refs.FromFloor,
		ToFloorID:      m.ToFloorID,
		ToFloor:        m.Refs.ToFloor,
		MovementDate:   m.MovementDate,
	}
}

// MovementsFromEntities mapea un listado.
func MovementsFromEntities(list []*entity.InventoryMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementFromEntity(m))
	}
	return out
}

// MovementTypeFromEntity entrada del catálogo de tipos.
func MovementTypeFromEntity(t *entity.MovementType) MovementTypeResponse {
	return MovementTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Code:        t.Code,
		Effect:      t.Effect,
		Description: t.Description,
	}
}

// LowStockFromEntity ítem bajo mínimo.
func LowStockFromEntity(l entity.LowStockItem) LowStockItemDTO {
	return LowStockItemDTO{
		ItemID:      l.ItemID,
		ItemName:    l.ItemName,
		Quantity:    l.Quantity,
		MinQuantity: l.MinQuantity,
		Unit:        l.Unit,
		Shortage:    l.Shortage(),
	}
}

// UserFromEntity proyección pública de un usuario (sin hash).
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		RoleID:    u.RoleID,
		RoleName:  u.RoleName,
		DeptID:    u.DeptID,
		DeptName:  u.DeptName,
		RankID:    u.RankID,
		RankName:  u.RankName,
		FloorID:   u.FloorID,
		FloorName: u.FloorName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CatalogFromEntity entrada de catálogo.
func CatalogFromEntity(e *entity.CatalogEntry) CatalogResponse {
	return CatalogResponse{
		ID:          e.ID,
		Name:        e.Name,
		ParentID:    e.ParentID,
		ParentName:  e.ParentName,
		Description: e.Description,
	}
}
