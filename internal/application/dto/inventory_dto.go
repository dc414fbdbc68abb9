package dto

import "time"

// AddMovementRequest body para POST /api/inventory/movements.
// user_id lo toma el handler del token; quantity es la magnitud (en ADJUSTMENT, el conteo objetivo).
type AddMovementRequest struct {
	ItemID         int64   `json:"item_id"`
	MovementTypeID int64   `json:"movement_type_id"`
	Quantity       int     `json:"quantity"`
	ReferenceNo    *string `json:"reference_no,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	FromDeptID     *int64  `json:"from_dept_id,omitempty"`
	ToDeptID       *int64  `json:"to_dept_id,omitempty"`
	FromFloorID    *int64  `json:"from_floor_id,omitempty"`
	ToFloorID      *int64  `json:"to_floor_id,omitempty"`
	Unit           *string `json:"unit,omitempty"`
}

// MovementResponse movimiento con los nombres resueltos.
type MovementResponse struct {
	ID             int64     `json:"movement_id"`
	ItemID         int64     `json:"item_id"`
	ItemName       string    `json:"item_name,omitempty"`
	MovementTypeID int64     `json:"movement_type_id"`
	TypeCode       string    `json:"type_code"`
	TypeName       string    `json:"type_name,omitempty"`
	Quantity       int       `json:"quantity"`
	PreviousQty    int       `json:"previous_qty"`
	NewQty         int       `json:"new_qty"`
	UserID         int64     `json:"user_id"`
	UserFullName   string    `json:"user_full_name,omitempty"`
	ReferenceNo    *string   `json:"reference_no,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	FromDeptID     *int64    `json:"from_dept_id,omitempty"`
	FromDept       *string   `json:"from_dept,omitempty"`
	ToDeptID       *int64    `json:"to_dept_id,omitempty"`
	ToDept         *string   `json:"to_dept,omitempty"`
	FromFloorID    *int64    `json:"from_floor_id,omitempty"`
	FromFloor      *string   `json:"from_floor,omitempty"`
	ToFloorID      *int64    `json:"to_floor_id,omitempty"`
	ToFloor        *string   `json:"to_floor,omitempty"`
	MovementDate   time.Time `json:"movement_date"`
}

// AddMovementResponse salida de AddMovement.
type AddMovementResponse struct {
	MovementID int64            `json:"movement_id"`
	Movement   MovementResponse `json:"movement"`
	Item       ItemResponse     `json:"item"`
}

// MovementTypeResponse entrada del catálogo de tipos.
type MovementTypeResponse struct {
	ID          int64   `json:"movement_type_id"`
	Name        string  `json:"type_name"`
	Code        string  `json:"type_code"`
	Effect      int     `json:"effect"`
	Description *string `json:"description,omitempty"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un ítem en o bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ItemID            int64   `json:"item_id"`
	ItemName          string  `json:"item_name"`
	Unit              string  `json:"unit"`
	DeptName          *string `json:"dept_name,omitempty"`
	FloorName         *string `json:"floor_name,omitempty"`
	CurrentQty        int     `json:"current_qty"`
	MinQuantity       int     `json:"min_quantity"`
	Shortage          int     `json:"shortage_qty"`        // MinQuantity - CurrentQty
	IdealQty          int     `json:"ideal_qty"`           // ceil(MinQuantity * 1.5)
	SuggestedOrderQty int     `json:"suggested_order_qty"` // IdealQty - CurrentQty
	Priority          int     `json:"priority"`            // 1 = más urgente
}
