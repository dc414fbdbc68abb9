package dto

import "time"

// CreateItemRequest body para POST /api/items.
// InitialQuantity > 0 se registra como movimiento IN; quantity nunca se asigna directamente.
type CreateItemRequest struct {
	Name            string  `json:"item_name"`
	Serial          *string `json:"serial,omitempty"`
	Kind            *string `json:"kind,omitempty"`
	Situation       *string `json:"situation,omitempty"`
	Properties      *string `json:"properties,omitempty"`
	HDD             *string `json:"hdd,omitempty"`
	RAM             *string `json:"ram,omitempty"`
	IP              *string `json:"ip,omitempty"`
	CompName        *string `json:"comp_name,omitempty"`
	LockNum         *string `json:"lock_num,omitempty"`
	InitialQuantity int     `json:"initial_quantity,omitempty"`
	MinQuantity     int     `json:"min_quantity,omitempty"`
	Unit            *string `json:"unit,omitempty"`
	UserID          *int64  `json:"user_id,omitempty"`
	DeptID          *int64  `json:"dept_id,omitempty"`
	FloorID         *int64  `json:"floor_id,omitempty"`
	SubCatID        *int64  `json:"sub_cat_id,omitempty"`
	ItemTypeID      *int64  `json:"item_type_id,omitempty"`
}

// UpdateItemRequest actualización parcial. Los punteros nil no se tocan.
// Para desasignar una relación se envía 0 (vuelve a NULL).
type UpdateItemRequest struct {
	Name        *string `json:"item_name,omitempty"`
	Serial      *string `json:"serial,omitempty"`
	Kind        *string `json:"kind,omitempty"`
	Situation   *string `json:"situation,omitempty"`
	Properties  *string `json:"properties,omitempty"`
	HDD         *string `json:"hdd,omitempty"`
	RAM         *string `json:"ram,omitempty"`
	IP          *string `json:"ip,omitempty"`
	CompName    *string `json:"comp_name,omitempty"`
	LockNum     *string `json:"lock_num,omitempty"`
	MinQuantity *int    `json:"min_quantity,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	UserID      *int64  `json:"user_id,omitempty"`
	DeptID      *int64  `json:"dept_id,omitempty"`
	FloorID     *int64  `json:"floor_id,omitempty"`
	SubCatID    *int64  `json:"sub_cat_id,omitempty"`
	ItemTypeID  *int64  `json:"item_type_id,omitempty"`
}

// Fields nombres JSON de los campos presentes; el handler los usa para el chequeo por campo.
func (r UpdateItemRequest) Fields() []string {
	var out []string
	add := func(present bool, name string) {
		if present {
			out = append(out, name)
		}
	}
	add(r.Name != nil, "item_name")
	add(r.Serial != nil, "serial")
	add(r.Kind != nil, "kind")
	add(r.Situation != nil, "situation")
	add(r.Properties != nil, "properties")
	add(r.HDD != nil, "hdd")
	add(r.RAM != nil, "ram")
	add(r.IP != nil, "ip")
	add(r.CompName != nil, "comp_name")
	add(r.LockNum != nil, "lock_num")
	add(r.MinQuantity != nil, "min_quantity")
	add(r.Unit != nil, "unit")
	add(r.UserID != nil, "user_id")
	add(r.DeptID != nil, "dept_id")
	add(r.FloorID != nil, "floor_id")
	add(r.SubCatID != nil, "sub_cat_id")
	add(r.ItemTypeID != nil, "item_type_id")
	return out
}

// ItemFilterRequest query de GET /api/items.
// user_id = 0 o -1 lista los ítems en almacén (sin usuario).
type ItemFilterRequest struct {
	CatID      *int64 `query:"cat_id"`
	SubCatID   *int64 `query:"sub_cat_id"`
	ItemTypeID *int64 `query:"item_type_id"`
	DeptID     *int64 `query:"dept_id"`
	UserID     *int64 `query:"user_id"`
	Serial     string `query:"serial"`
	Name       string `query:"item_name"`
	IP         string `query:"ip"`
	CompName   string `query:"comp_name"`
}

// ItemResponse proyección del ítem con nombres de relaciones.
type ItemResponse struct {
	ID           int64     `json:"item_id"`
	Name         string    `json:"item_name"`
	Serial       *string   `json:"serial,omitempty"`
	Kind         *string   `json:"kind,omitempty"`
	Situation    *string   `json:"situation,omitempty"`
	Properties   *string   `json:"properties,omitempty"`
	HDD          *string   `json:"hdd,omitempty"`
	RAM          *string   `json:"ram,omitempty"`
	IP           *string   `json:"ip,omitempty"`
	CompName     *string   `json:"comp_name,omitempty"`
	LockNum      *string   `json:"lock_num,omitempty"`
	Quantity     int       `json:"quantity"`
	MinQuantity  int       `json:"min_quantity"`
	Unit         string    `json:"unit"`
	LowStock     bool      `json:"low_stock"`
	UserID       *int64    `json:"user_id,omitempty"`
	AssignedUser *string   `json:"assigned_user,omitempty"`
	DeptID       *int64    `json:"dept_id,omitempty"`
	DeptName     *string   `json:"dept_name,omitempty"`
	FloorID      *int64    `json:"floor_id,omitempty"`
	FloorName    *string   `json:"floor_name,omitempty"`
	SubCatID     *int64    `json:"sub_cat_id,omitempty"`
	SubCatName   *string   `json:"sub_cat_name,omitempty"`
	CatID        *int64    `json:"cat_id,omitempty"`
	CatName      *string   `json:"main_category_name,omitempty"`
	ItemTypeID   *int64    `json:"item_type_id,omitempty"`
	ItemTypeName *string   `json:"item_type_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
