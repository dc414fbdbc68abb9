package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemSelect = `
	SELECT i.item_id, i.item_name, i.serial, i.kind, i.situation, i.properties, i.hdd, i.ram, i.ip,
	       i.comp_name, i.lock_num, i.quantity, i.min_quantity, i.unit,
	       i.user_id, i.dept_id, i.floor_id, i.sub_cat_id, i.item_type_id, i.created_at, i.updated_at,
	       u.full_name, d.dept_name, f.floor_name, sc.sub_cat_name, mc.cat_id, mc.cat_name, it.item_type_name
	FROM items i
	LEFT JOIN users u ON u.user_id = i.user_id
	LEFT JOIN departments d ON d.dept_id = i.dept_id
	LEFT JOIN floors f ON f.floor_id = i.floor_id
	LEFT JOIN sub_categories sc ON sc.sub_cat_id = i.sub_cat_id
	LEFT JOIN main_categories mc ON mc.cat_id = sc.cat_id
	LEFT JOIN item_types it ON it.item_type_id = i.item_type_id`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Serial, &it.Kind, &it.Situation, &it.Properties, &it.HDD, &it.RAM, &it.IP,
		&it.CompName, &it.LockNum, &it.Quantity, &it.MinQuantity, &it.Unit,
		&it.UserID, &it.DeptID, &it.FloorID, &it.SubCatID, &it.ItemTypeID, &it.CreatedAt, &it.UpdatedAt,
		&it.Refs.AssignedUser, &it.Refs.DeptName, &it.Refs.FloorName, &it.Refs.SubCatName,
		&it.Refs.CatID, &it.Refs.CatName, &it.Refs.ItemTypeName,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo ítem y rellena su ID.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (item_name, serial, kind, situation, properties, hdd, ram, ip, comp_name, lock_num,
		                   quantity, min_quantity, unit, user_id, dept_id, floor_id, sub_cat_id, item_type_id,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING item_id`
	err := r.q.QueryRow(ctx, query,
		item.Name, item.Serial, item.Kind, item.Situation, item.Properties, item.HDD, item.RAM, item.IP,
		item.CompName, item.LockNum, item.Quantity, item.MinQuantity, item.Unit,
		item.UserID, item.DeptID, item.FloorID, item.SubCatID, item.ItemTypeID,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("referencia inexistente en el ítem")
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem con los nombres de sus relaciones.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, itemSelect+` WHERE i.item_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el ítem y bloquea su fila hasta el fin de la transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	query := `
		SELECT item_id, item_name, quantity, min_quantity, unit
		FROM items WHERE item_id = $1 FOR UPDATE`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(&it.ID, &it.Name, &it.Quantity, &it.MinQuantity, &it.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock item: %w", err)
	}
	return &it, nil
}

// Update persiste los campos descriptivos. quantity no se toca.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET item_name = $2, serial = $3, kind = $4, situation = $5, properties = $6,
		       hdd = $7, ram = $8, ip = $9, comp_name = $10, lock_num = $11, min_quantity = $12, unit = $13,
		       user_id = $14, dept_id = $15, floor_id = $16, sub_cat_id = $17, item_type_id = $18,
		       updated_at = $19
		WHERE item_id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Serial, item.Kind, item.Situation, item.Properties,
		item.HDD, item.RAM, item.IP, item.CompName, item.LockNum, item.MinQuantity, item.Unit,
		item.UserID, item.DeptID, item.FloorID, item.SubCatID, item.ItemTypeID, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("referencia inexistente en el ítem")
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad; el CHECK (quantity >= 0) es la última barrera.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET quantity = $2, updated_at = NOW() WHERE item_id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateUnit cambia la unidad del ítem.
func (r *ItemRepo) UpdateUnit(ctx context.Context, id int64, unit string) error {
	_, err := r.q.Exec(ctx, `UPDATE items SET unit = $2, updated_at = NOW() WHERE item_id = $1`, id, unit)
	if err != nil {
		return fmt.Errorf("update item unit: %w", err)
	}
	return nil
}

// Delete elimina el ítem; sus movimientos caen por ON DELETE CASCADE.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List lista ítems con filtros, ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error) {
	var w whereBuilder
	if filter.CatID != nil {
		w.add("sc.cat_id = ?", *filter.CatID)
	}
	if filter.SubCatID != nil {
		w.add("i.sub_cat_id = ?", *filter.SubCatID)
	}
	if filter.ItemTypeID != nil {
		w.add("i.item_type_id = ?", *filter.ItemTypeID)
	}
	if filter.DeptID != nil {
		w.add("i.dept_id = ?", *filter.DeptID)
	}
	if filter.OnlyInStore {
		w.addRaw("i.user_id IS NULL")
	} else if filter.UserID != nil {
		w.add("i.user_id = ?", *filter.UserID)
	}
	if filter.Serial != "" {
		w.add("i.serial ILIKE ?", likePattern(filter.Serial))
	}
	if filter.Name != "" {
		w.add("i.item_name ILIKE ?", likePattern(filter.Name))
	}
	if filter.IP != "" {
		w.add("i.ip ILIKE ?", likePattern(filter.IP))
	}
	if filter.CompName != "" {
		w.add("i.comp_name ILIKE ?", likePattern(filter.CompName))
	}

	rows, err := r.q.Query(ctx, itemSelect+w.sql()+` ORDER BY i.item_name, i.item_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
