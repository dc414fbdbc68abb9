package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

var _ repository.StatisticsRepository = (*StatisticsRepo)(nil)

// StatisticsRepo consultas de solo lectura para estadísticas y tablero.
type StatisticsRepo struct {
	q Querier
}

// NewStatisticsRepository construye el adaptador.
func NewStatisticsRepository(q Querier) *StatisticsRepo {
	return &StatisticsRepo{q: q}
}

// StockStats agregados de existencias.
func (r *StatisticsRepo) StockStats(ctx context.Context) (entity.StockStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                   AS total_items,
	    COALESCE(SUM(quantity), 0)                                                 AS total_quantity,
	    COUNT(*) FILTER (WHERE min_quantity > 0 AND quantity <= min_quantity)      AS low_stock,
	    COUNT(*) FILTER (WHERE quantity = 0)                                       AS out_of_stock,
	    COUNT(*) FILTER (WHERE quantity > 0 AND (min_quantity = 0 OR quantity > min_quantity)) AS in_stock
	FROM items`
	var s entity.StockStats
	err := r.q.QueryRow(ctx, query).Scan(&s.TotalItems, &s.TotalQuantity, &s.LowStockCount, &s.OutOfStockCount, &s.InStockCount)
	if err != nil {
		return s, fmt.Errorf("stock stats: %w", err)
	}
	return s, nil
}

// MovementStats agregados del libro.
func (r *StatisticsRepo) MovementStats(ctx context.Context) (entity.MovementStats, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(m.quantity) FILTER (WHERE t.effect = 1), 0),
	    COALESCE(SUM(m.quantity) FILTER (WHERE t.effect = -1), 0),
	    COUNT(DISTINCT m.item_id),
	    COUNT(DISTINCT m.user_id)
	FROM inventory_movements m
	JOIN movement_types t ON t.movement_type_id = m.movement_type_id`
	var s entity.MovementStats
	err := r.q.QueryRow(ctx, query).Scan(&s.TotalMovements, &s.TotalIn, &s.TotalOut, &s.ItemsWithMovements, &s.UsersWithMovements)
	if err != nil {
		return s, fmt.Errorf("movement stats: %w", err)
	}
	return s, nil
}

// MovementTypeStats conteo y cantidad por tipo activo, en orden de ID.
func (r *StatisticsRepo) MovementTypeStats(ctx context.Context) ([]entity.MovementTypeStats, error) {
	const query = `
	SELECT t.movement_type_id, t.type_name, t.type_code, COUNT(m.movement_id), COALESCE(SUM(m.quantity), 0)
	FROM movement_types t
	LEFT JOIN inventory_movements m ON m.movement_type_id = t.movement_type_id
	WHERE t.is_active
	GROUP BY t.movement_type_id
	ORDER BY t.movement_type_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("movement type stats: %w", err)
	}
	defer rows.Close()
	var list []entity.MovementTypeStats
	for rows.Next() {
		var s entity.MovementTypeStats
		if err := rows.Scan(&s.MovementTypeID, &s.TypeName, &s.TypeCode, &s.MovementCount, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan movement type stats: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// groupQuery ejecuta una consulta de 4 columnas (id, nombre, padre, conteo).
func (r *StatisticsRepo) groupQuery(ctx context.Context, label, query string) ([]entity.GroupCount, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	defer rows.Close()
	var list []entity.GroupCount
	for rows.Next() {
		var g entity.GroupCount
		if err := rows.Scan(&g.ID, &g.Name, &g.Parent, &g.ItemCount); err != nil {
			return nil, fmt.Errorf("scan %s: %w", label, err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// ItemsByMainCategory ítems por categoría principal (a través de la sub categoría).
func (r *StatisticsRepo) ItemsByMainCategory(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by main category", `
	SELECT mc.cat_id, mc.cat_name, NULL::TEXT, COUNT(i.item_id)
	FROM main_categories mc
	LEFT JOIN sub_categories sc ON sc.cat_id = mc.cat_id
	LEFT JOIN items i ON i.sub_cat_id = sc.sub_cat_id
	GROUP BY mc.cat_id
	ORDER BY mc.cat_name`)
}

// ItemsBySubCategory ítems por sub categoría, con su categoría principal.
func (r *StatisticsRepo) ItemsBySubCategory(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by sub category", `
	SELECT sc.sub_cat_id, sc.sub_cat_name, mc.cat_name, COUNT(i.item_id)
	FROM sub_categories sc
	JOIN main_categories mc ON mc.cat_id = sc.cat_id
	LEFT JOIN items i ON i.sub_cat_id = sc.sub_cat_id
	GROUP BY sc.sub_cat_id, mc.cat_name
	ORDER BY mc.cat_name, sc.sub_cat_name`)
}

// ItemsByItemType ítems por tipo, con su sub categoría.
func (r *StatisticsRepo) ItemsByItemType(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by item type", `
	SELECT it.item_type_id, it.item_type_name, sc.sub_cat_name, COUNT(i.item_id)
	FROM item_types it
	JOIN sub_categories sc ON sc.sub_cat_id = it.sub_cat_id
	LEFT JOIN items i ON i.item_type_id = it.item_type_id
	GROUP BY it.item_type_id, sc.sub_cat_name
	ORDER BY sc.sub_cat_name, it.item_type_name`)
}

// ItemsByDepartment ítems por departamento.
func (r *StatisticsRepo) ItemsByDepartment(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by department", `
	SELECT d.dept_id, d.dept_name, NULL::TEXT, COUNT(i.item_id)
	FROM departments d
	LEFT JOIN items i ON i.dept_id = d.dept_id
	GROUP BY d.dept_id
	ORDER BY d.dept_name`)
}

// ItemsByFloor ítems por piso.
func (r *StatisticsRepo) ItemsByFloor(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by floor", `
	SELECT f.floor_id, f.floor_name, NULL::TEXT, COUNT(i.item_id)
	FROM floors f
	LEFT JOIN items i ON i.floor_id = f.floor_id
	GROUP BY f.floor_id
	ORDER BY f.floor_name`)
}

// ItemsBySituation ítems por situación (valor libre no nulo).
func (r *StatisticsRepo) ItemsBySituation(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by situation", `
	SELECT NULL::BIGINT, situation, NULL::TEXT, COUNT(*)
	FROM items WHERE situation IS NOT NULL
	GROUP BY situation
	ORDER BY situation`)
}

// ItemsByKind ítems por tipo libre (kind).
func (r *StatisticsRepo) ItemsByKind(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by kind", `
	SELECT NULL::BIGINT, kind, NULL::TEXT, COUNT(*)
	FROM items WHERE kind IS NOT NULL
	GROUP BY kind
	ORDER BY kind`)
}

// ItemsByUser ítems asignados por usuario.
func (r *StatisticsRepo) ItemsByUser(ctx context.Context) ([]entity.GroupCount, error) {
	return r.groupQuery(ctx, "items by user", `
	SELECT u.user_id, u.full_name, NULL::TEXT, COUNT(i.item_id)
	FROM users u
	LEFT JOIN items i ON i.user_id = u.user_id
	GROUP BY u.user_id
	ORDER BY u.full_name`)
}

// WarehouseCount ítems sin usuario asignado.
func (r *StatisticsRepo) WarehouseCount(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE user_id IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("warehouse count: %w", err)
	}
	return n, nil
}

const lowStockSelect = `
	SELECT i.item_id, i.item_name, i.quantity, i.min_quantity, i.unit, d.dept_name, f.floor_name
	FROM items i
	LEFT JOIN departments d ON d.dept_id = i.dept_id
	LEFT JOIN floors f ON f.floor_id = i.floor_id
	WHERE i.min_quantity > 0 AND i.quantity <= i.min_quantity`

const (
	lowStockItemsQuery = lowStockSelect + `
	ORDER BY i.quantity ASC, i.item_id ASC
	LIMIT $1`
	criticalItemsQuery = lowStockSelect + `
	ORDER BY (i.min_quantity - i.quantity) DESC, i.quantity ASC, i.item_id ASC
	LIMIT $1`
)

// LowStockItems ítems en o bajo su mínimo, menor cantidad primero.
func (r *StatisticsRepo) LowStockItems(ctx context.Context, limit int) ([]entity.LowStockItem, error) {
	list, err := r.lowStock(ctx, lowStockItemsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	return list, nil
}

// CriticalItems ítems en o bajo su mínimo, mayor faltante primero.
func (r *StatisticsRepo) CriticalItems(ctx context.Context, limit int) ([]entity.LowStockItem, error) {
	list, err := r.lowStock(ctx, criticalItemsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("critical items: %w", err)
	}
	return list, nil
}

func (r *StatisticsRepo) lowStock(ctx context.Context, query string, limit int) ([]entity.LowStockItem, error) {
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []entity.LowStockItem
	for rows.Next() {
		var it entity.LowStockItem
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.Quantity, &it.MinQuantity, &it.Unit, &it.DeptName, &it.FloorName); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
