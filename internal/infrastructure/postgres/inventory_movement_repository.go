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

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `
	m.movement_id, m.item_id, m.movement_type_id, m.quantity, m.previous_qty, m.new_qty, m.user_id,
	m.reference_no, m.notes, m.from_dept_id, m.to_dept_id, m.from_floor_id, m.to_floor_id,
	m.movement_date, m.created_at, t.type_code, t.effect`

func scanMovement(row pgx.Row, extra ...any) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	dest := []any{
		&m.ID, &m.ItemID, &m.MovementTypeID, &m.Quantity, &m.PreviousQty, &m.NewQty, &m.UserID,
		&m.ReferenceNo, &m.Notes, &m.FromDeptID, &m.ToDeptID, &m.FromFloorID, &m.ToFloorID,
		&m.MovementDate, &m.CreatedAt, &m.TypeCode, &m.TypeEffect,
	}
	if len(extra) > 0 {
		dest = append(dest, extra...)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento. movement_date usa clock_timestamp(): se toma después de
// bloquear el ítem, así el orden cronológico coincide con el orden de aplicación.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (item_id, movement_type_id, quantity, previous_qty, new_qty, user_id,
		                                 reference_no, notes, from_dept_id, to_dept_id, from_floor_id, to_floor_id,
		                                 movement_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, clock_timestamp())
		RETURNING movement_id, movement_date, created_at`
	err := r.q.QueryRow(ctx, query,
		movement.ItemID, movement.MovementTypeID, movement.Quantity, movement.PreviousQty, movement.NewQty,
		movement.UserID, movement.ReferenceNo, movement.Notes,
		movement.FromDeptID, movement.ToDeptID, movement.FromFloorID, movement.ToFloorID,
	).Scan(&movement.ID, &movement.MovementDate, &movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM inventory_movements m
		JOIN movement_types t ON t.movement_type_id = m.movement_type_id
		WHERE m.movement_id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Delete elimina un movimiento.
// Delete devuelve domain.ErrNotFound si otra transacción ya lo borró.
func (r *InventoryMovementRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_movements WHERE movement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByItemChronological historial completo de un ítem en orden de reproducción.
func (r *InventoryMovementRepo) ListByItemChronological(ctx context.Context, itemID int64) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM inventory_movements m
		JOIN movement_types t ON t.movement_type_id = m.movement_type_id
		WHERE m.item_id = $1
		ORDER BY m.movement_date ASC, m.movement_id ASC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item history: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// List movimientos con nombres resueltos, más recientes primero.
func (r *InventoryMovementRepo) List(ctx context.Context, filter entity.MovementFilter) ([]*entity.InventoryMovement, error) {
	var w whereBuilder
	if filter.ItemID != nil {
		w.add("m.item_id = ?", *filter.ItemID)
	}
	if filter.MovementTypeID != nil {
		w.add("m.movement_type_id = ?", *filter.MovementTypeID)
	}
	query := `SELECT ` + movementColumns + `,
		       i.item_name, t.type_name, u.full_name, fd.dept_name, td.dept_name, ff.floor_name, tf.floor_name
		FROM inventory_movements m
		JOIN movement_types t ON t.movement_type_id = m.movement_type_id
		JOIN items i ON i.item_id = m.item_id
		JOIN users u ON u.user_id = m.user_id
		LEFT JOIN departments fd ON fd.dept_id = m.from_dept_id
		LEFT JOIN departments td ON td.dept_id = m.to_dept_id
		LEFT JOIN floors ff ON ff.floor_id = m.from_floor_id
		LEFT JOIN floors tf ON tf.floor_id = m.to_floor_id` +
		w.sql() +
		` ORDER BY m.movement_date DESC, m.movement_id DESC LIMIT ` + w.next(filter.Limit)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var refs entity.MovementRefs
		m, err := scanMovement(rows,
			&refs.ItemName, &refs.TypeName, &refs.UserFullName,
			&refs.FromDept, &refs.ToDept, &refs.FromFloor, &refs.ToFloor,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Refs = refs
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByUser número de movimientos registrados por el usuario.
func (r *InventoryMovementRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements by user: %w", err)
	}
	return n, nil
}

var _ repository.MovementTypeRepository = (*MovementTypeRepo)(nil)

// MovementTypeRepo catálogo de tipos de movimiento.
type MovementTypeRepo struct {
	q Querier
}

// NewMovementTypeRepository construye el adaptador.
func NewMovementTypeRepository(q Querier) *MovementTypeRepo {
	return &MovementTypeRepo{q: q}
}

const movementTypeSelect = `
	SELECT movement_type_id, type_name, type_code, effect, description, is_active FROM movement_types`

func scanMovementType(row pgx.Row) (*entity.MovementType, error) {
	var t entity.MovementType
	if err := row.Scan(&t.ID, &t.Name, &t.Code, &t.Effect, &t.Description, &t.IsActive); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID tipo por ID (activo o no).
func (r *MovementTypeRepo) GetByID(ctx context.Context, id int64) (*entity.MovementType, error) {
	t, err := scanMovementType(r.q.QueryRow(ctx, movementTypeSelect+` WHERE movement_type_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement type: %w", err)
	}
	return t, nil
}

// GetByCode tipo por código.
func (r *MovementTypeRepo) GetByCode(ctx context.Context, code string) (*entity.MovementType, error) {
	t, err := scanMovementType(r.q.QueryRow(ctx, movementTypeSelect+` WHERE type_code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement type by code: %w", err)
	}
	return t, nil
}

const listActiveMovementTypesQuery = movementTypeSelect + ` WHERE is_active ORDER BY movement_type_id`

// ListActive tipos activos ordenados por id.
func (r *MovementTypeRepo) ListActive(ctx context.Context) ([]*entity.MovementType, error) {
	rows, err := r.q.Query(ctx, listActiveMovementTypesQuery)
	if err != nil {
		return nil, fmt.Errorf("list movement types: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementType
	for rows.Next() {
		t, err := scanMovementType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement type: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
