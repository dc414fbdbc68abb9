package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// catalogTable columnas físicas de un catálogo.
type catalogTable struct {
	table       string
	id          string
	name        string
	parentCol   string // vacío si no tiene padre
	parentTable string
	parentID    string
	parentName  string
	description bool
}

var catalogTables = map[entity.CatalogKind]catalogTable{
	entity.CatalogDepartment: {table: "departments", id: "dept_id", name: "dept_name"},
	entity.CatalogRank:       {table: "ranks", id: "rank_id", name: "rank_name"},
	entity.CatalogFloor:      {table: "floors", id: "floor_id", name: "floor_name"},
	entity.CatalogMainCategory: {
		table: "main_categories", id: "cat_id", name: "cat_name", description: true,
	},
	entity.CatalogSubCategory: {
		table: "sub_categories", id: "sub_cat_id", name: "sub_cat_name", description: true,
		parentCol: "cat_id", parentTable: "main_categories", parentID: "cat_id", parentName: "cat_name",
	},
	entity.CatalogItemType: {
		table: "item_types", id: "item_type_id", name: "item_type_name",
		parentCol: "sub_cat_id", parentTable: "sub_categories", parentID: "sub_cat_id", parentName: "sub_cat_name",
	},
}

func (t catalogTable) selectSQL() string {
	cols := fmt.Sprintf("c.%s, c.%s, c.name_key", t.id, t.name)
	from := t.table + " c"
	if t.parentCol != "" {
		cols += fmt.Sprintf(", c.%s, p.%s", t.parentCol, t.parentName)
		from += fmt.Sprintf(" JOIN %s p ON p.%s = c.%s", t.parentTable, t.parentID, t.parentCol)
	} else {
		cols += ", NULL::BIGINT, NULL::TEXT"
	}
	if t.description {
		cols += ", c.description"
	} else {
		cols += ", NULL::TEXT"
	}
	return "SELECT " + cols + " FROM " + from
}

// CatalogRepo persistencia común de los catálogos por nombre.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func tableFor(kind entity.CatalogKind) (catalogTable, error) {
	t, ok := catalogTables[kind]
	if !ok {
		return catalogTable{}, domain.Invalid("catálogo desconocido: %s", kind)
	}
	return t, nil
}

func scanCatalog(kind entity.CatalogKind, row pgx.Row) (*entity.CatalogEntry, error) {
	e := entity.CatalogEntry{Kind: kind}
	if err := row.Scan(&e.ID, &e.Name, &e.Key, &e.ParentID, &e.ParentName, &e.Description); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CatalogRepo) queryList(ctx context.Context, kind entity.CatalogKind, query string, args ...any) ([]*entity.CatalogEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()
	var list []*entity.CatalogEntry
	for rows.Next() {
		e, err := scanCatalog(kind, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *CatalogRepo) queryOne(ctx context.Context, kind entity.CatalogKind, query string, args ...any) (*entity.CatalogEntry, error) {
	e, err := scanCatalog(kind, r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return e, nil
}

// List entradas ordenadas por nombre.
func (r *CatalogRepo) List(ctx context.Context, kind entity.CatalogKind, parentID *int64) ([]*entity.CatalogEntry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	var w whereBuilder
	if parentID != nil && t.parentCol != "" {
		w.add("c."+t.parentCol+" = ?", *parentID)
	}
	return r.queryList(ctx, kind, t.selectSQL()+w.sql()+" ORDER BY c."+t.name, w.args...)
}

// GetByID entrada por ID.
func (r *CatalogRepo) GetByID(ctx context.Context, kind entity.CatalogKind, id int64) (*entity.CatalogEntry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return r.queryOne(ctx, kind, t.selectSQL()+" WHERE c."+t.id+" = $1", id)
}

// FindByKey entrada por nombre plegado, dentro del padre si aplica.
func (r *CatalogRepo) FindByKey(ctx context.Context, kind entity.CatalogKind, key string, parentID *int64) (*entity.CatalogEntry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	var w whereBuilder
	w.add("c.name_key = ?", key)
	if t.parentCol != "" {
		if parentID == nil {
			w.addRaw("c." + t.parentCol + " IS NULL")
		} else {
			w.add("c."+t.parentCol+" = ?", *parentID)
		}
	}
	return r.queryOne(ctx, kind, t.selectSQL()+w.sql()+" LIMIT 1", w.args...)
}

// Create inserta la entrada y rellena su ID.
func (r *CatalogRepo) Create(ctx context.Context, entry *entity.CatalogEntry) error {
	t, err := tableFor(entry.Kind)
	if err != nil {
		return err
	}
	cols := []string{t.name, "name_key"}
	args := []any{entry.Name, entry.Key}
	if t.parentCol != "" {
		cols = append(cols, t.parentCol)
		args = append(args, entry.ParentID)
	}
	if t.description {
		cols = append(cols, "description")
		args = append(args, entry.Description)
	}
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), t.id)
	if err := r.q.QueryRow(ctx, query, args...).Scan(&entry.ID); err != nil {
		return mapCatalogWriteErr(entry.Kind, err)
	}
	return nil
}

// Update persiste nombre, padre y descripción.
func (r *CatalogRepo) Update(ctx context.Context, entry *entity.CatalogEntry) error {
	t, err := tableFor(entry.Kind)
	if err != nil {
		return err
	}
	sets := []string{t.name + " = $2", "name_key = $3"}
	args := []any{entry.ID, entry.Name, entry.Key}
	if t.parentCol != "" {
		args = append(args, entry.ParentID)
		sets = append(sets, fmt.Sprintf("%s = $%d", t.parentCol, len(args)))
	}
	if t.description {
		args = append(args, entry.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1", t.table, strings.Join(sets, ", "), t.id)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return mapCatalogWriteErr(entry.Kind, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la entrada; ErrConflict si sigue referenciada.
func (r *CatalogRepo) Delete(ctx context.Context, kind entity.CatalogKind, id int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.table, t.id), id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s %d está en uso", domain.ErrConflict, kind, id)
		}
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	return nil
}

func mapCatalogWriteErr(kind entity.CatalogKind, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateName
	case isForeignKeyViolation(err):
		return domain.Invalid("el padre de %s no existe", kind)
	}
	return fmt.Errorf("write %s: %w", kind, err)
}
