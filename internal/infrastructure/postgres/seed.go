package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

// DefaultSeedPassword contraseña inicial de los usuarios sembrados.
const DefaultSeedPassword = "password123"

type seedRole struct{ name, description string }

type seedMovementType struct {
	name, code  string
	effect      int
	description string
}

type seedChild struct{ name, parent string }

type seedUser struct {
	username, email, role, fullName, phone string
}

type seedPermission struct{ subject, action string }

var (
	seedRoles = []seedRole{
		{"SUPER_ADMIN", "مدير النظام الرئيسي - صلاحيات كاملة على جميع الوحدات"},
		{"ADMIN", "مدير النظام - صلاحيات إدارية شاملة"},
		{"INVENTORY_MANAGER", "مدير المخزون - إدارة الأصناف والتصنيفات والأقسام"},
		{"INVENTORY_USER", "موظف المخزون - عرض وتحديث الأصناف المسؤولة عنها"},
		{"VIEWER", "مستعرض - عرض البيانات والإحصائيات فقط"},
		{"USER", "مستخدم عادي - عرض الأصناف المخصصة له فقط"},
	}

	seedMovementTypes = []seedMovementType{
		{"إدخال مخزون", entity.MovementCodeIN, 1, "إضافة كمية جديدة للمخزن"},
		{"إخراج مخزون", entity.MovementCodeOUT, -1, "صرف كمية من المخزن"},
		{"مرتجع", entity.MovementCodeRETURN, 1, "إرجاع كمية للمخزن"},
		{"تالف", entity.MovementCodeDAMAGED, -1, "كمية تالفة تم استبعادها"},
		{"جرد", entity.MovementCodeADJUSTMENT, 0, "تعديل الكمية بناءً على الجرد الفعلي"},
		{"نقل بين أقسام", entity.MovementCodeTRANSFER, 0, "نقل كمية من قسم لآخر"},
	}

	seedDepartments = []string{
		"قسم تكنولوجيا المعلومات", "قسم الموارد البشرية", "قسم المالية",
		"تقنية المعلومات", "المالية", "الموارد البشرية", "التسويق", "العمليات", "خدمة العملاء",
	}
	seedFloors = []string{"الطابق الأرضي", "الطابق الأول", "الطابق الثاني", "الطابق الثالث"}
	seedRanks  = []string{"مدير عام", "مدير إدارة", "رئيس قسم", "موظف أول", "موظف"}

	seedMainCategories = []struct{ name, description string }{
		{"أجهزة حاسوب", "أجهزة حاسوب وملحقاتها"},
		{"أثاث مكتبي", "أثاث وتجهيزات المكاتب"},
		{"الشبكات", "معدات الشبكات والاتصالات"},
	}
	seedSubCategories = []seedChild{
		{"حاسوب محمول", "أجهزة حاسوب"},
		{"حاسوب مكتبي", "أجهزة حاسوب"},
		{"مكاتب", "أثاث مكتبي"},
	}
	seedItemTypes = []seedChild{
		{"Dell Desktop", "حاسوب مكتبي"},
		{"HP Laptop", "حاسوب محمول"},
		{"Canon Printer", "مكاتب"},
	}

	seedUsers = []seedUser{
		{"superadmin", "superadmin@hospital.com", "SUPER_ADMIN", "محمد أحمد", "01000000001"},
		{"tah", "tah@gmail.com", "SUPER_ADMIN", "طه محمود", "01000000002"},
		{"admin", "admin@hospital.com", "ADMIN", "أحمد محمد", "01100000001"},
	}
)

func adminPermissions() []seedPermission {
	var perms []seedPermission
	for _, subject := range []string{"ITEMS", "USERS", "CATEGORIES", "DEPARTMENTS", "RANKS", "FLOORS"} {
		for _, action := range []string{"CREATE", "READ", "UPDATE", "DELETE"} {
			perms = append(perms, seedPermission{subject, action})
		}
	}
	return append(perms, seedPermission{"STATISTICS", "READ"}, seedPermission{"DASHBOARD", "READ"})
}

// Seed carga roles, permisos, tipos de movimiento, catálogos y usuarios iniciales
// en una sola transacción. Es idempotente: lo existente no se modifica.
func Seed(ctx context.Context, pool *pgxpool.Pool, password string, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	if password == "" {
		password = DefaultSeedPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	s := seeder{q: tx}
	roles, err := s.roles(ctx)
	if err != nil {
		return err
	}
	if err := s.movementTypes(ctx); err != nil {
		return err
	}
	for kind, names := range map[entity.CatalogKind][]string{
		entity.CatalogDepartment: seedDepartments,
		entity.CatalogFloor:      seedFloors,
		entity.CatalogRank:       seedRanks,
	} {
		if err := s.flatCatalog(ctx, kind, names); err != nil {
			return err
		}
	}
	subCats, err := s.categories(ctx)
	if err != nil {
		return err
	}
	if err := s.itemTypes(ctx, subCats); err != nil {
		return err
	}
	created, err := s.users(ctx, roles, string(hash))
	if err != nil {
		return err
	}
	if err := s.permissions(ctx, roles); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	log.Info().Int("roles", len(roles)).Int("users_created", created).Msg("datos iniciales cargados")
	return nil
}

type seeder struct {
	q pgx.Tx
}

// upsertID inserta o, si ya existe por la restricción indicada, devuelve el ID existente.
func (s seeder) upsertID(ctx context.Context, label, query string, args ...any) (int64, error) {
	var id int64
	if err := s.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("seed %s: %w", label, err)
	}
	return id, nil
}

func (s seeder) roles(ctx context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(seedRoles))
	for _, r := range seedRoles {
		id, err := s.upsertID(ctx, "role "+r.name, `
			INSERT INTO roles (role_name, description) VALUES ($1, $2)
			ON CONFLICT (role_name) DO UPDATE SET role_name = EXCLUDED.role_name
			RETURNING role_id`, r.name, r.description)
		if err != nil {
			return nil, err
		}
		ids[r.name] = id
	}
	return ids, nil
}

func (s seeder) movementTypes(ctx context.Context) error {
	for _, t := range seedMovementTypes {
		_, err := s.q.Exec(ctx, `
			INSERT INTO movement_types (type_name, type_code, effect, description) VALUES ($1, $2, $3, $4)
			ON CONFLICT (type_code) DO NOTHING`, t.name, t.code, t.effect, t.description)
		if err != nil {
			return fmt.Errorf("seed movement type %s: %w", t.code, err)
		}
	}
	return nil
}

func (s seeder) flatCatalog(ctx context.Context, kind entity.CatalogKind, names []string) error {
	t := catalogTables[kind]
	query := fmt.Sprintf(`INSERT INTO %s (%s, name_key) VALUES ($1, $2) ON CONFLICT (name_key) DO NOTHING`, t.table, t.name)
	for _, name := range names {
		if _, err := s.q.Exec(ctx, query, entity.NormalizeName(name), entity.NameKey(name)); err != nil {
			return fmt.Errorf("seed %s: %w", kind, err)
		}
	}
	return nil
}

// categories siembra categorías principales y sub categorías; devuelve los IDs de las sub categorías por nombre.
func (s seeder) categories(ctx context.Context) (map[string]int64, error) {
	mains := make(map[string]int64, len(seedMainCategories))
	for _, c := range seedMainCategories {
		id, err := s.upsertID(ctx, "main category", `
			INSERT INTO main_categories (cat_name, name_key, description) VALUES ($1, $2, $3)
			ON CONFLICT (name_key) DO UPDATE SET name_key = EXCLUDED.name_key
			RETURNING cat_id`, entity.NormalizeName(c.name), entity.NameKey(c.name), c.description)
		if err != nil {
			return nil, err
		}
		mains[c.name] = id
	}
	subs := make(map[string]int64, len(seedSubCategories))
	for _, c := range seedSubCategories {
		id, err := s.upsertID(ctx, "sub category", `
			INSERT INTO sub_categories (sub_cat_name, name_key, cat_id) VALUES ($1, $2, $3)
			ON CONFLICT (cat_id, name_key) DO UPDATE SET name_key = EXCLUDED.name_key
			RETURNING sub_cat_id`, entity.NormalizeName(c.name), entity.NameKey(c.name), mains[c.parent])
		if err != nil {
			return nil, err
		}
		subs[c.name] = id
	}
	return subs, nil
}

func (s seeder) itemTypes(ctx context.Context, subCats map[string]int64) error {
	for _, t := range seedItemTypes {
		_, err := s.q.Exec(ctx, `
			INSERT INTO item_types (item_type_name, name_key, sub_cat_id) VALUES ($1, $2, $3)
			ON CONFLICT (sub_cat_id, name_key) DO NOTHING`,
			entity.NormalizeName(t.name), entity.NameKey(t.name), subCats[t.parent])
		if err != nil {
			return fmt.Errorf("seed item type %s: %w", t.name, err)
		}
	}
	return nil
}

// users crea los usuarios que falten; devuelve cuántos se insertaron.
func (s seeder) users(ctx context.Context, roles map[string]int64, hash string) (int, error) {
	created := 0
	for _, u := range seedUsers {
		tag, err := s.q.Exec(ctx, `
			INSERT INTO users (username, email, password_hash, full_name, phone, is_active, role_id)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)
			ON CONFLICT DO NOTHING`, u.username, u.email, hash, u.fullName, u.phone, roles[u.role])
		if err != nil {
			return created, fmt.Errorf("seed user %s: %w", u.username, err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

func (s seeder) permissions(ctx context.Context, roles map[string]int64) error {
	grant := func(roleID int64, p seedPermission) error {
		_, err := s.q.Exec(ctx, `
			INSERT INTO role_permissions (role_id, subject, action, field_name, can_access)
			VALUES ($1, $2, $3, '', TRUE)
			ON CONFLICT (role_id, subject, action, field_name) DO NOTHING`, roleID, p.subject, p.action)
		if err != nil {
			return fmt.Errorf("seed permission %s/%s: %w", p.subject, p.action, err)
		}
		return nil
	}
	if err := grant(roles["SUPER_ADMIN"], seedPermission{"ALL", "MANAGE"}); err != nil {
		return err
	}
	for _, p := range adminPermissions() {
		if err := grant(roles["ADMIN"], p); err != nil {
			return err
		}
	}
	return nil
}
