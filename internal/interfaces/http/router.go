package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/hospital-inventory/internal/application/analytics"
	"github.com/jhoicas/hospital-inventory/internal/application/auth"
	"github.com/jhoicas/hospital-inventory/internal/application/inventory"
	"github.com/jhoicas/hospital-inventory/internal/application/report"
	"github.com/jhoicas/hospital-inventory/internal/application/usecase"
	"github.com/jhoicas/hospital-inventory/internal/domain/ability"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Abilities     abilityResolver
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	ItemUC        *usecase.ItemUseCase
	UserUC        *usecase.UserUseCase
	CatalogUC     *usecase.CatalogUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	StatisticsUC  *appanalytics.StatisticsUseCase
	ReportUC      *report.ReportUseCase
	JWTSecret     string
}

// catalogRoutes ruta y subject de cada catálogo.
var catalogRoutes = []struct {
	path    string
	kind    entity.CatalogKind
	subject ability.Subject
}{
	{"/departments", entity.CatalogDepartment, ability.SubjectDepartment},
	{"/ranks", entity.CatalogRank, ability.SubjectRank},
	{"/floors", entity.CatalogFloor, ability.SubjectFloor},
	{"/categories", entity.CatalogMainCategory, ability.SubjectCategory},
	{"/sub-categories", entity.CatalogSubCategory, ability.SubjectCategory},
	{"/item-types", entity.CatalogItemType, ability.SubjectCategory},
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Resto: token opcional; sin token se evalúan las reglas del invitado.
	secured := api.Group("", OptionalAuth(deps.JWTSecret), LoadAbility(deps.Abilities))

	can := RequireAbility

	// Items
	items := secured.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", can(ability.ActionRead, ability.SubjectItem), itemHandler.List)
	items.Post("/", can(ability.ActionCreate, ability.SubjectItem), itemHandler.Create)
	items.Get("/:id", can(ability.ActionRead, ability.SubjectItem), itemHandler.GetByID)
	// además, el handler exige update por cada campo enviado
	items.Put("/:id", can(ability.ActionUpdate, ability.SubjectItem), itemHandler.Update)
	items.Delete("/:id", can(ability.ActionDelete, ability.SubjectItem), itemHandler.Delete)

	// Inventario: movimientos del libro
	inv := secured.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Ledger, deps.Replenishment)
	inv.Get("/movements", can(ability.ActionRead, ability.SubjectItem), invHandler.ListMovements)
	inv.Post("/movements", can(ability.ActionCreate, ability.SubjectItem), invHandler.AddMovement)
	inv.Delete("/movements/:id", can(ability.ActionDelete, ability.SubjectItem), invHandler.DeleteMovement)
	inv.Get("/movement-types", can(ability.ActionRead, ability.SubjectItem), invHandler.ListMovementTypes)
	inv.Get("/replenishment-list", can(ability.ActionRead, ability.SubjectReports), invHandler.GetReplenishmentList)

	// Catálogos
	for _, r := range catalogRoutes {
		g := secured.Group(r.path)
		h := NewCatalogHandler(deps.CatalogUC, r.kind)
		g.Get("/", can(ability.ActionRead, r.subject), h.List)
		g.Post("/", can(ability.ActionCreate, r.subject), h.Create)
		g.Get("/:id", can(ability.ActionRead, r.subject), h.GetByID)
		g.Put("/:id", can(ability.ActionUpdate, r.subject), h.Update)
		g.Delete("/:id", can(ability.ActionDelete, r.subject), h.Delete)
	}

	// Usuarios
	users := secured.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", can(ability.ActionRead, ability.SubjectUser), userHandler.List)
	users.Post("/", can(ability.ActionCreate, ability.SubjectUser), userHandler.Create)
	users.Get("/:id", can(ability.ActionRead, ability.SubjectUser), userHandler.GetByID)
	users.Put("/:id", can(ability.ActionUpdate, ability.SubjectUser), userHandler.Update)
	users.Delete("/:id", can(ability.ActionDelete, ability.SubjectUser), userHandler.Delete)
	users.Get("/:id/permissions", can(ability.ActionRead, ability.SubjectUser), userHandler.GetPermissions)

	// Perfil propio
	me := secured.Group("/me")
	me.Get("/ability", userHandler.MyAbility)
	me.Get("/profile", RequireUser(), userHandler.MyProfile)
	me.Put("/profile", RequireUser(), userHandler.UpdateMyProfile)

	// Tablero y estadísticas
	dashHandler := NewDashboardHandler(deps.DashboardUC, deps.StatisticsUC)
	secured.Get("/dashboard", can(ability.ActionRead, ability.SubjectDashboard), dashHandler.GetSummary)
	secured.Get("/statistics", can(ability.ActionRead, ability.SubjectStatistics), dashHandler.GetStatistics)

	// Reportes
	reports := secured.Group("/reports", can(ability.ActionRead, ability.SubjectReports))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/movements.xlsx", reportHandler.Movements)
	reports.Get("/low-stock.pdf", reportHandler.LowStock)
}
