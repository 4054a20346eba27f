package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/auth"
	"github.com/jhoicas/user-console/internal/application/export"
	"github.com/jhoicas/user-console/internal/application/navigation"
	"github.com/jhoicas/user-console/internal/application/usecase"
	"github.com/jhoicas/user-console/internal/domain/entity"
)

// SessionGuard vista del guard que usan el middleware de auth y la navegación.
type SessionGuard interface {
	sessionChecker
	navigation.SessionGuard
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	RoleUC       *usecase.RoleUseCase
	PreferenceUC *usecase.PreferenceUseCase
	ExportUC     *export.UseCase
	Navigation   *navigation.Authorizer
	Guard        SessionGuard
	JWTSecret    string
	AppName      string
	Env          string
}

// Router registra las rutas de la API y de navegación. La ruta comodín de páginas va al final
// y responde NotFound a todo lo que no coincidió antes (por eso /docs se monta antes de llamarlo).
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.AppName, deps.Env)
	app.Get("/health", health.Health)
	app.Get("/metrics", health.Metrics())

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Preferencias (público: idioma y tema aplican también al login)
	prefHandler := NewPreferenceHandler(deps.PreferenceUC)
	api.Get("/preferences", prefHandler.Get)
	api.Put("/preferences", prefHandler.Update)

	// Rutas protegidas (requieren Bearer Token de la sesión abierta)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Guard))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	roleHandler := NewRoleHandler(deps.RoleUC)
	protected.Get("/roles", roleHandler.List)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", RequirePermission(entity.PermUsersCreate, deps.RoleUC), userHandler.Create)
	users.Put("/:id", RequirePermission(entity.PermUsersEdit, deps.RoleUC), userHandler.Update)
	users.Delete("/:id", RequirePermission(entity.PermUsersDelete, deps.RoleUC), userHandler.Delete)

	// Exports
	exports := protected.Group("/exports")
	exportHandler := NewExportHandler(deps.ExportUC, deps.UserUC, deps.PreferenceUC)
	exports.Get("/users.csv", exportHandler.UsersCSV)
	exports.Get("/users.pdf", exportHandler.UsersPDF)
	exports.Get("/users/:id/pdf", exportHandler.UserPDF)

	// Páginas de la consola (autorizador de navegación)
	nav := NewNavigationHandler(deps.Navigation)
	app.Get("/*", nav.Navigate)
}
