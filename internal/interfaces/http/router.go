package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/inventario-stock/internal/application/auth"
	"github.com/jcastellanos/inventario-stock/internal/application/inventory"
	"github.com/jcastellanos/inventario-stock/internal/application/report"
	"github.com/jcastellanos/inventario-stock/internal/application/usecase"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	AlertUC          *usecase.AlertUseCase
	PriceUC          *usecase.PriceUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ReportUC         *report.UseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la aplicación. Cada grupo de rutas declara su
// propia lista de grupos requeridos; la eliminación queda restringida al rol
// administrativo.
func Router(app *fiber.App, deps RouterDeps) {
	// Página de inicio (pública)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"app": "inventario-stock", "message": "sistema de inventario"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))

	listadoGroups := []string{entity.GroupAdministrador, entity.GroupGestor, entity.GroupLogistica}
	gestionGroups := []string{entity.GroupAdministrador, entity.GroupGestor}

	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/list/", RequireGroups(listadoGroups...), productHandler.List)
	protected.Get("/nuevo/", RequireGroups(gestionGroups...), productHandler.CreateForm)
	protected.Post("/nuevo/", RequireGroups(gestionGroups...), productHandler.Create)
	protected.Get("/editar/:id/", RequireGroups(gestionGroups...), productHandler.EditForm)
	protected.Put("/editar/:id/", RequireGroups(gestionGroups...), productHandler.Update)
	protected.Get("/eliminar/:id/", RequireGroups(entity.GroupAdministrador), productHandler.DeleteConfirm)
	protected.Delete("/eliminar/:id/", RequireGroups(entity.GroupAdministrador), productHandler.Delete)

	// El listado de movimientos filtra por grupo dentro del caso de uso
	// (página vacía para usuarios sin grupo); la creación sí exige grupo.
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	protected.Get("/movimientos/", movementHandler.List)
	protected.Get("/movimientos/nuevo/", RequireGroups(listadoGroups...), movementHandler.CreateForm)
	protected.Post("/movimientos/nuevo/", RequireGroups(listadoGroups...), movementHandler.Create)

	alertHandler := NewAlertHandler(deps.AlertUC)
	protected.Get("/alertas/stock-bajo/", alertHandler.LowStock)
	protected.Get("/productos/vencimiento/", alertHandler.Expiring)

	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reportes/inventario/", RequireGroups(gestionGroups...), reportHandler.Form)
	protected.Post("/reportes/inventario/", RequireGroups(gestionGroups...), reportHandler.Generate)

	priceHandler := NewPriceHandler(deps.PriceUC)
	protected.Get("/producto/:codigo/", RequireGroups(listadoGroups...), priceHandler.Detail)
	protected.Get("/producto/:codigo/nuevo-precio/", RequireGroups(gestionGroups...), priceHandler.PriceForm)
	protected.Post("/producto/:codigo/nuevo-precio/", RequireGroups(gestionGroups...), priceHandler.RecordPrice)
}
