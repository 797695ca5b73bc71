package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aeropartes-api/internal/application/auth"
	"github.com/tu-usuario/aeropartes-api/internal/application/ledger"
	"github.com/tu-usuario/aeropartes-api/internal/application/receiving"
	"github.com/tu-usuario/aeropartes-api/internal/application/usecase"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	PartUC      *usecase.PartUseCase
	LocationUC  *usecase.LocationUseCase
	LedgerUC    *ledger.UseCase
	LedgerQuery *ledger.QueryUseCase
	ReceivingUC *receiving.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// RBAC: almacenista mueve existencias, inspector cambia condición, admin todo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	almacen := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)
	inspeccion := RequireRole(entity.RoleAdmin, entity.RoleInspector)

	// Parts (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", almacen, partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:part_number", partHandler.GetByPartNumber)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", almacen, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:code", locationHandler.GetByCode)

	// Ledger de movimientos (protegido)
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.LedgerQuery)
	ledgerGroup.Post("/receive", almacen, ledgerHandler.Receive)
	ledgerGroup.Post("/inspect", inspeccion, ledgerHandler.Inspect)
	ledgerGroup.Post("/transfer", almacen, ledgerHandler.Transfer)
	ledgerGroup.Post("/issue", almacen, ledgerHandler.Issue)
	ledgerGroup.Post("/return", almacen, ledgerHandler.Return)
	ledgerGroup.Post("/vendor-return", almacen, ledgerHandler.VendorReturn)
	ledgerGroup.Post("/adjust", almacen, ledgerHandler.Adjust)
	ledgerGroup.Post("/scrap", almacen, ledgerHandler.Scrap)
	ledgerGroup.Get("/on-hand", ledgerHandler.OnHand)
	ledgerGroup.Get("/entries", ledgerHandler.Entries)
	ledgerGroup.Get("/reconciliation", RequireRole(entity.RoleAdmin), ledgerHandler.Reconcile)

	// Recepciones de compra (protegido)
	receivingGroup := protected.Group("/receiving")
	receivingHandler := NewReceivingHandler(deps.ReceivingUC)
	receivingGroup.Post("/purchase-orders", almacen, receivingHandler.CreatePurchaseOrder)
	receivingGroup.Post("/goods-receipts", almacen, receivingHandler.ReceiveGoods)
}
