package router

import (
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/config"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/handler"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/middleware"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/service"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New arma el grafo completo de dependencias y devuelve el engine más el
// servicio de pedidos, que main comparte con el cron de atrasos.
// Grafo: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) (*gin.Engine, service.PedidoService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Cadena global de middleware (el orden importa)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositorios ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	movRepo := repository.NewMovimientoRepository(db)
	cuentaRepo := repository.NewCuentaRepository(db)
	cierreRepo := repository.NewCierreRepository(db)
	fideRepo := repository.NewFidelizacionRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)

	// ── Servicios ────────────────────────────────────────────────────────────
	auditoriaSvc := service.NewAuditoriaService(auditoriaRepo)
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, pedidoRepo)
	fideSvc := service.NewFidelizacionService(fideRepo, clienteRepo, auditoriaSvc)
	pedidoSvc := service.NewPedidoService(pedidoRepo, clienteRepo, fideSvc, auditoriaSvc, dispatcher)
	pagoSvc := service.NewPagoService(movRepo, pedidoRepo, cuentaRepo, auditoriaSvc, rdb)
	recepcionSvc := service.NewRecepcionService(pedidoRepo, movRepo, auditoriaSvc, dispatcher, rdb)
	cierreSvc := service.NewCierreService(cierreRepo, movRepo, cuentaRepo, auditoriaSvc, dispatcher, rdb)
	dashboardSvc := service.NewDashboardService(pedidoRepo, movRepo, clienteRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	rolesH := handler.NewRolesHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc, fideSvc, pagoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	finanzasH := handler.NewFinanzasHandler(pagoSvc)
	recepcionH := handler.NewRecepcionHandler(recepcionSvc)
	cierresH := handler.NewCierresHandler(cierreSvc)
	fideH := handler.NewFidelizacionHandler(fideSvc)
	auditoriaH := handler.NewAuditoriaHandler(auditoriaSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Rutas ────────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/dashboard/resumen", middleware.RequirePermiso("dashboard.ver"), dashboardH.Resumen)

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", middleware.RequirePermiso("clientes.ver"), clientesH.Listar)
			clientes.GET("/:id", middleware.RequirePermiso("clientes.ver"), clientesH.Obtener)
			clientes.GET("/:id/creditos", middleware.RequirePermiso("finanzas.ver"), clientesH.Creditos)
			clientes.GET("/:id/canjes", middleware.RequirePermiso("fidelizacion.ver"), clientesH.Canjes)
			clientes.POST("", middleware.RequirePermiso("clientes.crear"), clientesH.Crear)
			clientes.PUT("/:id", middleware.RequirePermiso("clientes.editar"), clientesH.Actualizar)
			clientes.DELETE("/:id", middleware.RequirePermiso("clientes.eliminar"), clientesH.Eliminar)
		}

		pedidos := v1.Group("/pedidos")
		{
			pedidos.GET("", middleware.RequirePermiso("pedidos.ver"), pedidosH.Listar)
			pedidos.GET("/:id", middleware.RequirePermiso("pedidos.ver"), pedidosH.Obtener)
			pedidos.POST("", middleware.RequirePermiso("pedidos.crear"), pedidosH.Crear)
			pedidos.PUT("/:id", middleware.RequirePermiso("pedidos.editar"), pedidosH.Actualizar)
			pedidos.DELETE("/:id", middleware.RequirePermiso("pedidos.cancelar"), pedidosH.Cancelar)
			pedidos.POST("/:id/recibir", middleware.RequirePermiso("pedidos.recibir"), pedidosH.Recibir)
			pedidos.POST("/:id/revertir-recepcion", middleware.RequirePermiso("pedidos.recibir"), pedidosH.RevertirRecepcion)
			pedidos.POST("/:id/entregar", middleware.RequirePermiso("pedidos.entregar"), pedidosH.Entregar)
		}

		v1.POST("/recepcion/lote", middleware.RequirePermiso("recepcion.procesar"), recepcionH.ProcesarLote)

		finanzas := v1.Group("")
		{
			finanzas.POST("/pagos", middleware.RequirePermiso("finanzas.registrar"), finanzasH.RegistrarPago)
			finanzas.POST("/movimientos", middleware.RequirePermiso("finanzas.registrar"), finanzasH.MovimientoManual)
			finanzas.GET("/movimientos", middleware.RequirePermiso("finanzas.ver"), finanzasH.ListarMovimientos)
			finanzas.GET("/movimientos/exportar", middleware.RequirePermiso("finanzas.exportar"), finanzasH.ExportarLibro)
			finanzas.POST("/cuentas", middleware.RequirePermiso("finanzas.cuentas"), finanzasH.CrearCuenta)
			finanzas.GET("/cuentas", middleware.RequirePermiso("finanzas.ver"), finanzasH.ListarCuentas)
		}

		cierres := v1.Group("/cierres")
		{
			cierres.GET("/previa", middleware.RequirePermiso("cierres.ver"), cierresH.Previa)
			cierres.GET("", middleware.RequirePermiso("cierres.ver"), cierresH.Listar)
			cierres.GET("/:id", middleware.RequirePermiso("cierres.ver"), cierresH.Obtener)
			cierres.POST("", middleware.RequirePermiso("cierres.confirmar"), cierresH.Confirmar)
			cierres.DELETE("/:id", middleware.RequirePermiso("cierres.eliminar"), cierresH.Eliminar)
		}

		fide := v1.Group("/fidelizacion")
		{
			fide.GET("/reglas", middleware.RequirePermiso("fidelizacion.ver"), fideH.ListarReglas)
			fide.POST("/reglas", middleware.RequirePermiso("fidelizacion.gestionar"), fideH.CrearRegla)
			fide.PUT("/reglas/:id", middleware.RequirePermiso("fidelizacion.gestionar"), fideH.ActualizarRegla)
			fide.GET("/premios", middleware.RequirePermiso("fidelizacion.ver"), fideH.ListarPremios)
			fide.POST("/premios", middleware.RequirePermiso("fidelizacion.gestionar"), fideH.CrearPremio)
			fide.PUT("/premios/:id", middleware.RequirePermiso("fidelizacion.gestionar"), fideH.ActualizarPremio)
			fide.GET("/canjes", middleware.RequirePermiso("fidelizacion.ver"), fideH.ListarCanjes)
			fide.POST("/canjes", middleware.RequirePermiso("fidelizacion.canjear"), fideH.Canjear)
		}

		usuarios := v1.Group("/usuarios", middleware.RequirePermiso("usuarios.gestionar"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}

		roles := v1.Group("/roles", middleware.RequirePermiso("usuarios.gestionar"))
		{
			roles.POST("", rolesH.Crear)
			roles.GET("", rolesH.Listar)
			roles.PUT("/:id", rolesH.Actualizar)
			roles.DELETE("/:id", rolesH.Eliminar)
		}

		v1.GET("/auditoria", middleware.RequirePermiso("auditoria.ver"), auditoriaH.Listar)
	}

	// Swagger UI — solo fuera de producción
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, pedidoSvc
}
